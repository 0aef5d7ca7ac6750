package domain

// ValidationMetrics summarizes how a discovery run compares against the
// curated reference set.  All name lists hold validation-normalized names.
//
// The precision_at_20 and novel_top20 keys are fixed so metrics files stay
// readable by existing consumers; top_k records the cutoff actually used.
type ValidationMetrics struct {
	TotalDiscovered int      `json:"total_discovered"`
	ReferenceSize   int      `json:"gold_standard_size"`
	FoundCount      int      `json:"found_count"`
	TopK            int      `json:"top_k"`
	Recall          float64  `json:"recall"`
	PrecisionAtK    float64  `json:"precision_at_20"`
	MissedTools     []string `json:"missed_tools"`
	FoundTools      []string `json:"found_tools"`
	NovelTopK       []string `json:"novel_top20"`
}
