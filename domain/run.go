package domain

import (
	"time"
)

// CollectStats counts what happened during one collection sweep.
type CollectStats struct {
	TopicsSearched    int `json:"topics_searched"`
	TopicsRateLimited int `json:"topics_rate_limited"`
	TopicsFailed      int `json:"topics_failed"`
	CodeHostHits      int `json:"code_host_hits"`
	EnrichAttempted   int `json:"enrich_attempted"`
	Enriched          int `json:"enriched"`
	EnrichFailed      int `json:"enrich_failed"`
	SeedsAdded        int `json:"seeds_added"`
	SeedsKnown        int `json:"seeds_known"`
	SeedsMissing      int `json:"seeds_missing"`
}

// RunSummary is the archived record of one pipeline run.
type RunSummary struct {
	RunID      string         `json:"run_id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Output     string         `json:"output"`
	TotalTools int            `json:"total_tools"`
	TopTools   []string       `json:"top_tools"`
	Workflows  map[string]int `json:"workflows"`
	Stats      CollectStats   `json:"stats"`
	Err        string         `json:"error,omitempty"`
}

// Duration returns the wall-clock length of the run.
func (rs *RunSummary) Duration() time.Duration {
	return rs.FinishedAt.Sub(rs.StartedAt)
}
