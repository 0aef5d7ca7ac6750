package domain

// WorkflowBucket is a named, keyword-defined category.  Membership is
// non-exclusive.
type WorkflowBucket struct {
	Name     string   `json:"-"`
	Keywords []string `json:"keywords"`
	Tools    []string `json:"tools"`
}

// Workflows is the ordered set of buckets produced by a categorization pass.
type Workflows []*WorkflowBucket

// Bucket returns the named bucket, or nil.
func (ws Workflows) Bucket(name string) *WorkflowBucket {
	for _, b := range ws {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// Counts maps each bucket name to the number of assigned tools.
func (ws Workflows) Counts() map[string]int {
	counts := make(map[string]int, len(ws))
	for _, b := range ws {
		counts[b.Name] = len(b.Tools)
	}
	return counts
}
