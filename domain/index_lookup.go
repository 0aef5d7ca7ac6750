package domain

import (
	"time"
)

// IndexLookup is a remembered package index lookup outcome.  Found=false
// records a name which the index reported as absent.
type IndexLookup struct {
	Name      string     `json:"name"`
	Found     bool       `json:"found"`
	Candidate *Candidate `json:"candidate,omitempty"`
	FetchedAt time.Time  `json:"fetched_at"`
}

// Fresh reports whether the lookup is younger than ttl as of now.  A
// non-positive ttl never expires.
func (l *IndexLookup) Fresh(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return true
	}
	return now.Sub(l.FetchedAt) < ttl
}
