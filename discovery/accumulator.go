package discovery

import (
	"strings"

	"github.com/vbagdi/ResearchCode/domain"
)

// Accumulator is the single point where collected candidates are merged.
// Insertion order is preserved and the first occurrence of an identifier
// wins.
type Accumulator struct {
	candidates []*domain.Candidate
	seen       map[string]struct{}
	Stats      domain.CollectStats
}

func NewAccumulator() *Accumulator {
	acc := &Accumulator{
		candidates: []*domain.Candidate{},
		seen:       map[string]struct{}{},
	}
	return acc
}

// identity is the full identifier for code host records and the name for
// package index records, lowercased.
func identity(c *domain.Candidate) string {
	if c.FullName != "" {
		return strings.ToLower(c.FullName)
	}
	return strings.ToLower(c.Name)
}

// Add appends c unless its identifier was already captured.  Returns true
// when c was added.
func (acc *Accumulator) Add(c *domain.Candidate) bool {
	key := identity(c)
	if _, ok := acc.seen[key]; ok {
		return false
	}
	acc.seen[key] = struct{}{}
	acc.candidates = append(acc.candidates, c)
	return true
}

// Candidates returns the accumulated records in insertion order.
func (acc *Accumulator) Candidates() []*domain.Candidate {
	return acc.candidates
}

func (acc *Accumulator) Len() int {
	return len(acc.candidates)
}

// seedKeys returns the loose seed comparison keys of every known name.
func (acc *Accumulator) seedKeys() map[string]struct{} {
	keys := make(map[string]struct{}, len(acc.candidates))
	for _, c := range acc.candidates {
		keys[domain.NormalizeSeed(c.Name)] = struct{}{}
	}
	return keys
}
