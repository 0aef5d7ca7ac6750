package discovery

import (
	"github.com/vbagdi/ResearchCode/domain"
)

// Dedupe collapses records sharing a case-insensitive name.  The output is
// stable: the first occurrence of each name is kept in input order.
func Dedupe(candidates []*domain.Candidate) []*domain.Candidate {
	var (
		seen   = make(map[string]struct{}, len(candidates))
		unique = make([]*domain.Candidate, 0, len(candidates))
	)
	for _, c := range candidates {
		key := domain.NormalizeDedupe(c.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}
