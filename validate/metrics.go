// Package validate scores a discovery run against a curated reference list
// of well known tools.
package validate

import (
	"math"

	"github.com/vbagdi/ResearchCode/domain"
	"github.com/vbagdi/ResearchCode/pkg/unique"
)

// DefaultK is the rank cutoff for precision.
const DefaultK = 20

// Calculate compares the ranked discovered tools against the reference
// names.  Both sides are compared by validation-normalized name.
//
// Precision@K is only computed when the top K holds K distinct names;
// smaller result sets report 0.
func Calculate(discovered []*domain.Candidate, reference []string, k int) domain.ValidationMetrics {
	if k <= 0 {
		k = DefaultK
	}

	var (
		discoveredSet = unique.Set(normalizeCandidates(discovered))
		referenceSet  = unique.Set(normalizeNames(reference))
		topSet        = unique.Set(normalizeCandidates(head(discovered, k)))
	)

	found := intersect(discoveredSet, referenceSet)
	foundTop := intersect(topSet, referenceSet)

	m := domain.ValidationMetrics{
		TotalDiscovered: len(discovered),
		ReferenceSize:   len(reference),
		FoundCount:      len(found),
		TopK:            k,
		MissedTools:     difference(referenceSet, discoveredSet),
		FoundTools:      found,
		NovelTopK:       difference(topSet, referenceSet),
	}
	if len(referenceSet) > 0 {
		m.Recall = round3(float64(len(found)) / float64(len(referenceSet)))
	}
	if len(topSet) >= k {
		m.PrecisionAtK = round3(float64(len(foundTop)) / float64(k))
	}
	return m
}

func head(cs []*domain.Candidate, k int) []*domain.Candidate {
	if len(cs) > k {
		return cs[:k]
	}
	return cs
}

func normalizeCandidates(cs []*domain.Candidate) []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = domain.NormalizeValidation(c.Name)
	}
	return names
}

func normalizeNames(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = domain.NormalizeValidation(name)
	}
	return out
}

// intersect returns the sorted members of a present in b.
func intersect(a map[string]struct{}, b map[string]struct{}) []string {
	out := []string{}
	for k := range a {
		if _, ok := b[k]; ok {
			out = append(out, k)
		}
	}
	return unique.StringsSorted(out)
}

// difference returns the sorted members of a absent from b.
func difference(a map[string]struct{}, b map[string]struct{}) []string {
	out := []string{}
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	return unique.StringsSorted(out)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
