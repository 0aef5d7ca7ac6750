// Package quality implements the additive, tier-based quality score.  Every
// point is traceable to one observable signal on the candidate.
package quality

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/vbagdi/ResearchCode/domain"
	"github.com/vbagdi/ResearchCode/pkg/contains"
)

// Keywords are the domain terms counted for keyword relevance.
var Keywords = []string{
	"chem",
	"molecule",
	"drug",
	"compound",
	"smiles",
	"protein",
	"docking",
	"descriptor",
	"pharma",
	"medicinal",
	"rdkit",
	"molecular",
	"crystal",
	"reaction",
}

// Tier awards Points when a value is strictly above Above.
type Tier struct {
	Above  int
	Points float64
}

// Band awards Points when a value is strictly below Below.
type Band struct {
	Below  int
	Points float64
}

// Weights holds every constant which contributes to a score.
type Weights struct {
	Popularity      []Tier  // Checked in order, first match wins.
	PopularityFloor float64 // Known popularity below every tier.
	Recency         []Band  // Checked in order, first match wins.

	KeywordPoints float64
	KeywordCap    float64

	CrossSource float64

	TopicThreshold int
	TopicPoints    float64

	Foundation float64
}

var DefaultWeights = Weights{
	Popularity: []Tier{
		{Above: 1000, Points: 10},
		{Above: 500, Points: 8},
		{Above: 100, Points: 6},
		{Above: 50, Points: 4},
	},
	PopularityFloor: 2,
	Recency: []Band{
		{Below: 90, Points: 5},
		{Below: 180, Points: 3},
		{Below: 365, Points: 1},
	},
	KeywordPoints:  2,
	KeywordCap:     10,
	CrossSource:    3,
	TopicThreshold: 2,
	TopicPoints:    2,
	Foundation:     5,
}

// Components is the per-signal breakdown of a score.
type Components struct {
	Popularity  float64 `json:"popularity"`
	Recency     float64 `json:"recency"`
	Keywords    float64 `json:"keywords"`
	CrossSource float64 `json:"cross_source"`
	Topics      float64 `json:"topics"`
	Foundation  float64 `json:"foundation"`
	Total       float64 `json:"total"`
}

func (comp Components) String() string {
	return fmt.Sprintf("popularity=%v recency=%v keywords=%v cross-source=%v topics=%v foundation=%v total=%v",
		comp.Popularity, comp.Recency, comp.Keywords, comp.CrossSource, comp.Topics, comp.Foundation, comp.Total)
}

// Score computes the quality score of c with DefaultWeights.
func Score(c *domain.Candidate) float64 {
	return ScoreWith(DefaultWeights, c)
}

// ScoreWith computes the quality score of c with w.
func ScoreWith(w Weights, c *domain.Candidate) float64 {
	return BreakdownWith(w, c).Total
}

// Breakdown returns the DefaultWeights components of c's score.
func Breakdown(c *domain.Candidate) Components {
	return BreakdownWith(DefaultWeights, c)
}

func BreakdownWith(w Weights, c *domain.Candidate) Components {
	comp := Components{
		Popularity: w.popularity(c.Stars),
		Recency:    w.recency(c.DaysSinceUpdate),
		Keywords:   math.Min(w.KeywordPoints*float64(contains.Count(c.SearchText(), Keywords)), w.KeywordCap),
	}
	if c.HasSecondarySource {
		comp.CrossSource = w.CrossSource
	}
	if len(c.Topics) > w.TopicThreshold {
		comp.Topics = w.TopicPoints
	}
	if c.IsFoundation() {
		comp.Foundation = w.Foundation
	}
	comp.Total = round(comp.Popularity + comp.Recency + comp.Keywords + comp.CrossSource + comp.Topics + comp.Foundation)
	return comp
}

func (w Weights) popularity(stars *int) float64 {
	if stars == nil {
		return 0
	}
	for _, tier := range w.Popularity {
		if *stars > tier.Above {
			return tier.Points
		}
	}
	return w.PopularityFloor
}

func (w Weights) recency(days *int) float64 {
	if days == nil {
		return 0
	}
	for _, band := range w.Recency {
		if *days < band.Below {
			return band.Points
		}
	}
	return 0
}

func round(f float64) float64 {
	return math.Round(f*100) / 100
}

// ScoreAll sets QualityScore on every candidate which has not been scored
// yet.  Already scored candidates are left untouched and counted in the
// returned value.
func ScoreAll(candidates []*domain.Candidate) (skipped int) {
	for _, c := range candidates {
		if c.QualityScore != nil {
			skipped++
			continue
		}
		comp := Breakdown(c)
		c.QualityScore = domain.FloatPtr(comp.Total)
		log.WithField("candidate", c.Name).Debugf("Scored: %v", comp)
	}
	if skipped > 0 {
		log.WithField("skipped", skipped).Warn("Refused to rescore already scored candidates")
	}
	return
}
