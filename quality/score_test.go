package quality

import (
	"testing"

	"github.com/vbagdi/ResearchCode/domain"
)

func TestScoreComponents(t *testing.T) {
	testCases := []struct {
		candidate *domain.Candidate
		expected  Components
	}{
		{
			candidate: &domain.Candidate{Name: "unknown"},
			expected:  Components{},
		},
		{
			candidate: &domain.Candidate{
				Name:               "rdkit",
				Origin:             domain.OriginCodeHost,
				Description:        domain.StringPtr("Cheminformatics and molecular toolkit for drug discovery"),
				Stars:              domain.IntPtr(2500),
				DaysSinceUpdate:    domain.IntPtr(3),
				Topics:             []string{"cheminformatics", "chemistry", "rdkit"},
				HasSecondarySource: true,
			},
			// chem, drug, rdkit, molecular.
			expected: Components{Popularity: 10, Recency: 5, Keywords: 8, CrossSource: 3, Topics: 2, Total: 28},
		},
		{
			candidate: &domain.Candidate{
				Name:               "mordred",
				Origin:             domain.OriginPackageIndex,
				Description:        domain.StringPtr("molecular descriptor calculator"),
				Stars:              domain.IntPtr(0),
				DaysSinceUpdate:    domain.IntPtr(30),
				Topics:             []string{domain.FoundationTopic},
				HasSecondarySource: true,
			},
			expected: Components{Popularity: 2, Recency: 5, Keywords: 4, CrossSource: 3, Foundation: 5, Total: 19},
		},
		{
			candidate: &domain.Candidate{
				Name:            "chem-everything",
				Description:     domain.StringPtr("molecule drug compound smiles protein docking descriptor pharma"),
				Stars:           domain.IntPtr(51),
				DaysSinceUpdate: domain.IntPtr(400),
				Topics:          []string{"a", "b"},
			},
			expected: Components{Popularity: 4, Recency: 0, Keywords: 10, Total: 14},
		},
	}

	for i, testCase := range testCases {
		if expected, actual := testCase.expected, Breakdown(testCase.candidate); actual != expected {
			t.Errorf("[i=%v] Expected components=%v but actual=%v", i, expected, actual)
		}
		if expected, actual := testCase.expected.Total, Score(testCase.candidate); actual != expected {
			t.Errorf("[i=%v] Expected score=%v but actual=%v", i, expected, actual)
		}
	}
}

func TestScoreTiers(t *testing.T) {
	testCases := []struct {
		stars    int
		expected float64
	}{
		{0, 2},
		{50, 2},
		{51, 4},
		{100, 4},
		{101, 6},
		{500, 6},
		{501, 8},
		{1000, 8},
		{1001, 10},
	}
	for _, testCase := range testCases {
		c := &domain.Candidate{Stars: domain.IntPtr(testCase.stars)}
		if expected, actual := testCase.expected, Breakdown(c).Popularity; actual != expected {
			t.Errorf("[stars=%v] Expected popularity=%v but actual=%v", testCase.stars, expected, actual)
		}
	}

	bands := []struct {
		days     int
		expected float64
	}{
		{0, 5},
		{89, 5},
		{90, 3},
		{179, 3},
		{180, 1},
		{364, 1},
		{365, 0},
	}
	for _, band := range bands {
		c := &domain.Candidate{DaysSinceUpdate: domain.IntPtr(band.days)}
		if expected, actual := band.expected, Breakdown(c).Recency; actual != expected {
			t.Errorf("[days=%v] Expected recency=%v but actual=%v", band.days, expected, actual)
		}
	}
}

func TestScoreMonotonic(t *testing.T) {
	prev := -1.0
	for stars := 0; stars <= 2000; stars++ {
		got := Breakdown(&domain.Candidate{Stars: domain.IntPtr(stars)}).Popularity
		if got < prev {
			t.Fatalf("Popularity decreased at stars=%v: %v < %v", stars, got, prev)
		}
		prev = got
	}

	prev = -1.0
	for days := 1000; days >= 0; days-- {
		got := Breakdown(&domain.Candidate{DaysSinceUpdate: domain.IntPtr(days)}).Recency
		if got < prev {
			t.Fatalf("Recency decreased at days=%v: %v < %v", days, got, prev)
		}
		prev = got
	}
}

func TestScoreDeterministic(t *testing.T) {
	c := &domain.Candidate{
		Name:        "dockstring",
		Description: domain.StringPtr("docking benchmark for drug discovery"),
		Stars:       domain.IntPtr(120),
		Topics:      []string{"a", "b", "c"},
	}
	if first, second := Score(c), Score(c); first != second {
		t.Errorf("Expected identical scores but got %v and %v", first, second)
	}
}

func TestScoreAll(t *testing.T) {
	preset := domain.FloatPtr(99)
	cs := []*domain.Candidate{
		{Name: "a", Stars: domain.IntPtr(2000)},
		{Name: "b", QualityScore: preset},
	}
	if expected, actual := 1, ScoreAll(cs); actual != expected {
		t.Errorf("Expected skipped=%v but actual=%v", expected, actual)
	}
	if expected, actual := 10.0, cs[0].Score(); actual != expected {
		t.Errorf("Expected score=%v but actual=%v", expected, actual)
	}
	if expected, actual := 99.0, cs[1].Score(); actual != expected {
		t.Errorf("Expected preset score to be kept=%v but actual=%v", expected, actual)
	}
}

func TestScoreWithCustomWeights(t *testing.T) {
	w := DefaultWeights
	w.CrossSource = 0.5
	c := &domain.Candidate{HasSecondarySource: true}
	if expected, actual := 0.5, ScoreWith(w, c); actual != expected {
		t.Errorf("Expected score=%v but actual=%v", expected, actual)
	}
}
