package domain

import (
	"testing"
)

func TestCandidateIsFoundation(t *testing.T) {
	testCases := []struct {
		c        *Candidate
		expected bool
	}{
		{
			c:        &Candidate{Name: "rdkit", Origin: OriginPackageIndex, Topics: []string{FoundationTopic}},
			expected: true,
		},
		{
			c:        &Candidate{Name: "rdkit", Origin: OriginCodeHost, Topics: []string{FoundationTopic}},
			expected: false,
		},
		{
			c:        &Candidate{Name: "rdkit", Origin: OriginPackageIndex},
			expected: false,
		},
	}
	for i, testCase := range testCases {
		if expected, actual := testCase.expected, testCase.c.IsFoundation(); actual != expected {
			t.Errorf("[i=%v] Expected IsFoundation=%v but actual=%v", i, expected, actual)
		}
	}
}

func TestCandidateSearchText(t *testing.T) {
	c := &Candidate{Name: "DockIt"}
	if expected, actual := " dockit", c.SearchText(); actual != expected {
		t.Errorf("Expected search text=%q but actual=%q", expected, actual)
	}
	c.Description = StringPtr("Molecular DOCKING")
	if expected, actual := "molecular docking dockit", c.SearchText(); actual != expected {
		t.Errorf("Expected search text=%q but actual=%q", expected, actual)
	}
	if expected, actual := 0.0, c.Score(); actual != expected {
		t.Errorf("Expected unscored Score()=%v but actual=%v", expected, actual)
	}
}

func TestWorkflowsCounts(t *testing.T) {
	ws := Workflows{
		{Name: "a", Tools: []string{"x", "y"}},
		{Name: "b"},
	}
	counts := ws.Counts()
	if expected, actual := 2, counts["a"]; actual != expected {
		t.Errorf("Expected count[a]=%v but actual=%v", expected, actual)
	}
	if expected, actual := 0, counts["b"]; actual != expected {
		t.Errorf("Expected count[b]=%v but actual=%v", expected, actual)
	}
	if ws.Bucket("missing") != nil {
		t.Errorf("Expected nil bucket for unknown name")
	}
}
