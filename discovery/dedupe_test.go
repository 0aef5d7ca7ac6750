package discovery

import (
	"reflect"
	"testing"

	"github.com/vbagdi/ResearchCode/domain"
)

func TestDedupe(t *testing.T) {
	testCases := []struct {
		input    []string
		expected []string
	}{
		{
			input:    []string{},
			expected: []string{},
		},
		{
			input:    []string{"RDKit", "rdkit", "mordred", "RDKIT"},
			expected: []string{"RDKit", "mordred"},
		},
		{
			input:    []string{"open-babel", "open_babel", "Open-Babel"},
			expected: []string{"open-babel", "open_babel"},
		},
	}

	for i, testCase := range testCases {
		cs := make([]*domain.Candidate, len(testCase.input))
		for j, name := range testCase.input {
			cs[j] = &domain.Candidate{Name: name}
		}
		if expected, actual := testCase.expected, names(Dedupe(cs)); !reflect.DeepEqual(actual, expected) {
			t.Errorf("[i=%v] Expected result=%v but actual=%v", i, expected, actual)
		}
	}
}

func TestDedupeIdempotent(t *testing.T) {
	cs := []*domain.Candidate{{Name: "A"}, {Name: "b"}, {Name: "a"}, {Name: "B"}, {Name: "c"}}
	once := Dedupe(cs)
	twice := Dedupe(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Expected dedupe to be idempotent: once=%v twice=%v", names(once), names(twice))
	}
}
