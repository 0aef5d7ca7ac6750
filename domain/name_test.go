package domain

import (
	"testing"
)

func TestNormalizeVariants(t *testing.T) {
	testCases := []struct {
		input      string
		dedupe     string
		seed       string
		validation string
		indexGuess string
	}{
		{
			input:      "RDKit",
			dedupe:     "rdkit",
			seed:       "rdkit",
			validation: "rdkit",
			indexGuess: "rdkit",
		},
		{
			input:      "open_babel",
			dedupe:     "open_babel",
			seed:       "openbabel",
			validation: "openbabel",
			indexGuess: "open-babel",
		},
		{
			input:      "pymol-open-source",
			dedupe:     "pymol-open-source",
			seed:       "pymolopensource",
			validation: "pymolopensource",
			indexGuess: "pymol-open-source",
		},
		{
			input:      "Open Babel",
			dedupe:     "open babel",
			seed:       "open babel",
			validation: "openbabel",
			indexGuess: "open babel",
		},
		{
			input: "",
		},
	}
	for i, testCase := range testCases {
		if expected, actual := testCase.dedupe, NormalizeDedupe(testCase.input); actual != expected {
			t.Errorf("[i=%v] Expected NormalizeDedupe=%q but actual=%q", i, expected, actual)
		}
		if expected, actual := testCase.seed, NormalizeSeed(testCase.input); actual != expected {
			t.Errorf("[i=%v] Expected NormalizeSeed=%q but actual=%q", i, expected, actual)
		}
		if expected, actual := testCase.validation, NormalizeValidation(testCase.input); actual != expected {
			t.Errorf("[i=%v] Expected NormalizeValidation=%q but actual=%q", i, expected, actual)
		}
		if expected, actual := testCase.indexGuess, IndexNameGuess(testCase.input); actual != expected {
			t.Errorf("[i=%v] Expected IndexNameGuess=%q but actual=%q", i, expected, actual)
		}
	}
}
