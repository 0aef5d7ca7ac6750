package domain

import (
	"strings"
)

// Three name normalization variants are in use and they intentionally differ:
//
//   - NormalizeDedupe is the strict identity key applied by the final
//     deduplication pass.  Only case is folded so "open-babel" and
//     "open_babel" remain distinct.
//   - NormalizeSeed is the loose key used when deciding whether a seed
//     package is already known.  Separators are dropped so "rdkit-pypi" is
//     not re-added next to "rdkit_pypi".
//   - NormalizeValidation is the seed rule plus space removal, used when
//     comparing a run against the reference list.

var (
	seedReplacer       = strings.NewReplacer("-", "", "_", "")
	validationReplacer = strings.NewReplacer("-", "", "_", "", " ", "")
)

// NormalizeDedupe returns the deduplication identity key for a name.
func NormalizeDedupe(name string) string {
	return strings.ToLower(name)
}

// NormalizeSeed returns the seed comparison key for a name.
func NormalizeSeed(name string) string {
	return seedReplacer.Replace(strings.ToLower(name))
}

// NormalizeValidation returns the validation comparison key for a name.
func NormalizeValidation(name string) string {
	return validationReplacer.Replace(strings.ToLower(name))
}

// IndexNameGuess converts a code-host repository name into the most likely
// package index name.
func IndexNameGuess(name string) string {
	return strings.Replace(strings.ToLower(name), "_", "-", -1)
}
