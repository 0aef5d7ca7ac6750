package unique

import (
	"sort"
)

// Strings returns the unique subset of the string slice provided, preserving
// first-occurrence order.
func Strings(input []string) []string {
	return StringsFunc(input, nil)
}

// StringsFunc returns the unique subset of input where uniqueness is decided
// by keyFn.  The first-seen spelling of each key is retained.  A nil keyFn
// compares values verbatim.
func StringsFunc(input []string, keyFn func(string) string) []string {
	u := make([]string, 0, len(input))
	m := map[string]struct{}{}
	for _, val := range input {
		k := val
		if keyFn != nil {
			k = keyFn(val)
		}
		if _, ok := m[k]; !ok {
			m[k] = struct{}{}
			u = append(u, val)
		}
	}
	return u
}

// StringsSorted sorts the result before returning it.
func StringsSorted(input []string) []string {
	u := Strings(input)
	sort.Strings(u)
	return u
}

// Set returns the distinct members of input as a set.
func Set(input []string) map[string]struct{} {
	m := make(map[string]struct{}, len(input))
	for _, val := range input {
		m[val] = struct{}{}
	}
	return m
}
