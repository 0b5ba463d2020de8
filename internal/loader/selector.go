package loader

import "strings"

// Selector is a predicate over qualified type names. The zero value (empty
// expected name) matches any candidate.
type Selector struct {
	// Expected is the type name to match, either fully qualified
	// ("examples.Momentum") or unqualified ("Momentum").
	Expected string
}

// SelectAny returns a selector that matches every candidate.
func SelectAny() Selector {
	return Selector{}
}

// SelectName returns a selector matching the given type name.
func SelectName(name string) Selector {
	return Selector{Expected: name}
}

// Matches reports whether a candidate's qualified name satisfies the
// selector: an empty expected name matches unconditionally; otherwise the
// qualified name must equal the expected name, or its unqualified part (the
// substring after the last '.') must.
func (s Selector) Matches(qualified string) bool {
	if s.Expected == "" {
		return true
	}
	if qualified == s.Expected {
		return true
	}
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:] == s.Expected
	}
	return false
}
