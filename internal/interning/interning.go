// Package interning deduplicates low-cardinality strings such as hazard
// types, units and function names that repeat on every row of a table.
package interning

import "strings"

// Table hands out one shared instance per distinct string. The zero value is
// ready to use. A Table is not safe for concurrent use.
type Table struct {
	strings map[string]string
}

// Intern returns the shared instance of s.
func (t *Table) Intern(s string) string {
	if s == "" {
		return ""
	}
	if v, ok := t.strings[s]; ok {
		return v
	}
	if t.strings == nil {
		t.strings = make(map[string]string)
	}
	clone := strings.Clone(s)
	t.strings[clone] = clone
	return clone
}

// Len reports the number of distinct strings held.
func (t *Table) Len() int {
	return len(t.strings)
}
