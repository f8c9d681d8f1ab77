package filter

import (
	"fmt"
	"sort"
	"strings"
)

// Constraints maps a document attribute name to the value it must equal.
// Blank values mean "no constraint".
type Constraints map[string]string

// Condition is a single equality clause on a document-level attribute.
type Condition struct {
	key   string
	match string
}

// NewMatch creates an exact match condition.
func NewMatch(key, match string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if strings.TrimSpace(match) == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{key: key, match: match}, nil
}

// Key returns the attribute name.
func (c Condition) Key() string { return c.key }

// Match returns the exact match value.
func (c Condition) Match() string { return c.match }

// String renders the clause as doc.<Key> = '<Match>'.
// Quotes inside the value are not escaped.
func (c Condition) String() string {
	return "doc." + c.key + " = '" + c.match + "'"
}

// Expression is a conjunction of conditions kept in key order.
type Expression struct {
	must []Condition
}

// FromConstraints builds the canonical expression: blank values dropped, keys sorted.
func FromConstraints(c Constraints) Expression {
	keys := make([]string, 0, len(c))
	for k, v := range c {
		if k == "" || strings.TrimSpace(v) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	must := make([]Condition, 0, len(keys))
	for _, k := range keys {
		must = append(must, Condition{key: k, match: c[k]})
	}
	return Expression{must: must}
}

// Must returns the conditions in canonical order.
func (e Expression) Must() []Condition { return e.must }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool { return len(e.must) == 0 }

// String renders the metadata filter: "" for no conditions, the bare clause
// for one, and ((c1) and (c2) ...) otherwise.
func (e Expression) String() string {
	switch len(e.must) {
	case 0:
		return ""
	case 1:
		return e.must[0].String()
	}
	clauses := make([]string, len(e.must))
	for i, c := range e.must {
		clauses[i] = c.String()
	}
	return "((" + strings.Join(clauses, ") and (") + "))"
}

// Build returns the canonical metadata filter string for the constraints.
func Build(c Constraints) string {
	return FromConstraints(c).String()
}

// HasUnsafeValue reports whether any present value contains a single quote,
// which produces a malformed filter.
func HasUnsafeValue(c Constraints) bool {
	for _, v := range c {
		if strings.Contains(v, "'") {
			return true
		}
	}
	return false
}
