package purge

import (
	"fmt"
	"strings"
)

// Clause matches rows whose Column equals one of Values.
type Clause struct {
	Column string
	Values []string
}

// Predicate is a disjunction of clauses. A row matches when any clause matches.
type Predicate struct {
	Clauses []Clause
}

// Eq matches rows where column = value.
func Eq(column, value string) Predicate {
	return Predicate{Clauses: []Clause{{Column: column, Values: []string{value}}}}
}

// In matches rows where column is one of values.
func In(column string, values []string) Predicate {
	vals := make([]string, len(values))
	copy(vals, values)
	return Predicate{Clauses: []Clause{{Column: column, Values: vals}}}
}

// Or joins the clauses of all predicates.
func Or(preds ...Predicate) Predicate {
	var out Predicate
	for _, p := range preds {
		out.Clauses = append(out.Clauses, p.Clauses...)
	}
	return out
}

// Empty reports whether the predicate can match no row at all.
func (p Predicate) Empty() bool {
	for _, c := range p.Clauses {
		if len(c.Values) > 0 {
			return false
		}
	}
	return true
}

func (p Predicate) String() string {
	parts := make([]string, 0, len(p.Clauses))
	for _, c := range p.Clauses {
		switch len(c.Values) {
		case 1:
			parts = append(parts, fmt.Sprintf("%s = %s", c.Column, c.Values[0]))
		default:
			parts = append(parts, fmt.Sprintf("%s IN (%d ids)", c.Column, len(c.Values)))
		}
	}
	return strings.Join(parts, " OR ")
}

// Batches splits p into predicates carrying at most size values each. A row
// matches p exactly when it matches at least one batch. Clause order is kept.
func (p Predicate) Batches(size int) []Predicate {
	if size <= 0 || p.size() <= size {
		return []Predicate{p}
	}

	var (
		batches []Predicate
		current Predicate
		used    int
	)
	for _, c := range p.Clauses {
		values := c.Values
		for len(values) > 0 {
			n := min(size-used, len(values))
			current.Clauses = append(current.Clauses, Clause{Column: c.Column, Values: values[:n:n]})
			values = values[n:]
			used += n
			if used == size {
				batches = append(batches, current)
				current, used = Predicate{}, 0
			}
		}
	}
	if used > 0 {
		batches = append(batches, current)
	}
	return batches
}

func (p Predicate) size() int {
	n := 0
	for _, c := range p.Clauses {
		n += len(c.Values)
	}
	return n
}
