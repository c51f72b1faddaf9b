package analyst

import (
	"fmt"
	"iter"
	"slices"

	"github.com/shopspring/decimal"
)

// Dimension selects the grouping column of the ledger: customers or projects.
type Dimension int

const (
	// Customer groups ledger records by customer name.
	Customer Dimension = iota
	// Project groups ledger records by project name.
	Project
)

func (d Dimension) String() string {
	switch d {
	case Customer:
		return "customer"
	case Project:
		return "project"
	default:
		return "unknown"
	}
}

// ParseDimension parses a string into a Dimension.
func ParseDimension(s string) (Dimension, error) {
	switch s {
	case "customer", "customers":
		return Customer, nil
	case "project", "projects":
		return Project, nil
	default:
		return 0, &InvalidDimensionError{Value: s}
	}
}

// Record is one row of the dataset: a transactional entry attributing
// revenue and costs to a customer and a project.
//
// Customer and Project are free-text identifiers, not necessarily
// normalized; many records per entity are expected. Monetary columns are
// additive across records and participate only through summation.
type Record struct {
	Customer string
	Project  string
	Revenue  decimal.Decimal
	COGS     decimal.Decimal
	OPEX     decimal.Decimal
}

// Name returns the record's value for the given dimension.
func (r Record) Name(dim Dimension) string {
	if dim == Customer {
		return r.Customer
	}
	return r.Project
}

// Totals holds column-wise sums over a set of records.
type Totals struct {
	Revenue decimal.Decimal
	COGS    decimal.Decimal
	OPEX    decimal.Decimal
}

// add accumulates one record into the totals.
func (t Totals) add(r Record) Totals {
	return Totals{
		Revenue: t.Revenue.Add(r.Revenue),
		COGS:    t.COGS.Add(r.COGS),
		OPEX:    t.OPEX.Add(r.OPEX),
	}
}

// Ledger is a flat, append-only list of records.
//
// Entities (customers and projects) have no storage of their own: they are
// virtual grouping keys over the ledger, alive only as long as the ledger
// is in memory.
type Ledger struct {
	records []Record
	name    string
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{records: make([]Record, 0)}
}

// Name returns the ledger's name, derived from its source file.
func (l *Ledger) Name() string { return l.name }

// Len returns the number of records in the ledger.
func (l *Ledger) Len() int { return len(l.records) }

// Append appends records to this ledger, preserving their order.
func (l *Ledger) Append(records ...Record) {
	l.records = append(l.records, records...)
}

// Records returns an iterator that yields each record in its original order.
// When filters are given, a record is yielded only if it passes all of them.
func (l *Ledger) Records(filters ...func(Record) bool) iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, r := range l.records {
			accept := true
			for _, filter := range filters {
				if !filter(r) {
					accept = false
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, r) {
				return
			}
		}
	}
}

// Filter returns a new ledger narrowed to the records passing all filters.
// The original ledger is left untouched.
func (l *Ledger) Filter(filters ...func(Record) bool) *Ledger {
	narrowed := &Ledger{name: l.name}
	for _, r := range l.Records(filters...) {
		narrowed.records = append(narrowed.records, r)
	}
	return narrowed
}

// ByName returns a predicate that filters records by their exact name in
// the given dimension.
func ByName(dim Dimension, name string) func(Record) bool {
	return func(r Record) bool { return r.Name(dim) == name }
}

// ByCustomer returns a predicate that filters records by exact customer name.
func ByCustomer(name string) func(Record) bool { return ByName(Customer, name) }

// ByProject returns a predicate that filters records by exact project name.
func ByProject(name string) func(Record) bool { return ByName(Project, name) }

// Names iterates over the distinct names of the given dimension, in order of
// first appearance in the ledger. This order is stable and reproducible: it
// is the tie-break order used by entity resolution.
func (l *Ledger) Names(dim Dimension) iter.Seq[string] {
	return func(yield func(string) bool) {
		visited := make(map[string]struct{})
		for _, r := range l.records {
			name := r.Name(dim)
			if _, ok := visited[name]; ok {
				continue
			}
			visited[name] = struct{}{}
			if !yield(name) {
				return
			}
		}
	}
}

// SortedNames returns the distinct names of the given dimension in
// lexicographic order.
func (l *Ledger) SortedNames(dim Dimension) []string {
	names := slices.Collect(l.Names(dim))
	slices.Sort(names)
	return names
}

// Totals computes the column-wise sums over all records of the ledger.
func (l *Ledger) Totals() Totals {
	t := Totals{Revenue: decimal.Zero, COGS: decimal.Zero, OPEX: decimal.Zero}
	for _, r := range l.records {
		t = t.add(r)
	}
	return t
}

// GroupTotals computes per-group column sums for the given dimension.
// Groups are returned in order of first appearance in the ledger.
func (l *Ledger) GroupTotals(dim Dimension) ([]string, map[string]Totals) {
	var order []string
	groups := make(map[string]Totals)
	for _, r := range l.records {
		name := r.Name(dim)
		t, ok := groups[name]
		if !ok {
			order = append(order, name)
			t = Totals{Revenue: decimal.Zero, COGS: decimal.Zero, OPEX: decimal.Zero}
		}
		groups[name] = t.add(r)
	}
	return order, groups
}

func (l *Ledger) String() string {
	return fmt.Sprintf("ledger %q (%d records)", l.name, len(l.records))
}
