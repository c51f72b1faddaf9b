package analyst

import (
	"sort"

	"github.com/shopspring/decimal"
)

// OverallKey is the key of the synthetic comparison entry computed over the
// unfiltered ledger. It is always present, regardless of top-N truncation.
const OverallKey = "OVERALL"

// MetricPerformance is one metric computed on a group's totals: the absolute
// value and its fraction of the group's revenue.
type MetricPerformance struct {
	Metric     Metric
	Value      decimal.Decimal
	Percentage Percent
}

// EntityPerformance holds the computed metrics of a single entity, in the
// order they were requested.
type EntityPerformance struct {
	Name    string
	Metrics []MetricPerformance
}

// Metric returns the performance of a given metric, if present.
func (e EntityPerformance) Metric(m Metric) (MetricPerformance, bool) {
	for _, p := range e.Metrics {
		if p.Metric == m {
			return p, true
		}
	}
	return MetricPerformance{}, false
}

// Comparison is an ordered list of entity performances: entities sorted by
// total revenue descending, then the OVERALL entry. It marshals to a JSON
// object whose keys keep that order.
type Comparison []EntityPerformance

// Entity returns the performance entry for a given name, if present.
func (c Comparison) Entity(name string) (EntityPerformance, bool) {
	for _, e := range c {
		if e.Name == name {
			return e, true
		}
	}
	return EntityPerformance{}, false
}

func (p MetricPerformance) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("value", p.Value)
	w.Append("percentage", p.Percentage)
	return w.MarshalJSON()
}

func (e EntityPerformance) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for _, p := range e.Metrics {
		w.Append(p.Metric.String(), p)
	}
	return w.MarshalJSON()
}

func (c Comparison) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for _, e := range c {
		w.Append(e.Name, e)
	}
	return w.MarshalJSON()
}

// perform evaluates the requested metrics on pre-summed totals.
func perform(t Totals, metrics []Metric) []MetricPerformance {
	result := make([]MetricPerformance, 0, len(metrics))
	for _, m := range metrics {
		value := m.Eval(t)
		result = append(result, MetricPerformance{
			Metric:     m,
			Value:      value,
			Percentage: m.PercentageOf(value, t.Revenue),
		})
	}
	return result
}

// CompareLedger groups the ledger by the given dimension, evaluates the
// requested metrics on each group's totals, and ranks groups by total
// revenue, descending. Ties keep the group's first-appearance order.
//
// A positive topN truncates the ranking after sorting; the OVERALL entry,
// computed over the full ledger, is appended afterwards and never counts
// against topN. Metrics must already be validated (see ParseMetrics).
func CompareLedger(l *Ledger, dim Dimension, metrics []Metric, topN int) Comparison {
	order, groups := l.GroupTotals(dim)

	sort.SliceStable(order, func(i, j int) bool {
		return groups[order[i]].Revenue.Cmp(groups[order[j]].Revenue) > 0
	})

	if topN > 0 && topN < len(order) {
		order = order[:topN]
	}

	comparison := make(Comparison, 0, len(order)+1)
	for _, name := range order {
		comparison = append(comparison, EntityPerformance{
			Name:    name,
			Metrics: perform(groups[name], metrics),
		})
	}
	comparison = append(comparison, EntityPerformance{
		Name:    OverallKey,
		Metrics: perform(l.Totals(), metrics),
	})
	return comparison
}
