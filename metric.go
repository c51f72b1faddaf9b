package analyst

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Metric is one of the closed enumeration of financial metrics the engine
// can compute. Each metric is an arithmetic expression over the Revenue,
// COGS and OPEX columns.
type Metric int

const (
	// Revenue is the sum of the Revenue column.
	Revenue Metric = iota
	// GrossMargin is Revenue - COGS.
	GrossMargin
	// EBITDA is Revenue - COGS - OPEX.
	EBITDA
)

func (m Metric) String() string {
	switch m {
	case Revenue:
		return "revenue"
	case GrossMargin:
		return "gross_margin"
	case EBITDA:
		return "ebitda"
	default:
		return "unknown"
	}
}

// AllMetrics returns the closed enumeration of metrics, in canonical order.
func AllMetrics() []Metric {
	return []Metric{Revenue, GrossMargin, EBITDA}
}

// ParseMetric parses a metric name, case-insensitively, into a Metric.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "revenue":
		return Revenue, nil
	case "gross_margin":
		return GrossMargin, nil
	case "ebitda":
		return EBITDA, nil
	default:
		return 0, &UnknownMetricError{Name: s}
	}
}

// ParseMetrics parses a list of metric names. An empty list defaults to all
// three metrics. The first invalid name fails the whole call, before any
// aggregation work begins.
func ParseMetrics(names []string) ([]Metric, error) {
	if len(names) == 0 {
		return AllMetrics(), nil
	}
	metrics := make([]Metric, 0, len(names))
	for _, name := range names {
		m, err := ParseMetric(name)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}

// Eval evaluates the metric expression on pre-summed totals.
func (m Metric) Eval(t Totals) decimal.Decimal {
	switch m {
	case Revenue:
		return t.Revenue
	case GrossMargin:
		return t.Revenue.Sub(t.COGS)
	case EBITDA:
		return t.Revenue.Sub(t.COGS).Sub(t.OPEX)
	default:
		return decimal.Zero
	}
}

// EvalRecord evaluates the metric expression on a single record.
func (m Metric) EvalRecord(r Record) decimal.Decimal {
	return m.Eval(Totals{Revenue: r.Revenue, COGS: r.COGS, OPEX: r.OPEX})
}

// PercentageOf returns the metric value as a fraction of revenue.
//
// Policy choices, not mathematical identities: revenue's percentage is
// always 1.0, and any other metric's percentage is 0 when revenue is not
// strictly positive. The zero-revenue guard applies at every granularity,
// per-row included.
func (m Metric) PercentageOf(value, revenue decimal.Decimal) Percent {
	if m == Revenue {
		return 1.0
	}
	if revenue.Sign() <= 0 {
		return 0
	}
	return Percent(value.Div(revenue).InexactFloat64())
}
