package analyst

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMetric(t *testing.T) {
	testCases := []struct {
		in      string
		want    Metric
		wantErr bool
	}{
		{in: "revenue", want: Revenue},
		{in: "gross_margin", want: GrossMargin},
		{in: "ebitda", want: EBITDA},
		{in: "profit", wantErr: true},
		{in: "Revenue", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseMetric(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseMetric(%q): want error, got %v", tc.in, got)
				continue
			}
			var unknown *UnknownMetricError
			if !errors.As(err, &unknown) {
				t.Errorf("ParseMetric(%q): error %T, want *UnknownMetricError", tc.in, err)
			}
			// The message must list the valid options.
			for _, name := range MetricNames() {
				if !strings.Contains(err.Error(), name) {
					t.Errorf("ParseMetric(%q): error %q does not list %q", tc.in, err, name)
				}
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMetric(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMetric(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseMetrics_DefaultsToAll(t *testing.T) {
	got, err := ParseMetrics(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got[0] != Revenue || got[1] != GrossMargin || got[2] != EBITDA {
		t.Errorf("ParseMetrics(nil) = %v, want all three metrics in order", got)
	}
}

func TestParseMetrics_FailFast(t *testing.T) {
	_, err := ParseMetrics([]string{"revenue", "margin"})
	var unknown *UnknownMetricError
	if !errors.As(err, &unknown) {
		t.Fatalf("error %T, want *UnknownMetricError", err)
	}
	if unknown.Name != "margin" {
		t.Errorf("unknown metric name = %q, want %q", unknown.Name, "margin")
	}
}

func TestMetric_Eval(t *testing.T) {
	totals := Totals{Revenue: d(300), COGS: d(120), OPEX: d(30)}

	testCases := []struct {
		metric Metric
		want   decimal.Decimal
	}{
		{metric: Revenue, want: d(300)},
		{metric: GrossMargin, want: d(180)},
		{metric: EBITDA, want: d(150)},
	}
	for _, tc := range testCases {
		if got := tc.metric.Eval(totals); !got.Equal(tc.want) {
			t.Errorf("%s.Eval = %s, want %s", tc.metric, got, tc.want)
		}
	}
}

// Summing a metric row by row over a set of records equals evaluating the
// metric once on the pre-summed totals.
func TestMetric_AggregateConsistency(t *testing.T) {
	l := testLedger()
	for _, m := range AllMetrics() {
		var rowSum decimal.Decimal
		for _, r := range l.Records() {
			rowSum = rowSum.Add(m.EvalRecord(r))
		}
		onTotals := m.Eval(l.Totals())
		if !rowSum.Equal(onTotals) {
			t.Errorf("%s: row-wise sum %s != metric on totals %s", m, rowSum, onTotals)
		}
	}
}

func TestMetric_PercentageOf(t *testing.T) {
	testCases := []struct {
		name     string
		metric   Metric
		value    decimal.Decimal
		revenue  decimal.Decimal
		want     Percent
	}{
		{name: "revenue is always 100%", metric: Revenue, value: d(300), revenue: d(300), want: 1.0},
		{name: "revenue stays 100% on zero revenue", metric: Revenue, value: d(0), revenue: d(0), want: 1.0},
		{name: "gross margin ratio", metric: GrossMargin, value: d(180), revenue: d(300), want: 0.6},
		{name: "ebitda ratio", metric: EBITDA, value: d(150), revenue: d(300), want: 0.5},
		{name: "zero revenue guards to 0", metric: GrossMargin, value: d(-10), revenue: d(0), want: 0},
		{name: "negative revenue guards to 0", metric: EBITDA, value: d(-10), revenue: d(-5), want: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.metric.PercentageOf(tc.value, tc.revenue)
			if !got.Equal(tc.want) {
				t.Errorf("PercentageOf(%s, %s) = %v, want %v", tc.value, tc.revenue, got, tc.want)
			}
		})
	}
}

func TestPercent_String(t *testing.T) {
	if got := Percent(0.6).String(); got != "60.00%" {
		t.Errorf("Percent(0.6) = %q, want %q", got, "60.00%")
	}
	if got := Percent(1).String(); got != "100.00%" {
		t.Errorf("Percent(1) = %q, want %q", got, "100.00%")
	}
}
