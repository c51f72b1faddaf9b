// Package renderer renders query results to markdown, for the CLI to print.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	analyst "github.com/anandogs/mcp-analysis"
)

// metricTitle returns the human title of a metric.
func metricTitle(m analyst.Metric) string {
	switch m {
	case analyst.Revenue:
		return "Revenue"
	case analyst.GrossMargin:
		return "Gross Margin"
	case analyst.EBITDA:
		return "EBITDA"
	}
	return m.String()
}

// dimTitle returns the human title of a dimension.
func dimTitle(d analyst.Dimension) string {
	if d == analyst.Project {
		return "Project"
	}
	return "Customer"
}

// ReportMarkdown renders a metric report to a markdown table, one row per
// value in the series, with amounts in the given reporting currency.
func ReportMarkdown(r *analyst.Report, currency string) string {
	var b strings.Builder

	title := metricTitle(r.Metric)
	switch {
	case r.Customer != "" && r.Project != "":
		fmt.Fprintf(&b, "# %s for %s / %s\n\n", title, r.Customer, r.Project)
	case r.Customer != "":
		fmt.Fprintf(&b, "# %s for customer %s\n\n", title, r.Customer)
	case r.Project != "":
		fmt.Fprintf(&b, "# %s for project %s\n\n", title, r.Project)
	default:
		fmt.Fprintf(&b, "# Overall %s\n\n", title)
	}

	if len(r.Values) == 0 {
		fmt.Fprintln(&b, "No matching rows.")
		return b.String()
	}

	fmt.Fprintf(&b, "| # | %s | %% of Revenue |\n", title)
	fmt.Fprintln(&b, "|:---|---:|---:|")
	total := analyst.M(decimal.Zero, currency)
	for i, v := range r.Values {
		value := analyst.M(v, currency)
		total = total.Add(value)
		fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, value, r.Percentages[i])
	}
	if len(r.Values) > 1 {
		fmt.Fprintf(&b, "| **Total** | **%s** | |\n", total)
	}

	return b.String()
}

// CompareMarkdown renders a ranked comparison to a markdown table, one row
// per entity, one column pair per metric.
func CompareMarkdown(c analyst.Comparison, dim analyst.Dimension, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Performance by %s\n\n", dim)
	if len(c) == 0 {
		fmt.Fprintln(&b, "No entities to compare.")
		return b.String()
	}

	// All entries carry the same metrics in the same order.
	metrics := make([]analyst.Metric, 0, len(c[0].Metrics))
	fmt.Fprintf(&b, "| %s ", dimTitle(dim))
	for _, p := range c[0].Metrics {
		metrics = append(metrics, p.Metric)
		fmt.Fprintf(&b, "| %s | %%Rev ", metricTitle(p.Metric))
	}
	fmt.Fprintln(&b, "|")
	fmt.Fprint(&b, "|:---")
	for range metrics {
		fmt.Fprint(&b, "|---:|---:")
	}
	fmt.Fprintln(&b, "|")

	for _, e := range c {
		name := e.Name
		if name == analyst.OverallKey {
			name = "**" + name + "**"
		}
		fmt.Fprintf(&b, "| %s ", name)
		for _, m := range metrics {
			p, _ := e.Metric(m)
			fmt.Fprintf(&b, "| %s | %s ", analyst.M(p.Value, currency), p.Percentage)
		}
		fmt.Fprintln(&b, "|")
	}

	return b.String()
}

// NamesMarkdown renders a sorted name listing as a markdown bullet list.
func NamesMarkdown(title string, names []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(names) == 0 {
		fmt.Fprintln(&b, "None.")
		return b.String()
	}
	for _, n := range names {
		fmt.Fprintf(&b, "- %s\n", n)
	}
	return b.String()
}

// EntitiesMarkdown renders the full entity directory: customer and project
// listings, then the relationships between them.
func EntitiesMarkdown(x *analyst.CrossReference) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Entity Directory\n\n")
	fmt.Fprintf(&b, "%d customers, %d projects.\n\n", len(x.Customers), len(x.Projects))

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Customers\n\n")
		fmt.Fprintln(w, "| Customer | Projects |")
		fmt.Fprintln(w, "|:---|:---|")
		for _, customer := range x.Customers {
			fmt.Fprintf(w, "| %s | %s |\n", customer, strings.Join(x.CustomerProjects[customer], ", "))
		}
		fmt.Fprintln(w)
		return len(x.Customers) > 0
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Projects\n\n")
		fmt.Fprintln(w, "| Project | Customers |")
		fmt.Fprintln(w, "|:---|:---|")
		for _, project := range x.Projects {
			fmt.Fprintf(w, "| %s | %s |\n", project, strings.Join(x.ProjectCustomers[project], ", "))
		}
		return len(x.Projects) > 0
	})

	return b.String()
}
