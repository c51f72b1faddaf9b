package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/anandogs/mcp-analysis/renderer"
)

type getCmd struct {
	metric   string
	customer string
	project  string
	asJSON   bool
}

func (*getCmd) Name() string { return "get" }
func (*getCmd) Synopsis() string {
	return "compute a financial metric, overall or for a customer or project"
}
func (*getCmd) Usage() string {
	return `fin get -m <metric> [-c <customer>] [-p <project>] [-json]

  Computes a financial metric from the dataset. Without a customer or
  project, the metric is computed over the whole dataset. With a filter,
  one value per matching row is reported. Names are fuzzy matched.

Usage Examples:
# Overall revenue.
$ fin get -m revenue

# Gross margin of the rows of a customer (fuzzy matched).
$ fin get -m gross_margin -c acme

`
}

func (c *getCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.metric, "m", "revenue", "Metric to compute (revenue, gross_margin, ebitda).")
	f.StringVar(&c.customer, "c", "", "Customer to filter on. Fuzzy matched.")
	f.StringVar(&c.project, "p", "", "Project to filter on. Fuzzy matched.")
	f.BoolVar(&c.asJSON, "json", false, "Print the raw JSON report instead of markdown.")
}

func (c *getCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := NewAnalyst()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	report, err := a.GetData(c.metric, c.customer, c.project)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.asJSON {
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(b))
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.ReportMarkdown(report, ReportingCurrency()))
	return subcommands.ExitSuccess
}
