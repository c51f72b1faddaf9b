package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	analyst "github.com/anandogs/mcp-analysis"
	"github.com/anandogs/mcp-analysis/renderer"
)

type compareCmd struct {
	dimension string
	metrics   string
	topN      int
	asJSON    bool
}

func (*compareCmd) Name() string { return "compare" }
func (*compareCmd) Synopsis() string {
	return "compare performance across customers or projects, ranked by revenue"
}
func (*compareCmd) Usage() string {
	return `fin compare [-d <dimension>] [-m <metrics>] [-n <top_n>] [-json]

  Groups the dataset by customer or by project, computes the requested
  metrics for each group, and ranks groups by total revenue. An OVERALL
  entry computed over the whole dataset is always included.

Usage Examples:
# All customers, all metrics.
$ fin compare

# Top 5 projects by revenue, ebitda only.
$ fin compare -d project -m ebitda -n 5

`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dimension, "d", "customer", "Dimension to group by (customer, project).")
	f.StringVar(&c.metrics, "m", "", "Comma-separated metrics to compare. All by default.")
	f.IntVar(&c.topN, "n", 0, "Keep only the top N entities by revenue. 0 keeps all.")
	f.BoolVar(&c.asJSON, "json", false, "Print the raw JSON comparison instead of markdown.")
}

func (c *compareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := NewAnalyst()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var metrics []string
	if c.metrics != "" {
		for _, m := range strings.Split(c.metrics, ",") {
			metrics = append(metrics, strings.TrimSpace(m))
		}
	}

	comparison, err := a.Compare(c.dimension, metrics, c.topN)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.asJSON {
		b, err := json.MarshalIndent(comparison, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(b))
		return subcommands.ExitSuccess
	}

	// dimension already validated by Compare
	dim, _ := analyst.ParseDimension(c.dimension)
	printMarkdown(renderer.CompareMarkdown(comparison, dim, ReportingCurrency()))
	return subcommands.ExitSuccess
}
