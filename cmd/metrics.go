package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	analyst "github.com/anandogs/mcp-analysis"
	"github.com/anandogs/mcp-analysis/renderer"
)

type metricsCmd struct{}

func (*metricsCmd) Name() string     { return "metrics" }
func (*metricsCmd) Synopsis() string { return "list the available metrics" }
func (*metricsCmd) Usage() string {
	return `fin metrics

  Lists the financial metrics that can be computed.

`
}

func (*metricsCmd) SetFlags(f *flag.FlagSet) {}

func (*metricsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	printMarkdown(renderer.NamesMarkdown("Available Metrics", analyst.MetricNames()))
	return subcommands.ExitSuccess
}
