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

type entitiesCmd struct {
	asJSON bool
}

func (*entitiesCmd) Name() string { return "entities" }
func (*entitiesCmd) Synopsis() string {
	return "list all customers and projects and their relationships"
}
func (*entitiesCmd) Usage() string {
	return `fin entities [-json]

  Lists every customer and project in the dataset, and which projects
  appear in each customer's rows and vice versa.

`
}

func (c *entitiesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "Print the raw JSON directory instead of markdown.")
}

func (c *entitiesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := NewAnalyst()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	x, err := a.Entities()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.asJSON {
		b, err := json.MarshalIndent(x, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(b))
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.EntitiesMarkdown(x))
	return subcommands.ExitSuccess
}
