package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/anandogs/mcp-analysis/renderer"
)

type customersCmd struct {
	project string
}

func (*customersCmd) Name() string { return "customers" }
func (*customersCmd) Synopsis() string {
	return "list customers, optionally those of a given project"
}
func (*customersCmd) Usage() string {
	return `fin customers [-p <project>]

  Lists all customers in the dataset, sorted. With -p, lists only the
  customers appearing in the given project's rows (fuzzy matched).

`
}

func (c *customersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.project, "p", "", "Project whose customers to list. Fuzzy matched.")
}

func (c *customersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := NewAnalyst()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var names []string
	title := "Customers"
	if c.project != "" {
		names, err = a.ProjectCustomers(c.project)
		title = fmt.Sprintf("Customers of %s", c.project)
	} else {
		names, err = a.Customers()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.NamesMarkdown(title, names))
	return subcommands.ExitSuccess
}
