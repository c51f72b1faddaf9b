package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/anandogs/mcp-analysis/renderer"
)

type projectsCmd struct {
	customer string
}

func (*projectsCmd) Name() string { return "projects" }
func (*projectsCmd) Synopsis() string {
	return "list projects, optionally those of a given customer"
}
func (*projectsCmd) Usage() string {
	return `fin projects [-c <customer>]

  Lists all projects in the dataset, sorted. With -c, lists only the
  projects appearing in the given customer's rows (fuzzy matched).

`
}

func (c *projectsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.customer, "c", "", "Customer whose projects to list. Fuzzy matched.")
}

func (c *projectsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := NewAnalyst()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var names []string
	title := "Projects"
	if c.customer != "" {
		names, err = a.CustomerProjects(c.customer)
		title = fmt.Sprintf("Projects of %s", c.customer)
	} else {
		names, err = a.Projects()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.NamesMarkdown(title, names))
	return subcommands.ExitSuccess
}
