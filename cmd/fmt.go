package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	analyst "github.com/anandogs/mcp-analysis"
)

type fmtCmd struct {
	outputFile string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the dataset into a canonical CSV form"
}
func (*fmtCmd) Usage() string {
	return `fin fmt [-o <output_file>]

  Validates and formats the dataset. This command reads all records,
  validates them, and writes them back as canonical CSV with the five
  standard columns. A .json dataset is converted to CSV in the process.
  By default, it writes to stdout. Use -o to write to a file.

Usage Examples:
# Print the canonical form of the configured dataset.
$ fin fmt

# Convert a JSON dataset to CSV.
$ fin -dataset records.json fmt -o records.csv

`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputFile, "o", "", "File to write the canonical CSV to. Stdout by default.")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := NewAnalyst()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	ledger, err := a.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load dataset: %v\n", err)
		return subcommands.ExitFailure
	}

	w := os.Stdout
	if c.outputFile != "" {
		w, err = os.Create(c.outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not create %q: %v\n", c.outputFile, err)
			return subcommands.ExitFailure
		}
		defer w.Close()
	}

	if err := analyst.EncodeLedger(w, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not write dataset: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.outputFile != "" {
		fmt.Fprintf(os.Stderr, "Successfully formatted %d records into %s\n", ledger.Len(), c.outputFile)
	}
	return subcommands.ExitSuccess
}
