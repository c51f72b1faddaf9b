package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"github.com/anandogs/mcp-analysis/mcpserver"
)

type serveCmd struct {
	envFile string
}

func (*serveCmd) Name() string { return "serve" }
func (*serveCmd) Synopsis() string {
	return "serve the dataset to MCP clients over stdio"
}
func (*serveCmd) Usage() string {
	return `fin serve [-env <env_file>]

  Starts a Model Context Protocol server on stdin/stdout, exposing the
  query tools, the entity directory resources and the analysis prompts
  to MCP clients such as desktop AI assistants.

Usage Examples:
# Serve the configured dataset.
$ fin -dataset data.csv serve

`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.envFile, "env", ".env", "Environment file to load before serving.")
}

func (c *serveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// Best effort: a missing env file is fine.
	godotenv.Load(c.envFile)

	a, err := NewAnalyst()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := mcpserver.New(a).ServeStdio(); err != nil {
		fmt.Fprintln(os.Stderr, "Server failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
