// Package cmd implements the CLI application to query a financial dataset.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"gopkg.in/yaml.v3"

	analyst "github.com/anandogs/mcp-analysis"
)

// Commands lists all subcommands. A main package registers them on a
// commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&getCmd{},
	&compareCmd{},
	&customersCmd{},
	&projectsCmd{},
	&entitiesCmd{},
	&metricsCmd{},
	&fmtCmd{},
	&serveCmd{},
	&AssistCmd{},
	&topicCmd{},
}

// Register the subcommands.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var datasetFile = flag.String("dataset", "", "Path to the dataset file (.csv or .json). Overrides the config file.")
var configFile = flag.String("config", ".fin.yml", "Path to the configuration file (YAML)")

// appConfig is the on-disk configuration. Flags override it.
type appConfig struct {
	// Dataset is the path to the dataset file.
	Dataset string `yaml:"dataset"`
	// Currency is the ISO code used to render amounts. Defaults to USD.
	Currency string `yaml:"currency"`
	// RecordsPath is the JSONPath to the record array in a .json dataset.
	RecordsPath string `yaml:"records_path"`
	// MatchThreshold overrides the name resolution acceptance score (0-100).
	MatchThreshold int `yaml:"match_threshold"`
}

// loadConfig reads the configuration file. A missing file at the default
// location is not an error, it just yields the zero config.
func loadConfig() (appConfig, error) {
	var cfg appConfig
	b, err := os.ReadFile(*configFile)
	if err != nil {
		if os.IsNotExist(err) && !isConfigFlagSet() {
			return cfg, nil
		}
		return cfg, fmt.Errorf("could not read config file %q: %w", *configFile, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config file %q: %w", *configFile, err)
	}
	return cfg, nil
}

func isConfigFlagSet() (set bool) {
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			set = true
		}
	})
	return
}

// NewAnalyst builds the analyst from flags and the config file.
func NewAnalyst() (*analyst.Analyst, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	dataset := cfg.Dataset
	if *datasetFile != "" {
		dataset = *datasetFile
	}
	if dataset == "" {
		return nil, fmt.Errorf("no dataset configured: use -dataset or set 'dataset' in %s", *configFile)
	}
	a := analyst.New(dataset)
	a.RecordsPath = cfg.RecordsPath
	if cfg.MatchThreshold != 0 {
		a.Resolver.Threshold = cfg.MatchThreshold
	}
	return a, nil
}

// ReportingCurrency returns the configured rendering currency.
func ReportingCurrency() string {
	cfg, err := loadConfig()
	if err != nil || cfg.Currency == "" {
		return "USD"
	}
	return cfg.Currency
}
