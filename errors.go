package analyst

import (
	"fmt"
	"strings"
)

// DatasetError reports that the dataset source is missing, unreadable or
// malformed (e.g. a required column is absent). It is fatal to the invoking
// call and is not retried.
type DatasetError struct {
	Path string
	Err  error
}

func (e *DatasetError) Error() string {
	return fmt.Sprintf("dataset %q unavailable: %v", e.Path, e.Err)
}

func (e *DatasetError) Unwrap() error { return e.Err }

// NoMatchError reports that fuzzy entity resolution found no candidate above
// the acceptance threshold. It carries the best rejected candidate so the
// caller can surface a "did you mean" hint, and is recoverable by supplying
// a corrected name.
type NoMatchError struct {
	Dimension Dimension
	Query     string
	Best      string
	Score     int
}

func (e *NoMatchError) Error() string {
	if e.Best == "" {
		return fmt.Sprintf("no close match found for %s %q", e.Dimension, e.Query)
	}
	return fmt.Sprintf("no close match found for %s %q. Did you mean %q?", e.Dimension, e.Query, e.Best)
}

// UnknownMetricError reports a metric name outside the fixed enumeration.
type UnknownMetricError struct {
	Name string
}

func (e *UnknownMetricError) Error() string {
	names := make([]string, 0, len(AllMetrics()))
	for _, m := range AllMetrics() {
		names = append(names, fmt.Sprintf("%q", m))
	}
	return fmt.Sprintf("unknown metric: %s. Available metrics are %s", e.Name, strings.Join(names, ", "))
}

// InvalidDimensionError reports an entity type outside customer/project.
type InvalidDimensionError struct {
	Value string
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("entity type must be either %q or %q, got %q", Customer, Project, e.Value)
}
