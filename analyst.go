package analyst

import "github.com/shopspring/decimal"

// Analyst answers ad-hoc financial queries against a dataset. It holds only
// configuration: the dataset location and the resolution tuning. Every query
// reloads the dataset from its source, so each call sees the latest on-disk
// state and no state survives between calls. That also makes concurrent
// calls safe without locks: each handler works on its own private ledger.
type Analyst struct {
	// DatasetPath locates the dataset. It is explicit configuration, never
	// derived from the running process's own location.
	DatasetPath string
	// RecordsPath is the JSONPath to the record array in a .json dataset.
	// Empty means DefaultRecordsPath.
	RecordsPath string
	// Resolver tunes fuzzy entity resolution. The zero value uses the
	// default similarity measure and acceptance threshold.
	Resolver Resolver
}

// New creates an Analyst reading the dataset at the given path.
func New(datasetPath string) *Analyst {
	return &Analyst{DatasetPath: datasetPath}
}

// Load reads the full dataset into memory. There is no caching across
// calls by design.
func (a *Analyst) Load() (*Ledger, error) {
	return Load(a.DatasetPath, a.RecordsPath)
}

// Report is the outcome of a metric computation: absolute values and their
// fraction-of-revenue counterparts, index-aligned. In aggregate mode both
// series have exactly one element; in filtered mode one element per
// matching record.
type Report struct {
	Metric      Metric
	Customer    string // canonical name, when a customer filter was resolved
	Project     string // canonical name, when a project filter was resolved
	Values      []decimal.Decimal
	Percentages []Percent
}

func (r *Report) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("metric", r.Metric.String())
	w.Optional("customer", r.Customer)
	w.Optional("project", r.Project)
	w.Append("values", r.Values)
	w.Append("percentages", r.Percentages)
	return w.MarshalJSON()
}

// GetData computes a financial metric at customer or project level. When
// neither filter is given it aggregates the entire ledger and returns
// single-element series. When a filter is given the metric is evaluated per
// matching record.
//
// The customer filter is resolved and applied first, the project filter
// second, against the already narrowed ledger. A customer combined with a
// project it never worked on therefore yields empty series, not an error.
func (a *Analyst) GetData(metric, customer, project string) (*Report, error) {
	m, err := ParseMetric(metric)
	if err != nil {
		return nil, err
	}
	ledger, err := a.Load()
	if err != nil {
		return nil, err
	}

	// Both names resolve against the full ledger's distinct names, but the
	// filters apply sequentially: customer first, then project on the
	// already narrowed rows. A valid customer/project pair that never
	// co-occurs therefore narrows to nothing instead of failing.
	full := ledger
	report := &Report{Metric: m}
	if customer != "" {
		match, err := a.Resolver.Resolve(Customer, customer, full)
		if err != nil {
			return nil, err
		}
		report.Customer = match.Name
		ledger = ledger.Filter(ByCustomer(match.Name))
	}
	if project != "" {
		match, err := a.Resolver.Resolve(Project, project, full)
		if err != nil {
			return nil, err
		}
		report.Project = match.Name
		ledger = ledger.Filter(ByProject(match.Name))
	}

	if report.Customer == "" && report.Project == "" {
		// Aggregate mode: evaluate once on the whole ledger's totals.
		totals := ledger.Totals()
		value := m.Eval(totals)
		report.Values = []decimal.Decimal{value}
		report.Percentages = []Percent{m.PercentageOf(value, totals.Revenue)}
		return report, nil
	}

	// Filtered mode: evaluate per record.
	report.Values = make([]decimal.Decimal, 0, ledger.Len())
	report.Percentages = make([]Percent, 0, ledger.Len())
	for _, r := range ledger.Records() {
		value := m.EvalRecord(r)
		report.Values = append(report.Values, value)
		report.Percentages = append(report.Percentages, m.PercentageOf(value, r.Revenue))
	}
	return report, nil
}

// Compare compares performance across all customers or all projects.
// Dimension and metric names are validated before any aggregation work
// begins; an empty metrics list defaults to all three metrics. A positive
// topN keeps only the top N entities by revenue.
func (a *Analyst) Compare(dimension string, metrics []string, topN int) (Comparison, error) {
	dim, err := ParseDimension(dimension)
	if err != nil {
		return nil, err
	}
	ms, err := ParseMetrics(metrics)
	if err != nil {
		return nil, err
	}
	ledger, err := a.Load()
	if err != nil {
		return nil, err
	}
	return CompareLedger(ledger, dim, ms, topN), nil
}

// Entities lists all known customers and projects and their
// cross-relationships.
func (a *Analyst) Entities() (*CrossReference, error) {
	ledger, err := a.Load()
	if err != nil {
		return nil, err
	}
	return NewCrossReference(ledger), nil
}

// Customers lists all distinct customer names, sorted.
func (a *Analyst) Customers() ([]string, error) {
	ledger, err := a.Load()
	if err != nil {
		return nil, err
	}
	return ledger.SortedNames(Customer), nil
}

// Projects lists all distinct project names, sorted.
func (a *Analyst) Projects() ([]string, error) {
	ledger, err := a.Load()
	if err != nil {
		return nil, err
	}
	return ledger.SortedNames(Project), nil
}

// CustomerProjects resolves a customer name and lists the projects appearing
// in its rows, sorted.
func (a *Analyst) CustomerProjects(customer string) ([]string, error) {
	ledger, err := a.Load()
	if err != nil {
		return nil, err
	}
	return RelatedNames(a.Resolver, Customer, customer, ledger)
}

// ProjectCustomers resolves a project name and lists the customers appearing
// in its rows, sorted.
func (a *Analyst) ProjectCustomers(project string) ([]string, error) {
	ledger, err := a.Load()
	if err != nil {
		return nil, err
	}
	return RelatedNames(a.Resolver, Project, project, ledger)
}
