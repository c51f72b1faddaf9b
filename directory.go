package analyst

// CrossReference is the read-only directory of known entities and their
// relationships: which projects appear in a customer's rows, and which
// customers appear in a project's rows. All listings are sorted.
type CrossReference struct {
	Customers        []string
	Projects         []string
	CustomerProjects map[string][]string
	ProjectCustomers map[string][]string
}

// NewCrossReference builds the full entity directory from a ledger.
func NewCrossReference(l *Ledger) *CrossReference {
	x := &CrossReference{
		Customers:        l.SortedNames(Customer),
		Projects:         l.SortedNames(Project),
		CustomerProjects: make(map[string][]string),
		ProjectCustomers: make(map[string][]string),
	}
	for _, customer := range x.Customers {
		x.CustomerProjects[customer] = l.Filter(ByCustomer(customer)).SortedNames(Project)
	}
	for _, project := range x.Projects {
		x.ProjectCustomers[project] = l.Filter(ByProject(project)).SortedNames(Customer)
	}
	return x
}

// MarshalJSON renders the directory with the customer and project keys in
// sorted order.
func (x *CrossReference) MarshalJSON() ([]byte, error) {
	var customerProjects jsonObjectWriter
	for _, customer := range x.Customers {
		customerProjects.Append(customer, x.CustomerProjects[customer])
	}
	var projectCustomers jsonObjectWriter
	for _, project := range x.Projects {
		projectCustomers.Append(project, x.ProjectCustomers[project])
	}

	var w jsonObjectWriter
	w.Append("customers", x.Customers)
	w.Append("projects", x.Projects)
	w.Append("customer_projects", &customerProjects)
	w.Append("project_customers", &projectCustomers)
	return w.MarshalJSON()
}

// RelatedNames resolves a free-text name in one dimension and returns the
// sorted distinct names of the other dimension appearing in the resolved
// entity's rows. Resolution failures propagate unchanged.
func RelatedNames(rs Resolver, dim Dimension, query string, l *Ledger) ([]string, error) {
	match, err := rs.Resolve(dim, query, l)
	if err != nil {
		return nil, err
	}
	other := Project
	if dim == Project {
		other = Customer
	}
	return l.Filter(ByName(dim, match.Name)).SortedNames(other), nil
}

// MetricNames returns the names of all available metrics.
func MetricNames() []string {
	names := make([]string, 0, len(AllMetrics()))
	for _, m := range AllMetrics() {
		names = append(names, m.String())
	}
	return names
}
