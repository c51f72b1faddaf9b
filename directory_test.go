package analyst

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestNewCrossReference(t *testing.T) {
	x := NewCrossReference(testLedger())

	wantCustomers := []string{"Acme Corporation", "Globex Inc", "Initech LLC"}
	if !reflect.DeepEqual(x.Customers, wantCustomers) {
		t.Errorf("customers = %v, want %v", x.Customers, wantCustomers)
	}
	wantProjects := []string{"Data Migration", "Mobile App", "Website Redesign"}
	if !reflect.DeepEqual(x.Projects, wantProjects) {
		t.Errorf("projects = %v, want %v", x.Projects, wantProjects)
	}

	if got := x.CustomerProjects["Acme Corporation"]; !reflect.DeepEqual(got, []string{"Mobile App", "Website Redesign"}) {
		t.Errorf("Acme projects = %v", got)
	}
	if got := x.ProjectCustomers["Website Redesign"]; !reflect.DeepEqual(got, []string{"Acme Corporation", "Globex Inc"}) {
		t.Errorf("Website Redesign customers = %v", got)
	}
}

func TestCrossReference_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(NewCrossReference(testLedger()))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	s := string(b)

	for _, key := range []string{"customers", "projects", "customer_projects", "project_customers"} {
		if !strings.Contains(s, `"`+key+`"`) {
			t.Errorf("marshaled directory misses key %q: %s", key, s)
		}
	}

	var parsed struct {
		Customers        []string            `json:"customers"`
		Projects         []string            `json:"projects"`
		CustomerProjects map[string][]string `json:"customer_projects"`
		ProjectCustomers map[string][]string `json:"project_customers"`
	}
	if err := json.Unmarshal(b, &parsed); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(parsed.Customers) != 3 || len(parsed.Projects) != 3 {
		t.Errorf("parsed %d customers, %d projects, want 3 and 3", len(parsed.Customers), len(parsed.Projects))
	}
	if got := parsed.ProjectCustomers["Data Migration"]; !reflect.DeepEqual(got, []string{"Globex Inc", "Initech LLC"}) {
		t.Errorf("Data Migration customers = %v", got)
	}
}

func TestRelatedNames(t *testing.T) {
	l := testLedger()

	// Fuzzy customer query, then project lookup on the canonical name.
	got, err := RelatedNames(Resolver{}, Customer, "globex inc", l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Data Migration", "Website Redesign"}) {
		t.Errorf("Globex projects = %v", got)
	}

	got, err = RelatedNames(Resolver{}, Project, "data migration", l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Globex Inc", "Initech LLC"}) {
		t.Errorf("Data Migration customers = %v", got)
	}
}

func TestRelatedNames_NoConfidentMatch(t *testing.T) {
	_, err := RelatedNames(Resolver{}, Customer, "Wayne Enterprises", testLedger())
	var noMatch *NoMatchError
	if !errors.As(err, &noMatch) {
		t.Fatalf("error %T, want *NoMatchError", err)
	}
	if !strings.Contains(err.Error(), "Did you mean") {
		t.Errorf("error %q misses the did-you-mean hint", err)
	}
}

func TestMetricNames(t *testing.T) {
	want := []string{"revenue", "gross_margin", "ebitda"}
	if got := MetricNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("MetricNames() = %v, want %v", got, want)
	}
}
