package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	analyst "github.com/anandogs/mcp-analysis"
)

const testCSV = `CustomerName,ProjectName,Revenue,COGS,OPEX
Acme Corporation,Website Redesign,100,40,10
Acme Corporation,Mobile App,50,10,5
Globex Inc,Data Migration,30,15,5
`

func testServer(t *testing.T) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return New(analyst.New(path))
}

func toolRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func textContent(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("expected one content block, got %d", len(res.Content))
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return tc.Text
}

func TestGetDataTool(t *testing.T) {
	s := testServer(t)

	res, err := s.handleGetData(context.Background(), toolRequest("get_data", map[string]any{
		"metric":   "revenue",
		"customer": "acme",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", textContent(t, res))
	}

	var report struct {
		Metric      string    `json:"metric"`
		Customer    string    `json:"customer"`
		Values      []float64 `json:"values"`
		Percentages []float64 `json:"percentages"`
	}
	if err := json.Unmarshal([]byte(textContent(t, res)), &report); err != nil {
		t.Fatal(err)
	}
	if report.Metric != "revenue" {
		t.Errorf("metric = %q, want %q", report.Metric, "revenue")
	}
	if report.Customer != "Acme Corporation" {
		t.Errorf("customer = %q, want resolved name", report.Customer)
	}
	if len(report.Values) != 2 || report.Values[0] != 100 || report.Values[1] != 50 {
		t.Errorf("values = %v, want [100 50]", report.Values)
	}
}

func TestGetDataToolErrors(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing metric", map[string]any{}, "metric"},
		{"unknown metric", map[string]any{"metric": "profit"}, "unknown metric: profit"},
		{"no match", map[string]any{"metric": "revenue", "customer": "Umbrella"}, "Did you mean"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := s.handleGetData(context.Background(), toolRequest("get_data", tc.args))
			if err != nil {
				t.Fatal(err)
			}
			if !res.IsError {
				t.Fatalf("expected a tool error, got %s", textContent(t, res))
			}
			if got := textContent(t, res); !strings.Contains(got, tc.want) {
				t.Errorf("error %q does not mention %q", got, tc.want)
			}
		})
	}
}

func TestComparePerformanceTool(t *testing.T) {
	s := testServer(t)

	res, err := s.handleComparePerformance(context.Background(), toolRequest("compare_performance", map[string]any{
		"entity_type": "customer",
		"metrics":     []any{"revenue"},
		"top_n":       float64(1),
	}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", textContent(t, res))
	}

	raw := textContent(t, res)
	var comparison map[string]map[string]struct {
		Value      float64 `json:"value"`
		Percentage float64 `json:"percentage"`
	}
	if err := json.Unmarshal([]byte(raw), &comparison); err != nil {
		t.Fatal(err)
	}
	if len(comparison) != 2 {
		t.Fatalf("expected top-1 entity plus OVERALL, got %d entries: %s", len(comparison), raw)
	}
	if _, ok := comparison["Acme Corporation"]; !ok {
		t.Errorf("missing top entity in %s", raw)
	}
	if v := comparison["OVERALL"]["revenue"].Value; v != 180 {
		t.Errorf("overall revenue = %v, want 180", v)
	}
	// entities come before the overall entry
	if i, j := strings.Index(raw, `"Acme Corporation"`), strings.Index(raw, `"OVERALL"`); i < 0 || j < i {
		t.Errorf("unexpected key order in %s", raw)
	}
}

func TestComparePerformanceToolBadArgs(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name string
		args map[string]any
	}{
		{"bad dimension", map[string]any{"entity_type": "region"}},
		{"bad metrics type", map[string]any{"entity_type": "customer", "metrics": "revenue"}},
		{"bad metric element", map[string]any{"entity_type": "customer", "metrics": []any{42}}},
		{"bad top_n", map[string]any{"entity_type": "customer", "top_n": "three"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := s.handleComparePerformance(context.Background(), toolRequest("compare_performance", tc.args))
			if err != nil {
				t.Fatal(err)
			}
			if !res.IsError {
				t.Fatalf("expected a tool error, got %s", textContent(t, res))
			}
		})
	}
}

func TestTemplateVariable(t *testing.T) {
	tests := []struct {
		uri     string
		prefix  string
		suffix  string
		want    string
		wantErr bool
	}{
		{"entities://customer/Acme%20Corporation/projects", "entities://customer/", "/projects", "Acme Corporation", false},
		{"entities://project/Mobile App/customers", "entities://project/", "/customers", "Mobile App", false},
		{"entities://customer//projects", "entities://customer/", "/projects", "", true},
		{"metrics://available", "entities://customer/", "/projects", "", true},
	}
	for _, tc := range tests {
		got, err := templateVariable(tc.uri, tc.prefix, tc.suffix)
		if tc.wantErr {
			if err == nil {
				t.Errorf("templateVariable(%q): expected error, got %q", tc.uri, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("templateVariable(%q): %v", tc.uri, err)
			continue
		}
		if got != tc.want {
			t.Errorf("templateVariable(%q) = %q, want %q", tc.uri, got, tc.want)
		}
	}
}

func TestStringSlice(t *testing.T) {
	if got, err := stringSlice(nil); err != nil || got != nil {
		t.Errorf("stringSlice(nil) = %v, %v, want nil, nil", got, err)
	}
	got, err := stringSlice([]any{"revenue", "ebitda"})
	if err != nil || len(got) != 2 || got[0] != "revenue" || got[1] != "ebitda" {
		t.Errorf("stringSlice = %v, %v", got, err)
	}
	if _, err := stringSlice("revenue"); err == nil {
		t.Error("expected error for a non-array value")
	}
}
