// Package mcpserver exposes the analyst query engine over the Model Context
// Protocol: tools for metric computation and comparison, resources for the
// entity directory, and prompts for financial analysis workflows.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	analyst "github.com/anandogs/mcp-analysis"
)

// Server wraps an Analyst behind an MCP server. Each request handler loads
// its own private copy of the ledger, so concurrent requests are safe
// without locks.
type Server struct {
	analyst *analyst.Analyst
	mcp     *server.MCPServer
}

// New creates an MCP server answering financial queries through the given
// analyst.
func New(a *analyst.Analyst) *Server {
	s := &Server{
		analyst: a,
		mcp: server.NewMCPServer("Analyst Tools", "1.0.0",
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(true, true),
			server.WithPromptCapabilities(true),
			server.WithRecovery(),
		),
	}
	s.registerTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

// ServeStdio runs the server on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	getData := mcp.NewTool("get_data",
		mcp.WithDescription("Get financial metrics at customer or project level. If none is provided, return the overall metric. Available metrics: 'gross_margin', 'revenue', 'ebitda'"),
		mcp.WithString("metric",
			mcp.Required(),
			mcp.Description("The metric to compute: 'revenue', 'gross_margin' or 'ebitda'."),
		),
		mcp.WithString("customer",
			mcp.Description("Customer name. Fuzzy matched against known customers."),
		),
		mcp.WithString("project",
			mcp.Description("Project name. Fuzzy matched against known projects."),
		),
	)
	s.mcp.AddTool(getData, s.handleGetData)

	compare := mcp.NewTool("compare_performance",
		mcp.WithDescription("Compare performance across different customers or projects for specified metrics. Entities are ranked by revenue and an OVERALL entry is always included."),
		mcp.WithString("entity_type",
			mcp.Required(),
			mcp.Description("Either 'customer' or 'project'."),
			mcp.Enum("customer", "project"),
		),
		mcp.WithArray("metrics",
			mcp.Description("Metrics to compare. Defaults to all of 'revenue', 'gross_margin', 'ebitda'."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithNumber("top_n",
			mcp.Description("If provided, returns only the top N entities by revenue."),
		),
	)
	s.mcp.AddTool(compare, s.handleComparePerformance)
}

func (s *Server) handleGetData(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	metric, err := req.RequireString("metric")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	customer := req.GetString("customer", "")
	project := req.GetString("project", "")

	report, err := s.analyst.GetData(metric, customer, project)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(report)
}

func (s *Server) handleComparePerformance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entityType, err := req.RequireString("entity_type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := req.GetArguments()
	metrics, err := stringSlice(args["metrics"])
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid metrics argument: %v", err)), nil
	}
	topN := 0
	if raw, ok := args["top_n"]; ok {
		n, ok := raw.(float64)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid top_n argument: %v (%T)", raw, raw)), nil
		}
		topN = int(n)
	}

	comparison, err := s.analyst.Compare(entityType, metrics, topN)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(comparison)
}

func (s *Server) registerResources() {
	all := mcp.NewResource("entities://all", "All entities",
		mcp.WithResourceDescription("All customers and projects in the dataset, with their cross-relationships."),
		mcp.WithMIMEType("application/json"),
	)
	s.mcp.AddResource(all, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		x, err := s.analyst.Entities()
		if err != nil {
			return nil, err
		}
		return jsonContents(req.Params.URI, x)
	})

	customers := mcp.NewResource("entities://customers", "Customers",
		mcp.WithResourceDescription("All customers in the dataset, sorted."),
		mcp.WithMIMEType("application/json"),
	)
	s.mcp.AddResource(customers, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.analyst.Customers()
		if err != nil {
			return nil, err
		}
		return jsonContents(req.Params.URI, names)
	})

	projects := mcp.NewResource("entities://projects", "Projects",
		mcp.WithResourceDescription("All projects in the dataset, sorted."),
		mcp.WithMIMEType("application/json"),
	)
	s.mcp.AddResource(projects, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.analyst.Projects()
		if err != nil {
			return nil, err
		}
		return jsonContents(req.Params.URI, names)
	})

	metrics := mcp.NewResource("metrics://available", "Available metrics",
		mcp.WithResourceDescription("All financial metrics that can be analyzed."),
		mcp.WithMIMEType("application/json"),
	)
	s.mcp.AddResource(metrics, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonContents(req.Params.URI, analyst.MetricNames())
	})

	customerProjects := mcp.NewResourceTemplate("entities://customer/{customer_name}/projects", "Customer projects",
		mcp.WithTemplateDescription("All projects associated with a specific customer. The name is fuzzy matched."),
		mcp.WithTemplateMIMEType("application/json"),
	)
	s.mcp.AddResourceTemplate(customerProjects, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		name, err := templateVariable(req.Params.URI, "entities://customer/", "/projects")
		if err != nil {
			return nil, err
		}
		names, err := s.analyst.CustomerProjects(name)
		if err != nil {
			return nil, err
		}
		return jsonContents(req.Params.URI, names)
	})

	projectCustomers := mcp.NewResourceTemplate("entities://project/{project_name}/customers", "Project customers",
		mcp.WithTemplateDescription("All customers associated with a specific project. The name is fuzzy matched."),
		mcp.WithTemplateMIMEType("application/json"),
	)
	s.mcp.AddResourceTemplate(projectCustomers, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		name, err := templateVariable(req.Params.URI, "entities://project/", "/customers")
		if err != nil {
			return nil, err
		}
		names, err := s.analyst.ProjectCustomers(name)
		if err != nil {
			return nil, err
		}
		return jsonContents(req.Params.URI, names)
	})
}

// jsonResult marshals a tool result payload into a text content block.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("could not marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}

// jsonContents marshals a resource payload into JSON text contents.
func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("could not marshal resource %q: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: "application/json", Text: string(b)},
	}, nil
}

// templateVariable extracts the single path variable of a resource template
// URI, undoing percent-encoding.
func templateVariable(uri, prefix, suffix string) (string, error) {
	raw := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	if raw == uri || raw == "" {
		return "", fmt.Errorf("malformed resource URI %q", uri)
	}
	name, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("malformed resource URI %q: %w", uri, err)
	}
	return name, nil
}

// stringSlice coerces a decoded JSON array into a string slice. A missing
// argument yields nil, which downstream defaults to all metrics.
func stringSlice(v any) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected an array, got %T", v)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string element, got %T", item)
		}
		out = append(out, s)
	}
	return out, nil
}
