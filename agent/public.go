package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	analyst "github.com/anandogs/mcp-analysis"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name: "Facilitator",
		// Used by facilitators to know what they can expected from the expert
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				As a facilitator you are in charge of the conversation and solving the user's request.

				Learn about the expert's skill that you can get from the Tools to ask them questions.
				They are at your service and 100% dedicated to you, they keep context of your previous questions.

				The user is here primarily to understand the financial performance of his customers and projects:
				revenue, gross margin and ebitda, in absolute terms and as a percentage of revenue.

				Devise a plan of questions to ask to each experts and come up with the best reponse to the user's request.

				The user will assume that you know his customer and project names, check the directory first to understand what they are.
			`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns an expert grounding answers in web search.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert business researcher,
		very well aware of industries, companies and market conditions.
		Ask the Researcher whenever you need recent or grounding information
		about a customer's business or sector.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an expert in business research, you can search and find about anything related to
				companies, industries and markets. You leverage Google Search to ground your assertions
				in a solid truth, and you know how to relate findings to the user's request.
					`}}},
		},
	}
}

// NewAnalyst returns the expert in charge of the financial dataset. It
// answers questions by calling the query engine of the given analyst.
func NewAnalyst(a *analyst.Analyst) *Expert {
	lib := []Function{getData(a), comparePerformance(a), listEntities(a)}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. He is in charge of reading the financial dataset.
		He can compute revenue, gross margin and ebitda for any customer or project,
		compare performance across them, and list all known entities.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
					You are a financial analyst in charge of the user's dataset.
					You know how to use the Tools to extract relevant figures about customers and projects.
					You are part of a team of experts, yours is everything about the dataset. They might ask
					you questions about it, pardon their approximative language and figure out what they meant:
					names are fuzzy matched, so pass them as the user wrote them.

					Use the available tools to get information about the dataset
					  - metrics for a customer, a project, or overall
					  - ranked comparisons across customers or projects
					  - the directory of all entities and their relationships
				`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func failure(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func success(id, name string, v any) *genai.FunctionResponse {
	b, err := json.Marshal(v)
	if err != nil {
		return failure(id, name, err)
	}
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": string(b),
		},
	}
}

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string as expected but %T", key, raw)
	}
	return s, nil
}

func getData(a *analyst.Analyst) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "get_data",
			Description: `get_data computes a financial metric, overall, for a customer, or for a project.

			Names are fuzzy matched against the dataset, pass them as the user wrote them.
			`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"metric": {
						Type:        genai.TypeString,
						Description: "The metric to compute: 'revenue', 'gross_margin' or 'ebitda'.",
					},
					"customer": {
						Type:        genai.TypeString,
						Description: "Optional customer name to filter on.",
					},
					"project": {
						Type:        genai.TypeString,
						Description: "Optional project name to filter on.",
					},
				},
				Required: []string{"metric"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A JSON report with the metric values and their percentage of revenue.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			metric, err := stringArg(args, "metric")
			if err != nil {
				return failure(id, "get_data", err)
			}
			customer, err := stringArg(args, "customer")
			if err != nil {
				return failure(id, "get_data", err)
			}
			project, err := stringArg(args, "project")
			if err != nil {
				return failure(id, "get_data", err)
			}
			report, err := a.GetData(metric, customer, project)
			if err != nil {
				return failure(id, "get_data", err)
			}
			return success(id, "get_data", report)
		},
	}
}

func comparePerformance(a *analyst.Analyst) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "compare_performance",
			Description: `compare_performance ranks customers or projects by revenue and reports
			the requested metrics for each, plus an OVERALL entry for the whole dataset.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"entity_type": {
						Type:        genai.TypeString,
						Description: "Either 'customer' or 'project'.",
					},
					"metrics": {
						Type:        genai.TypeArray,
						Items:       &genai.Schema{Type: genai.TypeString},
						Description: "Metrics to compare. Defaults to all of them.",
					},
					"top_n": {
						Type:        genai.TypeInteger,
						Description: "If provided, keep only the top N entities by revenue.",
					},
				},
				Required: []string{"entity_type"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A JSON array of entities ranked by revenue, with metric values and percentages.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			entityType, err := stringArg(args, "entity_type")
			if err != nil {
				return failure(id, "compare_performance", err)
			}
			var metrics []string
			if raw, ok := args["metrics"]; ok {
				items, ok := raw.([]any)
				if !ok {
					return failure(id, "compare_performance", fmt.Errorf("argument 'metrics' is not an array as expected but %T", raw))
				}
				for _, item := range items {
					s, ok := item.(string)
					if !ok {
						return failure(id, "compare_performance", fmt.Errorf("metric element is not a string as expected but %T", item))
					}
					metrics = append(metrics, s)
				}
			}
			topN := 0
			if raw, ok := args["top_n"]; ok {
				n, ok := raw.(float64)
				if !ok {
					return failure(id, "compare_performance", fmt.Errorf("argument 'top_n' is not a number as expected but %T", raw))
				}
				topN = int(n)
			}
			comparison, err := a.Compare(entityType, metrics, topN)
			if err != nil {
				return failure(id, "compare_performance", err)
			}
			return success(id, "compare_performance", comparison)
		},
	}
}

func listEntities(a *analyst.Analyst) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "list_entities",
			Description: `list_entities returns the directory of the dataset: all customers, all projects,
			and which projects belong to which customers and vice versa.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A JSON object with customers, projects and their cross-relationships.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			x, err := a.Entities()
			if err != nil {
				return failure(id, "list_entities", err)
			}
			return success(id, "list_entities", x)
		},
	}
}
