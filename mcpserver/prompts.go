package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("financial_metrics_analysis",
		mcp.WithPromptDescription("Analyze financial metrics for a specific customer or project."),
		mcp.WithArgument("entity_name",
			mcp.RequiredArgument(),
			mcp.ArgumentDescription("The customer or project to analyze."),
		),
		mcp.WithArgument("entity_type",
			mcp.ArgumentDescription("Either 'customer' or 'project'. Defaults to 'customer'."),
		),
	), s.handleMetricsAnalysis)

	s.mcp.AddPrompt(mcp.NewPrompt("comparative_financial_analysis",
		mcp.WithPromptDescription("Compare financial performance across customers or projects."),
		mcp.WithArgument("entity_type",
			mcp.ArgumentDescription("Either 'customer' or 'project'. Defaults to 'customer'."),
		),
		mcp.WithArgument("top_n",
			mcp.ArgumentDescription("How many top performers to focus on. Defaults to 5."),
		),
	), s.handleComparativeAnalysis)

	s.mcp.AddPrompt(mcp.NewPrompt("financial_insight_generation",
		mcp.WithPromptDescription("Generate actionable insights from the financial dataset."),
		mcp.WithArgument("focus_area",
			mcp.ArgumentDescription("Area to focus on: 'profitability', 'growth' or 'efficiency'. Defaults to 'profitability'."),
		),
	), s.handleInsightGeneration)

	s.mcp.AddPrompt(mcp.NewPrompt("executive_summary_financial",
		mcp.WithPromptDescription("Produce an executive summary of overall financial performance."),
	), s.handleExecutiveSummary)

	s.mcp.AddPrompt(mcp.NewPrompt("financial_performance_review",
		mcp.WithPromptDescription("Review the financial performance of a specific entity in depth."),
		mcp.WithArgument("entity_name",
			mcp.RequiredArgument(),
			mcp.ArgumentDescription("The customer or project to review."),
		),
		mcp.WithArgument("entity_type",
			mcp.ArgumentDescription("Either 'customer' or 'project'. Defaults to 'customer'."),
		),
	), s.handlePerformanceReview)
}

func promptArg(req mcp.GetPromptRequest, name, fallback string) string {
	if v, ok := req.Params.Arguments[name]; ok && v != "" {
		return v
	}
	return fallback
}

func (s *Server) handleMetricsAnalysis(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name, ok := req.Params.Arguments["entity_name"]
	if !ok || name == "" {
		return nil, fmt.Errorf("entity_name is required")
	}
	entityType := promptArg(req, "entity_type", "customer")

	text := fmt.Sprintf(`Please analyze the financial performance of %s %q using the available tools.

1. Use get_data to retrieve revenue, gross_margin and ebitda for this %s.
2. Report each metric in absolute terms and as a percentage of revenue.
3. Point out strengths and weaknesses relative to typical margins.
4. Suggest concrete follow-up questions worth investigating.`, entityType, name, entityType)

	return mcp.NewGetPromptResult(
		fmt.Sprintf("Financial metrics analysis for %s %q", entityType, name),
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

func (s *Server) handleComparativeAnalysis(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	entityType := promptArg(req, "entity_type", "customer")
	topN := promptArg(req, "top_n", "5")

	text := fmt.Sprintf(`Please compare financial performance across all %ss.

1. Use compare_performance with entity_type=%q and top_n=%s.
2. Rank the top performers by revenue and comment on their margin profiles.
3. Contrast the leaders with the OVERALL entry to show concentration.
4. Identify any %s with strong revenue but weak margins, or vice versa.`, entityType, entityType, topN, entityType)

	return mcp.NewGetPromptResult(
		fmt.Sprintf("Comparative analysis across %ss", entityType),
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

func (s *Server) handleInsightGeneration(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	focus := promptArg(req, "focus_area", "profitability")

	ask := fmt.Sprintf(`Please generate actionable insights from the financial dataset with a focus on %s.

1. Read the entities://all resource to understand the customer and project landscape.
2. Use compare_performance for both customers and projects.
3. Drill into outliers with get_data.
4. Summarize three concrete, data-backed recommendations.`, focus)

	method := `I will work through the dataset systematically: first the entity directory, then ranked comparisons for each dimension, then targeted metric queries on the outliers, and finally recommendations grounded in the numbers I retrieved.`

	return mcp.NewGetPromptResult(
		fmt.Sprintf("Insight generation focused on %s", focus),
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(ask)),
			mcp.NewPromptMessage(mcp.RoleAssistant, mcp.NewTextContent(method)),
		},
	), nil
}

func (s *Server) handleExecutiveSummary(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	text := `Please produce an executive summary of overall financial performance.

1. Use get_data without a customer or project to obtain overall revenue, gross_margin and ebitda.
2. Use compare_performance for customers and for projects to identify the main contributors.
3. Write a one-page summary: headline numbers, margin structure, concentration risks, and one recommendation.
Keep the language suitable for a non-technical executive audience.`

	return mcp.NewGetPromptResult(
		"Executive summary of financial performance",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

func (s *Server) handlePerformanceReview(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name, ok := req.Params.Arguments["entity_name"]
	if !ok || name == "" {
		return nil, fmt.Errorf("entity_name is required")
	}
	entityType := promptArg(req, "entity_type", "customer")

	var related string
	if entityType == "customer" {
		related = fmt.Sprintf("entities://customer/%s/projects", name)
	} else {
		related = fmt.Sprintf("entities://project/%s/customers", name)
	}

	text := fmt.Sprintf(`Please review the financial performance of %s %q in depth.

1. Use get_data to retrieve revenue, gross_margin and ebitda for this %s.
2. Read %s to list its relationships, and retrieve metrics for each related entity.
3. Position this %s against the ranked comparison from compare_performance.
4. Conclude with an assessment: healthy, watch, or at risk, with the numbers that support it.`, entityType, name, entityType, related, entityType)

	return mcp.NewGetPromptResult(
		fmt.Sprintf("Performance review for %s %q", entityType, name),
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}
