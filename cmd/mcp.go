package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"codescope/internal/contextfile"
	"codescope/internal/model"
	"codescope/internal/observations"
	"codescope/internal/training"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing project analysis tools",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	obs := observations.NewStore(cfg.ObservationsDir)

	s := mcpserver.NewMCPServer("codescope", "1.0.0", mcpserver.WithToolCapabilities(false))

	s.AddTool(analyzeProjectTool(), makeAnalyzeHandler())
	s.AddTool(getProjectContextTool(), makeProjectContextHandler())
	s.AddTool(searchPatternsTool(), makeSearchPatternsHandler())
	s.AddTool(addPatternTool(), makeAddPatternHandler())
	s.AddTool(getObservationTool(), makeObservationHandler(obs))

	return mcpserver.ServeStdio(s)
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// --- Tool schema builders ---

var readOnlyAnnotation = mcp.ToolAnnotation{
	ReadOnlyHint:    mcp.ToBoolPtr(true),
	DestructiveHint: mcp.ToBoolPtr(false),
	IdempotentHint:  mcp.ToBoolPtr(true),
	OpenWorldHint:   mcp.ToBoolPtr(false),
}

var localWriteAnnotation = mcp.ToolAnnotation{
	ReadOnlyHint:    mcp.ToBoolPtr(false),
	DestructiveHint: mcp.ToBoolPtr(false),
	IdempotentHint:  mcp.ToBoolPtr(false),
	OpenWorldHint:   mcp.ToBoolPtr(false),
}

func analyzeProjectTool() mcp.Tool {
	return mcp.NewTool("analyze_project",
		mcp.WithDescription("Analyze a project directory: detect its ecosystem, parse the manifest, extract source symbols, match trained patterns, and persist a .codescope context file. Returns the context as Markdown."),
		mcp.WithToolAnnotation(localWriteAnnotation),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path to the project root"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags to bias pattern matching"),
		),
	)
}

func getProjectContextTool() mcp.Tool {
	return mcp.NewTool("get_project_context",
		mcp.WithDescription("Read the saved .codescope context for a previously analyzed project. Returns Markdown, or a note when the directory was never analyzed."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path to the project root"),
		),
	)
}

func searchPatternsTool() mcp.Tool {
	return mcp.NewTool("search_patterns",
		mcp.WithDescription("Search the trained pattern catalog by project type, framework, and tags. Returns matching patterns with their code, ordered by relevance."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("project_type",
			mcp.Description("Project type to match (rust, node, python, go, dotnet, java, php)"),
		),
		mcp.WithString("framework",
			mcp.Description("Framework name to match (e.g. 'actix-web', 'express')"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags to match"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of patterns to return (default 10)"),
		),
	)
}

func addPatternTool() mcp.Tool {
	return mcp.NewTool("add_pattern",
		mcp.WithDescription("Add a code pattern to the trained catalog so future analyses can surface it."),
		mcp.WithToolAnnotation(localWriteAnnotation),
		mcp.WithString("id", mcp.Required(), mcp.Description("Unique pattern identifier (e.g. 'actix-error-handler')")),
		mcp.WithString("category", mcp.Required(), mcp.Description("Pattern category (e.g. 'error-handling')")),
		mcp.WithString("framework", mcp.Required(), mcp.Description("Target framework name")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Short human-readable title")),
		mcp.WithString("code", mcp.Required(), mcp.Description("The pattern code itself")),
		mcp.WithString("framework_version", mcp.Description("Framework version the pattern targets")),
		mcp.WithString("description", mcp.Description("What the pattern does and when to use it")),
		mcp.WithString("tags", mcp.Description("Comma-separated search tags")),
	)
}

func getObservationTool() mcp.Tool {
	return mcp.NewTool("get_observation",
		mcp.WithDescription("Retrieve the full archived analysis result referenced by a .codescope context file's observation id."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Observation UUID from the context file"),
		),
	)
}

// --- Handler factories ---

func makeAnalyzeHandler() mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return mcp.NewToolResultError("path is required"), nil
		}

		pc, _, err := runAnalysis(path, splitTags(req.GetString("tags", "")), true)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		return mcp.NewToolResultText(pc.FormatForClaude()), nil
	}
}

func makeProjectContextHandler() mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return mcp.NewToolResultError("path is required"), nil
		}

		pc, err := contextfile.Load(path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("read context failed: %v", err)), nil
		}
		if pc == nil {
			return mcp.NewToolResultText(fmt.Sprintf("No saved context for %s. Call analyze_project first.", path)), nil
		}
		return mcp.NewToolResultText(pc.FormatForClaude()), nil
	}
}

func makeSearchPatternsHandler() mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		store, err := openStore()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load catalog failed: %v", err)), nil
		}

		matches := store.Search(training.Query{
			ProjectType: model.ProjectType(req.GetString("project_type", "")),
			Framework:   req.GetString("framework", ""),
			Tags:        splitTags(req.GetString("tags", "")),
			Limit:       req.GetInt("limit", training.DefaultSearchLimit),
		})

		return mcp.NewToolResultText(formatPatternResults(matches)), nil
	}
}

func makeAddPatternHandler() mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		store, err := openStore()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load catalog failed: %v", err)), nil
		}

		p := model.CodePattern{
			ID:          req.GetString("id", ""),
			Category:    req.GetString("category", ""),
			Framework:   req.GetString("framework", ""),
			Version:     req.GetString("framework_version", ""),
			Title:       req.GetString("title", ""),
			Description: req.GetString("description", ""),
			Code:        req.GetString("code", ""),
			Tags:        splitTags(req.GetString("tags", "")),
		}
		if p.Code == "" {
			return mcp.NewToolResultError("code is required"), nil
		}
		if err := store.Add(p); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("add pattern failed: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Added pattern %q (%d patterns in catalog)", p.ID, store.Len())), nil
	}
}

func makeObservationHandler(obs *observations.Store) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return mcp.NewToolResultError("id is required"), nil
		}

		content, ok, err := obs.Get(id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("read observation failed: %v", err)), nil
		}
		if !ok {
			return mcp.NewToolResultText(fmt.Sprintf("No observation archived under id %s.", id)), nil
		}
		return mcp.NewToolResultText(content), nil
	}
}

// --- Formatting helpers ---

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func formatPatternResults(patterns []model.CodePattern) string {
	if len(patterns) == 0 {
		return "No matching patterns in the catalog."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Matched patterns (%d)\n\n", len(patterns))

	for i, p := range patterns {
		fmt.Fprintf(&sb, "### %d. %s\n\n", i+1, p.Title)
		fmt.Fprintf(&sb, "**ID:** %s  \n**Framework:** %s %s  \n**Category:** %s  \n**Score:** %.2f\n\n",
			p.ID, p.Framework, p.Version, p.Category, p.RelevanceScore)
		if p.Description != "" {
			fmt.Fprintf(&sb, "%s\n\n", p.Description)
		}
		fmt.Fprintf(&sb, "```\n%s\n```\n\n", strings.TrimRight(p.Code, "\n"))
	}

	return sb.String()
}
