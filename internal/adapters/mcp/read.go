package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"planvault/internal/application/commands"
	"planvault/internal/domain"
	"planvault/internal/ports"
)

// RegisterReadTools adds all read-only vault tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, repo ports.EntityRepository, canvas ports.CanvasStore, canvasPath string) {
	s.AddTool(listTool(), listHandler(repo))
	s.AddTool(showTool(), showHandler(repo))
	s.AddTool(transitionsTool(), transitionsHandler(repo))
	s.AddTool(blockedTool(), blockedHandler(repo))
	s.AddTool(validateTool(), validateHandler(repo, canvas, canvasPath))
}

// --- list ---

func listTool() mcp.Tool {
	return mcp.NewTool("list",
		mcp.WithDescription("List work items in the vault, optionally filtered by type and/or status."),
		mcp.WithString("type",
			mcp.Description("Entity type filter: milestone, story, or task. Omit for all."),
		),
		mcp.WithString("status",
			mcp.Description("Status filter, e.g. 'In Progress'. Omit for all."),
		),
	)
}

func listHandler(repo ports.EntityRepository) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		typeFilter := strings.ToLower(req.GetString("type", ""))
		statusFilter := domain.Status(req.GetString("status", ""))
		if statusFilter != "" && !statusFilter.IsValid() {
			return toolError(fmt.Errorf("unknown status: %q", statusFilter))
		}

		entities, err := repo.ListAll()
		if err != nil {
			return toolError(err)
		}

		resolve := domain.ResolverFromSlice(entities)
		var sb strings.Builder
		for _, e := range entities {
			if typeFilter != "" && string(e.Type) != typeFilter {
				continue
			}
			if statusFilter != "" && e.Status != statusFilter {
				continue
			}
			fmt.Fprintf(&sb, "%s  [%s]  %s\n", e.ID, e.DisplayStatus(resolve), e.Title)
		}
		if sb.Len() == 0 {
			return mcp.NewToolResultText("No results."), nil
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- show ---

func showTool() mcp.Tool {
	return mcp.NewTool("show",
		mcp.WithDescription("Show a single work item: status, parent, dependencies, and blockers."),
		mcp.WithString("id",
			mcp.Description("Entity ID (e.g. M-001, S-002, T-010)"),
			mcp.Required(),
		),
	)
}

func showHandler(repo ports.EntityRepository) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}

		ent, err := repo.Load(id)
		if err != nil {
			return toolError(err)
		}
		entities, err := repo.ListAll()
		if err != nil {
			return toolError(err)
		}
		resolve := domain.ResolverFromSlice(entities)

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s  %s\n", ent.ID, ent.Title)
		fmt.Fprintf(&sb, "type: %s\n", ent.Type)
		fmt.Fprintf(&sb, "status: %s\n", ent.Status)
		if ent.Parent != "" {
			fmt.Fprintf(&sb, "parent: %s\n", ent.Parent)
		}
		if len(ent.DependsOn) > 0 {
			fmt.Fprintf(&sb, "depends_on: %s\n", strings.Join(ent.DependsOn, ", "))
		}
		if blockers := ent.Blockers(resolve); len(blockers) > 0 {
			fmt.Fprintf(&sb, "blocked by: %s\n", strings.Join(blockers, ", "))
		}
		fmt.Fprintf(&sb, "path: %s\n", ent.Path)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- transitions ---

func transitionsTool() mcp.Tool {
	return mcp.NewTool("transitions",
		mcp.WithDescription("List the statuses a work item may currently transition to."),
		mcp.WithString("id",
			mcp.Description("Entity ID"),
			mcp.Required(),
		),
	)
}

func transitionsHandler(repo ports.EntityRepository) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}

		targets, err := commands.AvailableTransitions(repo, id)
		if err != nil {
			return toolError(err)
		}
		if len(targets) == 0 {
			return mcp.NewToolResultText("No transitions available."), nil
		}

		var sb strings.Builder
		for _, s := range targets {
			sb.WriteString(string(s))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- blocked ---

func blockedTool() mcp.Tool {
	return mcp.NewTool("blocked",
		mcp.WithDescription("List every work item whose dependencies currently block it, with the reason."),
	)
}

func blockedHandler(repo ports.EntityRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		blocked, err := commands.NewBlockedReportCommand(repo).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(blocked) == 0 {
			return mcp.NewToolResultText("Nothing is blocked."), nil
		}

		var sb strings.Builder
		for _, b := range blocked {
			fmt.Fprintf(&sb, "%s  %s  (%s)\n", b.ID, b.Title, b.Reason)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- validate ---

func validateTool() mcp.Tool {
	return mcp.NewTool("validate",
		mcp.WithDescription("Check the vault for broken references, duplicate IDs, and canvas nodes pointing at unknown files."),
	)
}

func validateHandler(repo ports.EntityRepository, canvas ports.CanvasStore, canvasPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewValidateVaultCommand(repo, canvas, canvasPath).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for _, issue := range result.Issues {
			fmt.Fprintf(&sb, "[%s] %s: %s\n", issue.Severity, issue.EntityID, issue.Message)
		}
		fmt.Fprintf(&sb, "%d entities checked, %d errors, %d warnings\n",
			result.Entities, result.Errors, result.Warnings)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
