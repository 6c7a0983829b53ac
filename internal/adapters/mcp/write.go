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

// RegisterWriteTools adds all mutating vault tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, repo ports.EntityRepository, canvas ports.CanvasStore, canvasPath string) {
	s.AddTool(setStatusTool(), setStatusHandler(repo))
	s.AddTool(depAddTool(), depAddHandler(repo))
	s.AddTool(depRemoveTool(), depRemoveHandler(repo))
	s.AddTool(syncDependenciesTool(), syncDependenciesHandler(repo, canvas, canvasPath))
	s.AddTool(pushDependenciesTool(), pushDependenciesHandler(repo, canvas, canvasPath))
	s.AddTool(reconcileIndicatorsTool(), reconcileIndicatorsHandler(repo, canvas, canvasPath))
}

// --- set_status ---

func setStatusTool() mcp.Tool {
	return mcp.NewTool("set_status",
		mcp.WithDescription("Move a work item to a new status. The transition must be allowed by the lifecycle rules; completing a milestone requires all its stories to be Completed."),
		mcp.WithString("id",
			mcp.Description("Entity ID (e.g. M-001, S-002, T-010)"),
			mcp.Required(),
		),
		mcp.WithString("status",
			mcp.Description("Target status: 'Not Started', 'In Progress', 'Completed', or 'Blocked'"),
			mcp.Required(),
		),
	)
}

func setStatusHandler(repo ports.EntityRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		target := domain.Status(req.GetString("status", ""))

		cmd := commands.NewTransitionCommand(repo, id, target)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- dep_add ---

func depAddTool() mcp.Tool {
	return mcp.NewTool("dep_add",
		mcp.WithDescription("Record that one work item depends on another. The dependency must exist."),
		mcp.WithString("id",
			mcp.Description("Entity that gains the dependency"),
			mcp.Required(),
		),
		mcp.WithString("depends_on",
			mcp.Description("Entity that must complete first"),
			mcp.Required(),
		),
	)
}

func depAddHandler(repo ports.EntityRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewAddDependencyCommand(repo,
			req.GetString("id", ""), req.GetString("depends_on", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- dep_remove ---

func depRemoveTool() mcp.Tool {
	return mcp.NewTool("dep_remove",
		mcp.WithDescription("Remove a recorded dependency from a work item."),
		mcp.WithString("id",
			mcp.Description("Entity to edit"),
			mcp.Required(),
		),
		mcp.WithString("depends_on",
			mcp.Description("Dependency to remove"),
			mcp.Required(),
		),
	)
}

func depRemoveHandler(repo ports.EntityRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewRemoveDependencyCommand(repo,
			req.GetString("id", ""), req.GetString("depends_on", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- sync_dependencies ---

func syncDependenciesTool() mcp.Tool {
	return mcp.NewTool("sync_dependencies",
		mcp.WithDescription("Rewrite each work item's depends_on list from the canvas edges. The canvas is the source of truth in this direction."),
	)
}

func syncDependenciesHandler(repo ports.EntityRepository, canvas ports.CanvasStore, canvasPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSyncDependenciesCommand(repo, canvas, canvasPath)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%d updated, %d skipped (no canvas node)\n",
			len(result.Updated), result.Skipped)
		if len(result.Updated) > 0 {
			fmt.Fprintf(&sb, "updated: %s\n", strings.Join(result.Updated, ", "))
		}
		for _, e := range result.Errors {
			fmt.Fprintf(&sb, "error: %v\n", e)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- push_dependencies ---

func pushDependenciesTool() mcp.Tool {
	return mcp.NewTool("push_dependencies",
		mcp.WithDescription("Redraw canvas edges from the recorded depends_on lists. Edges not between two work items are left alone."),
	)
}

func pushDependenciesHandler(repo ports.EntityRepository, canvas ports.CanvasStore, canvasPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewPushDependenciesCommand(repo, canvas, canvasPath)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%d edges added, %d removed",
			result.EdgesAdded, result.EdgesRemoved)), nil
	}
}

// --- reconcile_indicators ---

func reconcileIndicatorsTool() mcp.Tool {
	return mcp.NewTool("reconcile_indicators",
		mcp.WithDescription("Refresh the status badge next to each work item on the canvas: create missing badges, recolor stale ones, drop orphans."),
	)
}

func reconcileIndicatorsHandler(repo ports.EntityRepository, canvas ports.CanvasStore, canvasPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewReconcileIndicatorsCommand(repo, canvas, canvasPath)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%d created, %d updated, %d removed (%d examined)",
			result.Created, result.Updated, result.Removed, result.Total)), nil
	}
}
