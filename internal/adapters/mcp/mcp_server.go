// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/dayblocks/internal/domain"
	"github.com/xvierd/dayblocks/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server   *server.MCPServer
	provider ports.PlanProvider
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(provider ports.PlanProvider, version string) *Server {
	s := &Server{
		provider: provider,
	}
	if version == "" {
		version = "dev"
	}

	s.server = server.NewMCPServer(
		"dayblocks",
		version,
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_plan",
			mcp.WithDescription("Get the current day plan: the visible 12-hour window, every block with its start, end and duration, and the planned total"),
		),
		s.handleGetPlan,
	)

	addBlockTool := mcp.NewTool(
		"add_block",
		mcp.WithDescription("Add a time block to the plan"),
		mcp.WithString(
			"name",
			mcp.Description("Name of the block (default: Block)"),
		),
		mcp.WithString(
			"start",
			mcp.Description("Start time as H or H:MM, inside the visible window"),
		),
		mcp.WithNumber(
			"hours",
			mcp.Description("Length in hours"),
		),
	)
	s.server.AddTool(addBlockTool, s.handleAddBlock)

	renameBlockTool := mcp.NewTool(
		"rename_block",
		mcp.WithDescription("Rename a block"),
		mcp.WithString(
			"block",
			mcp.Required(),
			mcp.Description("Block ID, 1-based position or name"),
		),
		mcp.WithString(
			"name",
			mcp.Required(),
			mcp.Description("The new name"),
		),
	)
	s.server.AddTool(renameBlockTool, s.handleRenameBlock)

	deleteBlockTool := mcp.NewTool(
		"delete_block",
		mcp.WithDescription("Remove a block from the plan"),
		mcp.WithString(
			"block",
			mcp.Required(),
			mcp.Description("Block ID, 1-based position or name"),
		),
	)
	s.server.AddTool(deleteBlockTool, s.handleDeleteBlock)

	setTimeTool := mcp.NewTool(
		"set_block_time",
		mcp.WithDescription("Set a block's start and/or end clock time. Changing the start keeps the end time"),
		mcp.WithString(
			"block",
			mcp.Required(),
			mcp.Description("Block ID, 1-based position or name"),
		),
		mcp.WithString(
			"start",
			mcp.Description("New start time as H or H:MM"),
		),
		mcp.WithString(
			"end",
			mcp.Description("New end time as H or H:MM"),
		),
	)
	s.server.AddTool(setTimeTool, s.handleSetBlockTime)

	setDurationTool := mcp.NewTool(
		"set_block_duration",
		mcp.WithDescription("Set a block's length in hours, keeping its start"),
		mcp.WithString(
			"block",
			mcp.Required(),
			mcp.Description("Block ID, 1-based position or name"),
		),
		mcp.WithString(
			"hours",
			mcp.Required(),
			mcp.Description("Length in hours, e.g. 1.5"),
		),
	)
	s.server.AddTool(setDurationTool, s.handleSetBlockDuration)

	setViewStartTool := mcp.NewTool(
		"set_view_start",
		mcp.WithDescription("Pan the visible window to start at a clock time, snapped to the half hour. Blocks keep their position in the window"),
		mcp.WithString(
			"time",
			mcp.Required(),
			mcp.Description("Window start as H or H:MM"),
		),
	)
	s.server.AddTool(setViewStartTool, s.handleSetViewStart)

	findBlocksTool := mcp.NewTool(
		"find_blocks",
		mcp.WithDescription("Fuzzy-search blocks by name"),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("Search text"),
		),
	)
	s.server.AddTool(findBlocksTool, s.handleFindBlocks)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// handleGetPlan handles the get_plan tool.
func (s *Server) handleGetPlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.provider.Snapshot(ctx).Document())
}

// handleAddBlock handles the add_block tool.
func (s *Server) handleAddBlock(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	start := request.GetString("start", "")

	// JSON numbers arrive as float64; accept a numeric string as well.
	hours := request.GetFloat("hours", 0)
	if hours == 0 {
		if raw := request.GetString("hours", ""); raw != "" {
			h, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid hours %q", raw)), nil
			}
			hours = h
		}
	}
	if hours < 0 {
		return mcp.NewToolResultError("hours must be positive"), nil
	}

	b, err := s.provider.AddBlock(ctx, name, start, hours)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add block: %v", err)), nil
	}
	return s.blockResult(ctx, b)
}

// handleRenameBlock handles the rename_block tool.
func (s *Server) handleRenameBlock(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := request.RequireString("block")
	if err != nil {
		return mcp.NewToolResultError("block is required: " + err.Error()), nil
	}
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required: " + err.Error()), nil
	}

	b, err := s.provider.RenameBlock(ctx, ref, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to rename block: %v", err)), nil
	}
	return s.blockResult(ctx, b)
}

// handleDeleteBlock handles the delete_block tool.
func (s *Server) handleDeleteBlock(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := request.RequireString("block")
	if err != nil {
		return mcp.NewToolResultError("block is required: " + err.Error()), nil
	}

	if err := s.provider.DeleteBlock(ctx, ref); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete block: %v", err)), nil
	}

	view := s.provider.Snapshot(ctx)
	return jsonResult(map[string]interface{}{
		"deleted":     ref,
		"blocks_left": len(view.Blocks),
		"total_hours": view.TotalHours,
	})
}

// handleSetBlockTime handles the set_block_time tool.
func (s *Server) handleSetBlockTime(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := request.RequireString("block")
	if err != nil {
		return mcp.NewToolResultError("block is required: " + err.Error()), nil
	}
	start := request.GetString("start", "")
	end := request.GetString("end", "")

	b, err := s.provider.SetBlockTime(ctx, ref, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set block time: %v", err)), nil
	}
	return s.blockResult(ctx, b)
}

// handleSetBlockDuration handles the set_block_duration tool.
func (s *Server) handleSetBlockDuration(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := request.RequireString("block")
	if err != nil {
		return mcp.NewToolResultError("block is required: " + err.Error()), nil
	}

	hours := request.GetString("hours", "")
	if hours == "" {
		if h := request.GetFloat("hours", 0); h != 0 {
			hours = strconv.FormatFloat(h, 'f', -1, 64)
		}
	}
	if hours == "" {
		return mcp.NewToolResultError("hours is required"), nil
	}

	b, err := s.provider.SetBlockDuration(ctx, ref, hours)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set block duration: %v", err)), nil
	}
	return s.blockResult(ctx, b)
}

// handleSetViewStart handles the set_view_start tool.
func (s *Server) handleSetViewStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := request.RequireString("time")
	if err != nil {
		return mcp.NewToolResultError("time is required: " + err.Error()), nil
	}

	if _, err := s.provider.SetViewStart(ctx, t); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set view start: %v", err)), nil
	}
	return jsonResult(s.provider.Snapshot(ctx).Document())
}

// handleFindBlocks handles the find_blocks tool.
func (s *Server) handleFindBlocks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required: " + err.Error()), nil
	}

	matches := s.provider.FindBlocks(ctx, query)
	view := s.provider.Snapshot(ctx)

	var blocks []interface{}
	for _, b := range matches {
		if bv, ok := view.Block(b.ID); ok {
			blocks = append(blocks, bv.Document())
		}
	}

	return jsonResult(map[string]interface{}{
		"query":       query,
		"blocks":      blocks,
		"total_count": len(blocks),
	})
}

// blockResult renders one block as it appears in the current view.
func (s *Server) blockResult(ctx context.Context, b domain.Block) (*mcp.CallToolResult, error) {
	bv, ok := s.provider.Snapshot(ctx).Block(b.ID)
	if !ok {
		return nil, errors.New("block disappeared from the plan")
	}
	return jsonResult(bv.Document())
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
