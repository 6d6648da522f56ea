// Package mcp exposes the transaction store as Model Context Protocol tools,
// so an assistant can read the same summary and listings the dashboard shows.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"momo-dashboard/internal/models"
	"momo-dashboard/internal/store"
)

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Store   store.Store
	Version string // version string for MCP server info
}

// NewServer creates an MCP server with the read-only dashboard tools.
func NewServer(cfg ServerConfig) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}

	s := server.NewMCPServer(
		"MoMo Dashboard",
		ver,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, false),
	)

	registerSummaryTool(s, cfg.Store)
	registerTransactionsTool(s, cfg.Store)
	registerCategoriesTool(s, cfg.Store)
	registerStatusResource(s, cfg.Store)

	return s
}

// ServeStdio runs the server over r/w until ctx is cancelled or r closes.
func ServeStdio(ctx context.Context, s *server.MCPServer, r io.Reader, w io.Writer) error {
	return server.NewStdioServer(s).Listen(ctx, r, w)
}

func registerSummaryTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("momo_summary",
		mcp.WithDescription("Transaction count and total amount (RWF) per category."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rows, err := st.Aggregate(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("summary error: %v", err)), nil
		}
		return jsonResult(rows), nil
	})
}

func registerTransactionsTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("momo_transactions",
		mcp.WithDescription("List transactions in import order. The type filter matches exactly first, then ignoring case, then as a substring."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("type",
			mcp.Description("Category filter. Empty = all transactions. Known categories: "+strings.Join(models.Categories, ", ")),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := req.GetString("type", "")

		txns, err := st.Query(ctx, filter)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("transactions error: %v", err)), nil
		}
		return jsonResult(txns), nil
	})
}

func registerCategoriesTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("momo_categories",
		mcp.WithDescription("Distinct stored category labels with their length and quoted form, for spotting stray whitespace."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		infos, err := st.Categories(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("categories error: %v", err)), nil
		}
		return jsonResult(infos), nil
	})
}

func registerStatusResource(s *server.MCPServer, st store.Store) {
	resource := mcp.NewResource(
		"momo://status",
		"Import Status",
		mcp.WithResourceDescription("Stored record count and the most recent import run."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		payload, err := st.Status(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading status: %w", err)
		}

		data, _ := json.MarshalIndent(payload, "", "  ")
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)},
		}, nil
	})
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}
