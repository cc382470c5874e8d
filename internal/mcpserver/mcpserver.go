// Package mcpserver exposes the ranking store and dependency graph as MCP
// tools over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/admica/file-rank-mcp/pkg/config"
	"github.com/admica/file-rank-mcp/pkg/graph"
	"github.com/admica/file-rank-mcp/pkg/store"
)

// Server wraps the MCP server and registers all filerank tools.
type Server struct {
	server *mcp.Server
	store  *store.Store
	engine *graph.Engine
}

// NewServer creates an MCP server bound to a data store.
func NewServer(version string, st *store.Store, cfg *config.Config) *Server {
	if version == "" {
		version = "dev"
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "file-rank-mcp",
			Version: version,
		},
		nil,
	)

	s := &Server{
		server: server,
		store:  st,
		engine: graph.New(st, st, graph.WithMaxDepth(cfg.MaxDepth)),
	}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	defer s.engine.Close()
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools adds the ranking and dependency tools to the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rank_file",
		Description: describeRankFile(),
	}, s.handleRankFile)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_file",
		Description: describeDeleteFile(),
	}, s.handleDeleteFile)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_file",
		Description: describeGetFile(),
	}, s.handleGetFile)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_all_files",
		Description: describeGetAllFiles(),
	}, s.handleGetAllFiles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_files_by_dir",
		Description: describeGetFilesByDir(),
	}, s.handleGetFilesByDir)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_dependencies",
		Description: describeUpdateDependencies(),
	}, s.handleUpdateDependencies)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "scan_all_dependencies",
		Description: describeScanAllDependencies(),
	}, s.handleScanAllDependencies)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_dependencies",
		Description: describeGetDependencies(),
	}, s.handleGetDependencies)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_dependents",
		Description: describeGetDependents(),
	}, s.handleGetDependents)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "visualize_dependencies",
		Description: describeVisualizeDependencies(),
	}, s.handleVisualizeDependencies)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_cycles",
		Description: describeFindCycles(),
	}, s.handleFindCycles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_summary",
		Description: describeGenerateSummary(),
	}, s.handleGenerateSummary)
}
