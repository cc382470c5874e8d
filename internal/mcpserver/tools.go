package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/admica/file-rank-mcp/pkg/graph"
	"github.com/admica/file-rank-mcp/pkg/models"
)

// Tool input structures

type RankFileInput struct {
	FilePath string `json:"file_path" jsonschema:"Path of the file to rank."`
	Rank     int    `json:"rank" jsonschema:"Importance rank from 1 (most important) to 10 (least important)."`
	Summary  string `json:"summary,omitempty" jsonschema:"One or two sentences describing what the file does."`
	Format   string `json:"format,omitempty" jsonschema:"Output format: toon (default) or json."`
}

type FileInput struct {
	FilePath string `json:"file_path" jsonschema:"Path of the file."`
	Format   string `json:"format,omitempty" jsonschema:"Output format: toon (default) or json."`
}

type DirInput struct {
	Directory string `json:"directory" jsonschema:"Directory whose tracked files to list (recursive)."`
	Format    string `json:"format,omitempty" jsonschema:"Output format: toon (default) or json."`
}

type ListInput struct {
	Format string `json:"format,omitempty" jsonschema:"Output format: toon (default) or json."`
}

type VisualizeInput struct {
	FilePath string `json:"file_path" jsonschema:"Root file of the dependency tree."`
	MaxDepth int    `json:"max_depth,omitempty" jsonschema:"Maximum tree depth. Default 3."`
	Format   string `json:"format,omitempty" jsonschema:"Output format: toon (default) or json."`
}

// Result helpers

func formatOutput(data any, format string) (string, error) {
	if format == "json" {
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func toolResult(data any, format string) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

// Tool handlers

func (s *Server) handleRankFile(ctx context.Context, req *mcp.CallToolRequest, input RankFileInput) (*mcp.CallToolResult, any, error) {
	entry, err := s.store.RankFile(input.FilePath, input.Rank, input.Summary)
	if err != nil {
		return toolError(err.Error())
	}

	// Refresh the new file's record; a failed scan never fails the ranking.
	out := struct {
		File         models.FileEntry        `json:"file" toon:"file"`
		Dependencies models.DependencyRecord `json:"dependencies" toon:"dependencies"`
	}{File: entry}
	if rec, err := s.engine.ScanOne(entry.Path); err == nil {
		out.Dependencies = rec
	}
	return toolResult(out, input.Format)
}

func (s *Server) handleDeleteFile(ctx context.Context, req *mcp.CallToolRequest, input FileInput) (*mcp.CallToolResult, any, error) {
	if err := s.store.DeleteFile(input.FilePath); err != nil {
		return toolError(err.Error())
	}
	if err := s.engine.RemoveFile(input.FilePath); err != nil {
		return toolError(err.Error())
	}
	out := struct {
		Removed string `json:"removed" toon:"removed"`
	}{input.FilePath}
	return toolResult(out, input.Format)
}

func (s *Server) handleGetFile(ctx context.Context, req *mcp.CallToolRequest, input FileInput) (*mcp.CallToolResult, any, error) {
	entry, ok := s.store.GetFile(input.FilePath)
	if !ok {
		return toolError("file not tracked: " + input.FilePath)
	}
	return toolResult(entry, input.Format)
}

func (s *Server) handleGetAllFiles(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, any, error) {
	out := struct {
		Files []models.FileEntry `json:"files" toon:"files"`
		Total int                `json:"total" toon:"total"`
	}{}
	out.Files = s.store.AllFiles()
	out.Total = len(out.Files)
	return toolResult(out, input.Format)
}

func (s *Server) handleGetFilesByDir(ctx context.Context, req *mcp.CallToolRequest, input DirInput) (*mcp.CallToolResult, any, error) {
	files, err := s.store.FilesInDir(input.Directory)
	if err != nil {
		return toolError(err.Error())
	}
	out := struct {
		Directory string             `json:"directory" toon:"directory"`
		Files     []models.FileEntry `json:"files" toon:"files"`
		Total     int                `json:"total" toon:"total"`
	}{input.Directory, files, len(files)}
	return toolResult(out, input.Format)
}

func (s *Server) handleUpdateDependencies(ctx context.Context, req *mcp.CallToolRequest, input FileInput) (*mcp.CallToolResult, any, error) {
	rec, err := s.engine.ScanOne(input.FilePath)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(rec, input.Format)
}

func (s *Server) handleScanAllDependencies(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, any, error) {
	summary, err := s.engine.ScanAll()
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(summary, input.Format)
}

func (s *Server) handleGetDependencies(ctx context.Context, req *mcp.CallToolRequest, input FileInput) (*mcp.CallToolResult, any, error) {
	rec, err := s.engine.Record(input.FilePath)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(rec, input.Format)
}

func (s *Server) handleGetDependents(ctx context.Context, req *mcp.CallToolRequest, input FileInput) (*mcp.CallToolResult, any, error) {
	dependents, err := s.engine.Dependents(input.FilePath)
	if err != nil {
		return toolError(err.Error())
	}
	out := struct {
		FilePath   string   `json:"file_path" toon:"file_path"`
		Dependents []string `json:"dependents" toon:"dependents"`
		Total      int      `json:"total" toon:"total"`
	}{input.FilePath, dependents, len(dependents)}
	return toolResult(out, input.Format)
}

func (s *Server) handleVisualizeDependencies(ctx context.Context, req *mcp.CallToolRequest, input VisualizeInput) (*mcp.CallToolResult, any, error) {
	viz, err := s.engine.Visualize(input.FilePath, input.MaxDepth)
	if err != nil {
		var notFound *graph.NotFoundError
		if errors.As(err, &notFound) {
			return toolError(notFound.Error())
		}
		return toolError(err.Error())
	}
	return toolResult(viz, input.Format)
}

func (s *Server) handleFindCycles(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, any, error) {
	cycles := s.engine.Cycles()
	out := struct {
		Cycles [][]string `json:"cycles" toon:"cycles"`
		Total  int        `json:"total" toon:"total"`
	}{cycles, len(cycles)}
	return toolResult(out, input.Format)
}

func (s *Server) handleGenerateSummary(ctx context.Context, req *mcp.CallToolRequest, input FileInput) (*mcp.CallToolResult, any, error) {
	info, err := os.Stat(input.FilePath)
	if err != nil || info.IsDir() {
		return toolError("file not found: " + input.FilePath)
	}
	data, err := os.ReadFile(input.FilePath)
	if err != nil {
		return toolError(err.Error())
	}

	lines := bytes.Count(data, []byte{'\n'})
	out := struct {
		FilePath    string `json:"file_path" toon:"file_path"`
		SizeBytes   int64  `json:"size_bytes" toon:"size_bytes"`
		Lines       int    `json:"lines" toon:"lines"`
		Instruction string `json:"instruction" toon:"instruction"`
	}{
		FilePath:  input.FilePath,
		SizeBytes: info.Size(),
		Lines:     lines,
		Instruction: fmt.Sprintf(
			"Read %s and call rank_file with a one or two sentence summary of what it does.",
			input.FilePath),
	}
	return toolResult(out, input.Format)
}
