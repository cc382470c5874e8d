package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/admica/file-rank-mcp/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that lets LLMs rank files,
scan imports, and query the dependency graph.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "filerank": {
        "command": "filerank",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - rank_file               Assign rank 1-10 and a summary
  - delete_file             Stop tracking a file
  - get_file                Rank and summary of one file
  - get_all_files           Every tracked file
  - get_files_by_dir        Tracked files under a directory
  - update_dependencies     Rescan one file's imports
  - scan_all_dependencies   Rebuild the whole dependency graph
  - get_dependencies        A file's certain and possible imports
  - get_dependents          Files that import a file
  - visualize_dependencies  ASCII dependency tree
  - find_cycles             Mutual-import groups
  - generate_summary        Size/line stats plus a summarize instruction`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "manifest",
				Usage: "Print the server.json manifest and exit",
			},
		},
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	if c.Bool("manifest") {
		manifest, err := mcpserver.GenerateManifest(version)
		if err != nil {
			return err
		}
		fmt.Println(string(manifest))
		return nil
	}

	st, cfg, err := openStore(c)
	if err != nil {
		return err
	}
	server := mcpserver.NewServer(version, st, cfg)
	return server.Run(context.Background())
}
