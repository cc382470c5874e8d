package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/admica/file-rank-mcp/pkg/config"
	"github.com/admica/file-rank-mcp/pkg/graph"
	"github.com/admica/file-rank-mcp/pkg/store"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func main() {
	app := &cli.App{
		Name:    "filerank",
		Usage:   "Rank important files and map their dependencies",
		Version: version,
		Description: `Filerank keeps a ranked list of the files that matter in a codebase
(1 = most important, 10 = least) and builds a dependency graph from
language-aware import scanning.

Supports: Python, JavaScript, TypeScript, C, C++, Rust`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"FILERANK_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path to the JSON data file (default from config)",
				EnvVars: []string{"FILERANK_DATA"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
		},
		Commands: []*cli.Command{
			rankCmd(),
			removeCmd(),
			showCmd(),
			listCmd(),
			dirCmd(),
			scanCmd(),
			depsCmd(),
			dependentsCmd(),
			treeCmd(),
			cyclesCmd(),
			discoverCmd(),
			initCmd(),
			mcpCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// loadConfig reads the configured or default config file.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
		return cfg, nil
	}
	return config.LoadOrDefault(), nil
}

// openStore opens the data file, warning when corrupt data was reset.
func openStore(c *cli.Context) (*store.Store, *config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	dataPath := cfg.DataFile
	if p := c.String("data"); p != "" {
		dataPath = p
	}

	st, err := store.Open(dataPath)
	if err != nil {
		return nil, nil, err
	}
	if issue := st.LoadIssue(); issue != nil {
		color.Yellow("Warning: starting with empty data (%v)", issue)
	}
	if c.Bool("verbose") {
		fmt.Fprintf(os.Stderr, "data file: %s\n", st.Path())
	}
	return st, cfg, nil
}

// newEngine builds an engine over the store with config defaults applied.
func newEngine(st *store.Store, cfg *config.Config, opts ...graph.Option) *graph.Engine {
	opts = append([]graph.Option{graph.WithMaxDepth(cfg.MaxDepth)}, opts...)
	return graph.New(st, st, opts...)
}
