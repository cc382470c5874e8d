package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/admica/file-rank-mcp/internal/output"
	"github.com/admica/file-rank-mcp/pkg/scanner"
)

func discoverCmd() *cli.Command {
	return &cli.Command{
		Name:      "discover",
		Usage:     "Walk a directory for rankable source files",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "unranked",
				Usage: "Show only files that are not tracked yet",
			},
		},
		Action: runDiscoverCmd,
	}
}

func runDiscoverCmd(c *cli.Context) error {
	root := "."
	if c.Args().Len() > 0 {
		root = c.Args().Get(0)
	}

	st, cfg, err := openStore(c)
	if err != nil {
		return err
	}

	scan := scanner.New(cfg)
	candidates, err := scan.Discover(root, func(path string) bool {
		_, ok := st.GetFile(path)
		return ok
	})
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}

	if c.Bool("unranked") {
		kept := candidates[:0]
		for _, cand := range candidates {
			if !cand.Ranked {
				kept = append(kept, cand)
			}
		}
		candidates = kept
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if len(candidates) == 0 {
		formatter.Warning("No source files found")
		return nil
	}

	rows := make([][]string, 0, len(candidates))
	ranked := 0
	for _, cand := range candidates {
		mark := ""
		if cand.Ranked {
			mark = "✓"
			ranked++
		}
		rows = append(rows, []string{cand.Path, cand.Language, strconv.Itoa(cand.Lines), mark})
	}
	table := output.NewTable("Discovered Files", []string{"Path", "Language", "Lines", "Ranked"}, rows, candidates)
	table.Footer = []string{fmt.Sprintf("%d files", len(candidates)), "", "", fmt.Sprintf("%d ranked", ranked)}
	return formatter.Output(table)
}
