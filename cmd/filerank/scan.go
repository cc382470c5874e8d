package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/admica/file-rank-mcp/internal/output"
	"github.com/admica/file-rank-mcp/internal/progress"
	"github.com/admica/file-rank-mcp/pkg/graph"
)

func scanCmd() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "Scan file imports and update the dependency graph",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "all",
				Aliases: []string{"a"},
				Usage:   "Rescan every tracked file",
			},
		},
		Action: runScanCmd,
	}
}

func runScanCmd(c *cli.Context) error {
	st, cfg, err := openStore(c)
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if c.Bool("all") {
		tracked := st.TrackedPaths()
		if len(tracked) == 0 {
			formatter.Warning("No tracked files")
			return nil
		}

		tracker := progress.NewTracker("Scanning dependencies...", len(tracked))
		engine := newEngine(st, cfg, graph.WithProgress(func(string) { tracker.Tick() }))
		defer engine.Close()

		summary, err := engine.ScanAll()
		tracker.FinishSuccess()
		if err != nil {
			return err
		}

		if formatter.Format() != output.FormatText {
			return formatter.Output(summary)
		}
		formatter.Success("Scanned %d files (%d skipped)", summary.Scanned, summary.Skipped)
		fmt.Fprintf(formatter.Writer(), "  %d certain imports, %d possible imports\n",
			summary.Certain, summary.Possible)
		for _, failure := range summary.Failures {
			formatter.Warning("  %s", failure)
		}
		return nil
	}

	if c.Args().Len() != 1 {
		return fmt.Errorf("usage: filerank scan <file> (or --all)")
	}

	engine := newEngine(st, cfg)
	defer engine.Close()
	rec, err := engine.ScanOne(c.Args().Get(0))
	if err != nil {
		return err
	}

	if formatter.Format() != output.FormatText {
		return formatter.Output(rec)
	}
	printRecord(formatter, rec.Imports, rec.PossibleImports)
	return nil
}

func depsCmd() *cli.Command {
	return &cli.Command{
		Name:      "deps",
		Usage:     "Show a file's recorded dependencies",
		ArgsUsage: "<file>",
		Action:    runDepsCmd,
	}
}

func runDepsCmd(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("usage: filerank deps <file>")
	}
	st, cfg, err := openStore(c)
	if err != nil {
		return err
	}
	engine := newEngine(st, cfg)
	defer engine.Close()

	rec, err := engine.Record(c.Args().Get(0))
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() != output.FormatText {
		return formatter.Output(rec)
	}
	printRecord(formatter, rec.Imports, rec.PossibleImports)
	return nil
}

func printRecord(formatter *output.Formatter, imports, possible []string) {
	w := formatter.Writer()
	if formatter.Colored() {
		color.Cyan("Certain imports (%d):", len(imports))
	} else {
		fmt.Fprintf(w, "Certain imports (%d):\n", len(imports))
	}
	for _, imp := range imports {
		fmt.Fprintf(w, "  %s\n", imp)
	}
	if formatter.Colored() {
		color.Cyan("Possible imports (%d):", len(possible))
	} else {
		fmt.Fprintf(w, "Possible imports (%d):\n", len(possible))
	}
	for _, p := range possible {
		fmt.Fprintf(w, "  %s\n", p)
	}
}

func dependentsCmd() *cli.Command {
	return &cli.Command{
		Name:      "dependents",
		Aliases:   []string{"rdeps"},
		Usage:     "List files whose imports include the given file",
		ArgsUsage: "<file>",
		Action:    runDependentsCmd,
	}
}

func runDependentsCmd(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("usage: filerank dependents <file>")
	}
	st, cfg, err := openStore(c)
	if err != nil {
		return err
	}
	engine := newEngine(st, cfg)
	defer engine.Close()

	dependents, err := engine.Dependents(c.Args().Get(0))
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() != output.FormatText {
		return formatter.Output(struct {
			Dependents []string `json:"dependents" toon:"dependents"`
			Total      int      `json:"total" toon:"total"`
		}{dependents, len(dependents)})
	}

	if len(dependents) == 0 {
		formatter.Warning("No tracked file imports %s", c.Args().Get(0))
		return nil
	}
	formatter.Info("Files that depend on %s:", c.Args().Get(0))
	for _, dep := range dependents {
		fmt.Fprintf(formatter.Writer(), "  → %s\n", dep)
	}
	return nil
}

func treeCmd() *cli.Command {
	return &cli.Command{
		Name:      "tree",
		Usage:     "Render a file's dependency tree",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "depth",
				Usage: "Maximum tree depth (default from config)",
			},
		},
		Action: runTreeCmd,
	}
}

func runTreeCmd(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("usage: filerank tree <file>")
	}
	st, cfg, err := openStore(c)
	if err != nil {
		return err
	}
	engine := newEngine(st, cfg)
	defer engine.Close()

	viz, err := engine.Visualize(c.Args().Get(0), c.Int("depth"))
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() != output.FormatText {
		return formatter.Output(viz)
	}

	w := formatter.Writer()
	for _, line := range viz.Tree {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
	if len(viz.Dependents) > 0 {
		formatter.Info("Files that depend on this file:")
		for _, line := range viz.Dependents {
			fmt.Fprintf(w, "  %s\n", line)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Stats: %d certain, %d possible, %d dependents (depth %d)\n",
		viz.Stats.CertainDependencies, viz.Stats.PossibleImports,
		viz.Stats.DependentsCount, viz.Stats.Depth)
	return nil
}

func cyclesCmd() *cli.Command {
	return &cli.Command{
		Name:   "cycles",
		Usage:  "Find groups of files that import each other",
		Action: runCyclesCmd,
	}
}

func runCyclesCmd(c *cli.Context) error {
	st, cfg, err := openStore(c)
	if err != nil {
		return err
	}
	engine := newEngine(st, cfg)
	defer engine.Close()
	cycles := engine.Cycles()

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() != output.FormatText {
		return formatter.Output(struct {
			Cycles [][]string `json:"cycles" toon:"cycles"`
			Total  int        `json:"total" toon:"total"`
		}{cycles, len(cycles)})
	}

	if len(cycles) == 0 {
		formatter.Success("No import cycles")
		return nil
	}
	for i, cycle := range cycles {
		formatter.Warning("Cycle %d (%d files):", i+1, len(cycle))
		fmt.Fprintf(formatter.Writer(), "  %s\n", strings.Join(cycle, "\n  "))
	}
	return nil
}
