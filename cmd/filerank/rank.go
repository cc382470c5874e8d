package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/admica/file-rank-mcp/internal/output"
	"github.com/admica/file-rank-mcp/pkg/models"
)

func rankCmd() *cli.Command {
	return &cli.Command{
		Name:      "rank",
		Usage:     "Rank a file's importance (1 = most important, 10 = least)",
		ArgsUsage: "<file> <rank> [summary...]",
		Action:    runRankCmd,
	}
}

func runRankCmd(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("usage: filerank rank <file> <rank> [summary...]")
	}
	path := c.Args().Get(0)
	rank, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return fmt.Errorf("rank must be an integer: %q", c.Args().Get(1))
	}
	summary := strings.Join(c.Args().Slice()[2:], " ")

	st, cfg, err := openStore(c)
	if err != nil {
		return err
	}
	entry, err := st.RankFile(path, rank, summary)
	if err != nil {
		return err
	}

	engine := newEngine(st, cfg)
	defer engine.Close()
	rec, scanErr := engine.ScanOne(entry.Path)

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() != output.FormatText {
		return formatter.Output(struct {
			File         models.FileEntry        `json:"file" toon:"file"`
			Dependencies models.DependencyRecord `json:"dependencies" toon:"dependencies"`
		}{entry, rec})
	}

	formatter.Success("Ranked %s at %d", entry.Path, entry.Rank)
	if scanErr != nil {
		formatter.Warning("Dependency scan failed: %v", scanErr)
		return nil
	}
	fmt.Fprintf(formatter.Writer(), "  %d certain imports, %d possible imports\n",
		len(rec.Imports), len(rec.PossibleImports))
	return nil
}

func removeCmd() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Stop tracking a file and purge references to it",
		ArgsUsage: "<file>",
		Action:    runRemoveCmd,
	}
}

func runRemoveCmd(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("usage: filerank remove <file>")
	}
	path := c.Args().Get(0)

	st, cfg, err := openStore(c)
	if err != nil {
		return err
	}
	if err := st.DeleteFile(path); err != nil {
		return err
	}
	engine := newEngine(st, cfg)
	defer engine.Close()
	if err := engine.RemoveFile(path); err != nil {
		return err
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()
	formatter.Success("Removed %s", path)
	return nil
}

func showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a tracked file's rank, summary, and dependencies",
		ArgsUsage: "<file>",
		Action:    runShowCmd,
	}
}

func runShowCmd(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("usage: filerank show <file>")
	}
	path := c.Args().Get(0)

	st, _, err := openStore(c)
	if err != nil {
		return err
	}
	entry, ok := st.GetFile(path)
	if !ok {
		return fmt.Errorf("file not tracked: %s", path)
	}
	rec, _ := st.Record(entry.Path)

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() != output.FormatText {
		return formatter.Output(struct {
			File         models.FileEntry        `json:"file" toon:"file"`
			Dependencies models.DependencyRecord `json:"dependencies" toon:"dependencies"`
		}{entry, rec})
	}

	formatter.Info("%s", entry.Path)
	fmt.Fprintf(formatter.Writer(), "  rank:    %d\n", entry.Rank)
	fmt.Fprintf(formatter.Writer(), "  summary: %s\n", entry.Summary)
	fmt.Fprintf(formatter.Writer(), "  imports: %d certain, %d possible\n",
		len(rec.Imports), len(rec.PossibleImports))
	return nil
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all tracked files, most important first",
		Action:  runListCmd,
	}
}

func runListCmd(c *cli.Context) error {
	st, _, err := openStore(c)
	if err != nil {
		return err
	}
	return outputEntries(c, st.AllFiles(), "Tracked Files")
}

func dirCmd() *cli.Command {
	return &cli.Command{
		Name:      "dir",
		Usage:     "List tracked files under a directory",
		ArgsUsage: "<directory>",
		Action:    runDirCmd,
	}
}

func runDirCmd(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("usage: filerank dir <directory>")
	}
	st, _, err := openStore(c)
	if err != nil {
		return err
	}
	entries, err := st.FilesInDir(c.Args().Get(0))
	if err != nil {
		return err
	}
	return outputEntries(c, entries, "Tracked Files in "+c.Args().Get(0))
}

func outputEntries(c *cli.Context, entries []models.FileEntry, title string) error {
	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if len(entries) == 0 {
		formatter.Warning("No tracked files")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{strconv.Itoa(e.Rank), e.Path, e.Summary})
	}
	table := output.NewTable(title, []string{"Rank", "Path", "Summary"}, rows, entries)
	table.Footer = []string{"", fmt.Sprintf("%d files", len(entries)), ""}
	return formatter.Output(table)
}
