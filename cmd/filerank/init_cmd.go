package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"

	"github.com/admica/file-rank-mcp/pkg/config"
)

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a starter filerank.toml configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Value: "filerank.toml",
				Usage: "Where to write the config file",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing config file",
			},
		},
		Action: runInitCmd,
	}
}

func runInitCmd(c *cli.Context) error {
	outputPath := c.String("path")
	if _, err := os.Stat(outputPath); err == nil && !c.Bool("force") {
		return fmt.Errorf("config file %q already exists (use --force to overwrite)", outputPath)
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %q: %w", dir, err)
		}
	}

	content, err := generateDefaultConfig()
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	color.Green("Created %s", outputPath)
	fmt.Println("Edit this file to change the data file location or discovery excludes.")
	return nil
}

func generateDefaultConfig() (string, error) {
	content, err := toml.Marshal(*config.DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("marshaling config to TOML: %w", err)
	}

	var buf strings.Builder
	buf.WriteString("# filerank configuration\n")
	buf.WriteString("# Documentation: https://github.com/admica/file-rank-mcp\n\n")
	buf.Write(content)
	return buf.String(), nil
}
