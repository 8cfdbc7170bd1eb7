package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"weft/internal/artifact"
	"weft/internal/driver"
	"weft/internal/treefmt"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] <entry>",
	Short: "Load a page, resolve inclusions, expand macros, and print the tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpand,
}

func init() {
	expandCmd.Flags().String("format", "markup", "output format (markup|pretty|json)")
	expandCmd.Flags().StringP("output", "o", "", "write a msgpack artifact to this file")
}

func runExpand(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	setup, err := resolveSetup(cmd)
	if err != nil {
		return err
	}

	session := driver.Load(setup.Root, args[0], setup.Opts)
	hadErrors, err := printDiagnostics(cmd, session)
	if err != nil {
		return err
	}
	if session.Tree == nil {
		return fmt.Errorf("no tree produced for %s", args[0])
	}

	switch format {
	case "markup":
		fmt.Println(treefmt.Markup(session.Tree))
	case "pretty":
		treefmt.Pretty(os.Stdout, session.Tree)
	case "json":
		if err := treefmt.JSON(os.Stdout, session.Tree); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if outPath != "" {
		data, err := artifact.Encode(session)
		if err != nil {
			return fmt.Errorf("encode artifact: %w", err)
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("write artifact: %w", err)
		}
	}

	if hadErrors {
		os.Exit(1)
	}
	return nil
}
