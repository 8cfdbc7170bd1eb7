package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"weft/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [entry...]",
	Short: "Load pages and report diagnostics",
	Long:  `Check loads the given entry pages (or the manifest's entries, or every page under the document root) and prints their diagnostics`,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "max parallel loads (0=auto)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	setup, err := resolveSetup(cmd)
	if err != nil {
		return err
	}

	entries := args
	if len(entries) == 0 {
		entries = setup.Entries
	}
	if len(entries) == 0 {
		entries, err = driver.ListPages(setup.Root)
		if err != nil {
			return fmt.Errorf("failed to list pages: %w", err)
		}
	}
	if len(entries) == 0 {
		return fmt.Errorf("nothing to check under %s", setup.Root)
	}

	results, err := driver.LoadAll(cmd.Context(), setup.Root, entries, setup.Opts, jobs)
	if err != nil {
		return err
	}

	failed := false
	for _, r := range results {
		hadErrors, err := printDiagnostics(cmd, r.Session)
		if err != nil {
			return err
		}
		failed = failed || hadErrors || r.Session.Tree == nil
	}
	if failed {
		os.Exit(1)
	}
	return nil
}
