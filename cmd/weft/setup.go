package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"weft/internal/diag"
	"weft/internal/diagfmt"
	"weft/internal/loader"
	"weft/internal/project"
)

// loaderSetup resolves the document root and loader options from the
// manifest and the persistent flags.
type loaderSetup struct {
	Root    string
	Entries []string
	Opts    loader.Options
}

func resolveSetup(cmd *cobra.Command) (*loaderSetup, error) {
	rootFlag, err := cmd.Root().PersistentFlags().GetString("root")
	if err != nil {
		return nil, err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return nil, err
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	manifest, err := project.Find(wd)
	if err != nil {
		return nil, err
	}

	setup := &loaderSetup{
		Root:    manifest.RootDir(),
		Entries: manifest.Site.Entry,
		Opts: loader.Options{
			MaxNesting:     manifest.Loader.MaxNesting,
			MaxDiagnostics: manifest.Loader.MaxDiagnostics,
		},
	}
	if rootFlag != "" {
		setup.Root = rootFlag
	}
	if cmd.Root().PersistentFlags().Changed("max-diagnostics") && maxDiagnostics > 0 {
		setup.Opts.MaxDiagnostics = maxDiagnostics
	}
	return setup, nil
}

// printDiagnostics renders a session's bag to stderr, honouring the color
// and quiet flags. Returns whether the bag held errors.
func printDiagnostics(cmd *cobra.Command, s *loader.Session) (bool, error) {
	if s.Bag.Len() == 0 {
		return false, nil
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return false, err
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}

	s.Bag.Sort()
	if quiet {
		fmt.Fprint(os.Stderr, diag.FormatShortDiagnostics(s.Bag.Items(), s.FileSet, false))
		return s.Bag.HasErrors(), nil
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
	diagfmt.Pretty(os.Stderr, s.Bag, s.FileSet, diagfmt.PrettyOpts{
		Color:   useColor,
		Context: 2,
	})
	return s.Bag.HasErrors(), nil
}
