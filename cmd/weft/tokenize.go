package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"weft/internal/lexer"
	"weft/internal/source"
	"weft/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file>",
	Short: "Dump the token stream of one page source (debug aid)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	lx := lexer.New(fs.Get(id), lexer.Options{})
	for {
		tok := lx.Next()
		if tok.Text != "" {
			fmt.Printf("%-14s %s %q\n", tok.Kind, tok.Span, tok.Text)
		} else {
			fmt.Printf("%-14s %s\n", tok.Kind, tok.Span)
		}
		if tok.Kind == token.EOF {
			return nil
		}
	}
}
