package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/waxlang/waxc/internal/lexer"
	"github.com/waxlang/waxc/internal/token"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Dump the raw token stream of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	lex := lexer.New(string(src))
	out := cmd.OutOrStdout()
	for {
		tok := lex.Next()
		fmt.Fprintln(out, tok)
		if tok.Kind == token.EOF {
			return nil
		}
	}
}
