// Command waxc-repl is an interactive terminal UI that feeds each
// entered line through the lexer, parser, and type-checker and shows
// the resulting tokens, parsed statement, and inferred type (or the
// first error) live.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	p := tea.NewProgram(newModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
