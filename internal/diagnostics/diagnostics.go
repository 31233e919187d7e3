// Package diagnostics renders parser and checker errors as one-line,
// colorized CLI messages.
package diagnostics

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/waxlang/waxc/internal/checker"
	"github.com/waxlang/waxc/internal/parser"
	"github.com/waxlang/waxc/internal/token"
)

var (
	errorLabel = color.New(color.FgRed, color.Bold)
	highlight  = color.New(color.FgYellow, color.Bold)
)

// Render formats err as a colorized diagnostic line. Errors from
// internal/parser and internal/checker get taxonomy-specific
// rendering; any other error falls back to a plain message.
func Render(err error) string {
	switch e := err.(type) {
	case *parser.Error:
		return renderParseError(e)
	case *checker.Error:
		return renderTypeError(e)
	default:
		return fmt.Sprintf("%s %s", errorLabel.Sprint("error:"), err.Error())
	}
}

func renderParseError(e *parser.Error) string {
	switch e.Kind {
	case parser.UnexpectedToken:
		return fmt.Sprintf("%s unexpected token %s",
			errorLabel.Sprint("parse error:"),
			highlight.Sprint(describeToken(e.Found)))
	case parser.UnexpectedEOF:
		return fmt.Sprintf("%s unexpected end of input", errorLabel.Sprint("parse error:"))
	default:
		return fmt.Sprintf("%s %s", errorLabel.Sprint("parse error:"), e.Message)
	}
}

func renderTypeError(e *checker.Error) string {
	switch e.Kind {
	case checker.Unexpected:
		return fmt.Sprintf("%s expected %s, got %s",
			errorLabel.Sprint("type error:"),
			highlight.Sprint(e.Expected.String()),
			highlight.Sprint(e.Got.String()))
	case checker.InvalidIdentifier:
		return fmt.Sprintf("%s undefined identifier %s",
			errorLabel.Sprint("type error:"),
			highlight.Sprint(e.Name))
	default:
		typ := "<unknown>"
		if e.Type != nil {
			typ = e.Type.String()
		}
		return fmt.Sprintf("%s invalid type %s",
			errorLabel.Sprint("type error:"),
			highlight.Sprint(typ))
	}
}

func describeToken(tok token.Token) string {
	if tok.Literal != "" {
		return fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal)
	}
	return tok.Kind.String()
}
