package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"golang.org/x/term"

	"github.com/waxlang/waxc/internal/checker"
	"github.com/waxlang/waxc/internal/diagnostics"
	"github.com/waxlang/waxc/internal/lexer"
	"github.com/waxlang/waxc/internal/parser"
	"github.com/waxlang/waxc/internal/token"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// model is the REPL's bubbletea state: a single-line text input plus
// the three rendered panes produced by the last evaluated line. The
// type-checker's scope persists across lines so that `let`/`type`
// declarations accumulate, the way a real REPL session would.
type model struct {
	input  textinput.Model
	scope  *checker.Scope
	width  int
	height int

	tokens string
	ast    string
	result string
}

func newModel() *model {
	ti := textinput.New()
	ti.Placeholder = "let x: int = 1 + 2;"
	ti.Prompt = "waxc> "
	ti.Focus()

	w, h, err := term.GetSize(0)
	if err != nil || w <= 0 {
		w, h = 80, 24
	}

	return &model{
		input:  ti,
		scope:  checker.NewScope(nil),
		width:  w,
		height: h,
	}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			m.evaluate(m.input.Value())
			m.input.SetValue("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) evaluate(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}

	var toks []string
	lex := lexer.New(line)
	for {
		t := lex.Next()
		toks = append(toks, t.String())
		if t.Kind == token.EOF {
			break
		}
	}
	m.tokens = strings.Join(toks, "\n")

	prog, err := parser.ParseProgram(line)
	if err != nil {
		m.ast = ""
		m.result = errorStyle.Render(diagnostics.Render(err))
		return
	}
	m.ast = spew.Sdump(prog)

	ret, err := checker.CheckBlock(m.scope, prog)
	if err != nil {
		m.result = errorStyle.Render(diagnostics.Render(err))
		return
	}
	m.result = okStyle.Render(fmt.Sprintf("ok, block type: %s", ret.String()))
}

func (m *model) View() string {
	header := titleStyle.Render("waxc repl") + "\n\n" + m.input.View() + "\n\n"

	paneWidth := m.width/3 - 4
	if paneWidth < 16 {
		paneWidth = 16
	}

	tokensPane := renderPane("tokens", m.tokens, paneWidth)
	astPane := renderPane("ast", m.ast, paneWidth)
	resultPane := renderPane("type / error", m.result, paneWidth)

	body := lipgloss.JoinHorizontal(lipgloss.Top, tokensPane, astPane, resultPane)
	footer := "\n" + helpStyle.Render("enter evaluate • esc/ctrl+c quit")

	return header + body + footer
}

func renderPane(title, content string, width int) string {
	if content == "" {
		content = helpStyle.Render("(empty)")
	}
	body := paneTitleStyle.Render(title) + "\n" + content
	return paneStyle.Width(width).Render(body)
}
