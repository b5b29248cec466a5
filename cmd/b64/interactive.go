package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-base64/host"
	"github.com/wippyai/wasm-base64/runtime"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func newInteractiveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Call b64 host functions from a terminal UI",
		Long: `Pick a b64 host function, fill in its arguments and call it through a guest
boundary. Handles returned by one call can be passed to the next. Sequence
arguments are comma-separated; "-" marks a missing element.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(newInteractiveModel(opts.log.Named("interactive")), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

type interactiveModel struct {
	err      error
	log      *zap.Logger
	rt       *runtime.Runtime
	shim     *runtime.Shim
	result   string
	funcs    []*host.Function
	inputs   []textinput.Model
	history  []string
	selected int
	focusIdx int
	state    modelState
}

func newInteractiveModel(log *zap.Logger) *interactiveModel {
	return &interactiveModel{
		log:   log,
		state: stateSelectFunc,
	}
}

type loadedMsg struct {
	err  error
	rt   *runtime.Runtime
	shim *runtime.Shim
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.load
}

func (m *interactiveModel) load() tea.Msg {
	ctx := context.Background()

	rt, err := runtime.New(ctx, runtime.WithLogger(m.log))
	if err != nil {
		return loadedMsg{err: err}
	}
	s, err := rt.Shim(ctx)
	if err != nil {
		rt.Close(ctx)
		return loadedMsg{err: err}
	}
	return loadedMsg{rt: rt, shim: s}
}

func (m *interactiveModel) close() {
	ctx := context.Background()
	if m.shim != nil {
		m.shim.Close(ctx)
	}
	if m.rt != nil {
		m.rt.Close(ctx)
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.close()
			return m, tea.Quit

		case "q":
			if m.state != stateInputArgs {
				m.close()
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.funcs)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				if len(m.funcs) == 0 {
					return m, nil
				}
				m.prepareInputs()
				m.state = stateInputArgs
				return m, nil

			case stateInputArgs:
				return m, m.callFunction

			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}

		case "tab", "shift+tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				step := 1
				if msg.String() == "shift+tab" {
					step = len(m.inputs) - 1
				}
				m.focusIdx = (m.focusIdx + step) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectFunc
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rt = msg.rt
		m.shim = msg.shim
		m.funcs = msg.rt.Binding().Functions()

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
		if msg.err == nil {
			m.history = append(m.history, m.funcs[m.selected].Name+" => "+msg.result)
			if len(m.history) > 5 {
				m.history = m.history[len(m.history)-5:]
			}
		}
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	f := m.funcs[m.selected]
	m.inputs = make([]textinput.Model, len(f.Params))
	for i, p := range f.Params {
		ti := textinput.New()
		ti.Placeholder = placeholder(p)
		ti.Prompt = p.Name + ": "
		ti.Width = 48
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func placeholder(p host.Param) string {
	switch p.Kind {
	case host.ParamHandle:
		return "handle (empty = standard)"
	case host.ParamSequence:
		return "a,b,-,c"
	case host.ParamBool:
		return "true/false"
	default:
		return host.TypeString(p.Type)
	}
}

func (m *interactiveModel) callFunction() tea.Msg {
	if m.shim == nil {
		return callResultMsg{err: fmt.Errorf("binding not loaded")}
	}

	f := m.funcs[m.selected]
	text := make([]string, len(m.inputs))
	for i, input := range m.inputs {
		text[i] = unescape(input.Value())
	}

	args, err := runtime.ParseArgs(f, text)
	if err != nil {
		return callResultMsg{err: err}
	}

	res, err := m.shim.Invoke(context.Background(), f.Name, args...)
	if err != nil {
		return callResultMsg{err: err}
	}
	if res.Err != nil {
		return callResultMsg{err: res.Err}
	}
	return callResultMsg{result: runtime.FormatResult(f, res)}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if len(m.funcs) == 0 {
		return "Loading binding..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("b64 host binding"))
	if m.shim != nil {
		fmt.Fprintf(&b, " %d live handle(s)", m.shim.Table().Len())
	}
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Select a function to call:\n\n")
		for i, f := range m.funcs {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + f.Signature()))
			} else {
				b.WriteString("  " + formatFunc(f))
			}
			b.WriteString("\n")
		}
		if len(m.history) > 0 {
			b.WriteString("\nRecent:\n")
			for _, h := range m.history {
				b.WriteString(helpStyle.Render("  " + h))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • q quit"))

	case stateInputArgs:
		f := m.funcs[m.selected]
		fmt.Fprintf(&b, "Calling %s\n", funcStyle.Render(f.Name))
		if f.Doc != "" {
			b.WriteString(helpStyle.Render(f.Doc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(host.TypeString(f.Params[i].Type)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • esc back"))

	case stateShowResult:
		f := m.funcs[m.selected]
		fmt.Fprintf(&b, "Result of %s:\n\n", funcStyle.Render(f.Name))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func formatFunc(f *host.Function) string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Name + ": " + typeStyle.Render(host.TypeString(p.Type))
	}
	result := ""
	if f.ResultType != nil {
		result = " -> " + typeStyle.Render(host.TypeString(f.ResultType))
	}
	return funcStyle.Render(f.Name) + "(" + strings.Join(params, ", ") + ")" + result
}
