package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/REDFOX1899/gpt-cmd/internal/candidate"
)

// ErrNoCandidates is returned when Select is called with an empty list
var ErrNoCandidates = errors.New("no candidates to select from")

// Selector lets the user pick one candidate. ok is false when the user
// cancelled.
type Selector interface {
	Select(ctx context.Context, candidates []string) (selected string, ok bool, err error)
}

// Action represents the user's chosen action
type Action int

const (
	ActionNone Action = iota
	ActionSelect
	ActionCancel
)

// Result contains the menu result
type Result struct {
	Action  Action
	Command string // Chosen candidate, or the edited text
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedCommandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("226"))

	commentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	inputPromptStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	keyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

// Model is the Bubble Tea model of the single-choice menu
type Model struct {
	candidates []string
	cursor     int

	editMode  bool
	textInput textinput.Model

	result Result
	done   bool
	width  int
}

// NewModel creates a menu over candidates with the first one highlighted
func NewModel(candidates []string) Model {
	ti := textinput.New()
	ti.CharLimit = 1000
	ti.Width = 76

	return Model{
		candidates: candidates,
		textInput:  ti,
		width:      80,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.textInput.Width = max(msg.Width-4, 10)
		return m, nil

	case tea.KeyMsg:
		if m.editMode {
			switch msg.String() {
			case "enter":
				edited := m.textInput.Value()
				if strings.TrimSpace(edited) == "" {
					return m, nil
				}
				return m.finish(ActionSelect, edited)
			case "esc":
				m.editMode = false
				m.textInput.Blur()
				return m, nil
			case "ctrl+c":
				return m.finish(ActionCancel, "")
			default:
				var cmd tea.Cmd
				m.textInput, cmd = m.textInput.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "up", "k", "shift+tab":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j", "tab":
			if m.cursor < len(m.candidates)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.candidates) - 1
		case "enter":
			return m.finish(ActionSelect, m.candidates[m.cursor])
		case "e", "E":
			m.editMode = true
			m.textInput.SetValue(m.candidates[m.cursor])
			m.textInput.CursorEnd()
			return m, m.textInput.Focus()
		case "esc", "q", "Q", "ctrl+c":
			return m.finish(ActionCancel, "")
		}
	}

	return m, nil
}

func (m Model) finish(action Action, command string) (tea.Model, tea.Cmd) {
	m.result = Result{Action: action, Command: command}
	m.done = true
	return m, tea.Quit
}

// View renders the UI
func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Select a command"))
	b.WriteString("\n")

	for i, c := range m.candidates {
		command, comment := candidate.Split(c)

		prefix := "  "
		style := commandStyle
		if i == m.cursor {
			prefix = cursorStyle.Render("› ")
			style = selectedCommandStyle
		}

		b.WriteString(prefix)
		b.WriteString(style.Render(command))
		if comment != "" {
			b.WriteString("  ")
			b.WriteString(commentStyle.Render("# " + comment))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.editMode {
		b.WriteString(inputPromptStyle.Render("Edit command:"))
		b.WriteString("\n")
		b.WriteString(m.textInput.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("Press Enter to copy, Esc to go back"))
		return b.String()
	}

	b.WriteString(renderHelp())
	return b.String()
}

func renderHelp() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Move"},
		{"Enter", "Copy"},
		{"e", "Edit"},
		{"q/Esc", "Cancel"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, keyStyle.Render(k.key)+" "+descStyle.Render(k.desc))
	}

	return helpStyle.Render(strings.Join(parts, "  •  "))
}

// Result returns the outcome once the program has exited
func (m Model) Result() Result {
	return m.result
}

// Menu is the terminal Selector
type Menu struct {
	input  io.Reader
	output io.Writer
}

// NewMenu creates a Menu. A nil input reads from the terminal and a nil
// output renders to stdout.
func NewMenu(input io.Reader, output io.Writer) *Menu {
	return &Menu{input: input, output: output}
}

// Select runs the menu until the user confirms or cancels
func (s *Menu) Select(ctx context.Context, candidates []string) (string, bool, error) {
	if len(candidates) == 0 {
		return "", false, ErrNoCandidates
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if s.input != nil {
		opts = append(opts, tea.WithInput(s.input))
	}
	if s.output != nil {
		opts = append(opts, tea.WithOutput(s.output))
	}

	finalModel, err := tea.NewProgram(NewModel(candidates), opts...).Run()
	if err != nil {
		return "", false, fmt.Errorf("menu failed: %w", err)
	}

	result := finalModel.(Model).Result()
	if result.Action != ActionSelect {
		return "", false, nil
	}
	return result.Command, true, nil
}
