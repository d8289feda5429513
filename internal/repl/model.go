package repl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// maxShown is the number of history entries drawn above the input line.
const maxShown = 20

var (
	srcStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type model struct {
	sess   *Session
	input  textinput.Model
	format string
	width  int
	// recall is the offset into the history while browsing with up/down.
	// Zero means the input line is not from the history.
	recall int
}

func newModel(s *Session, format string) *model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "2 ^ 3 ^ 2"
	ti.CharLimit = 1024
	ti.Focus()
	return &model{sess: s, input: ti, format: format, width: 80}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlD:
			if m.input.Value() == "" {
				return m, tea.Quit
			}
		case tea.KeyEnter:
			m.sess.Exec(m.input.Value())
			m.input.Reset()
			m.recall = 0
			if m.sess.Done() {
				return m, tea.Quit
			}
			return m, nil
		case tea.KeyUp:
			m.browse(1)
			return m, nil
		case tea.KeyDown:
			m.browse(-1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.input.Width = msg.Width - 4
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// browse moves through previous inputs. Positive d goes further back.
func (m *model) browse(d int) {
	h := m.sess.History()
	r := min(max(m.recall+d, 0), len(h))
	m.recall = r
	if r == 0 {
		m.input.Reset()
		return
	}
	m.input.SetValue(h[len(h)-r].Src)
	m.input.CursorEnd()
}

func (m *model) View() string {
	var b strings.Builder
	h := m.sess.History()
	if len(h) > maxShown {
		h = h[len(h)-maxShown:]
	}
	for _, e := range h {
		b.WriteString(m.line(e))
		b.WriteByte('\n')
	}
	b.WriteString(m.input.View())
	b.WriteByte('\n')
	b.WriteString(hintStyle.Render("enter: evaluate  ↑/↓: history  :help  esc: quit"))
	b.WriteByte('\n')
	return b.String()
}

// line renders a history entry, truncating the source to fit the window.
func (m *model) line(e Entry) string {
	var res string
	switch {
	case e.Err != nil:
		res = errStyle.Render("error: " + e.Err.Error())
	case e.Info != "":
		res = infoStyle.Render(e.Info)
	default:
		res = valueStyle.Render(fmt.Sprintf(m.format, e.Value))
	}
	room := m.width - lipgloss.Width(res) - 5
	return "  " + srcStyle.Render(truncate(e.Src, room)) + " = " + res
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

// Run runs the interactive terminal UI until the user quits or ctx is done.
func Run(ctx context.Context, in io.Reader, out io.Writer, s *Session, format string) error {
	p := tea.NewProgram(newModel(s, format),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := p.Run()
	return err
}
