package repl

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/rpncalc"
	"github.com/zephyrtronium/rpncalc/internal/render"
)

func TestSessionExec(t *testing.T) {
	var s Session
	e, ok := s.Exec("  2 ^ 3 ^ 2 ")
	require.True(t, ok)
	require.NoError(t, e.Err)
	require.Equal(t, "2 ^ 3 ^ 2", e.Src)
	require.Equal(t, 512.0, e.Value)

	_, ok = s.Exec("   ")
	require.False(t, ok)

	e, ok = s.Exec("1 / 0")
	require.True(t, ok)
	require.ErrorIs(t, e.Err, rpncalc.ErrDivisionByZero)

	e, _ = s.Exec(":rpn 2 + 3 * 4")
	require.NoError(t, e.Err)
	require.Equal(t, "2 3 4 * +", e.Info)

	e, _ = s.Exec(":tok -(1)")
	require.Equal(t, "neg ( 1 )", e.Info)

	e, _ = s.Exec(":bogus")
	require.Error(t, e.Err)

	require.Len(t, s.History(), 5)
	require.False(t, s.Done())
	_, ok = s.Exec(":q")
	require.False(t, ok)
	require.True(t, s.Done())
}

func TestSessionOptions(t *testing.T) {
	s := Session{
		Opts:      []rpncalc.Option{rpncalc.Lenient()},
		Normalize: strings.ToLower,
	}
	e, _ := s.Exec("1 2")
	require.NoError(t, e.Err)
	require.Equal(t, 2.0, e.Value)
	e, _ = s.Exec(":Q")
	require.Zero(t, e)
	require.True(t, s.Done())
}

func TestRunPlain(t *testing.T) {
	var out, errw bytes.Buffer
	p := render.NewPrinter(&out, &errw, "%g", false, false)
	in := strings.NewReader("1 + 2\n\n1..2\n:rpn 1 - -1\n:q\n4 * 4\n")
	require.NoError(t, RunPlain(context.Background(), in, p, new(Session)))
	require.Equal(t, "> 3\n> > > 1 1 neg -\n> ", out.String())
	require.Contains(t, errw.String(), "invalid number \"1..2\"")
	require.Contains(t, errw.String(), "  ^^^^")
}

func TestRunPlainEOF(t *testing.T) {
	var out bytes.Buffer
	p := render.NewPrinter(&out, &out, "%g", false, false)
	require.NoError(t, RunPlain(context.Background(), strings.NewReader("7"), p, new(Session)))
	require.Equal(t, "> 7\n> \n", out.String())
}

func TestRunPlainLongLine(t *testing.T) {
	var out bytes.Buffer
	p := render.NewPrinter(&out, &out, "%g", false, false)
	long := "1" + strings.Repeat(" + 1", 30000)
	require.NoError(t, RunPlain(context.Background(), strings.NewReader(long+"\n"), p, new(Session)))
	require.Equal(t, "> 30001\n> \n", out.String())
}

func TestRunPlainCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := render.NewPrinter(new(bytes.Buffer), new(bytes.Buffer), "%g", false, false)
	err := RunPlain(ctx, strings.NewReader("1\n"), p, new(Session))
	require.ErrorIs(t, err, context.Canceled)
}

func enter(t *testing.T, m *model, line string) tea.Cmd {
	t.Helper()
	m.input.SetValue(line)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestModelEnter(t *testing.T) {
	s := new(Session)
	m := newModel(s, "%g")
	require.Nil(t, enter(t, m, "2 + 3 * 4"))
	require.Empty(t, m.input.Value())
	require.Len(t, s.History(), 1)
	require.Equal(t, 14.0, s.History()[0].Value)

	v := m.View()
	require.Contains(t, v, "2 + 3 * 4")
	require.Contains(t, v, "14")

	enter(t, m, "5 +")
	require.Contains(t, m.View(), "insufficient operands")
}

func TestModelQuit(t *testing.T) {
	keys := []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC, tea.KeyCtrlD}
	for _, k := range keys {
		m := newModel(new(Session), "%g")
		_, cmd := m.Update(tea.KeyMsg{Type: k})
		require.NotNil(t, cmd, "%v", k)
		require.Equal(t, tea.QuitMsg{}, cmd(), "%v", k)
	}

	m := newModel(new(Session), "%g")
	cmd := enter(t, m, ":q")
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModelHistory(t *testing.T) {
	m := newModel(new(Session), "%g")
	enter(t, m, "1")
	enter(t, m, "2")
	enter(t, m, "3")

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, "3", m.input.Value())
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, "1", m.input.Value())
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, "2", m.input.Value())
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Empty(t, m.input.Value())
	require.Zero(t, m.recall)
}

func TestModelWindow(t *testing.T) {
	m := newModel(new(Session), "%g")
	m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	require.Equal(t, 30, m.width)
	long := strings.Repeat("1 + ", 30) + "1"
	enter(t, m, long)
	v := m.View()
	require.NotContains(t, v, long)
	require.Contains(t, v, "...")
	require.Contains(t, v, "31")
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", truncate("abc", 0))
	require.Equal(t, "abc", truncate("abc", 3))
	require.Equal(t, "ab", truncate("abcdef", 2))
	require.Equal(t, "a...", truncate("abcdef", 4))
	require.Equal(t, "世...", truncate("世界世界", 6))
}
