package main

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/cadence"
)

const barWidth = 24

type tickMsg time.Time

// model is the bubbletea model of the terminal player. The scene is only
// touched from Update, which bubbletea runs on a single goroutine.
type model struct {
	scene     *cadence.Scene
	nodes     []*cadence.Node
	title     string
	remote    string
	tps       int
	keys      keyMap
	selected  int
	width     int
	status    string
	warnings  *lastLine
	lastFrame time.Time
}

func newModel(scene *cadence.Scene, nodes map[string]*cadence.Node, title string, tps int) model {
	list := make([]*cadence.Node, 0, len(nodes))
	for _, n := range nodes {
		list = append(list, n)
	}
	slices.SortFunc(list, func(a, b *cadence.Node) int { return strings.Compare(a.Name, b.Name) })
	if tps <= 0 {
		tps = 60
	}
	return model{
		scene:    scene,
		nodes:    list,
		title:    title,
		tps:      tps,
		keys:     newKeyMap(),
		warnings: &lastLine{},
	}
}

func (m model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.tps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd {
	return m.tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		dt := 1.0 / float64(m.tps)
		if !m.lastFrame.IsZero() {
			dt = now.Sub(m.lastFrame).Seconds()
		}
		m.lastFrame = now
		m.scene.Update(dt)
		return m, m.tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ids := m.scene.Components()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(ids)-1 {
			m.selected++
		}
		return m, nil
	}

	if m.selected >= len(ids) {
		m.status = "no component selected"
		return m, nil
	}
	id := ids[m.selected]
	c, _ := m.scene.Lookup(id)
	a := c.Animation()
	if a == nil {
		m.status = fmt.Sprintf("%s has no animation", id)
		return m, nil
	}

	cmd := cadence.Command{ID: id}
	switch {
	case key.Matches(msg, m.keys.Toggle):
		cmd.PlayState = cadence.PlayStatePause
		if a.Paused() {
			cmd.PlayState = cadence.PlayStateResume
		}
	case key.Matches(msg, m.keys.Reverse):
		cmd.PlayState = cadence.PlayStateReverse
		if a.Reversed() {
			cmd.PlayState = cadence.PlayStatePlay
		}
	case key.Matches(msg, m.keys.Restart):
		cmd.PlayState = cadence.PlayStateRestart
	case key.Matches(msg, m.keys.Complete):
		cmd.PlayState = cadence.PlayStateComplete
	case key.Matches(msg, m.keys.Back):
		cmd.TotalProgress = cadence.Float(max(0, a.TotalProgress()-0.1))
	case key.Matches(msg, m.keys.Forward):
		cmd.TotalProgress = cadence.Float(min(1, a.TotalProgress()+0.1))
	default:
		return m, nil
	}
	if err := m.scene.Control(id, cmd); err != nil {
		m.status = errorStyle.Render(err.Error())
		return m, nil
	}
	m.status = describe(cmd)
	return m, nil
}

func describe(cmd cadence.Command) string {
	if cmd.TotalProgress != nil {
		return fmt.Sprintf("%s: seek %.0f%%", cmd.ID, *cmd.TotalProgress*100)
	}
	return fmt.Sprintf("%s: %s", cmd.ID, cmd.PlayState)
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("cadence") + " " + dimStyle.Render(m.title))
	if m.remote != "" {
		b.WriteString("  " + remoteOnStyle.Render("remote: "+m.remote))
	}
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(m.componentsView()))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(m.nodesView()))
	b.WriteString("\n")

	if w := m.warnings.String(); w != "" {
		b.WriteString(warnStyle.Render(w) + "\n")
	}
	status := m.status
	if status == "" {
		status = "ready"
	}
	bar := statusBarStyle
	if m.width > 0 {
		bar = bar.Width(m.width)
	}
	b.WriteString(bar.Render(status) + "\n")
	b.WriteString(m.keys.helpLine())
	return b.String()
}

func (m model) componentsView() string {
	ids := m.scene.Components()
	if len(ids) == 0 {
		return dimStyle.Render("no components with an id")
	}
	lines := []string{headerStyle.Render(fmt.Sprintf("  %-16s %-*s %8s  %s", "COMPONENT", barWidth, "PROGRESS", "TIME", "STATE"))}
	for i, id := range ids {
		c, _ := m.scene.Lookup(id)
		a := c.Animation()
		line := fmt.Sprintf("%-16s %s", truncate(id, 16), progressBar(0, barWidth))
		state := "unbuilt"
		if a != nil {
			line = fmt.Sprintf("%-16s %s %7.2fs", truncate(id, 16), progressBar(a.TotalProgress(), barWidth), a.TotalTime())
			state = playbackState(a.Paused(), a.Reversed(), a.IsActive())
		}
		line += "  " + stateStyle.Render(state)
		if i == m.selected {
			lines = append(lines, selectedStyle.Render("> ")+line)
		} else {
			lines = append(lines, "  "+line)
		}
	}
	return strings.Join(lines, "\n")
}

func (m model) nodesView() string {
	if len(m.nodes) == 0 {
		return dimStyle.Render("no nodes")
	}
	lines := []string{headerStyle.Render(fmt.Sprintf("%-12s %8s %8s %6s %6s %8s %6s %-9s", "NODE", "X", "Y", "SX", "SY", "ROT", "ALPHA", "COLOR"))}
	for _, n := range m.nodes {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(n.Color.Colorful().Clamped().Hex())).Render("■")
		style := rowStyle
		if !n.Visible {
			style = dimStyle
		}
		lines = append(lines, style.Render(fmt.Sprintf("%-12s %8.1f %8.1f %6.2f %6.2f %8.2f %6.2f %-9s",
			truncate(n.Name, 12), n.X, n.Y, n.ScaleX, n.ScaleY, n.Rotation, n.Alpha, n.Color.Hex()))+" "+swatch)
	}
	return strings.Join(lines, "\n")
}

func playbackState(paused, reversed, active bool) string {
	switch {
	case paused:
		return "paused"
	case !active:
		return "idle"
	case reversed:
		return "reversing"
	}
	return "playing"
}

// progressBar renders p in [0, 1] as a fixed-width bar.
func progressBar(p float64, width int) string {
	p = max(0, min(1, p))
	filled := int(p*float64(width) + 0.5)
	return barFullStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// lastLine is an io.Writer that remembers the last non-empty line written
// to it. Warnings are routed here so they do not tear the alt screen.
type lastLine struct {
	mu   sync.Mutex
	line string
}

func (l *lastLine) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ln := range bytes.Split(p, []byte("\n")) {
		if s := strings.TrimSpace(string(ln)); s != "" {
			l.line = s
		}
	}
	return len(p), nil
}

func (l *lastLine) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.line
}
