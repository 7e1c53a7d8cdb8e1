package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mohsinsiddi/stakeforms/internal/bridge"
)

// Invoker starts form invocations. *bridge.Bridge implements it.
type Invoker interface {
	Trigger(ctx context.Context, g *bridge.FormGroup) func() bridge.Result
}

// slotAction marks the focus position of a group's action control.
const slotAction = -1

const refreshInterval = 120 * time.Millisecond

type focus struct {
	group *bridge.FormGroup
	slot  int
}

// invokedMsg carries a settled invocation back into the update loop.
type invokedMsg struct {
	group  *bridge.FormGroup
	result bridge.Result
}

type tickMsg time.Time

// ConsoleModel is the Bubble Tea model for the form console. Every group
// shows its input slots, one action control and its output slot. Enter on a
// group starts an invocation in a tea.Cmd so several groups can be in
// flight at once.
type ConsoleModel struct {
	ctx      context.Context
	invoker  Invoker
	header   string
	sections []*bridge.Section

	stops  []focus
	cursor int
	height int

	status   string
	Quitting bool
}

// NewConsoleModel builds the console for the rendered sections. header is
// shown above the first section (network and account).
func NewConsoleModel(ctx context.Context, invoker Invoker, header string, sections []*bridge.Section) ConsoleModel {
	m := ConsoleModel{ctx: ctx, invoker: invoker, header: header, sections: sections}
	for _, s := range sections {
		for _, g := range s.Groups {
			for i := 0; i < g.Slots(); i++ {
				m.stops = append(m.stops, focus{group: g, slot: i})
			}
			m.stops = append(m.stops, focus{group: g, slot: slotAction})
		}
	}
	return m
}

func (m ConsoleModel) Init() tea.Cmd { return nil }

func (m ConsoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
	case invokedMsg:
		if msg.result.OK() {
			m.status = Success(msg.group.Name())
		} else {
			m.status = Err(fmt.Sprintf("%s: %s fault", msg.group.Name(), msg.result.Fault.Kind))
		}
	case tickMsg:
		if m.anyInFlight() {
			return m, tick()
		}
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m ConsoleModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.Quitting = true
		return m, tea.Quit
	case "up", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "tab":
		if m.cursor < len(m.stops)-1 {
			m.cursor++
		}
		return m, nil
	}

	f, ok := m.focused()
	if !ok {
		if msg.String() == "q" {
			m.Quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if f.slot == slotAction {
		switch msg.String() {
		case "q":
			m.Quitting = true
			return m, tea.Quit
		case "enter", " ":
			return m, m.activate(f.group)
		}
		return m, nil
	}

	text := f.group.Input(f.slot)
	switch msg.Type {
	case tea.KeyBackspace:
		if r := []rune(text); len(r) > 0 {
			text = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		text = ""
	case tea.KeySpace:
		text += " "
	case tea.KeyRunes:
		text += string(msg.Runes)
	case tea.KeyEnter:
		return m, m.activate(f.group)
	default:
		return m, nil
	}
	f.group.SetInput(f.slot, text) //nolint:errcheck // slot comes from the group itself
	return m, nil
}

// activate marks g in flight before returning, so the next View already
// shows the marker.
func (m ConsoleModel) activate(g *bridge.FormGroup) tea.Cmd {
	run := m.invoker.Trigger(m.ctx, g)
	return tea.Batch(
		func() tea.Msg { return invokedMsg{group: g, result: run()} },
		tick(),
	)
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m ConsoleModel) focused() (focus, bool) {
	if m.cursor < 0 || m.cursor >= len(m.stops) {
		return focus{}, false
	}
	return m.stops[m.cursor], true
}

func (m ConsoleModel) anyInFlight() bool {
	for _, s := range m.sections {
		for _, g := range s.Groups {
			if g.InFlight() {
				return true
			}
		}
	}
	return false
}

func (m ConsoleModel) View() string {
	if m.Quitting {
		return ""
	}

	f, _ := m.focused()
	var lines []string
	cursorLine := 0

	if m.header != "" {
		lines = append(lines, StyleTitle.Render("  "+m.header))
	}
	for _, s := range m.sections {
		lines = append(lines, "", StyleHeader.Render("  "+s.Title))
		for _, g := range s.Groups {
			heading := "  " + StyleValue.Render(g.Name())
			if help := g.Descriptor.Help; help != "" {
				heading += "  " + StyleMeta.Render(help)
			}
			lines = append(lines, heading)

			for i := 0; i < g.Slots(); i++ {
				if f.group == g && f.slot == i {
					cursorLine = len(lines)
				}
				lines = append(lines, renderSlot(g, i, f.group == g && f.slot == i))
			}

			if f.group == g && f.slot == slotAction {
				cursorLine = len(lines)
			}
			lines = append(lines, renderAction(g, f.group == g && f.slot == slotAction))

			if out := strings.TrimRight(g.Output(), "\n"); out != "" {
				style := StyleSuccess
				if last, ok := g.Last(); ok && !last.OK() {
					style = StyleError
				}
				for _, l := range strings.Split(out, "\n") {
					lines = append(lines, "      "+style.Render(l))
				}
			}
		}
	}

	footer := []string{""}
	if m.status != "" {
		footer = append(footer, "  "+m.status)
	}
	footer = append(footer, StyleMeta.Render("  [ ↑↓ / tab ] move   [ type ] edit   [ Enter ] invoke   [ q on action / esc ] quit"))

	return strings.Join(window(lines, cursorLine, m.height-len(footer)), "\n") + "\n" + strings.Join(footer, "\n") + "\n"
}

func renderSlot(g *bridge.FormGroup, i int, focused bool) string {
	text := g.Input(i)
	var cell string
	if text == "" {
		cell = StyleMeta.Render(g.Placeholder(i))
	} else {
		cell = StyleInput.Render(text)
	}
	prefix := "    "
	if focused {
		prefix = "  ▸ "
		cell += StyleWarning.Render("▏")
	}
	return prefix + cell
}

func renderAction(g *bridge.FormGroup, focused bool) string {
	label := "[ " + g.Label() + " ]"
	switch {
	case focused:
		return "  ▸ " + StyleSelected.Render(label)
	case g.InFlight():
		return "    " + StyleWarning.Render(label)
	}
	return "    " + StyleAddress.Render(label)
}

// window returns at most height lines of lines keeping cursor visible.
// A non-positive height means the terminal size is unknown.
func window(lines []string, cursor, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return lines[start : start+height]
}
