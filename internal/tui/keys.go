package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timelane/internal/item"
	"github.com/javiermolinar/timelane/internal/layout"
	"github.com/javiermolinar/timelane/internal/overflow"
	"github.com/javiermolinar/timelane/internal/tui/commands"
	"github.com/javiermolinar/timelane/internal/tui/input"
)

// keyMap holds every binding of the viewer.
type keyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Next    key.Binding
	Prev    key.Binding
	Today   key.Binding
	Drag    key.Binding
	Resize  key.Binding
	Edge    key.Binding
	Stack   key.Binding
	More    key.Binding
	Copy    key.Binding
	Prompt  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Left:    key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/l", "pan")),
		Right:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("h/l", "pan")),
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j/k", "scroll")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/k", "scroll")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("+/-", "zoom")),
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "select")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "back")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "now")),
		Drag:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Resize:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resize")),
		Edge:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "edge")),
		Stack:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stacking")),
		More:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "hidden")),
		Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Prompt:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpKeys returns the bindings shown in the footer for a mode.
func (k keyMap) helpKeys(mode Mode) []key.Binding {
	switch mode {
	case ModeDrag:
		return []key.Binding{k.Left, k.Up, k.Confirm, k.Cancel}
	case ModeResize:
		return []key.Binding{k.Left, k.Edge, k.Confirm, k.Cancel}
	case ModePopup:
		return []key.Binding{k.Next, k.Copy, k.Cancel}
	case ModePrompt:
		return []key.Binding{k.Confirm, k.Cancel}
	default:
		return []key.Binding{k.Left, k.ZoomIn, k.Up, k.Next, k.Drag, k.Resize, k.Stack, k.More, k.Copy, k.Prompt, k.Quit}
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.log.Debug().Str("key", msg.String()).Str("mode", m.mode.String()).Msg("key")

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.vp == nil {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.mode {
	case ModeDrag:
		return m.handleDragKeys(msg)
	case ModeResize:
		return m.handleResizeKeys(msg)
	case ModePopup:
		return m.handlePopupKeys(msg)
	case ModePrompt:
		return m.handlePromptKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	// Navigation
	case key.Matches(msg, m.keys.Left):
		m.vp.Pan(-m.vp.Zoom() / 8)
		return m, m.afterViewportChange()
	case key.Matches(msg, m.keys.Right):
		m.vp.Pan(m.vp.Zoom() / 8)
		return m, m.afterViewportChange()
	case key.Matches(msg, m.keys.ZoomIn):
		m.vp.ChangeZoom(0.8, 0.5)
		return m, m.afterViewportChange()
	case key.Matches(msg, m.keys.ZoomOut):
		m.vp.ChangeZoom(1.25, 0.5)
		return m, m.afterViewportChange()
	case key.Matches(msg, m.keys.Today):
		m.vp.ScrollTo(m.now())
		return m, m.afterViewportChange()
	case key.Matches(msg, m.keys.Down):
		m.scrollOffset = min(m.scrollOffset+1, max(m.laneLineCount()-m.laneLinesAvailable(), 0))
	case key.Matches(msg, m.keys.Up):
		m.scrollOffset = max(m.scrollOffset-1, 0)

	// Selection
	case key.Matches(msg, m.keys.Next):
		m.selectNext(1)
	case key.Matches(msg, m.keys.Prev):
		m.selectNext(-1)

	// Interaction
	case key.Matches(msg, m.keys.Drag):
		return m.startDrag()
	case key.Matches(msg, m.keys.Resize):
		return m.startResize()
	case key.Matches(msg, m.keys.Stack):
		m.modeIdx = (m.modeIdx + 1) % len(m.modes)
		m.engine = m.engine.WithMode(m.currentMode())
		m.relayout()
		return m, commands.Status("Stacking: " + m.currentMode().Kind.String())
	case key.Matches(msg, m.keys.More):
		return m.openPopup()
	case key.Matches(msg, m.keys.Copy):
		return m.copyButtons(m.out.ShowMore)
	case key.Matches(msg, m.keys.Prompt):
		m.mode = ModePrompt
		m.prompt.SetValue("/")
		m.prompt.CursorEnd()
		return m, m.prompt.Focus()
	}
	return m, nil
}

// selectNext moves the selection through visible items in lane order.
func (m *Model) selectNext(delta int) {
	order := m.selectable()
	if len(order) == 0 {
		m.selected = ""
		return
	}
	idx := -1
	for i, e := range order {
		if e.ID == m.selected {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta < 0:
		idx = len(order) - 1
	case idx < 0:
		idx = 0
	default:
		idx = (idx + delta + len(order)) % len(order)
	}
	m.selected = order[idx].ID
}

func (m Model) startDrag() (tea.Model, tea.Cmd) {
	it, _, ok := m.itemByID(m.selected)
	if !ok {
		return m, commands.Status("Select an item first (tab)")
	}
	m.mode = ModeDrag
	m.interaction = layout.Interaction{
		DraggingID: it.ID,
		DragTime:   it.StartMillis(),
		DragGroup:  it.GroupID,
	}
	m.relayout()
	return m, nil
}

// handleDragKeys handles keys while an item is being moved.
func (m Model) handleDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := m.step().Milliseconds()

	switch {
	case key.Matches(msg, m.keys.Left):
		m.interaction.DragTime -= step
		m.follow(m.interaction.DragTime)
	case key.Matches(msg, m.keys.Right):
		m.interaction.DragTime += step
		m.follow(m.interaction.DragTime)
	case key.Matches(msg, m.keys.Up):
		if i := m.groupIndex(m.interaction.DragGroup); i > 0 {
			m.interaction.DragGroup = m.groups[i-1].ID
		}
	case key.Matches(msg, m.keys.Down):
		if i := m.groupIndex(m.interaction.DragGroup); i >= 0 && i < len(m.groups)-1 {
			m.interaction.DragGroup = m.groups[i+1].ID
		}
	case key.Matches(msg, m.keys.Confirm):
		return m.drop()
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		m.mode = ModeNormal
		m.interaction = layout.Interaction{}
	default:
		return m, nil
	}
	m.relayout()
	return m, m.loadIfNeeded()
}

// drop applies the drag locally and stores it.
func (m Model) drop() (tea.Model, tea.Cmd) {
	in := m.interaction
	m.mode = ModeNormal
	m.interaction = layout.Interaction{}

	it, idx, ok := m.itemByID(in.DraggingID)
	if !ok {
		m.relayout()
		return m, nil
	}
	start := time.UnixMilli(in.DragTime).In(m.loc)
	move := item.Move{
		ID:      it.ID,
		GroupID: in.DragGroup,
		Start:   start,
		End:     start.Add(it.Duration()),
	}
	m.applyMove(idx, move)
	load := m.loadIfNeeded()
	return m, tea.Batch(commands.MoveItem(m.repo, move), load)
}

func (m Model) startResize() (tea.Model, tea.Cmd) {
	it, _, ok := m.itemByID(m.selected)
	if !ok {
		return m, commands.Status("Select an item first (tab)")
	}
	m.mode = ModeResize
	m.resizeOrig = it
	m.resizeStart = it.StartMillis()
	m.resizeEnd = it.EndMillis()
	m.interaction = layout.Interaction{
		ResizingID: it.ID,
		ResizeEdge: layout.EdgeRight,
		ResizeTime: m.resizeEnd,
	}
	m.relayout()
	return m, nil
}

// handleResizeKeys handles keys while an item edge is being moved. An edge
// stops minResizeLength short of the other one.
func (m Model) handleResizeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := m.step().Milliseconds()
	left := m.interaction.ResizeEdge == layout.EdgeLeft

	switch {
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		delta := step
		if key.Matches(msg, m.keys.Left) {
			delta = -step
		}
		minLen := m.minResizeLength().Milliseconds()
		if left {
			next := m.resizeStart + delta
			if limit := m.resizeEnd - minLen; next > limit {
				next = max(limit, m.resizeStart)
			}
			m.resizeStart = next
			m.interaction.ResizeTime = m.resizeStart
		} else {
			next := m.resizeEnd + delta
			if limit := m.resizeStart + minLen; next < limit {
				next = min(limit, m.resizeEnd)
			}
			m.resizeEnd = next
			m.interaction.ResizeTime = m.resizeEnd
		}
		m.follow(m.interaction.ResizeTime)
	case key.Matches(msg, m.keys.Edge):
		// Show the pending edge on the local copy before switching.
		if _, idx, ok := m.itemByID(m.interaction.ResizingID); ok {
			m.items[idx].Start = time.UnixMilli(m.resizeStart).In(m.loc)
			m.items[idx].End = time.UnixMilli(m.resizeEnd).In(m.loc)
		}
		if left {
			m.interaction.ResizeEdge = layout.EdgeRight
			m.interaction.ResizeTime = m.resizeEnd
		} else {
			m.interaction.ResizeEdge = layout.EdgeLeft
			m.interaction.ResizeTime = m.resizeStart
		}
	case key.Matches(msg, m.keys.Confirm):
		return m.commitResize()
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		if _, idx, ok := m.itemByID(m.resizeOrig.ID); ok {
			m.items[idx] = m.resizeOrig
		}
		m.mode = ModeNormal
		m.interaction = layout.Interaction{}
	default:
		return m, nil
	}
	m.relayout()
	return m, m.loadIfNeeded()
}

// minResizeLength is the shortest span a resize may leave: the configured
// minimum width in columns, at least one step.
func (m Model) minResizeLength() time.Duration {
	return time.Duration(max(m.config.Layout.MinResizeWidth, 1)) * m.step()
}

func (m Model) commitResize() (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	m.interaction = layout.Interaction{}

	_, idx, ok := m.itemByID(m.resizeOrig.ID)
	if !ok {
		m.relayout()
		return m, nil
	}
	move := item.Move{
		ID:      m.resizeOrig.ID,
		GroupID: m.resizeOrig.GroupID,
		Start:   time.UnixMilli(m.resizeStart).In(m.loc),
		End:     time.UnixMilli(m.resizeEnd).In(m.loc),
	}
	m.applyMove(idx, move)
	load := m.loadIfNeeded()
	return m, tea.Batch(commands.MoveItem(m.repo, move), load)
}

// applyMove updates the local copy of an item and lays out again.
func (m *Model) applyMove(idx int, move item.Move) {
	// Slices are shared between model copies; write to a fresh one.
	m.items = append([]item.Item(nil), m.items...)
	m.items[idx].GroupID = move.GroupID
	m.items[idx].Start = move.Start
	m.items[idx].End = move.End
	m.relayout()
}

// follow pans the view so that the time ms stays visible.
func (m *Model) follow(ms int64) {
	t := time.UnixMilli(ms)
	if t.Before(m.vp.VisibleStart()) {
		m.vp.Pan(t.Sub(m.vp.VisibleStart()))
	} else if !t.Before(m.vp.VisibleEnd()) {
		m.vp.Pan(t.Sub(m.vp.VisibleEnd()) + m.step())
	}
}

func (m Model) openPopup() (tea.Model, tea.Cmd) {
	buttons := m.out.ShowMore
	if e, ok := m.out.Entry(m.selected); ok {
		if own := overflow.ForGroup(buttons, e.GroupID); len(own) > 0 {
			buttons = own
		}
	}
	if len(buttons) == 0 {
		return m, commands.Status("Nothing is hidden")
	}
	m.mode = ModePopup
	m.buttons = buttons
	m.buttonIdx = 0
	return m, nil
}

// handlePopupKeys handles keys while browsing show-more buckets.
func (m Model) handlePopupKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Right):
		m.buttonIdx = (m.buttonIdx + 1) % len(m.buttons)
	case key.Matches(msg, m.keys.Prev), key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Left):
		m.buttonIdx = (m.buttonIdx - 1 + len(m.buttons)) % len(m.buttons)
	case key.Matches(msg, m.keys.Copy):
		return m.copyButtons(m.buttons[m.buttonIdx : m.buttonIdx+1])
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.More):
		m.mode = ModeNormal
		m.buttons = nil
	}
	return m, nil
}

func (m Model) copyButtons(buttons []overflow.Button) (tea.Model, tea.Cmd) {
	if len(buttons) == 0 {
		return m, commands.Status("Nothing is hidden")
	}
	text, lines := buttonsText(buttons, m.groups, m.loc)
	return m, commands.CopyText(text, lines)
}

// buttonsText lists hidden items, one bucket per paragraph.
func buttonsText(buttons []overflow.Button, groups []item.Group, loc *time.Location) (string, int) {
	titles := make(map[string]string, len(groups))
	for _, g := range groups {
		titles[g.ID] = g.Label()
	}

	var b strings.Builder
	lines := 0
	for i, btn := range buttons {
		if i > 0 {
			b.WriteString("\n")
		}
		lane := titles[btn.GroupID]
		if lane == "" {
			lane = btn.GroupID
		}
		fmt.Fprintf(&b, "%s · %s\n", lane, btn.Label)
		for _, it := range btn.Items {
			title := it.Title
			if title == "" {
				title = it.ID
			}
			fmt.Fprintf(&b, "  - %s %s\n", formatSpan(it.Start.In(loc), it.End.In(loc)), title)
			lines++
		}
	}
	return b.String(), lines
}

// handlePromptKeys handles keys while the command prompt is focused.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.prompt.Blur()
		m.prompt.SetValue("")
		return m, nil
	case "tab":
		if v, ok := input.PromptAutocomplete(m.prompt.Value(), input.Commands); ok {
			m.prompt.SetValue(v)
			m.prompt.CursorEnd()
		}
		return m, nil
	case "enter":
		line := m.prompt.Value()
		m.mode = ModeNormal
		m.prompt.Blur()
		m.prompt.SetValue("")
		return m.runPrompt(line)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}
