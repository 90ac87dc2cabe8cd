package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/timelane/internal/layout"
	"github.com/javiermolinar/timelane/internal/timeunit"
)

// View renders the model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.bodyCols() < minBodyCols || m.vp == nil {
		return fmt.Sprintf("Terminal too narrow: need at least %d columns.", m.sidebarWidth()+minBodyCols)
	}

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderTitle())
	lines = append(lines, m.renderHeader()...)
	lines = append(lines, m.renderLanes()...)
	lines = append(lines, m.renderStatus(), m.renderFooter())
	view := strings.Join(lines, "\n")

	if m.mode == ModePopup && len(m.buttons) > 0 {
		view = m.overlay.Render(view, m.width, m.height, m.renderPopup())
	}
	return view
}

func (m Model) renderTitle() string {
	start := m.vp.VisibleStart().In(m.loc)
	end := m.vp.VisibleEnd().In(m.loc)
	parts := []string{
		"timelane",
		m.mode.String(),
		m.currentMode().Kind.String(),
		formatSpan(start, end),
	}
	if m.loading {
		parts = append(parts, "loading")
	}
	text := ansi.Truncate(strings.Join(parts, " · "), max(m.width-2, 0), "…")
	return m.styles.TitleStyle.Width(m.width).Render(text)
}

// renderHeader draws the coarse and the fine time scale.
func (m Model) renderHeader() []string {
	cols := m.bodyCols()
	start := m.vp.VisibleStart().In(m.loc)
	end := m.vp.VisibleEnd().In(m.loc)
	side := m.styles.HeaderStyle.Width(m.sidebarWidth()).Render("")

	fine := timeunit.MinUnit(float64(m.vp.Zoom().Milliseconds()), float64(cols), m.steps)
	coarse := timeunit.NextUnit(fine)

	top := strings.Repeat(" ", cols)
	if coarse != "" && coarse != fine {
		top = tickRow(start, end, coarse, timeunit.DefaultSteps(), m.vp.XAt, cols, func(u timeunit.Unit, t time.Time) string {
			return u.Label(t)
		})
	}
	bottom := tickRow(start, end, fine, m.steps, m.vp.XAt, cols, func(u timeunit.Unit, t time.Time) string {
		return u.ShortLabel(t)
	})

	return []string{
		side + m.styles.HeaderStyle.Render(top),
		side + m.styles.TickStyle.Render(bottom),
	}
}

// renderLanes draws the lanes that fit below the header, starting at the
// scroll offset.
func (m Model) renderLanes() []string {
	cols := m.bodyCols()
	sw := m.sidebarWidth()
	offset := canvasOffset(m.out.Window)

	var all []string
	for i, lane := range m.lanes {
		side, bg := m.styles.SidebarStyle, m.styles.LaneStyle
		if i%2 == 1 {
			side, bg = m.styles.SidebarAltStyle, m.styles.LaneAltStyle
		}
		title := ansi.Truncate(" "+lane.group.Label(), sw-1, "…")

		n := lane.height()
		for r := 0; r < n; r++ {
			label := ""
			if r == 0 {
				label = title
			}
			var body string
			switch {
			case r < len(lane.rows):
				body = renderRow(lane.rows[r], offset, cols, bg, m.entryStyle)
			case r == n-1 && len(lane.more) > 0:
				body = m.styles.MoreStyle.Inherit(bg).Render(moreRow(lane.more, m.vp.XAt, cols))
			default:
				body = bg.Render(strings.Repeat(" ", cols))
			}
			all = append(all, side.Width(sw).Render(label)+body)
		}
	}

	avail := m.laneLinesAvailable()
	if len(all) == 0 {
		hint := ansi.Truncate(" No lanes yet. Add some with timelane import.", m.width, "…")
		all = []string{m.styles.StatusStyle.Width(m.width).Render(hint)}
	}
	from := min(m.scrollOffset, max(len(all)-avail, 0))
	shown := all[from:min(from+avail, len(all))]

	blank := m.styles.SidebarStyle.Width(sw).Render("") + m.styles.LaneStyle.Render(strings.Repeat(" ", cols))
	for len(shown) < avail {
		shown = append(shown, blank)
	}
	return shown
}

// entryStyle picks the style of one item segment.
func (m Model) entryStyle(e layout.Entry, i int) lipgloss.Style {
	switch {
	case e.Dim.Dragging || m.interaction.IsResizing(e.ID):
		return m.styles.ActiveStyle
	case e.ID == m.selected:
		return m.styles.SelectedStyle
	case !e.Dim.Stack:
		return m.styles.OverlayStyle
	case i%2 == 1:
		return m.styles.ItemAltStyle
	default:
		return m.styles.ItemStyle
	}
}

func (m Model) renderStatus() string {
	style := m.styles.StatusStyle
	var text string

	switch {
	case m.err != nil:
		style = m.styles.ErrorStyle
		text = "Error: " + m.err.Error()
	case m.statusMsg != "":
		text = m.statusMsg
	case m.mode == ModeDrag:
		it, _, _ := m.itemByID(m.interaction.DraggingID)
		start := time.UnixMilli(m.interaction.DragTime).In(m.loc)
		text = fmt.Sprintf("Move %s to %s in %s", it.Label(), formatSpan(start, start.Add(it.Duration())), m.groupLabel(m.interaction.DragGroup))
		if names := m.collisionLabels(it.ID); len(names) > 0 {
			text += " · overlaps " + strings.Join(names, ", ")
		}
	case m.mode == ModeResize:
		text = fmt.Sprintf("Resize %s (%s edge): %s", m.resizeOrig.Label(), m.interaction.ResizeEdge,
			formatSpan(time.UnixMilli(m.resizeStart).In(m.loc), time.UnixMilli(m.resizeEnd).In(m.loc)))
	default:
		if it, _, ok := m.itemByID(m.selected); ok {
			text = fmt.Sprintf("%s · %s · %s", it.Label(), m.groupLabel(it.GroupID), formatSpan(it.Start.In(m.loc), it.End.In(m.loc)))
		} else if n := len(m.out.ShowMore); n > 0 {
			text = fmt.Sprintf("%d hidden slots · o to browse", n)
		}
	}
	return style.Width(m.width).Render(ansi.Truncate(" "+text, m.width, "…"))
}

// collisionLabels names the items the entry id is drawn over.
func (m Model) collisionLabels(id string) []string {
	ids := m.out.Collisions(id)
	names := make([]string, 0, len(ids))
	for _, other := range ids {
		if it, _, ok := m.itemByID(other); ok {
			names = append(names, it.Label())
		}
	}
	return names
}

func (m Model) renderFooter() string {
	if m.mode == ModePrompt {
		return m.styles.PromptStyle.Width(m.width).Render(m.prompt.View())
	}
	return m.styles.HelpStyle.Width(m.width).Render(ansi.Truncate(m.help.ShortHelpView(m.keys.helpKeys(m.mode)), m.width, "…"))
}

// renderPopup lists the items of the current show-more bucket.
func (m Model) renderPopup() string {
	btn := m.buttons[m.buttonIdx]
	maxItems := max(m.height-8, 1)

	lines := []string{m.styles.PopupTitleStyle.Render(m.groupLabel(btn.GroupID) + " · " + btn.Label)}
	for i, it := range btn.Items {
		if i == maxItems {
			lines = append(lines, m.styles.PopupMutedStyle.Render(fmt.Sprintf("… %d more", len(btn.Items)-i)))
			break
		}
		title := it.Title
		if title == "" {
			title = it.ID
		}
		lines = append(lines, m.styles.PopupItemStyle.Render(formatSpan(it.Start.In(m.loc), it.End.In(m.loc))+"  "+title))
	}
	lines = append(lines, m.styles.PopupMutedStyle.Render(
		fmt.Sprintf("%d/%d · tab next · y copy · esc close", m.buttonIdx+1, len(m.buttons))))

	w := 0
	for _, l := range lines {
		w = max(w, lipgloss.Width(l))
	}
	w = min(w, max(m.width-4, 1))
	for i, l := range lines {
		l = ansi.Truncate(l, w, "…")
		lines[i] = l + m.styles.PopupItemStyle.Render(strings.Repeat(" ", w-lipgloss.Width(l)))
	}
	return m.styles.PopupStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) groupLabel(id string) string {
	if i := m.groupIndex(id); i >= 0 {
		return m.groups[i].Label()
	}
	return id
}
