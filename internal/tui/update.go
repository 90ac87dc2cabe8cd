package tui

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timelane/internal/dateutil"
	"github.com/javiermolinar/timelane/internal/item"
	"github.com/javiermolinar/timelane/internal/layout"
	"github.com/javiermolinar/timelane/internal/tui/commands"
	"github.com/javiermolinar/timelane/internal/tui/input"
	"github.com/javiermolinar/timelane/internal/viewport"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case commands.ItemsLoadedMsg:
		m.loading = false
		if m.mode == ModeDrag || m.mode == ModeResize {
			// Keep the local edits of the gesture in progress; the range
			// is fetched again once it ends.
			return m, nil
		}
		m.err = nil
		m.groups = msg.Groups
		m.items = msg.Items
		m.loadedFrom, m.loadedTo = msg.From, msg.To
		m.log.Debug().
			Int("groups", len(msg.Groups)).
			Int("items", len(msg.Items)).
			Time("from", msg.From).
			Time("to", msg.To).
			Msg("range loaded")
		m.relayout()
		return m, m.loadIfNeeded()

	case commands.ItemMovedMsg:
		mv := msg.Move
		return m, commands.Status(fmt.Sprintf("Saved %s: %s", mv.ID, formatSpan(mv.Start.In(m.loc), mv.End.In(m.loc))))

	case commands.CopiedMsg:
		return m, commands.Status(fmt.Sprintf("Copied %d hidden items", msg.Lines))

	case commands.ErrMsg:
		m.log.Error().Err(msg.Err).Msg("command failed")
		m.err = msg.Err
		wasLoading := m.loading
		m.loading = false
		m.loadedFrom, m.loadedTo = time.Time{}, time.Time{}
		if wasLoading {
			return m, nil
		}
		// A failed move leaves the local copy ahead of the store.
		return m, m.loadIfNeeded()

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = m.now()
		return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		return m, nil
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.prompt.Width = max(msg.Width-4, 1)

	cols := m.bodyCols()
	if cols < minBodyCols {
		return m, nil
	}
	if m.vp == nil {
		vp, err := viewport.New(m.initStart, m.initEnd, float64(cols), m.limits)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.vp = vp
	} else if err := m.vp.Resize(float64(cols)); err != nil {
		m.err = err
		return m, nil
	}

	m.relayout()
	return m, m.loadIfNeeded()
}

// afterViewportChange lays out the new window and loads data it needs.
func (m *Model) afterViewportChange() tea.Cmd {
	m.relayout()
	return m.loadIfNeeded()
}

// relayout runs a layout pass over the loaded items.
func (m *Model) relayout() {
	if m.vp == nil {
		return
	}
	m.out = m.engine.Run(layout.Input{
		Items:       item.List(m.items),
		Groups:      item.Groups(m.groups),
		Window:      m.vp.Window(),
		Interaction: m.interaction,
		Force:       true,
	})
	m.lanes = buildLanes(m.out)
	m.scrollOffset = min(m.scrollOffset, max(m.laneLineCount()-m.laneLinesAvailable(), 0))

	if m.selected != "" {
		if _, ok := m.out.Entry(m.selected); !ok && !m.interaction.Active() {
			m.selected = ""
		}
	}
}

// loadIfNeeded fetches the canvas, padded by one zoom on each side, unless
// the loaded range already covers it.
func (m *Model) loadIfNeeded() tea.Cmd {
	if m.vp == nil || m.loading {
		return nil
	}
	start, end := m.vp.CanvasStart(), m.vp.CanvasEnd()
	if !m.loadedFrom.IsZero() && !start.Before(m.loadedFrom) && !end.After(m.loadedTo) {
		return nil
	}
	m.loading = true
	zoom := m.vp.Zoom()
	return commands.LoadRange(m.repo, start.Add(-zoom), end.Add(zoom))
}

func (m Model) laneLineCount() int {
	n := 0
	for _, l := range m.lanes {
		n += l.height()
	}
	return n
}

func (m Model) laneLinesAvailable() int {
	return max(m.height-chromeLines, 1)
}

// selectable returns visible entries lane by lane, row by row, left to right.
func (m Model) selectable() []layout.Entry {
	var out []layout.Entry
	for _, l := range m.lanes {
		for _, row := range l.rows {
			sorted := slices.Clone(row)
			slices.SortFunc(sorted, func(a, b layout.Entry) int {
				if c := cmp.Compare(a.Dim.Left, b.Dim.Left); c != 0 {
					return c
				}
				return cmp.Compare(a.ID, b.ID)
			})
			out = append(out, sorted...)
		}
	}
	return out
}

// runPrompt executes a slash command.
func (m Model) runPrompt(line string) (tea.Model, tea.Cmd) {
	name, arg, ok := input.ParsePrompt(line)
	if !ok {
		return m, nil
	}

	switch name {
	case "/goto":
		day, err := dateutil.ParseDay(arg, m.now().In(m.loc))
		if err != nil {
			return m, commands.Status(err.Error())
		}
		zoom := m.vp.Zoom()
		if _, err := m.vp.SetVisible(day, day.Add(zoom)); err != nil {
			return m, commands.Status(err.Error())
		}
		return m, m.afterViewportChange()

	case "/zoom":
		d, err := time.ParseDuration(arg)
		if err != nil || d <= 0 {
			return m, commands.Status("Usage: /zoom 6h")
		}
		lim := m.vp.Limits()
		d = min(max(d, lim.MinZoom), lim.MaxZoom)
		mid := m.vp.VisibleStart().Add(m.vp.Zoom() / 2)
		if _, err := m.vp.SetVisible(mid.Add(-d/2), mid.Add(d-d/2)); err != nil {
			return m, commands.Status(err.Error())
		}
		return m, m.afterViewportChange()

	case "/mode":
		kind, err := layout.ParseKind(arg)
		if err != nil {
			return m, commands.Status(err.Error())
		}
		for i, mode := range m.modes {
			if mode.Kind == kind {
				m.modeIdx = i
			}
		}
		m.engine = m.engine.WithMode(m.currentMode())
		m.relayout()
		return m, commands.Status("Stacking: " + kind.String())

	case "/today":
		m.vp.ScrollTo(m.now())
		return m, m.afterViewportChange()
	}

	return m, commands.Status("Unknown command " + name)
}

// formatSpan formats an interval, omitting the second date when both ends
// fall on the same day.
func formatSpan(start, end time.Time) string {
	if dateutil.TruncateToDay(start).Equal(dateutil.TruncateToDay(end)) {
		return start.Format("Mon 2 Jan 15:04") + "-" + end.Format("15:04")
	}
	return start.Format("Mon 2 Jan 15:04") + " - " + end.Format("Mon 2 Jan 15:04")
}
