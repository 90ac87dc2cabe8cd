// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timelane/internal/item"
)

// Loader is the part of item.Repository the viewer reads from.
type Loader interface {
	ListGroups(ctx context.Context) ([]item.Group, error)
	ListItemsInRange(ctx context.Context, start, end time.Time) ([]item.Item, error)
}

// Mover is the part of item.Repository that persists drops and resizes.
type Mover interface {
	MoveItem(ctx context.Context, move item.Move) error
}

// ItemsLoadedMsg is sent when the lanes and the items of a range are loaded.
type ItemsLoadedMsg struct {
	Groups []item.Group
	Items  []item.Item
	From   time.Time
	To     time.Time
}

// ItemMovedMsg is sent once a drop or resize is stored.
type ItemMovedMsg struct {
	Move item.Move
}

// CopiedMsg is sent after text was put on the clipboard.
type CopiedMsg struct {
	Lines int
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadRange loads every lane and the items intersecting [from, to].
func LoadRange(repo Loader, from, to time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		groups, err := repo.ListGroups(ctx)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading lanes: %w", err)}
		}
		items, err := repo.ListItemsInRange(ctx, from, to)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading items: %w", err)}
		}

		return ItemsLoadedMsg{Groups: groups, Items: items, From: from, To: to}
	}
}

// MoveItem stores a drop or resize.
func MoveItem(repo Mover, move item.Move) tea.Cmd {
	return func() tea.Msg {
		if err := repo.MoveItem(context.Background(), move); err != nil {
			return ErrMsg{Err: fmt.Errorf("moving %s: %w", move.ID, err)}
		}
		return ItemMovedMsg{Move: move}
	}
}

// CopyText puts text on the system clipboard.
func CopyText(text string, lines int) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return CopiedMsg{Lines: lines}
	}
}

// Status shows a temporary message.
func Status(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}
