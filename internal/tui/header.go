package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/readq/internal/triage"
)

type view int

const (
	viewQueue view = iota
	viewFavorites
	viewArchive
	viewTrash
)

var viewNames = []string{"Queue", "Favorites", "Archive", "Trash"}

func (v view) String() string {
	return viewNames[v]
}

func (v view) next() view {
	return (v + 1) % view(len(viewNames))
}

func (v view) prev() view {
	return (v + view(len(viewNames)) - 1) % view(len(viewNames))
}

// retired reports whether the view lists articles no action can change.
func (v view) retired() bool {
	return v == viewArchive || v == viewTrash
}

// items selects the snapshot collection shown in v.
func (v view) items(snap triage.Snapshot) []triage.Article {
	switch v {
	case viewFavorites:
		return snap.Favorites
	case viewArchive:
		return snap.Archived
	case viewTrash:
		return snap.Trashed
	default:
		return snap.Queue
	}
}

func renderHeader(stats triage.Stats, width int) string {
	left := headerStyle.Render("readq")
	right := counterStyle.Render(counterFavoriteStyle.Render(fmt.Sprintf("♥ %d", stats.NumOfFavorites))) +
		counterStyle.Render(fmt.Sprintf("archived %d", stats.NumOfArchived)) +
		counterStyle.Render(fmt.Sprintf("trashed %d", stats.NumOfTrashed)) + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}

func renderTabs(current view, snap triage.Snapshot, width int) string {
	counts := []int{len(snap.Queue), len(snap.Favorites), len(snap.Archived), len(snap.Trashed)}
	var parts []string
	for i, name := range viewNames {
		style := tabInactiveStyle
		if view(i) == current {
			style = tabActiveStyle
		}
		parts = append(parts, style.Render(fmt.Sprintf("%s %d", name, counts[i])))
	}
	row := strings.Join(parts, " ")
	return lipgloss.NewStyle().Width(width).PaddingLeft(1).Render(row)
}

func renderStatusBar(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 0 {
		gap = 0
	}
	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
