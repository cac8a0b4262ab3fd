package tui

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matheuskafuri/readq/internal/triage"
)

func testApp(t *testing.T) *App {
	t.Helper()
	app := NewApp(RunOpts{
		Seed: []triage.Article{
			{ID: "1", Title: "Post A", Body: "Body A", Link: "https://a.example"},
			{ID: "2", Title: "Post B", Body: "Body B"},
		},
		Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
	})
	app.openURL = func(string) error { return nil }
	send(t, app, tea.WindowSizeMsg{Width: 80, Height: 30})
	return app
}

func send(t *testing.T, app *App, msg tea.Msg) tea.Cmd {
	t.Helper()
	m, cmd := app.Update(msg)
	if m.(*App) != app {
		t.Fatal("Update returned a different model")
	}
	return cmd
}

func press(t *testing.T, app *App, keys ...string) {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		send(t, app, msg)
	}
}

func TestKeysDispatchScenario(t *testing.T) {
	app := testApp(t)

	press(t, app, "f")
	if !app.Snapshot().IsFavorite("1") {
		t.Fatal("expected f to favorite the selected article")
	}
	press(t, app, "f")
	if app.Snapshot().IsFavorite("1") {
		t.Fatal("expected second f to unfavorite")
	}

	press(t, app, "d")
	snap := app.Snapshot()
	if len(snap.Queue) != 1 || snap.Queue[0].ID != "2" {
		t.Fatalf("expected only article 2 left, got %+v", snap.Queue)
	}

	press(t, app, "a")
	want := triage.Stats{NumOfFavorites: 0, NumOfArchived: 1, NumOfTrashed: 1}
	if got := app.Snapshot().Stats; got != want {
		t.Errorf("stats = %+v, want %+v", got, want)
	}
	if !strings.Contains(app.View(), emptyMessage) {
		t.Error("expected empty message once the queue is cleared")
	}
}

func TestToggleExpandFollowsCursor(t *testing.T) {
	app := testApp(t)

	press(t, app, "down", "enter")
	snap := app.Snapshot()
	if snap.Queue[0].Expanded || !snap.Queue[1].Expanded {
		t.Fatalf("expected only article 2 expanded, got %+v", snap.Queue)
	}
	if !strings.Contains(app.View(), "Body B") {
		t.Error("expected expanded body in view")
	}

	press(t, app, "enter")
	if app.Snapshot().Queue[1].Expanded {
		t.Error("expected second enter to collapse")
	}
}

func TestCursorClampedAfterRetire(t *testing.T) {
	app := testApp(t)
	press(t, app, "down", "a")
	if app.cursor != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", app.cursor)
	}
}

func TestActionsInRetiredViewAreNoops(t *testing.T) {
	app := testApp(t)
	press(t, app, "a")
	press(t, app, "tab", "tab")
	if app.view != viewArchive {
		t.Fatalf("expected archive view, got %s", app.view)
	}
	before := app.Snapshot().Stats

	press(t, app, "f", "d", "enter")
	snap := app.Snapshot()
	if snap.Stats != before {
		t.Errorf("stats changed in archive view: %+v -> %+v", before, snap.Stats)
	}
	if len(snap.Archived) != 1 || snap.Archived[0].Expanded {
		t.Errorf("archived article changed: %+v", snap.Archived)
	}
}

func TestFavoritesView(t *testing.T) {
	app := testApp(t)
	press(t, app, "down", "f", "tab")
	if app.view != viewFavorites {
		t.Fatalf("expected favorites view, got %s", app.view)
	}
	sel, ok := app.selected()
	if !ok || sel.ID != "2" {
		t.Fatalf("expected article 2 selected in favorites, got %+v", sel)
	}
	press(t, app, "f")
	if len(app.Snapshot().Favorites) != 0 {
		t.Error("expected unfavorite from favorites view")
	}
}

func TestQuit(t *testing.T) {
	app := testApp(t)
	cmd := send(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestRefreshReplacesUntouchedQueue(t *testing.T) {
	app := testApp(t)
	app.reseed = func(context.Context) ([]triage.Article, []error, error) {
		return []triage.Article{{ID: "n1", Title: "New"}}, nil, nil
	}
	press(t, app, "r")
	if !app.refreshing {
		t.Fatal("expected refreshing state")
	}
	send(t, app, app.doRefresh()())

	snap := app.Snapshot()
	if len(snap.Queue) != 1 || snap.Queue[0].ID != "n1" {
		t.Errorf("expected reseeded queue, got %+v", snap.Queue)
	}
	if app.refreshing {
		t.Error("expected refreshing to be cleared")
	}
}

func TestRefreshKeepsTriagedQueue(t *testing.T) {
	app := testApp(t)
	app.reseed = func(context.Context) ([]triage.Article, []error, error) {
		return []triage.Article{{ID: "n1", Title: "New"}}, nil, nil
	}
	press(t, app, "a")
	send(t, app, app.doRefresh()())

	snap := app.Snapshot()
	if len(snap.Queue) != 1 || snap.Queue[0].ID != "2" || snap.Stats.NumOfArchived != 1 {
		t.Errorf("expected triaged state kept, got %+v", snap)
	}
	if !strings.Contains(app.status, "restart") {
		t.Errorf("unexpected status %q", app.status)
	}
}

func TestRefreshError(t *testing.T) {
	app := testApp(t)
	send(t, app, refreshDoneMsg{err: errors.New("offline")})
	if app.err == nil || !strings.Contains(app.View(), "offline") {
		t.Error("expected refresh error to be shown")
	}
}

func TestOpenLink(t *testing.T) {
	app := testApp(t)
	var opened string
	app.openURL = func(u string) error { opened = u; return nil }

	press(t, app, "o")
	if opened != "" {
		t.Fatal("open should run asynchronously")
	}
	cmd := send(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	if cmd == nil {
		t.Fatal("expected open command")
	}
	cmd()
	if opened != "https://a.example" {
		t.Errorf("opened %q", opened)
	}
}

func TestHeaderShowsCounters(t *testing.T) {
	app := testApp(t)
	press(t, app, "f", "down", "d")
	v := app.View()
	for _, want := range []string{"♥ 1", "archived 0", "trashed 1"} {
		if !strings.Contains(v, want) {
			t.Errorf("expected %q in header", want)
		}
	}
}
