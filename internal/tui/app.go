package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/readq/internal/browser"
	"github.com/matheuskafuri/readq/internal/triage"
)

// ReseedFunc fetches a fresh seed queue.
type ReseedFunc func(ctx context.Context) ([]triage.Article, []error, error)

// App renders the triage store. Update runs on bubbletea's single event
// goroutine, which is the only caller of the router.
type App struct {
	router *triage.Router
	snap   triage.Snapshot
	logger *slog.Logger
	view   view
	cursor int

	width  int
	height int

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	reseed     ReseedFunc
	refreshing bool
	// touched is set once any action has been dispatched. A refresh only
	// replaces the queue while the user has not triaged anything yet.
	touched bool
	status  string
	err     error

	openURL func(string) error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Seed   []triage.Article
	Logger *slog.Logger
	Reseed ReseedFunc
}

func NewApp(opts RunOpts) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	router := triage.NewRouter(triage.NewStore(opts.Seed), logger)
	return &App{
		router:  router,
		snap:    router.Snapshot(),
		logger:  logger,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		reseed:  opts.Reseed,
		openURL: browser.Open,
	}
}

func (a *App) Init() tea.Cmd {
	return nil
}

// Snapshot returns the state last rendered.
func (a *App) Snapshot() triage.Snapshot {
	return a.snap
}

func (a *App) items() []triage.Article {
	return a.view.items(a.snap)
}

func (a *App) selected() (triage.Article, bool) {
	items := a.items()
	if a.cursor < 0 || a.cursor >= len(items) {
		return triage.Article{}, false
	}
	return items[a.cursor], true
}

func (a *App) clampCursor() {
	n := len(a.items())
	if a.cursor >= n {
		a.cursor = max(0, n-1)
	}
}

// dispatch sends one action for the selected article through the router.
func (a *App) dispatch(kind triage.Kind) {
	selected, ok := a.selected()
	if !ok {
		return
	}
	a.snap = a.router.Dispatch(triage.Action{Kind: kind, ArticleID: selected.ID})
	a.touched = true
	a.clampCursor()
}

func (a *App) doRefresh() tea.Cmd {
	reseed := a.reseed
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()
		articles, errs, err := reseed(ctx)
		return refreshDoneMsg{articles: articles, errs: errs, err: err}
	}
}

func (a *App) openCmd(url string) tea.Cmd {
	open := a.openURL
	return func() tea.Msg {
		if err := open(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case errMsg:
		a.err = msg.err
		return a, nil

	case refreshDoneMsg:
		return a.handleRefreshDone(msg)

	case spinner.TickMsg:
		if a.refreshing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	for _, ak := range a.keys.actions {
		if key.Matches(msg, ak.binding) {
			a.dispatch(ak.kind)
			return a, nil
		}
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.items())-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.NextTab):
		a.view = a.view.next()
		a.cursor = 0
	case key.Matches(msg, a.keys.PrevTab):
		a.view = a.view.prev()
		a.cursor = 0
	case key.Matches(msg, a.keys.Open):
		if selected, ok := a.selected(); ok && selected.Link != "" {
			return a, a.openCmd(selected.Link)
		}
	case key.Matches(msg, a.keys.Refresh):
		if a.reseed != nil && !a.refreshing {
			a.refreshing = true
			return a, tea.Batch(a.doRefresh(), a.spinner.Tick)
		}
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

func (a *App) handleRefreshDone(msg refreshDoneMsg) (tea.Model, tea.Cmd) {
	a.refreshing = false
	if msg.err != nil {
		a.err = msg.err
		return a, nil
	}
	for _, e := range msg.errs {
		a.logger.Warn("refresh source failed", slog.String("error", e.Error()))
	}
	if a.touched {
		a.status = fmt.Sprintf("fetched %d articles, restart to triage them", len(msg.articles))
		return a, nil
	}
	a.router = triage.NewRouter(triage.NewStore(msg.articles), a.logger)
	a.snap = a.router.Snapshot()
	a.cursor = 0
	a.status = fmt.Sprintf("loaded %d articles", len(a.snap.Queue))
	if len(msg.errs) > 0 {
		a.status += fmt.Sprintf(" (%d sources failed)", len(msg.errs))
	}
	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  readq")
	}

	header := renderHeader(a.snap.Stats, a.width)
	tabs := renderTabs(a.view, a.snap, a.width)
	helpView := a.help.View(a.keys)

	left := fmt.Sprintf("%d in queue", len(a.snap.Queue))
	if a.status != "" {
		left += " · " + a.status
	}
	if a.refreshing {
		left = a.spinner.View() + " refreshing..."
	}
	status := renderStatusBar(left, "", a.width)
	if a.err != nil {
		status = errorStyle.Render(a.err.Error())
	}

	listHeight := a.height - lipgloss.Height(header) - lipgloss.Height(tabs) -
		lipgloss.Height(status) - lipgloss.Height(helpView) - 2
	if listHeight < 3 {
		listHeight = 3
	}
	list := renderList(a.items(), a.snap, a.view.retired(), a.cursor, listHeight, a.width-2)
	list = lipgloss.NewStyle().Height(listHeight).PaddingLeft(1).Render(list)

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, "", list, status, helpView)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
