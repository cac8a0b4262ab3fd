package triage

import (
	"errors"
	"log/slog"
)

// Kind names one of the four transitions an action can request.
type Kind string

const (
	KindFavorite     Kind = "favorite"
	KindArchive      Kind = "archive"
	KindTrash        Kind = "trash"
	KindToggleExpand Kind = "toggleExpand"
)

// Kinds returns every known kind in display order.
func Kinds() []Kind {
	return []Kind{KindFavorite, KindArchive, KindTrash, KindToggleExpand}
}

// ParseKind converts s into a Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Action is the descriptor a UI emits for one interaction.
type Action struct {
	Kind      Kind
	ArticleID string
}

// Router routes actions to store transitions through a single table.
type Router struct {
	store  *Store
	log    *slog.Logger
	routes map[Kind]func(id string) error
}

// NewRouter builds a router for store. A nil logger uses slog.Default.
func NewRouter(store *Store, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		store: store,
		log:   logger,
		routes: map[Kind]func(string) error{
			KindFavorite:     store.Favorite,
			KindArchive:      store.Archive,
			KindTrash:        store.Trash,
			KindToggleExpand: store.ToggleExpand,
		},
	}
}

// Dispatch applies a and returns the resulting snapshot. Unknown kinds and
// ids are logged and leave the store untouched.
func (r *Router) Dispatch(a Action) Snapshot {
	if err := r.apply(a); err != nil {
		r.log.Debug("action ignored",
			slog.String("kind", string(a.Kind)),
			slog.String("article_id", a.ArticleID),
			slog.Bool("not_found", errors.Is(err, ErrNotFound)),
			slog.String("error", err.Error()),
		)
	} else {
		r.log.Debug("action applied",
			slog.String("kind", string(a.Kind)),
			slog.String("article_id", a.ArticleID),
		)
	}
	return r.store.Snapshot()
}

// DispatchAll applies actions strictly in order.
func (r *Router) DispatchAll(actions []Action) Snapshot {
	for _, a := range actions {
		r.Dispatch(a)
	}
	return r.store.Snapshot()
}

// Snapshot returns the store's current snapshot without applying anything.
func (r *Router) Snapshot() Snapshot {
	return r.store.Snapshot()
}

func (r *Router) apply(a Action) error {
	fn, ok := r.routes[a.Kind]
	if !ok {
		return ErrUnknownKind
	}
	return fn(a.ArticleID)
}
