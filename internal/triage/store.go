package triage

import (
	"fmt"

	"github.com/samber/lo"
)

// Store owns the four article collections. An article id is either in the
// queue (and optionally in favorites) or retired to archive or trash.
//
// Store is not safe for concurrent use; one caller drives every transition.
type Store struct {
	queue     []*Article
	favorites []*Article
	archive   []*Article
	trash     []*Article
}

// NewStore copies seed into articles owned by the store. Later seed entries
// with an id already seen are dropped.
func NewStore(seed []Article) *Store {
	unique := lo.UniqBy(seed, func(a Article) string { return a.ID })
	return &Store{
		queue: lo.Map(unique, func(a Article, _ int) *Article { return &a }),
	}
}

// lookup resolves id against the current queue on every call. Transitions
// rebuild the queue slice, so no article pointer is kept between calls.
func (s *Store) lookup(id string) (*Article, bool) {
	return lo.Find(s.queue, func(a *Article) bool { return a.ID == id })
}

// Favorite toggles the article's membership in favorites.
func (s *Store) Favorite(id string) error {
	a, ok := s.lookup(id)
	if !ok {
		return fmt.Errorf("favorite %q: %w", id, ErrNotFound)
	}
	if lo.Contains(s.favorites, a) {
		s.favorites = lo.Without(s.favorites, a)
	} else {
		s.favorites = append(s.favorites, a)
	}
	return nil
}

// Archive retires the article to the archive.
func (s *Store) Archive(id string) error {
	if err := s.retire(id, &s.archive); err != nil {
		return fmt.Errorf("archive %q: %w", id, err)
	}
	return nil
}

// Trash retires the article to the trash.
func (s *Store) Trash(id string) error {
	if err := s.retire(id, &s.trash); err != nil {
		return fmt.Errorf("trash %q: %w", id, err)
	}
	return nil
}

func (s *Store) retire(id string, dst *[]*Article) error {
	a, ok := s.lookup(id)
	if !ok {
		return ErrNotFound
	}
	s.queue = lo.Without(s.queue, a)
	s.favorites = lo.Without(s.favorites, a)
	// Retired articles are never rendered expanded.
	a.Expanded = false
	*dst = append(*dst, a)
	return nil
}

// ToggleExpand flips the Expanded flag of the live queued article.
func (s *Store) ToggleExpand(id string) error {
	a, ok := s.lookup(id)
	if !ok {
		return fmt.Errorf("toggle expand %q: %w", id, ErrNotFound)
	}
	a.Expanded = !a.Expanded
	return nil
}

// Stats returns the counters derived from the current collections.
func (s *Store) Stats() Stats {
	return Stats{
		NumOfFavorites: len(s.favorites),
		NumOfArchived:  len(s.archive),
		NumOfTrashed:   len(s.trash),
	}
}

// Len returns the number of active articles.
func (s *Store) Len() int {
	return len(s.queue)
}

// Find reports which exclusive collection holds id.
func (s *Store) Find(id string) (Article, Collection, bool) {
	byID := func(a *Article) bool { return a.ID == id }
	for _, c := range []struct {
		name  Collection
		items []*Article
	}{
		{CollectionQueue, s.queue},
		{CollectionArchive, s.archive},
		{CollectionTrash, s.trash},
	} {
		if a, ok := lo.Find(c.items, byID); ok {
			return *a, c.name, true
		}
	}
	return Article{}, CollectionNone, false
}

// Snapshot copies the current state for rendering.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Queue:     copyArticles(s.queue),
		Favorites: copyArticles(s.favorites),
		Archived:  copyArticles(s.archive),
		Trashed:   copyArticles(s.trash),
		Stats:     s.Stats(),
		favorite: lo.SliceToMap(s.favorites, func(a *Article) (string, bool) {
			return a.ID, true
		}),
	}
}

func copyArticles(items []*Article) []Article {
	return lo.Map(items, func(a *Article, _ int) Article { return *a })
}
