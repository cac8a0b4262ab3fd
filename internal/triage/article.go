package triage

import "time"

// Article is a saved item awaiting a decision. Content fields are opaque to
// the store; only Expanded changes after creation.
type Article struct {
	ID        string
	Title     string
	Body      string
	Source    string
	Link      string
	Published time.Time
	Expanded  bool
}

// Collection names the exclusive collection an article currently lives in.
type Collection int

const (
	CollectionNone Collection = iota
	CollectionQueue
	CollectionArchive
	CollectionTrash
)

func (c Collection) String() string {
	switch c {
	case CollectionQueue:
		return "queue"
	case CollectionArchive:
		return "archive"
	case CollectionTrash:
		return "trash"
	default:
		return "none"
	}
}

// Stats are derived from collection sizes.
type Stats struct {
	NumOfFavorites int
	NumOfArchived  int
	NumOfTrashed   int
}

// Snapshot is a read-only projection of the store after a transition.
// It holds copies, so callers may modify it freely.
type Snapshot struct {
	Queue     []Article
	Favorites []Article
	Archived  []Article
	Trashed   []Article
	Stats     Stats

	favorite map[string]bool
}

// IsFavorite reports whether the article with id was favorited when the
// snapshot was taken.
func (s Snapshot) IsFavorite(id string) bool {
	return s.favorite[id]
}
