package cache

import "time"

// Article is a fetched feed item. The cache only seeds the triage queue;
// triage decisions are never written back.
type Article struct {
	ID          string
	Source      string
	Title       string
	Link        string
	Description string
	Published   time.Time
	FetchedAt   time.Time
}

type QueryOpts struct {
	Since   time.Time
	Sources []string
	Limit   int
}
