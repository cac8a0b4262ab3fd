package feed

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/matheuskafuri/readq/internal/cache"
	"github.com/matheuskafuri/readq/internal/config"
	"github.com/mmcdole/gofeed"
)

// Fetcher retrieves the items of one configured source.
type Fetcher interface {
	Fetch(ctx context.Context, source config.Source) ([]cache.Article, error)
}

type RSSFetcher struct {
	parser *gofeed.Parser
	// MaxAge drops items published longer ago than this. Zero keeps everything.
	MaxAge time.Duration
	// BodyLimit caps the stored description in runes.
	BodyLimit int
}

func NewRSSFetcher() *RSSFetcher {
	return &RSSFetcher{
		parser:    gofeed.NewParser(),
		MaxAge:    30 * 24 * time.Hour,
		BodyLimit: 1200,
	}
}

func (f *RSSFetcher) Fetch(ctx context.Context, source config.Source) ([]cache.Article, error) {
	feed, err := f.parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", source.Name, err)
	}

	now := time.Now()
	articles := make([]cache.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}

		pub := now
		if item.PublishedParsed != nil {
			pub = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			pub = *item.UpdatedParsed
		}
		if f.MaxAge > 0 && pub.Before(now.Add(-f.MaxAge)) {
			continue
		}

		body := item.Content
		if body == "" {
			body = item.Description
		}

		articles = append(articles, cache.Article{
			ID:          articleID(item.Link),
			Source:      source.Name,
			Title:       strings.TrimSpace(item.Title),
			Link:        item.Link,
			Description: truncate(stripHTML(body), f.BodyLimit),
			Published:   pub,
			FetchedAt:   now,
		})
	}
	return articles, nil
}

func articleID(link string) string {
	h := sha256.Sum256([]byte(link))
	return fmt.Sprintf("%x", h[:16])
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

type FetchResult struct {
	Articles []cache.Article
	Errors   []error
}

// FetchAll fetches every source concurrently. A failing source is reported
// in Errors and does not stop the others.
func FetchAll(ctx context.Context, fetcher Fetcher, sources []config.Source) FetchResult {
	var (
		mu     sync.Mutex
		result FetchResult
		wg     sync.WaitGroup
	)

	for _, src := range sources {
		wg.Add(1)
		go func(s config.Source) {
			defer wg.Done()
			articles, err := fetcher.Fetch(ctx, s)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, err)
				return
			}
			result.Articles = append(result.Articles, articles...)
		}(src)
	}

	wg.Wait()
	return result
}

// Refresh fetches sources into db, records the refresh time and prunes
// articles older than retention.
func Refresh(ctx context.Context, db *cache.Cache, sources []config.Source, retention time.Duration) (FetchResult, error) {
	result := FetchAll(ctx, NewRSSFetcher(), sources)
	if err := db.UpsertArticles(result.Articles); err != nil {
		return result, fmt.Errorf("caching articles: %w", err)
	}
	if err := db.SetLastRefresh(); err != nil {
		return result, fmt.Errorf("recording refresh: %w", err)
	}
	if retention > 0 {
		if _, err := db.Prune(retention); err != nil {
			return result, fmt.Errorf("pruning: %w", err)
		}
	}
	return result, nil
}
