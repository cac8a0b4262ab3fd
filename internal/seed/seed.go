// Package seed resolves the initial triage queue. It is read once at startup:
// from cached feed articles when sources are configured, otherwise from a
// YAML seed file or the bundled sample queue.
package seed

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/matheuskafuri/readq/internal/cache"
	"github.com/matheuskafuri/readq/internal/config"
	"github.com/matheuskafuri/readq/internal/feed"
	"github.com/matheuskafuri/readq/internal/triage"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed default_seed.yaml
var defaultSeedFS embed.FS

// Record is one article as written in a seed file.
type Record struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title"`
	Body      string    `yaml:"body"`
	Source    string    `yaml:"source,omitempty"`
	Link      string    `yaml:"link,omitempty"`
	Published time.Time `yaml:"published,omitempty"`
}

func (r Record) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Title, validation.Required),
	)
}

type file struct {
	Articles []Record `yaml:"articles"`
}

// Origin says where a loaded queue came from.
type Origin string

const (
	OriginCache    Origin = "cache"
	OriginFile     Origin = "file"
	OriginEmbedded Origin = "embedded"
)

// Options configure Load.
type Options struct {
	Config *config.Config
	// DB is consulted only when the config enables sources.
	DB *cache.Cache
	// Refresh forces a feed fetch before reading the cache.
	Refresh bool
	Since   time.Time
	Logger  *slog.Logger
}

// Result is the resolved seed queue.
type Result struct {
	Articles []triage.Article
	Origin   Origin
	// FetchErrors holds per-source failures from a refresh.
	FetchErrors []error
}

// Load resolves the seed queue.
func Load(ctx context.Context, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config

	if cfg != nil && opts.DB != nil && len(cfg.EnabledSources()) > 0 {
		res, err := fromCache(ctx, opts, logger)
		if err != nil {
			return Result{}, err
		}
		if len(res.Articles) > 0 {
			return res, nil
		}
		logger.Info("cache is empty, falling back to seed file")
	}

	if cfg != nil && cfg.SeedFile != "" {
		articles, err := LoadFile(cfg.SeedFile)
		if err != nil {
			return Result{}, err
		}
		logger.Info("seed loaded", slog.String("origin", string(OriginFile)), slog.Int("articles", len(articles)))
		return Result{Articles: articles, Origin: OriginFile}, nil
	}

	articles, err := Embedded()
	if err != nil {
		return Result{}, err
	}
	logger.Info("seed loaded", slog.String("origin", string(OriginEmbedded)), slog.Int("articles", len(articles)))
	return Result{Articles: articles, Origin: OriginEmbedded}, nil
}

func fromCache(ctx context.Context, opts Options, logger *slog.Logger) (Result, error) {
	cfg := opts.Config
	var res Result

	if opts.Refresh || opts.DB.NeedsRefresh(cfg.RefreshDuration()) {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		fetched, err := feed.Refresh(ctx, opts.DB, cfg.EnabledSources(), cfg.RetentionDuration())
		cancel()
		if err != nil {
			return Result{}, err
		}
		for _, e := range fetched.Errors {
			logger.Warn("source fetch failed", slog.String("error", e.Error()))
		}
		res.FetchErrors = fetched.Errors
	}

	cached, err := opts.DB.GetArticles(cache.QueryOpts{Since: opts.Since, Sources: cfg.SourceNames()})
	if err != nil {
		return Result{}, fmt.Errorf("reading cached articles: %w", err)
	}
	res.Articles = FromCache(cached)
	res.Origin = OriginCache
	logger.Info("seed loaded", slog.String("origin", string(OriginCache)), slog.Int("articles", len(res.Articles)))
	return res, nil
}

// FromCache converts cached feed articles into triage articles.
func FromCache(articles []cache.Article) []triage.Article {
	return lo.Map(articles, func(a cache.Article, _ int) triage.Article {
		return triage.Article{
			ID:        a.ID,
			Title:     a.Title,
			Body:      a.Description,
			Source:    a.Source,
			Link:      a.Link,
			Published: a.Published,
		}
	})
}

// LoadFile reads a YAML seed file.
func LoadFile(path string) ([]triage.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	articles, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return articles, nil
}

// Embedded returns the bundled sample queue.
func Embedded() ([]triage.Article, error) {
	data, err := defaultSeedFS.ReadFile("default_seed.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded seed: %w", err)
	}
	return Parse(data)
}

// ErrDuplicateID is returned when two seed records share an id.
var ErrDuplicateID = errors.New("duplicate article id")

// Parse decodes and validates seed YAML.
func Parse(data []byte) ([]triage.Article, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}

	seen := make(map[string]bool, len(f.Articles))
	for i, r := range f.Articles {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("article %d: %w", i, err)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("article %d: %w %q", i, ErrDuplicateID, r.ID)
		}
		seen[r.ID] = true
	}

	return lo.Map(f.Articles, func(r Record, _ int) triage.Article {
		return triage.Article{
			ID:        r.ID,
			Title:     r.Title,
			Body:      r.Body,
			Source:    r.Source,
			Link:      r.Link,
			Published: r.Published,
		}
	}), nil
}
