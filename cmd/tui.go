package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/matheuskafuri/readq/internal/cache"
	"github.com/matheuskafuri/readq/internal/config"
	"github.com/matheuskafuri/readq/internal/seed"
	"github.com/matheuskafuri/readq/internal/triage"
	"github.com/matheuskafuri/readq/internal/tui"
	"github.com/spf13/cobra"
)

// session is the state shared by commands that need a seed queue.
type session struct {
	cfg    *config.Config
	db     *cache.Cache
	logger *slog.Logger
	since  time.Time
	close  func()
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, logFile, err := openLogger(cfg)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, logger: logger}
	s.close = func() { logFile.Close() }

	if len(cfg.EnabledSources()) > 0 {
		db, err := cache.Open(config.CachePath())
		if err != nil {
			s.close()
			return nil, fmt.Errorf("opening cache: %w", err)
		}
		s.db = db
		s.close = func() {
			db.Close()
			logFile.Close()
		}
	}

	if flagSince != "" {
		d, err := parseSince(flagSince)
		if err != nil {
			s.close()
			return nil, fmt.Errorf("invalid --since value: %w", err)
		}
		s.since = time.Now().Add(-d)
	}
	return s, nil
}

func (s *session) load(ctx context.Context, refresh bool) (seed.Result, error) {
	return seed.Load(ctx, seed.Options{
		Config:  s.cfg,
		DB:      s.db,
		Refresh: refresh,
		Since:   s.since,
		Logger:  s.logger,
	})
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	if flagRefresh && s.db != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Fetching feeds...")
	}
	res, err := s.load(ctx, flagRefresh)
	if err != nil {
		return fmt.Errorf("loading queue: %w", err)
	}
	for _, e := range res.FetchErrors {
		fmt.Fprintf(cmd.ErrOrStderr(), "  [warn] %v\n", e)
	}

	var reseed tui.ReseedFunc
	if s.db != nil {
		reseed = func(ctx context.Context) ([]triage.Article, []error, error) {
			res, err := s.load(ctx, true)
			return res.Articles, res.FetchErrors, err
		}
	}

	return tui.Run(tui.RunOpts{
		Seed:   res.Articles,
		Logger: s.logger,
		Reseed: reseed,
	})
}

func parseSince(s string) (time.Duration, error) {
	return config.ParseDays(s)
}
