package main

import (
	"context"
	"fmt"

	"github.com/wellcoach/patterns-api/internal/config"
	"github.com/wellcoach/patterns-api/internal/logger"
	"github.com/wellcoach/patterns-api/internal/repository"
	"github.com/wellcoach/patterns-api/pkg/supabase"
)

// insightSource is the opened insight store plus the Supabase client when one is in use
type insightSource struct {
	repo   repository.ConversationInsightRepository
	client *supabase.Client
	driver string
	close  func() error
}

// openSource opens the configured insight store
func openSource(ctx context.Context, cfg *config.Config) (*insightSource, error) {
	driver := cfg.Source.Driver

	switch driver {
	case config.DriverSQLite:
		path := cfg.Source.SQLitePath
		repo, err := repository.NewSQLiteInsightRepository(ctx, path)
		if err != nil {
			return nil, err
		}
		logger.Ctx(ctx).Info("using sqlite insight source", logger.String("path", path))
		return &insightSource{repo: repo, driver: driver, close: repo.Close}, nil

	case config.DriverSupabase:
		client := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey, cfg.Supabase.Timeout)
		logger.Ctx(ctx).Info("using supabase insight source", logger.String("url", cfg.Supabase.URL))
		return &insightSource{
			repo:   repository.NewInsightRepository(client),
			client: client,
			driver: driver,
			close:  func() error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("unknown source driver %q", driver)
	}
}
