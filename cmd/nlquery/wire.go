package main

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/custodia-labs/nlquery/internal/adapters/driven/ai"
	"github.com/custodia-labs/nlquery/internal/adapters/driven/cache/redis"
	"github.com/custodia-labs/nlquery/internal/adapters/driven/config/file"
	"github.com/custodia-labs/nlquery/internal/adapters/driven/searchindex/typesense"
	"github.com/custodia-labs/nlquery/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/nlquery/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/nlquery/internal/adapters/driving/cli"
	"github.com/custodia-labs/nlquery/internal/core/ports/driven"
	"github.com/custodia-labs/nlquery/internal/core/services"
	"github.com/custodia-labs/nlquery/internal/logger"
)

// fallbackHistoryCapacity bounds the in-memory history used when the
// database cannot be opened.
const fallbackHistoryCapacity = 100

// build wires adapters and services from settings. Missing pipeline
// configuration is not fatal: settings and version still work, and the
// pipeline commands report the gap through PipelineErr.
func build(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	if err := file.LoadDotEnv(append(opts.EnvFiles, ".env")...); err != nil {
		return nil, err
	}

	configStore, err := file.NewEnvConfigStore(openConfig(opts.ConfigDir))
	if err != nil {
		return nil, err
	}

	settingsSvc := services.NewSettingsService(configStore)
	out := &cli.Services{Settings: settingsSvc}

	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		logger.Debug("Pipeline disabled: %v", err)
		out.PipelineErr = err
		return out, nil
	}

	var closers []func() error
	out.Close = func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	index, err := typesense.NewClient(typesense.Config{
		URL:     settings.Index.URL,
		APIKey:  settings.Index.APIKey,
		Timeout: settings.Index.Timeout,
	})
	if err != nil {
		out.PipelineErr = err
		return out, nil
	}

	generator, err := ai.CreateGenerator(ctx, &settings.LLM)
	if err != nil {
		out.PipelineErr = err
		return out, nil
	}
	closers = append(closers, generator.Close)

	introspection := services.NewIntrospectionService(index, settings.Index.Collection, settings.Index.MaxFacetValues)
	if settings.Cache.Enabled() {
		snapshots, err := redis.NewSnapshotStore(redis.Config{
			Addr:     settings.Cache.RedisAddr,
			Password: settings.Cache.RedisPassword,
			DB:       settings.Cache.RedisDB,
			Prefix:   settings.Cache.Prefix,
		})
		if err != nil {
			logger.Warn("Shared schema cache disabled: %v", err)
		} else {
			introspection.SetSnapshotStore(snapshots)
			closers = append(closers, snapshots.Close)
		}
	}

	prompts, err := file.NewPromptStore(subDir(opts.ConfigDir, "prompts"))
	if err != nil {
		_ = out.Close()
		return nil, err
	}

	translation := services.NewTranslationService(introspection, services.NewPromptComposer(prompts), generator)
	translation.SetTimeout(settings.LLM.Timeout)

	health := services.NewHealthService()
	health.Register("index", index)
	health.Register("llm", generator)

	out.Translation = translation
	out.Introspection = introspection
	out.Search = services.NewSearchService(translation, index, settings.Index.Collection, settings.Index.QueryBy)
	out.Health = health
	out.WatchPrompts = watchPrompts(prompts)

	if settings.History.Enabled {
		dataDir := settings.History.DataDir
		if dataDir == "" {
			dataDir = subDir(opts.ConfigDir, "data")
		}
		history := openHistory(dataDir)
		translation.SetHistoryStore(history)
		out.History = services.NewHistoryService(history)
		closers = append(closers, history.Close)
	}

	return out, nil
}

// subDir places name under a custom config directory. An empty result
// lets each store pick its own default under ~/.nlquery.
func subDir(configDir, name string) string {
	if configDir == "" {
		return ""
	}
	return filepath.Join(configDir, name)
}

// openConfig opens config.toml, falling back to settings that last
// only for this process.
func openConfig(configDir string) driven.ConfigStore {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		logger.Warn("Config file unavailable, settings will not be saved: %v", err)
		return memory.NewConfigStore()
	}
	return store
}

// openHistory opens the sqlite history, falling back to memory.
func openHistory(dataDir string) driven.HistoryStore {
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("History database unavailable, keeping history in memory: %v", err)
		return memory.NewHistoryStore(fallbackHistoryCapacity)
	}
	return store.HistoryStore()
}

func watchPrompts(prompts *file.PromptStore) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		watcher, err := file.NewPromptWatcher(prompts)
		if err != nil {
			return err
		}
		defer watcher.Close()

		logger.Debug("Watching prompt overrides in %s", prompts.Dir())
		watcher.Run(ctx)
		return nil
	}
}
