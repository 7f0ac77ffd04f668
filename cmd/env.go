package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/abhisek/brainarcade/internal/cache"
	"github.com/abhisek/brainarcade/internal/config"
	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/live"
	"github.com/abhisek/brainarcade/internal/llm"
	"github.com/abhisek/brainarcade/internal/logger"
	"github.com/abhisek/brainarcade/internal/problemgen"
	"github.com/abhisek/brainarcade/internal/screen"
	"github.com/abhisek/brainarcade/internal/session"
	"github.com/abhisek/brainarcade/internal/settings"
	"github.com/abhisek/brainarcade/internal/store"
	"github.com/abhisek/brainarcade/internal/store/postgres"
	"github.com/abhisek/brainarcade/internal/subject"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// Saved English sets older than this are deleted when the TUI starts.
const questionRetentionDays = 7

// env holds the services a command needs. Close releases them.
type env struct {
	cfg  config.Config
	log  *logger.Logger
	st   *store.Store
	pool *pgxpool.Pool
	rdb  *redis.Client

	// boards is the leaderboard table: SQLite, or Postgres when configured.
	boards leaderboard.Store
}

type envOptions struct {
	// logToFile keeps the TUI clean by sending logs to the data dir.
	logToFile bool
}

// loadConfig reads --config and applies the --db and --log-mode overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Store.Path = p
	}
	if m, _ := cmd.Flags().GetString("log-mode"); m != "" {
		cfg.Log.Mode = m
	}
	return cfg, nil
}

func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}

func openEnv(cmd *cobra.Command, opts envOptions) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logOpts := logger.Options{Mode: cfg.Log.Mode, File: cfg.Log.File, Debug: cfg.Log.Debug}
	if opts.logToFile && logOpts.File == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		logOpts.File = filepath.Join(dir, "arcade.log")
		if err := store.EnsureDir(logOpts.File); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	log, err := logger.NewWithOptions(logOpts)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	e := &env{cfg: cfg, log: log, st: st, boards: st.LeaderboardRepo()}

	if cfg.Store.Driver == "postgres" {
		pool, err := postgres.Connect(cmd.Context(), cfg.Store.PostgresURL)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.pool = pool
		e.boards = postgres.NewLeaderboardRepo(pool)
	}

	if cfg.RedisEnabled() {
		e.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	log.Debug("environment ready", "db", dbPath, "driver", cfg.Store.Driver, "redis", cfg.RedisEnabled())
	return e, nil
}

func (e *env) Close() {
	if e.rdb != nil {
		_ = e.rdb.Close()
	}
	if e.pool != nil {
		e.pool.Close()
	}
	if e.st != nil {
		_ = e.st.Close()
	}
	e.log.Sync()
}

// bus is nil without Redis.
func (e *env) bus() *live.Bus {
	if e.rdb == nil {
		return nil
	}
	return live.NewBus(e.rdb, e.cfg.Redis.Channel, e.log)
}

// gate builds the leaderboard gate. hub may be nil; board changes then only
// reach other processes through the Redis bus.
func (e *env) gate(bus *live.Bus, hub *live.Hub) *leaderboard.Gate {
	opts := []leaderboard.GateOption{leaderboard.WithLogger(e.log)}
	if bus != nil || hub != nil {
		opts = append(opts, leaderboard.WithPublisher(live.NewNotifier(bus, hub, e.log)))
	}
	return leaderboard.NewGate(e.boards, opts...)
}

func (e *env) settings() *settings.Manager {
	return settings.NewManager(e.st.SettingsRepo(), e.log)
}

// sentences returns the English sentence source behind the day-set cache.
func (e *env) sentences(ctx context.Context) problemgen.SentenceSource {
	var source problemgen.SentenceSource = problemgen.NewTemplateSentences(problemgen.NewRand())
	if e.cfg.English.Source == "llm" {
		provider, err := llm.NewProviderFromEnv(ctx, e.st.EventRepo(), e.log)
		switch {
		case errors.Is(err, llm.ErrNotConfigured):
			e.log.Warn("english.source is llm but no provider key is set, using the built-in bank")
		case err != nil:
			e.log.Warn("LLM sentences unavailable, using the built-in bank", "error", err)
		default:
			source = problemgen.NewLLMSentences(provider, problemgen.DefaultConfig())
		}
	}

	questions := e.st.QuestionRepo()
	cutoff := leaderboard.LocalDate(time.Now().AddDate(0, 0, -questionRetentionDays))
	if n, err := questions.Prune(ctx, cutoff); err != nil {
		e.log.Warn("prune question sets", "error", err)
	} else if n > 0 {
		e.log.Debug("pruned question sets", "count", n, "before", cutoff)
	}

	var sets problemgen.SetCache = cache.NewDurableSets(questions)
	if e.rdb != nil {
		ttl := config.TTLDuration(e.cfg.Redis.QuestionTTL, 36*time.Hour)
		sets = cache.Tiered(cache.NewRedisSets(e.rdb, "", ttl), sets)
	}
	return cache.NewReadThrough(sets, source, e.log)
}

// screenDeps wires the TUI.
func (e *env) screenDeps(ctx context.Context) screen.Deps {
	sentences := e.sentences(ctx)
	return screen.Deps{
		Gate:     e.gate(e.bus(), nil),
		Settings: e.settings(),
		Strategy: func(s leaderboard.Subject) (session.Strategy, error) {
			return subject.New(s, subject.Deps{Sentences: sentences, Logger: e.log})
		},
		Logger: e.log,
	}
}
