package settings

import (
	"context"
	"fmt"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/logger"
)

// KV is the key-value persistence the Manager writes through.
// Get reports false when the key is absent.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// StorageKey returns the key a subject's settings are stored under.
func StorageKey(subject leaderboard.Subject) string {
	return string(subject) + "_teacher_settings_v1"
}

// Manager loads and saves per-subject settings.
type Manager struct {
	kv  KV
	log *logger.Logger
}

func NewManager(kv KV, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNop()
	}
	return &Manager{kv: kv, log: log}
}

// Load returns the stored settings for subject, or the defaults when
// nothing is stored or the store cannot be read.
func (m *Manager) Load(ctx context.Context, subject leaderboard.Subject) Settings {
	raw, ok, err := m.kv.Get(ctx, StorageKey(subject))
	if err != nil {
		m.log.Warn("load teacher settings", "subject", subject, "error", err)
		return Defaults(subject)
	}
	if !ok {
		return Defaults(subject)
	}
	return Load(subject, raw)
}

// Save persists s in its clamped form.
func (m *Manager) Save(ctx context.Context, s Settings) error {
	raw, err := s.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := m.kv.Put(ctx, StorageKey(s.Subject()), raw); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Update applies p to the stored settings and saves the result.
func (m *Manager) Update(ctx context.Context, subject leaderboard.Subject, p Patch) (Settings, error) {
	s := Apply(m.Load(ctx, subject), p)
	return s, m.Save(ctx, s)
}

// Reset removes the stored settings so the defaults apply again.
func (m *Manager) Reset(ctx context.Context, subject leaderboard.Subject) (Settings, error) {
	if err := m.kv.Delete(ctx, StorageKey(subject)); err != nil {
		return Settings{}, fmt.Errorf("reset settings: %w", err)
	}
	return Defaults(subject), nil
}
