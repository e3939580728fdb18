package kv

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/teltechdev/teltech-backend/pkg/logger"
)

const keyNamespace = "teltech"

// ErrNotFound is returned by backends when a key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Backend is the raw key/value surface the store persists through.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}

// Notifier receives a signal after every successful write so other views can
// invalidate their render of the changed key.
type Notifier interface {
	Publish(ctx context.Context, key string) error
}

// Store persists JSON-encoded sequences under namespaced keys. Reads never
// fail: an absent key or a malformed payload both decode to the empty
// sequence.
type Store struct {
	backend  Backend
	notifier Notifier
	logg     *logger.Logger
}

func NewStore(backend Backend, notifier Notifier, logg *logger.Logger) *Store {
	return &Store{backend: backend, notifier: notifier, logg: logg}
}

// Key builds a namespaced storage key from the provided parts.
func Key(parts ...string) string {
	clean := []string{keyNamespace}
	for _, part := range parts {
		if part == "" {
			continue
		}
		clean = append(clean, strings.TrimSpace(part))
	}
	return strings.Join(clean, ":")
}

// Read decodes the sequence stored under key. Absent keys, backend failures,
// and malformed payloads all yield the empty slice, never nil and never an
// error to the caller.
func Read[T any](ctx context.Context, s *Store, key string) []T {
	empty := []T{}
	if s == nil || s.backend == nil {
		return empty
	}

	raw, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "key", key), "kv read failed, treating as empty")
		}
		return empty
	}

	var values []T
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "key", key), "kv payload malformed, treating as empty")
		}
		return empty
	}
	if values == nil {
		return empty
	}
	return values
}

// Write serializes the sequence under key and publishes a key-changed signal
// when a notifier is attached. A nil slice is stored as the empty array so
// readers never observe null.
func Write[T any](ctx context.Context, s *Store, key string, values []T) error {
	if s == nil || s.backend == nil {
		return errors.New("kv: store not initialized")
	}
	if values == nil {
		values = []T{}
	}

	payload, err := json.Marshal(values)
	if err != nil {
		return err
	}
	if err := s.backend.Set(ctx, key, string(payload)); err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.Publish(ctx, key); err != nil && s.logg != nil {
			s.logg.Error(s.logg.WithField(ctx, "key", key), "kv change signal failed", err)
		}
	}
	return nil
}

// ReadFlag returns the raw string stored under key, or "" when absent.
func (s *Store) ReadFlag(ctx context.Context, key string) string {
	if s == nil || s.backend == nil {
		return ""
	}
	raw, err := s.backend.Get(ctx, key)
	if err != nil {
		return ""
	}
	return raw
}

// WriteFlag stores a raw string value under key.
func (s *Store) WriteFlag(ctx context.Context, key, value string) error {
	if s == nil || s.backend == nil {
		return errors.New("kv: store not initialized")
	}
	if err := s.backend.Set(ctx, key, value); err != nil {
		return err
	}
	if s.notifier != nil {
		if err := s.notifier.Publish(ctx, key); err != nil && s.logg != nil {
			s.logg.Error(s.logg.WithField(ctx, "key", key), "kv change signal failed", err)
		}
	}
	return nil
}

// DeleteFlag removes the key entirely.
func (s *Store) DeleteFlag(ctx context.Context, key string) error {
	if s == nil || s.backend == nil {
		return errors.New("kv: store not initialized")
	}
	return s.backend.Del(ctx, key)
}
