// ABOUTME: Repository implementation over a key/value Engine.
// ABOUTME: Records are JSON under type-prefixed keys; checks and cascades run under one mutex.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/liftlog/internal/storage"
)

const (
	UserPrefix     = "user:"
	RoutinePrefix  = "routine:"
	DayPrefix      = "day:"
	ExercisePrefix = "exercise:"
	DayExPrefix    = "dayex:"
	WeightPrefix   = "weight:"
	TombPrefix     = "tomb:"
)

// Store implements storage.Repository on top of an Engine.
type Store struct {
	engine Engine
	mu     sync.Mutex
}

// Compile-time check that Store implements Repository.
var _ storage.Repository = (*Store)(nil)

// New wraps engine in a Store.
func New(engine Engine) *Store {
	return &Store{engine: engine}
}

// Engine returns the underlying engine.
func (s *Store) Engine() Engine {
	return s.engine
}

// Close closes the underlying engine.
func (s *Store) Close() error {
	return s.engine.Close()
}

// GetAllData retrieves all data for export.
func (s *Store) GetAllData() (*storage.ExportData, error) {
	return storage.CollectExport(s)
}

// ImportData imports data from an export file.
func (s *Store) ImportData(data *storage.ExportData) error {
	return storage.ImportInto(s, data)
}

func notFound(what, id string) error {
	return fmt.Errorf("%w: %s %s", storage.ErrNotFound, what, id)
}

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", storage.ErrInvariantViolation, fmt.Sprintf(format, args...))
}

// exists reports whether key is present.
func (s *Store) exists(key string) (bool, error) {
	_, err := s.engine.Get([]byte(key))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}

// put stores v as JSON under key.
func (s *Store) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.engine.Set([]byte(key), data)
}

// getJSON loads the record at key. A missing key is reported as ErrNotFound.
func getJSON[T any](s *Store, key, what string) (*T, error) {
	data, err := s.engine.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, notFound(what, extractID(key))
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", what, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", what, err)
	}
	return &v, nil
}

// listJSON loads every record under prefix. Undecodable entries are skipped.
func listJSON[T any](s *Store, prefix string) ([]*T, error) {
	keys, err := s.engine.Keys([]byte(prefix))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", strings.TrimSuffix(prefix, ":"), err)
	}
	results := make([]*T, 0, len(keys))
	for _, k := range keys {
		data, err := s.engine.Get(k)
		if errors.Is(err, badger.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", k, err)
		}
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			continue
		}
		results = append(results, &v)
	}
	return results, nil
}

// resolve finds the single full key under typePrefix matching an ID or ID prefix.
func (s *Store) resolve(typePrefix, what, idOrPrefix string) (string, error) {
	idOrPrefix = strings.ToLower(strings.TrimSpace(idOrPrefix))
	if idOrPrefix == "" {
		return "", notFound(what, "(empty id)")
	}

	keys, err := s.engine.Keys([]byte(typePrefix + idOrPrefix))
	if err != nil {
		return "", fmt.Errorf("resolve %s ID: %w", what, err)
	}
	switch len(keys) {
	case 0:
		return "", notFound(what, idOrPrefix)
	case 1:
		return string(keys[0]), nil
	default:
		return "", fmt.Errorf("%w %s: matches multiple %s records", storage.ErrAmbiguousPrefix, idOrPrefix, what)
	}
}

// extractID extracts the ID portion from a prefixed key.
func extractID(key string) string {
	if i := strings.Index(key, ":"); i >= 0 {
		return key[i+1:]
	}
	return key
}

// keysOf converts string keys for Engine.Delete.
func keysOf(keys []string) [][]byte {
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = []byte(k)
	}
	return out
}
