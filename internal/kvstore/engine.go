// ABOUTME: Key/value engines behind the KV store: local Badger and Charm Cloud KV.
// ABOUTME: Both share Badger's on-disk format and its ErrKeyNotFound sentinel.
package kvstore

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/liftlog/internal/storage"
	"go.uber.org/multierr"
)

// Engine is the byte-level key/value surface the Store is written against.
// Get on a missing key returns an error matching badger.ErrKeyNotFound.
type Engine interface {
	Set(key, value []byte) error
	Get(key []byte) ([]byte, error)
	Delete(keys ...[]byte) error
	Apply(b *Batch) error
	Keys(prefix []byte) ([][]byte, error)
	Close() error
}

// Batch collects sets and deletes that an engine applies together.
type Batch struct {
	sets    []entry
	deletes [][]byte
}

type entry struct {
	key, value []byte
}

// Set queues key=value.
func (b *Batch) Set(key, value []byte) {
	b.sets = append(b.sets, entry{key: key, value: value})
}

// Delete queues removal of key.
func (b *Batch) Delete(key []byte) {
	b.deletes = append(b.deletes, key)
}

// BadgerEngine stores keys in a local Badger database.
type BadgerEngine struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a Badger database in dir.
func OpenBadger(dir string) (*BadgerEngine, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerEngine{db: db}, nil
}

// OpenMemoryBadger opens a Badger database that lives only in memory.
func OpenMemoryBadger() (*BadgerEngine, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerEngine{db: db}, nil
}

func (b *BadgerEngine) Set(key, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (b *BadgerEngine) Get(key []byte) ([]byte, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	return value, err
}

// Delete removes all keys in one transaction.
func (b *BadgerEngine) Delete(keys ...[]byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Apply writes the whole batch in one transaction.
func (b *BadgerEngine) Apply(batch *Batch) error {
	return b.db.Update(func(txn *badger.Txn) error {
		for _, e := range batch.sets {
			if err := txn.Set(e.key, e.value); err != nil {
				return err
			}
		}
		for _, k := range batch.deletes {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *BadgerEngine) Keys(prefix []byte) ([][]byte, error) {
	var keys [][]byte
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	return keys, err
}

func (b *BadgerEngine) Close() error {
	return b.db.Close()
}

// CharmEngine stores keys in a Charm KV database and syncs with Charm Cloud.
type CharmEngine struct {
	kv       *kv.KV
	autoSync bool
	mu       sync.RWMutex
}

// OpenCharm opens the named Charm KV database. When host is set it
// overrides CHARM_HOST before the client is created. Remote data is
// pulled once on open.
func OpenCharm(name, host string) (*CharmEngine, error) {
	if host != "" {
		if err := os.Setenv("CHARM_HOST", host); err != nil {
			return nil, err
		}
	}

	db, err := kv.OpenWithDefaults(name)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	e := &CharmEngine{kv: db, autoSync: true}
	_ = db.Sync()
	return e, nil
}

// SetAutoSync enables or disables sync after every write.
func (c *CharmEngine) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// Bulk runs fn with sync after every write turned off, then syncs once.
// The previous auto-sync setting is restored afterwards.
func (c *CharmEngine) Bulk(fn func() error) error {
	c.mu.RLock()
	previous := c.autoSync
	c.mu.RUnlock()

	c.SetAutoSync(false)
	defer c.SetAutoSync(previous)

	if err := fn(); err != nil {
		return err
	}
	return c.Sync()
}

// CharmOf returns the Charm engine behind repo, looking through decorators
// such as the read-through cache that expose Unwrap.
func CharmOf(repo storage.Repository) (*CharmEngine, bool) {
	for repo != nil {
		switch r := repo.(type) {
		case *Store:
			e, ok := r.engine.(*CharmEngine)
			return e, ok
		case interface{ Unwrap() storage.Repository }:
			repo = r.Unwrap()
		default:
			return nil, false
		}
	}
	return nil, false
}

// Sync synchronizes local state with Charm Cloud.
func (c *CharmEngine) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.kv.Sync()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *CharmEngine) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// ID returns the Charm user ID for the current account.
func (c *CharmEngine) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// syncIfEnabled calls Sync if autoSync is enabled. Sync failures leave
// the local write in place; the next sync retries it.
func (c *CharmEngine) syncIfEnabled() {
	if c.autoSync {
		_ = c.kv.Sync()
	}
}

func (c *CharmEngine) Set(key, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.kv.Set(key, value); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

func (c *CharmEngine) Get(key []byte) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.kv.Get(key)
}

// Delete removes keys one by one and syncs once at the end.
func (c *CharmEngine) Delete(keys ...[]byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var err error
	for _, k := range keys {
		if delErr := c.kv.Delete(k); delErr != nil && !errors.Is(delErr, badger.ErrKeyNotFound) {
			err = multierr.Append(err, delErr)
		}
	}
	c.syncIfEnabled()
	return err
}

// Apply writes the batch key by key and syncs once. Charm KV has no
// multi-key transaction, so sets go first and a failed set stops the batch
// before anything is deleted.
func (c *CharmEngine) Apply(batch *Batch) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.syncIfEnabled()
	for _, e := range batch.sets {
		if err := c.kv.Set(e.key, e.value); err != nil {
			return err
		}
	}
	var err error
	for _, k := range batch.deletes {
		if delErr := c.kv.Delete(k); delErr != nil && !errors.Is(delErr, badger.ErrKeyNotFound) {
			err = multierr.Append(err, delErr)
		}
	}
	return err
}

// Keys lists all keys with prefix. Charm KV only exposes a full key
// listing, so filtering happens client-side.
func (c *CharmEngine) Keys(prefix []byte) ([][]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	all, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}
	var keys [][]byte
	for _, k := range all {
		if bytes.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (c *CharmEngine) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Close()
}
