// ABOUTME: Read-through cache in front of any storage.Repository.
// ABOUTME: Caches routine snapshots and latest weights in freecache; writes invalidate.
package cache

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/coocood/freecache"
	"github.com/google/uuid"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/storage"
	log "github.com/sirupsen/logrus"
)

const (
	megabyte = 1024 * 1024

	// DefaultSizeMB is used when New is given a non-positive size.
	DefaultSizeMB = 32

	// DefaultTTL bounds how long an entry lives, in seconds, when the
	// wrapped backend cannot report writes made by other processes.
	DefaultTTL = 5

	noExpire = 0
)

// Repository decorates a storage.Repository. Calls it does not override
// go straight to the wrapped repository.
//
// Writes through the decorator invalidate at once. Writes made elsewhere
// are caught by the backend's storage.ChangeCounter when it has one;
// otherwise entries expire after DefaultTTL seconds.
type Repository struct {
	storage.Repository
	cache   *freecache.Cache
	counter storage.ChangeCounter
	ttl     int

	// mu orders stores against invalidations. gen moves on every
	// invalidation so a load that started before it is never stored.
	mu      sync.Mutex
	gen     uint64
	version int64
}

// Compile-time check that Repository implements storage.Repository.
var _ storage.Repository = (*Repository)(nil)

// New wraps repo with a cache of sizeMB megabytes.
func New(repo storage.Repository, sizeMB int) *Repository {
	if sizeMB <= 0 {
		sizeMB = DefaultSizeMB
	}
	c := &Repository{
		Repository: repo,
		cache:      freecache.NewCache(sizeMB * megabyte),
		ttl:        DefaultTTL,
	}
	if counter, ok := repo.(storage.ChangeCounter); ok {
		c.counter = counter
		c.ttl = noExpire
		if v, err := counter.DataVersion(); err == nil {
			c.version = v
		}
	}
	return c
}

// Unwrap returns the decorated repository.
func (c *Repository) Unwrap() storage.Repository {
	return c.Repository
}

// Stats reports cache hits, misses and live entries.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int64
}

// Stats returns the current cache counters.
func (c *Repository) Stats() Stats {
	return Stats{
		Hits:    c.cache.HitCount(),
		Misses:  c.cache.MissCount(),
		Entries: c.cache.EntryCount(),
	}
}

func routinesKey(userID uuid.UUID) []byte {
	return []byte(fmt.Sprintf("routines::%s", userID))
}

func latestKey(exerciseID uuid.UUID) []byte {
	return []byte(fmt.Sprintf("latest::%s", exerciseID))
}

// ListRoutinesForUser returns a fresh copy of the cached snapshot, or loads
// and caches one.
func (c *Repository) ListRoutinesForUser(userID uuid.UUID) ([]*models.Routine, error) {
	key := routinesKey(userID)
	gen := c.refresh()
	if raw, err := c.cache.Get(key); err == nil {
		var routines []*models.Routine
		if err := json.Unmarshal(raw, &routines); err == nil {
			log.Tracef("routines for user %s served from cache", userID)
			return routines, nil
		}
		log.Errorf("failed to unmarshal cached routines for user %s: %s", userID, err)
	}

	routines, err := c.Repository.ListRoutinesForUser(userID)
	if err != nil {
		return nil, err
	}
	c.store(key, routines, gen)
	return routines, nil
}

// LatestWeight returns the cached newest record or loads it. Empty
// histories are not cached.
func (c *Repository) LatestWeight(exerciseID uuid.UUID) (*models.Weight, error) {
	key := latestKey(exerciseID)
	gen := c.refresh()
	if raw, err := c.cache.Get(key); err == nil {
		var w models.Weight
		if err := json.Unmarshal(raw, &w); err == nil {
			log.Tracef("latest weight for exercise %s served from cache", exerciseID)
			return &w, nil
		}
		log.Errorf("failed to unmarshal cached weight for exercise %s: %s", exerciseID, err)
	}

	w, err := c.Repository.LatestWeight(exerciseID)
	if err != nil {
		return nil, err
	}
	c.store(key, w, gen)
	return w, nil
}

// refresh clears the cache if another process committed since the last
// check, then returns the generation a following load must store under.
func (c *Repository) refresh() uint64 {
	if c.counter == nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.gen
	}

	v, err := c.counter.DataVersion()

	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case err != nil:
		log.Warnf("failed to read data version, clearing cache: %s", err)
		c.clearLocked()
	case v != c.version:
		log.Debugf("data version moved from %d to %d, clearing cache", c.version, v)
		c.version = v
		c.clearLocked()
	}
	return c.gen
}

// store caches v under key unless an invalidation happened since gen was read.
func (c *Repository) store(key []byte, v any, gen uint64) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal cache entry %s: %s", key, err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		log.Tracef("skipping cache entry %s loaded before a write", key)
		return
	}
	if err := c.cache.Set(key, raw, c.ttl); err != nil {
		log.Warnf("failed to write cache entry %s: %s", key, err)
	}
}

func (c *Repository) clearLocked() {
	c.gen++
	c.cache.Clear()
}

// invalidate drops every cached snapshot, whether or not the write failed.
// Structural writes can touch any user's routines, so they clear the whole cache.
func (c *Repository) invalidate(err error) error {
	c.mu.Lock()
	c.clearLocked()
	c.mu.Unlock()
	log.Debug("cache cleared after write")
	return err
}

// invalidateLatest drops the latest-weight entry for one exercise.
func (c *Repository) invalidateLatest(exerciseID uuid.UUID, err error) error {
	c.mu.Lock()
	c.gen++
	c.cache.Del(latestKey(exerciseID))
	c.mu.Unlock()
	return err
}

func (c *Repository) CreateUser(u *models.User) error {
	return c.invalidate(c.Repository.CreateUser(u))
}

func (c *Repository) DeleteUser(idOrPrefix string) error {
	return c.invalidate(c.Repository.DeleteUser(idOrPrefix))
}

func (c *Repository) CreateRoutine(r *models.Routine) error {
	return c.invalidate(c.Repository.CreateRoutine(r))
}

func (c *Repository) RenameRoutine(id uuid.UUID, name string) error {
	return c.invalidate(c.Repository.RenameRoutine(id, name))
}

func (c *Repository) DeleteRoutine(idOrPrefix string) error {
	return c.invalidate(c.Repository.DeleteRoutine(idOrPrefix))
}

func (c *Repository) CreateDay(d *models.Day) error {
	return c.invalidate(c.Repository.CreateDay(d))
}

func (c *Repository) DeleteDay(idOrPrefix string) error {
	return c.invalidate(c.Repository.DeleteDay(idOrPrefix))
}

func (c *Repository) CreateExercise(e *models.Exercise) error {
	return c.invalidate(c.Repository.CreateExercise(e))
}

func (c *Repository) DeleteExercise(idOrPrefix string) error {
	return c.invalidate(c.Repository.DeleteExercise(idOrPrefix))
}

func (c *Repository) LinkExercise(link *models.DayExercise) error {
	return c.invalidate(c.Repository.LinkExercise(link))
}

func (c *Repository) UnlinkExercise(dayID, exerciseID uuid.UUID) error {
	return c.invalidate(c.Repository.UnlinkExercise(dayID, exerciseID))
}

func (c *Repository) AppendWeight(w *models.Weight) error {
	return c.invalidateLatest(w.ExerciseID, c.Repository.AppendWeight(w))
}

func (c *Repository) UpdateWeight(w *models.Weight) error {
	return c.invalidateLatest(w.ExerciseID, c.Repository.UpdateWeight(w))
}

func (c *Repository) DeleteWeight(exerciseID, weightID uuid.UUID) error {
	return c.invalidateLatest(exerciseID, c.Repository.DeleteWeight(exerciseID, weightID))
}

// ImportData loads through this decorator so each write invalidates as usual.
func (c *Repository) ImportData(data *storage.ExportData) error {
	return c.invalidate(storage.ImportInto(c, data))
}

// GetAllData reads through this decorator.
func (c *Repository) GetAllData() (*storage.ExportData, error) {
	return storage.CollectExport(c)
}

// Close empties the cache and closes the wrapped repository.
func (c *Repository) Close() error {
	c.mu.Lock()
	c.clearLocked()
	c.mu.Unlock()
	return c.Repository.Close()
}
