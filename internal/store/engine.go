package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"zhiyu/internal/models"
	"zhiyu/internal/providers"
	"zhiyu/internal/structures"
)

// Collection keys. These double as the on-disk format: changing one orphans
// previously stored data.
const (
	CollectionAccounts = "zhiyu_users"
	CollectionRecords  = "zhiyu_records"
	CollectionMessages = "zhiyu_messages"
	CollectionGearSets = "zhiyu_gear_sets"
	CollectionSpots    = "zhiyu_spots"

	KeySession    = "zhiyu_session"
	KeyLastConfig = "zhiyu_last_config"
)

// ErrDuplicateID is returned by Create when a record with the same id is
// already present in the collection. The engine never auto-resolves
// collisions.
var ErrDuplicateID = errors.New("duplicate record id")

// Engine provides collection-scoped storage over a Substrate. Reads pay a
// configurable simulated latency; mutations are serialized behind a single
// mutex because every write is a whole-collection read-modify-write cycle.
type Engine struct {
	mu        sync.Mutex
	substrate Substrate
	readDelay time.Duration
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
}

func NewEngine(conf *structures.Config, substrate Substrate, logger providers.Logger, metrics providers.MetricsProviderInterface) *Engine {
	return &Engine{
		substrate: substrate,
		readDelay: conf.Store.ReadDelay,
		logger:    logger,
		metrics:   metrics,
	}
}

// wait models asynchronous I/O latency on reads. It is bounded by the
// caller's context so a cancelled request surfaces an error instead of
// hanging.
func (e *Engine) wait(ctx context.Context) error {
	if e.readDelay <= 0 {
		return nil
	}
	t := time.NewTimer(e.readDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// GetRaw reads a standalone (non-collection) key into out. No latency is
// applied; raw keys back session and preference lookups.
func (e *Engine) GetRaw(key string, out any) (bool, error) {
	raw, ok, err := e.substrate.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// PutRaw writes a standalone key.
func (e *Engine) PutRaw(key string, val any) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return e.substrate.Set(key, raw)
}

// DeleteRaw removes a standalone key.
func (e *Engine) DeleteRaw(key string) error {
	return e.substrate.Delete(key)
}

// Collection is a typed handle over one named collection. T's RecordID is
// the uniqueness contract; the engine is agnostic to every other field.
type Collection[T models.Record] struct {
	engine *Engine
	key    string
}

func NewCollection[T models.Record](engine *Engine, key string) *Collection[T] {
	return &Collection[T]{engine: engine, key: key}
}

func (c *Collection[T]) Key() string {
	return c.key
}

func (c *Collection[T]) read(ctx context.Context) ([]T, error) {
	if err := c.engine.wait(ctx); err != nil {
		return nil, err
	}

	raw, ok, err := c.engine.substrate.Get(c.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", c.key, err)
	}
	return items, nil
}

func (c *Collection[T]) persist(items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", c.key, err)
	}
	if err := c.engine.substrate.Set(c.key, raw); err != nil {
		return err
	}
	c.engine.metrics.SetCollectionSize(c.key, len(items))
	return nil
}

// List returns every record in storage order. An absent collection yields
// an empty slice, never an error.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	return c.read(ctx)
}

func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, bool, error) {
	return c.FindOne(ctx, func(item T) bool { return item.RecordID() == id })
}

// FindOne returns the first record satisfying pred, in storage order.
func (c *Collection[T]) FindOne(ctx context.Context, pred func(T) bool) (T, bool, error) {
	var zero T
	items, err := c.read(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if pred(item) {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Create appends a record. A colliding id is rejected with ErrDuplicateID
// rather than silently duplicated.
func (c *Collection[T]) Create(ctx context.Context, rec T) error {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()

	items, err := c.read(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.RecordID() == rec.RecordID() {
			return fmt.Errorf("%w: %s in %s", ErrDuplicateID, rec.RecordID(), c.key)
		}
	}
	return c.persist(append(items, rec))
}

// Update applies the mutator to the matching record in place and persists
// the collection. Returns false without side effect when id is absent.
func (c *Collection[T]) Update(ctx context.Context, id string, apply func(*T)) (T, bool, error) {
	var zero T

	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()

	items, err := c.read(ctx)
	if err != nil {
		return zero, false, err
	}
	for i := range items {
		if items[i].RecordID() == id {
			apply(&items[i])
			if err := c.persist(items); err != nil {
				return zero, false, err
			}
			return items[i], true, nil
		}
	}
	return zero, false, nil
}

// Delete removes the matching record, reporting whether a removal occurred.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()

	items, err := c.read(ctx)
	if err != nil {
		return false, err
	}
	kept := items[:0]
	for _, item := range items {
		if item.RecordID() != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	if err := c.persist(kept); err != nil {
		return false, err
	}
	return true, nil
}
