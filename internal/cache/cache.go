package cache

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/gotasapp/nft-sync-engine/internal/adapter"
	"github.com/gotasapp/nft-sync-engine/internal/domain"
	"github.com/gotasapp/nft-sync-engine/internal/store"
	"github.com/gotasapp/nft-sync-engine/internal/store/schema"
)

//go:generate mockgen -source=cache.go -destination=../mocks/cache.go -package=mocks -mock_names=Store=MockCacheStore

// TTL presets. Trading-sensitive reads tolerate less staleness than
// metadata-only reads.
const (
	TTLTrading  = 15 * time.Minute
	TTLMetadata = 60 * time.Minute
)

// Entry is a cached unit projection with its freshness timestamp
type Entry struct {
	UnitID      string
	Projection  domain.UnitRecord
	LastUpdated time.Time
}

// Store is a per-unit TTL cache of denormalized unit projections. There is
// no eviction beyond overwrite-on-refresh: unit count is bounded by mint
// volume, not request volume.
type Store interface {
	// Get returns the cached entry for a unit, or nil when absent
	Get(ctx context.Context, unitID string) (*Entry, error)

	// Put overwrites the cached projection wholesale and stamps LastUpdated
	Put(ctx context.Context, unitID string, projection domain.UnitRecord) error

	// IsStale reports whether an entry's age has reached the TTL. The
	// boundary is exclusive of freshness: an entry aged exactly ttl is stale.
	IsStale(entry *Entry, ttl time.Duration) bool
}

type cacheStore struct {
	store store.Store
	json  adapter.JSON
	clock adapter.Clock
}

// NewStore creates a cache store backed by the durable store's cache table
func NewStore(s store.Store, json adapter.JSON, clock adapter.Clock) Store {
	return &cacheStore{store: s, json: json, clock: clock}
}

// Get returns the cached entry for a unit, or nil when absent
func (c *cacheStore) Get(ctx context.Context, unitID string) (*Entry, error) {
	row, err := c.store.GetCacheEntry(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	var projection domain.UnitRecord
	if err := c.json.Unmarshal(row.Projection, &projection); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached projection: %w", err)
	}

	return &Entry{
		UnitID:      row.UnitID,
		Projection:  projection,
		LastUpdated: row.LastUpdated,
	}, nil
}

// Put overwrites the cached projection wholesale
func (c *cacheStore) Put(ctx context.Context, unitID string, projection domain.UnitRecord) error {
	data, err := c.json.Marshal(projection)
	if err != nil {
		return fmt.Errorf("failed to marshal projection: %w", err)
	}

	return c.store.PutCacheEntry(ctx, &schema.CacheEntry{
		UnitID:      unitID,
		Projection:  datatypes.JSON(data),
		LastUpdated: c.clock.Now(),
	})
}

// IsStale reports whether an entry's age has reached the TTL
func (c *cacheStore) IsStale(entry *Entry, ttl time.Duration) bool {
	if entry == nil {
		return true
	}
	return c.clock.Since(entry.LastUpdated) >= ttl
}
