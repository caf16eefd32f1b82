package schema

import (
	"time"

	"gorm.io/datatypes"
)

// CacheEntry is one row of the per-unit projection cache. Entries are
// overwritten wholesale on refresh, never merged; there is no eviction beyond
// that overwrite since unit count is bounded by mint volume, not request
// volume.
type CacheEntry struct {
	// UnitID is the cache key (token id or object reference, raw form)
	UnitID string `gorm:"column:unit_id;primaryKey;type:text"`
	// Projection is the denormalized unit record served on cache hits
	Projection datatypes.JSON `gorm:"column:projection;not null"`
	// LastUpdated drives staleness evaluation; one timestamp covers both TTL
	// classes, accepting that metadata refreshes more often than necessary
	LastUpdated time.Time `gorm:"column:last_updated;not null"`
}

// TableName specifies the table name for the CacheEntry model
func (CacheEntry) TableName() string {
	return "nft_cache"
}
