package store

import (
	"context"

	"github.com/gotasapp/nft-sync-engine/internal/domain"
	"github.com/gotasapp/nft-sync-engine/internal/store/schema"
)

// Predicate is one lookup condition to try against a unit store. Column
// values are matched exactly except contract_address, which is compared
// case-insensitively because legacy rows carry mixed-case addresses.
type Predicate struct {
	// Label names the predicate for logging and match provenance
	Label string
	// Where maps column names to required values
	Where map[string]any
}

// UnitMatch is a unit found by predicate iteration, with the predicate that won
type UnitMatch struct {
	Unit      *schema.Unit
	Predicate string
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// FindUnit tries candidate predicates in order against one category store
	// and returns the first match, or nil if none match
	FindUnit(ctx context.Context, category domain.Category, predicates []Predicate) (*UnitMatch, error)

	// GetUnitByGlobalID retrieves a unit by its natural key
	GetUnitByGlobalID(ctx context.Context, category domain.Category, globalID string) (*schema.Unit, error)

	// ListUnitsByContract retrieves all units of a contract in one category store
	ListUnitsByContract(ctx context.Context, category domain.Category, contractAddress string) ([]*schema.Unit, error)

	// ListMintedUnits retrieves units flagged is_minted for a contract
	ListMintedUnits(ctx context.Context, category domain.Category, contractAddress string) ([]*schema.Unit, error)

	// UpsertUnit inserts or updates a unit keyed on GlobalID. Returns true
	// when a new row was created.
	UpsertUnit(ctx context.Context, category domain.Category, unit *schema.Unit) (bool, error)

	// UpdateUnitFields applies a field-restricted update to the unit with the
	// given tokenID/contract, creating a minimal row if none exists. Returns
	// the unit's global id. The restriction to named fields is what makes
	// repeated correction application idempotent.
	UpdateUnitFields(ctx context.Context, category domain.Category, chainID domain.Chain, contractAddress, tokenID string, fields map[string]any) (string, error)

	// UpdateUnitImage merges image fields only onto an existing unit row
	UpdateUnitImage(ctx context.Context, category domain.Category, unitID int64, imageURL string) error

	// GetCustomCollection retrieves a custom collection definition by object id
	GetCustomCollection(ctx context.Context, objectID string) (*schema.CustomCollection, error)

	// GetLaunchpadCollection retrieves a launchpad collection by object id
	GetLaunchpadCollection(ctx context.Context, objectID string) (*schema.Collection, error)

	// ListMintsByCollection retrieves all mints of a custom collection
	ListMintsByCollection(ctx context.Context, customCollectionID string) ([]*schema.CustomCollectionMint, error)

	// FindMint retrieves one mint of a custom collection by collection-scoped
	// token id or by the mint's own object id
	FindMint(ctx context.Context, customCollectionID string, unitID domain.UnitIdentifier) (*schema.CustomCollectionMint, error)

	// GetCacheEntry retrieves a cache row, or nil when absent
	GetCacheEntry(ctx context.Context, unitID string) (*schema.CacheEntry, error)

	// PutCacheEntry overwrites a cache row wholesale
	PutCacheEntry(ctx context.Context, entry *schema.CacheEntry) error
}
