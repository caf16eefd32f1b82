package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gotasapp/nft-sync-engine/internal/domain"
	"github.com/gotasapp/nft-sync-engine/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to safe defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// AutoMigrate creates or updates the engine's tables. The per-category unit
// tables share one model, so the unit migration runs once per table name.
func AutoMigrate(db *gorm.DB) error {
	for _, category := range domain.StandardCategories {
		if err := db.Table(category.TableName()).AutoMigrate(&schema.Unit{}); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", category.TableName(), err)
		}
	}
	return db.AutoMigrate(
		&schema.CustomCollection{},
		&schema.Collection{},
		&schema.CustomCollectionMint{},
		&schema.CacheEntry{},
	)
}

// unitQuery scopes a query to one category table
func (s *pgStore) unitQuery(ctx context.Context, category domain.Category) *gorm.DB {
	return s.db.WithContext(ctx).Table(category.TableName())
}

// applyPredicate translates one predicate into WHERE clauses
func applyPredicate(q *gorm.DB, pred Predicate) *gorm.DB {
	for column, value := range pred.Where {
		if column == "contract_address" {
			if sv, ok := value.(string); ok {
				q = q.Where("LOWER(contract_address) = ?", strings.ToLower(sv))
				continue
			}
		}
		q = q.Where(fmt.Sprintf("%s = ?", column), value)
	}
	return q
}

// FindUnit tries candidate predicates in order and stops at the first match.
// The ordering is a policy owned by the key resolver: earlier predicates are
// strictly more specific and must win.
func (s *pgStore) FindUnit(ctx context.Context, category domain.Category, predicates []Predicate) (*UnitMatch, error) {
	for _, pred := range predicates {
		var unit schema.Unit
		err := applyPredicate(s.unitQuery(ctx, category), pred).First(&unit).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to find unit (%s): %w", pred.Label, err)
		}
		return &UnitMatch{Unit: &unit, Predicate: pred.Label}, nil
	}
	return nil, nil
}

// GetUnitByGlobalID retrieves a unit by its natural key
func (s *pgStore) GetUnitByGlobalID(ctx context.Context, category domain.Category, globalID string) (*schema.Unit, error) {
	var unit schema.Unit
	err := s.unitQuery(ctx, category).Where("global_id = ?", globalID).First(&unit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	return &unit, nil
}

// ListUnitsByContract retrieves all units of a contract in one category store
func (s *pgStore) ListUnitsByContract(ctx context.Context, category domain.Category, contractAddress string) ([]*schema.Unit, error) {
	var units []*schema.Unit
	err := s.unitQuery(ctx, category).
		Where("LOWER(contract_address) = ?", strings.ToLower(contractAddress)).
		Order("id ASC").
		Find(&units).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	return units, nil
}

// ListMintedUnits retrieves units flagged is_minted for a contract
func (s *pgStore) ListMintedUnits(ctx context.Context, category domain.Category, contractAddress string) ([]*schema.Unit, error) {
	var units []*schema.Unit
	err := s.unitQuery(ctx, category).
		Where("LOWER(contract_address) = ? AND is_minted = ?", strings.ToLower(contractAddress), true).
		Find(&units).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list minted units: %w", err)
	}
	return units, nil
}

// UpsertUnit inserts or updates a unit keyed on GlobalID
func (s *pgStore) UpsertUnit(ctx context.Context, category domain.Category, unit *schema.Unit) (bool, error) {
	existing, err := s.GetUnitByGlobalID(ctx, category, unit.GlobalID)
	if err != nil {
		return false, err
	}

	now := time.Now()
	if existing == nil {
		unit.CreatedAt = now
		unit.UpdatedAt = now
		// ON CONFLICT keeps concurrent sync runs convergent (last write wins)
		err = s.unitQuery(ctx, category).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "global_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"owner", "name", "image_url", "attributes", "metadata_raw",
					"is_minted",
					"marketplace_is_listed", "marketplace_is_auction",
					"marketplace_listing_id", "marketplace_auction_id",
					"marketplace_price_base_units", "marketplace_currency",
					"marketplace_end_time",
					"updated_at",
				}),
			}).
			Create(unit).Error
		if err != nil {
			return false, fmt.Errorf("failed to insert unit: %w", err)
		}
		return true, nil
	}

	unit.ID = existing.ID
	unit.CreatedAt = existing.CreatedAt
	unit.UpdatedAt = now
	err = s.unitQuery(ctx, category).
		Where("global_id = ?", unit.GlobalID).
		Updates(map[string]any{
			"chain_id":         unit.ChainID,
			"contract_address": unit.ContractAddress,
			"token_id":         unit.TokenID,
			"owner":            unit.Owner,
			"name":             unit.Name,
			"image_url":        unit.ImageURL,
			"attributes":       unit.Attributes,
			"metadata_raw":     unit.MetadataRaw,
			"is_minted":        unit.IsMinted,
			"auto_created":     unit.AutoCreated,
			// Marketplace state is written as a group, empty included, so a
			// listing that ended since the last sync is cleared
			"marketplace_is_listed":        unit.Marketplace.IsListed,
			"marketplace_is_auction":       unit.Marketplace.IsAuction,
			"marketplace_listing_id":       unit.Marketplace.ListingID,
			"marketplace_auction_id":       unit.Marketplace.AuctionID,
			"marketplace_price_base_units": unit.Marketplace.PriceBaseUnits,
			"marketplace_currency":         unit.Marketplace.Currency,
			"marketplace_end_time":         unit.Marketplace.EndTime,
			"updated_at":                   now,
		}).Error
	if err != nil {
		return false, fmt.Errorf("failed to update unit: %w", err)
	}
	return false, nil
}

// UpdateUnitFields applies a field-restricted update, creating a minimal row
// when the unit does not exist yet. Never a full-document overwrite.
func (s *pgStore) UpdateUnitFields(ctx context.Context, category domain.Category, chainID domain.Chain, contractAddress, tokenID string, fields map[string]any) (string, error) {
	globalID := domain.GlobalID(chainID, contractAddress, tokenID)

	existing, err := s.GetUnitByGlobalID(ctx, category, globalID)
	if err != nil {
		return "", err
	}

	now := time.Now()
	if existing == nil {
		unit := &schema.Unit{
			GlobalID:        globalID,
			ChainID:         string(chainID),
			ContractAddress: strings.ToLower(contractAddress),
			TokenID:         tokenID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := s.unitQuery(ctx, category).Create(unit).Error; err != nil {
			return "", fmt.Errorf("failed to create unit for field update: %w", err)
		}
	}

	fields["updated_at"] = now
	err = s.unitQuery(ctx, category).
		Where("global_id = ?", globalID).
		Updates(fields).Error
	if err != nil {
		return "", fmt.Errorf("failed to update unit fields: %w", err)
	}
	return globalID, nil
}

// UpdateUnitImage merges image fields only; owner and metadata are never
// touched by this path.
func (s *pgStore) UpdateUnitImage(ctx context.Context, category domain.Category, unitID int64, imageURL string) error {
	err := s.unitQuery(ctx, category).
		Where("id = ?", unitID).
		Updates(map[string]any{
			"image_url":  imageURL,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update unit image: %w", err)
	}
	return nil
}

// GetCustomCollection retrieves a custom collection definition by object id
func (s *pgStore) GetCustomCollection(ctx context.Context, objectID string) (*schema.CustomCollection, error) {
	var collection schema.CustomCollection
	err := s.db.WithContext(ctx).Where("object_id = ?", objectID).First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get custom collection: %w", err)
	}
	return &collection, nil
}

// GetLaunchpadCollection retrieves a launchpad collection by object id
func (s *pgStore) GetLaunchpadCollection(ctx context.Context, objectID string) (*schema.Collection, error) {
	var collection schema.Collection
	err := s.db.WithContext(ctx).
		Where("object_id = ? AND type = ?", objectID, schema.CollectionTypeLaunchpad).
		First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get launchpad collection: %w", err)
	}
	return &collection, nil
}

// ListMintsByCollection retrieves all mints of a custom collection
func (s *pgStore) ListMintsByCollection(ctx context.Context, customCollectionID string) ([]*schema.CustomCollectionMint, error) {
	var mints []*schema.CustomCollectionMint
	err := s.db.WithContext(ctx).
		Where("custom_collection_id = ?", customCollectionID).
		Order("id ASC").
		Find(&mints).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list mints: %w", err)
	}
	return mints, nil
}

// FindMint retrieves one mint by collection-scoped token id or object id
func (s *pgStore) FindMint(ctx context.Context, customCollectionID string, unitID domain.UnitIdentifier) (*schema.CustomCollectionMint, error) {
	q := s.db.WithContext(ctx).Where("custom_collection_id = ?", customCollectionID)
	if unitID.IsObjectReference() {
		q = q.Where("object_id = ?", unitID.Raw)
	} else {
		q = q.Where("token_id = ?", unitID.Raw)
	}

	var mint schema.CustomCollectionMint
	if err := q.First(&mint).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find mint: %w", err)
	}
	return &mint, nil
}

// GetCacheEntry retrieves a cache row, or nil when absent
func (s *pgStore) GetCacheEntry(ctx context.Context, unitID string) (*schema.CacheEntry, error) {
	var entry schema.CacheEntry
	err := s.db.WithContext(ctx).Where("unit_id = ?", unitID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}
	return &entry, nil
}

// PutCacheEntry overwrites a cache row wholesale
func (s *pgStore) PutCacheEntry(ctx context.Context, entry *schema.CacheEntry) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "unit_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"projection", "last_updated"}),
		}).
		Create(entry).Error
	if err != nil {
		return fmt.Errorf("failed to put cache entry: %w", err)
	}
	return nil
}
