package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Marketplace holds the denormalized trading state written onto a unit during
// sync or correction application. Fields are only ever updated as a group by
// listing-scoped writes, never by the metadata path.
type Marketplace struct {
	// IsListed indicates an active direct listing exists on the ledger
	IsListed bool `gorm:"column:marketplace_is_listed;not null;default:false"`
	// IsAuction indicates an active auction exists on the ledger
	IsAuction bool `gorm:"column:marketplace_is_auction;not null;default:false"`
	// ListingID is the ledger's listing identifier
	ListingID *string `gorm:"column:marketplace_listing_id;type:text"`
	// AuctionID is the ledger's auction identifier
	AuctionID *string `gorm:"column:marketplace_auction_id;type:text"`
	// PriceBaseUnits is the raw 18-decimal integer price
	PriceBaseUnits *string `gorm:"column:marketplace_price_base_units;type:text"`
	// Currency is the payment token address
	Currency *string `gorm:"column:marketplace_currency;type:text"`
	// EndTime is when the listing or auction closes
	EndTime *time.Time `gorm:"column:marketplace_end_time"`
}

// Unit represents one NFT row in a per-category store (jerseys, stadiums,
// badges). The same struct is routed to the category table by the store; see
// domain.Category.TableName.
type Unit struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// GlobalID is the deterministic chain_contract_token natural key and the
	// sole uniqueness constraint enforced by the sync upsert
	GlobalID string `gorm:"column:global_id;not null;uniqueIndex;type:text"`
	// ChainID identifies the ledger network in CAIP-2 form
	ChainID string `gorm:"column:chain_id;not null;type:text"`
	// ContractAddress is stored lowercased
	ContractAddress string `gorm:"column:contract_address;not null;type:text;index:idx_units_contract_token,priority:1"`
	// TokenID is the ledger token id (text to support very large numbers)
	TokenID string `gorm:"column:token_id;not null;type:text;index:idx_units_contract_token,priority:2"`
	// BlockchainTokenID is a legacy duplicate of TokenID present on records
	// created before the schema was normalized
	BlockchainTokenID *string `gorm:"column:blockchain_token_id;type:text"`
	// LegacyObjectID is the document id carried over from the previous
	// document store, kept so old object-reference lookups still resolve
	LegacyObjectID *string `gorm:"column:legacy_object_id;type:char(24);index"`
	// MinterAddress is the wallet that minted the unit (legacy key component)
	MinterAddress *string `gorm:"column:minter_address;type:text"`
	// CreatorWallet is the authoring wallet (legacy last-resort key component)
	CreatorWallet *string `gorm:"column:creator_wallet;type:text"`
	// Owner is the current owner address
	Owner string `gorm:"column:owner;type:text"`

	Name        string         `gorm:"column:name;type:text"`
	ImageURL    string         `gorm:"column:image_url;type:text"`
	Attributes  datatypes.JSON `gorm:"column:attributes"`
	MetadataRaw datatypes.JSON `gorm:"column:metadata_raw"`

	// IsMinted mirrors the ledger's view; reconciliation repairs drift on it
	IsMinted bool `gorm:"column:is_minted;not null;default:false"`
	// AutoCreated marks placeholder rows synthesized for ledger listings that
	// matched no existing document
	AutoCreated bool `gorm:"column:auto_created;not null;default:false"`

	Marketplace Marketplace `gorm:"embedded"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}
