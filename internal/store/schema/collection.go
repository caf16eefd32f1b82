package schema

import "time"

// CollectionType discriminates rows in the collections table
type CollectionType string

const (
	CollectionTypeLaunchpad CollectionType = "launchpad"
	CollectionTypeMarket    CollectionType = "marketplace"
)

// CustomCollection is a user-authored collection definition. Units of a
// custom collection live in custom_collection_mints, keyed by the collection's
// object id.
type CustomCollection struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ObjectID is the 24-character hex identifier callers address the collection by
	ObjectID        string    `gorm:"column:object_id;not null;uniqueIndex;type:char(24)"`
	Name            string    `gorm:"column:name;type:text"`
	ContractAddress string    `gorm:"column:contract_address;type:text"`
	CreatorWallet   string    `gorm:"column:creator_wallet;type:text"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the CustomCollection model
func (CustomCollection) TableName() string {
	return "custom_collections"
}

// Collection is a drop-collection definition. Launchpad rows are a wrapper
// over a contract address whose minted units live in the standard per-category
// stores, not in the custom-mint store.
type Collection struct {
	ID              int64          `gorm:"column:id;primaryKey;autoIncrement"`
	ObjectID        string         `gorm:"column:object_id;not null;uniqueIndex;type:char(24)"`
	Type            CollectionType `gorm:"column:type;not null;type:text;index"`
	Name            string         `gorm:"column:name;type:text"`
	ContractAddress string         `gorm:"column:contract_address;type:text"`
	CreatedAt       time.Time      `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the Collection model
func (Collection) TableName() string {
	return "collections"
}

// CustomCollectionMint is one minted unit of a custom collection. TokenID is
// scoped to the collection, not globally unique.
type CustomCollectionMint struct {
	ID                 int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ObjectID           string `gorm:"column:object_id;not null;uniqueIndex;type:char(24)"`
	CustomCollectionID string `gorm:"column:custom_collection_id;not null;type:char(24);index:idx_mints_collection_token,priority:1"`
	TokenID            string `gorm:"column:token_id;not null;type:text;index:idx_mints_collection_token,priority:2"`
	ContractAddress    string `gorm:"column:contract_address;type:text"`
	Owner              string `gorm:"column:owner;type:text"`
	MinterAddress      string `gorm:"column:minter_address;type:text"`
	Name               string `gorm:"column:name;type:text"`
	ImageURL           string `gorm:"column:image_url;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the CustomCollectionMint model
func (CustomCollectionMint) TableName() string {
	return "custom_collection_mints"
}
