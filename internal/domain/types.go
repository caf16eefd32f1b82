package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainPolygonAmoy Chain = "eip155:80002"
	ChainChilizSpicy Chain = "eip155:88882"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainPolygonAmoy || chain == ChainChilizSpicy
}

// IdentifierKind discriminates the two unit identifier forms
type IdentifierKind string

const (
	// IdentifierNumericTokenID is a decimal integer, ledger-native
	IdentifierNumericTokenID IdentifierKind = "numeric_token_id"
	// IdentifierObjectReference is a 24-character hex id, store-native
	IdentifierObjectReference IdentifierKind = "object_reference"
)

// UnitIdentifier is a classified unit (NFT) identifier.
// Every stored unit has exactly one canonical identifier form per collection
// shape; cross-shape lookups must try both forms.
type UnitIdentifier struct {
	Raw  string         `json:"raw"`
	Kind IdentifierKind `json:"kind"`
}

var (
	objectReferenceRegexp = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
	numericTokenIDRegexp  = regexp.MustCompile(`^[0-9]+$`)
)

// ClassifyIdentifier classifies a raw identifier string structurally.
// The object-reference test runs first: a 24-digit decimal string is a valid
// hex object id and must be treated as one.
func ClassifyIdentifier(raw string) (UnitIdentifier, error) {
	switch {
	case objectReferenceRegexp.MatchString(raw):
		return UnitIdentifier{Raw: raw, Kind: IdentifierObjectReference}, nil
	case numericTokenIDRegexp.MatchString(raw):
		return UnitIdentifier{Raw: raw, Kind: IdentifierNumericTokenID}, nil
	default:
		return UnitIdentifier{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, raw)
	}
}

// IsObjectReference reports whether the identifier is a 24-char hex object id
func (u UnitIdentifier) IsObjectReference() bool {
	return u.Kind == IdentifierObjectReference
}

// String returns the raw identifier
func (u UnitIdentifier) String() string {
	return u.Raw
}

// CollectionShape classifies the three collection layouts
type CollectionShape string

const (
	ShapeStandard  CollectionShape = "standard"
	ShapeCustom    CollectionShape = "custom"
	ShapeLaunchpad CollectionShape = "launchpad"
)

// Category identifies the standard per-category unit stores
type Category string

const (
	CategoryJersey  Category = "jersey"
	CategoryStadium Category = "stadium"
	CategoryBadge   Category = "badge"
)

// StandardCategories is the fixed probe order for numeric token lookups.
// A token id is not globally unique across categories; first match wins.
var StandardCategories = []Category{CategoryJersey, CategoryStadium, CategoryBadge}

// IsValidCategory checks if a category is one of the standard stores
func IsValidCategory(c Category) bool {
	return c == CategoryJersey || c == CategoryStadium || c == CategoryBadge
}

// TableName returns the durable-store table for the category
func (c Category) TableName() string {
	switch c {
	case CategoryStadium:
		return "stadiums"
	case CategoryBadge:
		return "badges"
	default:
		return "jerseys"
	}
}

// CategoryFromName derives a category from unit metadata heuristics
func CategoryFromName(name string) Category {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "stadium") {
		return CategoryStadium
	}
	if strings.Contains(lower, "badge") {
		return CategoryBadge
	}
	return CategoryJersey
}

// GlobalID derives the deterministic composite natural key for a minted unit.
// It is stable for the unit's lifetime and is the sole uniqueness constraint
// enforced by the sync upsert.
func GlobalID(chain Chain, contractAddress, tokenID string) string {
	return fmt.Sprintf("%s_%s_%s", chain, strings.ToLower(contractAddress), tokenID)
}

// NormalizeAddress lowercases a hex address to the engine's storage form
func NormalizeAddress(address string) string {
	if common.IsHexAddress(address) {
		return strings.ToLower(common.HexToAddress(address).Hex())
	}
	return strings.ToLower(address)
}

// Attribute is a single metadata trait on a unit
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}

// ResolutionSource tags where a unit record was resolved from
type ResolutionSource string

const (
	SourceCache      ResolutionSource = "cache"
	SourceDurable    ResolutionSource = "durable"
	SourceLedger     ResolutionSource = "ledger"
	SourceStaleCache ResolutionSource = "stale_cache"
)

// UnitRecord is the canonical projection of an NFT
type UnitRecord struct {
	UnitID          string          `json:"unitId"`
	Shape           CollectionShape `json:"collectionShape"`
	Category        Category        `json:"category"`
	ChainID         Chain           `json:"chainId"`
	ContractAddress string          `json:"contractAddress"`
	TokenID         string          `json:"tokenId"`
	Owner           string          `json:"owner"`
	Name            string          `json:"name"`
	ImageURL        string          `json:"imageUrl"`
	Attributes      []Attribute     `json:"attributes"`
	MetadataRaw     map[string]any  `json:"metadataRaw"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Marketplace status sentinel values as encoded in the ledger's status field
const (
	ListingStatusCancelled      int64  = 3
	ListingStatusCancelledLabel string = "CANCELLED"
)

// MarketListing is a ledger-sourced direct listing. Ephemeral: joined onto
// unit records at read time or denormalized during sync, never persisted as
// its own entity.
type MarketListing struct {
	ListingID             string    `json:"listingId"`
	TokenID               string    `json:"tokenId"`
	ContractAddress       string    `json:"contractAddress"`
	Creator               string    `json:"creator"`
	PricePerTokenBaseUnit string    `json:"pricePerTokenBaseUnits"`
	Currency              string    `json:"currency"`
	EndTimestamp          time.Time `json:"endTimestamp"`
	Status                int64     `json:"status"`
	StatusLabel           string    `json:"statusLabel,omitempty"`
}

// Cancelled reports whether the listing was cancelled on the ledger.
// Both the numeric sentinel and the string form are valid inputs.
func (l MarketListing) Cancelled() bool {
	return l.Status == ListingStatusCancelled ||
		strings.EqualFold(l.StatusLabel, ListingStatusCancelledLabel)
}

// MarketAuction is a ledger-sourced auction, analogous to MarketListing
type MarketAuction struct {
	AuctionID       string    `json:"auctionId"`
	TokenID         string    `json:"tokenId"`
	ContractAddress string    `json:"contractAddress"`
	Creator         string    `json:"creator"`
	MinimumBid      string    `json:"minimumBid"`
	BuyoutBid       string    `json:"buyoutBid"`
	Currency        string    `json:"currency"`
	StartTimestamp  time.Time `json:"startTimestamp"`
	EndTimestamp    time.Time `json:"endTimestamp"`
	Status          int64     `json:"status"`
	StatusLabel     string    `json:"statusLabel,omitempty"`
}

// Cancelled reports whether the auction was cancelled on the ledger
func (a MarketAuction) Cancelled() bool {
	return a.Status == ListingStatusCancelled ||
		strings.EqualFold(a.StatusLabel, ListingStatusCancelledLabel)
}
