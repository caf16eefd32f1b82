package domain

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// CorrectionKind identifies the discrepancy a correction repairs
type CorrectionKind string

const (
	// CorrectionMarkAsMinted repairs a minted-not-recorded discrepancy
	CorrectionMarkAsMinted CorrectionKind = "mark_as_minted"
	// CorrectionMarkAsNotMinted repairs a recorded-not-minted discrepancy
	CorrectionMarkAsNotMinted CorrectionKind = "mark_as_not_minted"
	// CorrectionAddListingInfo repairs a listed-not-synced discrepancy
	CorrectionAddListingInfo CorrectionKind = "add_listing_info"
)

// ListingPayload carries the listing fields an AddListingInfo correction writes
type ListingPayload struct {
	ListingID             string    `json:"listingId"`
	PricePerTokenBaseUnit string    `json:"pricePerTokenBaseUnits"`
	Currency              string    `json:"currency"`
	EndTimestamp          time.Time `json:"endTimestamp"`
}

// CorrectionAction is a proposed repair emitted by the reconciliation audit.
// Applying the same action twice leaves the record in the same state as
// applying it once.
type CorrectionAction struct {
	ID              string          `json:"id"`
	Kind            CorrectionKind  `json:"kind"`
	ChainID         Chain           `json:"chainId"`
	ContractAddress string          `json:"contractAddress"`
	Category        Category        `json:"category"`
	TokenID         string          `json:"tokenId"`
	Listing         *ListingPayload `json:"listing,omitempty"`
}

// NewCorrectionID returns a lexicographically sortable correction id so an
// operator can order an audit trail
func NewCorrectionID(now time.Time) string {
	return ulid.MustNewDefault(now).String()
}
