package trading

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/gotasapp/nft-sync-engine/internal/domain"
)

// PriceNotForSale is the display price of a unit with no active listing or
// auction. Such units stay visible; visibility and tradability are
// independent concerns.
const PriceNotForSale = "Not for sale"

// AnnotatedUnit is a unit record decorated with live marketplace state
type AnnotatedUnit struct {
	domain.UnitRecord

	IsListed       bool       `json:"isListed"`
	IsAuction      bool       `json:"isAuction"`
	ListingID      string     `json:"listingId,omitempty"`
	AuctionID      string     `json:"auctionId,omitempty"`
	PriceBaseUnits string     `json:"priceBaseUnits,omitempty"`
	DisplayPrice   string     `json:"displayPrice"`
	Currency       string     `json:"currency,omitempty"`
	EndTime        *time.Time `json:"endTime,omitempty"`
}

// Stats summarizes one annotation pass
type Stats struct {
	Total      int `json:"total"`
	Listed     int `json:"listed"`
	Auctions   int `json:"auctions"`
	NotForSale int `json:"notForSale"`
}

// Annotator joins unit records with the ledger's live listing and auction
// sets for one marketplace contract
type Annotator struct {
	listings map[string]domain.MarketListing
	auctions map[string]domain.MarketAuction
}

// tradeKey builds the join key used by both indexes
func tradeKey(tokenID, contractAddress string) string {
	return fmt.Sprintf("%s_%s", tokenID, strings.ToLower(contractAddress))
}

// NewAnnotator indexes the given listings and auctions by
// tokenId_loweredContract. Cancelled entries are dropped before indexing:
// both the numeric status sentinel and the string form mark cancellation,
// and a cancelled auction must never surface even when it is the only one
// for its token.
func NewAnnotator(listings []domain.MarketListing, auctions []domain.MarketAuction) *Annotator {
	a := &Annotator{
		listings: make(map[string]domain.MarketListing, len(listings)),
		auctions: make(map[string]domain.MarketAuction, len(auctions)),
	}
	for _, l := range listings {
		if l.Cancelled() {
			continue
		}
		a.listings[tradeKey(l.TokenID, l.ContractAddress)] = l
	}
	for _, auc := range auctions {
		if auc.Cancelled() {
			continue
		}
		a.auctions[tradeKey(auc.TokenID, auc.ContractAddress)] = auc
	}
	return a
}

// Listing returns the active listing for a token, if any
func (a *Annotator) Listing(tokenID, contractAddress string) (domain.MarketListing, bool) {
	l, ok := a.listings[tradeKey(tokenID, contractAddress)]
	return l, ok
}

// Auction returns the active auction for a token, if any
func (a *Annotator) Auction(tokenID, contractAddress string) (domain.MarketAuction, bool) {
	auc, ok := a.auctions[tradeKey(tokenID, contractAddress)]
	return auc, ok
}

// Annotate decorates each unit with its marketplace state. An active
// auction's minimum bid takes display precedence over a direct listing's
// price per token since it represents live competitive state.
func (a *Annotator) Annotate(units []domain.UnitRecord) ([]AnnotatedUnit, Stats) {
	annotated := make([]AnnotatedUnit, 0, len(units))
	stats := Stats{Total: len(units)}

	for _, unit := range units {
		au := AnnotatedUnit{UnitRecord: unit, DisplayPrice: PriceNotForSale}

		if listing, ok := a.Listing(unit.TokenID, unit.ContractAddress); ok {
			au.IsListed = true
			au.ListingID = listing.ListingID
			au.PriceBaseUnits = listing.PricePerTokenBaseUnit
			au.Currency = listing.Currency
			end := listing.EndTimestamp
			au.EndTime = &end
			au.DisplayPrice = FormatDisplayPrice(listing.PricePerTokenBaseUnit)
			stats.Listed++
		}

		if auction, ok := a.Auction(unit.TokenID, unit.ContractAddress); ok {
			au.IsAuction = true
			au.AuctionID = auction.AuctionID
			au.PriceBaseUnits = auction.MinimumBid
			au.Currency = auction.Currency
			end := auction.EndTimestamp
			au.EndTime = &end
			au.DisplayPrice = FormatDisplayPrice(auction.MinimumBid)
			stats.Auctions++
		}

		if !au.IsListed && !au.IsAuction {
			stats.NotForSale++
		}
		annotated = append(annotated, au)
	}
	return annotated, stats
}

var (
	baseUnitScale  = new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(domain.BASE_UNIT_DECIMALS), nil))
	milliThreshold = big.NewRat(1, 1000)
	oneThreshold   = big.NewRat(1, 1)
)

// FormatDisplayPrice converts an integer base-unit amount into a display
// string. Precision widens for small values so prices like 0.000500 keep
// their significant digits, and narrows for whole amounts to avoid
// misleading trailing precision.
func FormatDisplayPrice(baseUnits string) string {
	amount, ok := new(big.Int).SetString(baseUnits, 10)
	if !ok {
		return PriceNotForSale
	}

	value := new(big.Rat).SetFrac(amount, baseUnitScale.Num())
	switch {
	case value.Cmp(milliThreshold) < 0:
		return value.FloatString(6)
	case value.Cmp(oneThreshold) < 0:
		return value.FloatString(4)
	default:
		return value.FloatString(2)
	}
}
