package trading_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gotasapp/nft-sync-engine/internal/domain"
	"github.com/gotasapp/nft-sync-engine/internal/trading"
)

const testContract = "0xAbC0000000000000000000000000000000000001"

func TestFormatDisplayPrice(t *testing.T) {
	tests := []struct {
		name      string
		baseUnits string
		want      string
	}{
		{
			name:      "sub-milli keeps six decimals",
			baseUnits: "500000000000000",
			want:      "0.000500",
		},
		{
			name:      "fractional keeps four decimals",
			baseUnits: "500000000000000000",
			want:      "0.5000",
		},
		{
			name:      "whole amount keeps two decimals",
			baseUnits: "2000000000000000000",
			want:      "2.00",
		},
		{
			name:      "exactly one",
			baseUnits: "1000000000000000000",
			want:      "1.00",
		},
		{
			name:      "zero",
			baseUnits: "0",
			want:      "0.000000",
		},
		{
			name:      "garbage input",
			baseUnits: "not-a-number",
			want:      trading.PriceNotForSale,
		},
		{
			name:      "empty input",
			baseUnits: "",
			want:      trading.PriceNotForSale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trading.FormatDisplayPrice(tt.baseUnits))
		})
	}
}

func TestAnnotator_ListingAnnotation(t *testing.T) {
	end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	annotator := trading.NewAnnotator([]domain.MarketListing{
		{
			ListingID:             "5",
			TokenID:               "7",
			ContractAddress:       testContract,
			PricePerTokenBaseUnit: "2000000000000000000",
			Currency:              "0xCurrency",
			EndTimestamp:          end,
			Status:                1,
		},
	}, nil)

	units := []domain.UnitRecord{
		{TokenID: "7", ContractAddress: testContract},
		{TokenID: "8", ContractAddress: testContract},
	}

	annotated, stats := annotator.Annotate(units)

	assert.Len(t, annotated, 2)
	assert.True(t, annotated[0].IsListed)
	assert.Equal(t, "5", annotated[0].ListingID)
	assert.Equal(t, "2.00", annotated[0].DisplayPrice)
	assert.Equal(t, "2000000000000000000", annotated[0].PriceBaseUnits)
	assert.Equal(t, end, *annotated[0].EndTime)

	assert.False(t, annotated[1].IsListed)
	assert.Equal(t, trading.PriceNotForSale, annotated[1].DisplayPrice)

	assert.Equal(t, trading.Stats{Total: 2, Listed: 1, NotForSale: 1}, stats)
}

func TestAnnotator_JoinKeyIgnoresContractCase(t *testing.T) {
	annotator := trading.NewAnnotator([]domain.MarketListing{
		{ListingID: "1", TokenID: "7", ContractAddress: testContract, PricePerTokenBaseUnit: "1000000000000000000"},
	}, nil)

	// unit stores the lowered form
	lowered := "0xabc0000000000000000000000000000000000001"
	annotated, _ := annotator.Annotate([]domain.UnitRecord{
		{TokenID: "7", ContractAddress: lowered},
	})

	assert.True(t, annotated[0].IsListed)
}

func TestAnnotator_CancelledNeverIndexed(t *testing.T) {
	annotator := trading.NewAnnotator(
		[]domain.MarketListing{
			{ListingID: "1", TokenID: "7", ContractAddress: testContract, Status: 3},
		},
		[]domain.MarketAuction{
			{AuctionID: "2", TokenID: "7", ContractAddress: testContract, StatusLabel: "CANCELLED"},
		},
	)

	_, listed := annotator.Listing("7", testContract)
	assert.False(t, listed)
	_, auctioned := annotator.Auction("7", testContract)
	assert.False(t, auctioned)

	annotated, stats := annotator.Annotate([]domain.UnitRecord{
		{TokenID: "7", ContractAddress: testContract},
	})
	assert.Equal(t, trading.PriceNotForSale, annotated[0].DisplayPrice)
	assert.Equal(t, 1, stats.NotForSale)
}

func TestAnnotator_AuctionPrecedence(t *testing.T) {
	listingEnd := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	auctionEnd := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	annotator := trading.NewAnnotator(
		[]domain.MarketListing{
			{
				ListingID:             "1",
				TokenID:               "7",
				ContractAddress:       testContract,
				PricePerTokenBaseUnit: "2000000000000000000",
				EndTimestamp:          listingEnd,
			},
		},
		[]domain.MarketAuction{
			{
				AuctionID:       "9",
				TokenID:         "7",
				ContractAddress: testContract,
				MinimumBid:      "500000000000000",
				EndTimestamp:    auctionEnd,
			},
		},
	)

	annotated, stats := annotator.Annotate([]domain.UnitRecord{
		{TokenID: "7", ContractAddress: testContract},
	})

	// both flags surface, but the auction's minimum bid wins the price fields
	au := annotated[0]
	assert.True(t, au.IsListed)
	assert.True(t, au.IsAuction)
	assert.Equal(t, "1", au.ListingID)
	assert.Equal(t, "9", au.AuctionID)
	assert.Equal(t, "500000000000000", au.PriceBaseUnits)
	assert.Equal(t, "0.000500", au.DisplayPrice)
	assert.Equal(t, auctionEnd, *au.EndTime)

	assert.Equal(t, trading.Stats{Total: 1, Listed: 1, Auctions: 1}, stats)
}
