package reconcile_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/gotasapp/nft-sync-engine/internal/domain"
	"github.com/gotasapp/nft-sync-engine/internal/ledger"
	"github.com/gotasapp/nft-sync-engine/internal/logger"
	"github.com/gotasapp/nft-sync-engine/internal/mocks"
	"github.com/gotasapp/nft-sync-engine/internal/reconcile"
	"github.com/gotasapp/nft-sync-engine/internal/store/schema"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

const testContract = "0xAbC0000000000000000000000000000000000001"

// testEngineMocks contains the mocks needed for testing the engine
type testEngineMocks struct {
	ctrl   *gomock.Controller
	store  *mocks.MockStore
	reader *mocks.MockLedgerReader
	clock  *mocks.MockClock
	engine reconcile.Engine
}

func setupTestEngine(t *testing.T) *testEngineMocks {
	ctrl := gomock.NewController(t)

	tm := &testEngineMocks{
		ctrl:   ctrl,
		store:  mocks.NewMockStore(ctrl),
		reader: mocks.NewMockLedgerReader(ctrl),
		clock:  mocks.NewMockClock(ctrl),
	}
	tm.engine = reconcile.NewEngine(
		tm.store,
		ledger.Registry{domain.ChainPolygonAmoy: tm.reader},
		tm.clock,
	)

	return tm
}

func testScope() reconcile.Scope {
	return reconcile.Scope{
		Chain:           domain.ChainPolygonAmoy,
		ContractAddress: testContract,
		Category:        domain.CategoryJersey,
	}
}

func mintedUnit(tokenID string) *schema.Unit {
	return &schema.Unit{
		TokenID:         tokenID,
		ContractAddress: testContract,
		IsMinted:        true,
	}
}

func TestEngine_Audit_Clean(t *testing.T) {
	tm := setupTestEngine(t)
	defer tm.ctrl.Finish()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tm.reader.EXPECT().TotalSupply(gomock.Any()).Return(big.NewInt(2), nil)
	tm.store.
		EXPECT().
		ListUnitsByContract(gomock.Any(), domain.CategoryJersey, testContract).
		Return([]*schema.Unit{mintedUnit("0"), mintedUnit("1")}, nil)
	tm.clock.EXPECT().Now().Return(now)
	tm.reader.EXPECT().ValidListings(gomock.Any()).Return(nil, nil)

	report, err := tm.engine.Audit(context.Background(), testScope())

	assert.NoError(t, err)
	assert.Equal(t, int64(2), report.TotalSupply)
	assert.Equal(t, 2, report.StoredUnits)
	assert.Empty(t, report.Corrections)
	assert.Equal(t, now, report.GeneratedAt)
}

func TestEngine_Audit_MintedNotRecorded(t *testing.T) {
	tm := setupTestEngine(t)
	defer tm.ctrl.Finish()

	tm.reader.EXPECT().TotalSupply(gomock.Any()).Return(big.NewInt(3), nil)
	tm.store.
		EXPECT().
		ListUnitsByContract(gomock.Any(), domain.CategoryJersey, testContract).
		Return([]*schema.Unit{mintedUnit("0"), mintedUnit("2")}, nil)
	tm.clock.EXPECT().Now().Return(time.Now())
	tm.reader.EXPECT().ValidListings(gomock.Any()).Return(nil, nil)

	report, err := tm.engine.Audit(context.Background(), testScope())

	assert.NoError(t, err)
	assert.Len(t, report.Corrections, 1)
	c := report.Corrections[0]
	assert.Equal(t, domain.CorrectionMarkAsMinted, c.Kind)
	assert.Equal(t, "1", c.TokenID)
	assert.Equal(t, "0xabc0000000000000000000000000000000000001", c.ContractAddress)
	assert.NotEmpty(t, c.ID)
}

func TestEngine_Audit_RecordedNotMinted(t *testing.T) {
	tm := setupTestEngine(t)
	defer tm.ctrl.Finish()

	// supply is 2, so a minted flag on index 5 is drift
	tm.reader.EXPECT().TotalSupply(gomock.Any()).Return(big.NewInt(2), nil)
	tm.store.
		EXPECT().
		ListUnitsByContract(gomock.Any(), domain.CategoryJersey, testContract).
		Return([]*schema.Unit{mintedUnit("0"), mintedUnit("1"), mintedUnit("5")}, nil)
	tm.clock.EXPECT().Now().Return(time.Now())
	tm.reader.EXPECT().ValidListings(gomock.Any()).Return(nil, nil)

	report, err := tm.engine.Audit(context.Background(), testScope())

	assert.NoError(t, err)
	assert.Len(t, report.Corrections, 1)
	assert.Equal(t, domain.CorrectionMarkAsNotMinted, report.Corrections[0].Kind)
	assert.Equal(t, "5", report.Corrections[0].TokenID)
}

func TestEngine_Audit_UnparseableTokenSkipped(t *testing.T) {
	tm := setupTestEngine(t)
	defer tm.ctrl.Finish()

	tm.reader.EXPECT().TotalSupply(gomock.Any()).Return(big.NewInt(1), nil)
	tm.store.
		EXPECT().
		ListUnitsByContract(gomock.Any(), domain.CategoryJersey, testContract).
		Return([]*schema.Unit{mintedUnit("0"), mintedUnit("not-a-token")}, nil)
	tm.clock.EXPECT().Now().Return(time.Now())
	tm.reader.EXPECT().ValidListings(gomock.Any()).Return(nil, nil)

	report, err := tm.engine.Audit(context.Background(), testScope())

	assert.NoError(t, err)
	assert.Empty(t, report.Corrections)
	assert.Equal(t, 1, report.SkippedRecords)
}

func TestEngine_Audit_ListedNotSynced(t *testing.T) {
	tm := setupTestEngine(t)
	defer tm.ctrl.Finish()

	end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	synced := mintedUnit("0")
	listingID := "4"
	synced.Marketplace.ListingID = &listingID

	tm.reader.EXPECT().TotalSupply(gomock.Any()).Return(big.NewInt(2), nil)
	tm.store.
		EXPECT().
		ListUnitsByContract(gomock.Any(), domain.CategoryJersey, testContract).
		Return([]*schema.Unit{synced, mintedUnit("1")}, nil)
	tm.clock.EXPECT().Now().Return(time.Now())
	tm.reader.EXPECT().ValidListings(gomock.Any()).Return([]domain.MarketListing{
		// already denormalized onto its record
		{ListingID: "4", TokenID: "0", ContractAddress: testContract},
		// missing from the stored record
		{
			ListingID:             "9",
			TokenID:               "1",
			ContractAddress:       testContract,
			PricePerTokenBaseUnit: "2000000000000000000",
			Currency:              "0xCurrency",
			EndTimestamp:          end,
		},
		// different contract, out of scope
		{ListingID: "12", TokenID: "1", ContractAddress: "0xother"},
	}, nil)

	report, err := tm.engine.Audit(context.Background(), testScope())

	assert.NoError(t, err)
	assert.Len(t, report.Corrections, 1)
	c := report.Corrections[0]
	assert.Equal(t, domain.CorrectionAddListingInfo, c.Kind)
	assert.Equal(t, "1", c.TokenID)
	assert.NotNil(t, c.Listing)
	assert.Equal(t, "9", c.Listing.ListingID)
	assert.Equal(t, "2000000000000000000", c.Listing.PricePerTokenBaseUnit)
	assert.Equal(t, end, c.Listing.EndTimestamp)
}

func TestEngine_Audit_UnknownChain(t *testing.T) {
	tm := setupTestEngine(t)
	defer tm.ctrl.Finish()

	scope := testScope()
	scope.Chain = domain.ChainChilizSpicy

	_, err := tm.engine.Audit(context.Background(), scope)

	assert.ErrorIs(t, err, domain.ErrUnknownChain)
}

func TestEngine_Apply_MarkAsMinted(t *testing.T) {
	tm := setupTestEngine(t)
	defer tm.ctrl.Finish()

	correction := domain.CorrectionAction{
		ID:              domain.NewCorrectionID(time.Now()),
		Kind:            domain.CorrectionMarkAsMinted,
		ChainID:         domain.ChainPolygonAmoy,
		ContractAddress: testContract,
		Category:        domain.CategoryJersey,
		TokenID:         "1",
	}

	tm.store.
		EXPECT().
		UpdateUnitFields(gomock.Any(), domain.CategoryJersey, domain.ChainPolygonAmoy,
			testContract, "1", map[string]any{"is_minted": true}).
		Return("eip155:80002_0xabc_1", nil)

	result, err := tm.engine.Apply(context.Background(), testScope(), []domain.CorrectionAction{correction})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 0, result.Failed)
}

func TestEngine_Apply_ListingFields(t *testing.T) {
	tm := setupTestEngine(t)
	defer tm.ctrl.Finish()

	end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	correction := domain.CorrectionAction{
		ID:              domain.NewCorrectionID(time.Now()),
		Kind:            domain.CorrectionAddListingInfo,
		ChainID:         domain.ChainPolygonAmoy,
		ContractAddress: testContract,
		TokenID:         "1",
		// no category on the correction: the scope's category applies
		Listing: &domain.ListingPayload{
			ListingID:             "9",
			PricePerTokenBaseUnit: "2000000000000000000",
			Currency:              "0xCurrency",
			EndTimestamp:          end,
		},
	}

	tm.store.
		EXPECT().
		UpdateUnitFields(gomock.Any(), domain.CategoryJersey, domain.ChainPolygonAmoy,
			testContract, "1", map[string]any{
				"marketplace_is_listed":        true,
				"marketplace_listing_id":       "9",
				"marketplace_price_base_units": "2000000000000000000",
				"marketplace_currency":         "0xCurrency",
				"marketplace_end_time":         end,
			}).
		Return("eip155:80002_0xabc_1", nil)

	result, err := tm.engine.Apply(context.Background(), testScope(), []domain.CorrectionAction{correction})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
}

func TestEngine_Apply_FailureIsolation(t *testing.T) {
	tm := setupTestEngine(t)
	defer tm.ctrl.Finish()

	corrections := []domain.CorrectionAction{
		{
			Kind:            domain.CorrectionMarkAsMinted,
			ChainID:         domain.ChainPolygonAmoy,
			ContractAddress: testContract,
			TokenID:         "1",
		},
		// malformed: listing corrections must carry a payload
		{
			Kind:            domain.CorrectionAddListingInfo,
			ChainID:         domain.ChainPolygonAmoy,
			ContractAddress: testContract,
			TokenID:         "2",
		},
		{
			Kind:            domain.CorrectionMarkAsNotMinted,
			ChainID:         domain.ChainPolygonAmoy,
			ContractAddress: testContract,
			TokenID:         "3",
		},
	}

	tm.store.
		EXPECT().
		UpdateUnitFields(gomock.Any(), domain.CategoryJersey, domain.ChainPolygonAmoy,
			testContract, "1", map[string]any{"is_minted": true}).
		Return("", errors.New("connection reset"))
	tm.store.
		EXPECT().
		UpdateUnitFields(gomock.Any(), domain.CategoryJersey, domain.ChainPolygonAmoy,
			testContract, "3", map[string]any{"is_minted": false}).
		Return("eip155:80002_0xabc_3", nil)

	result, err := tm.engine.Apply(context.Background(), testScope(), corrections)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 2, result.Failed)
	assert.Len(t, result.Errors, 2)
}
