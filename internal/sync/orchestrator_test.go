package sync_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/gotasapp/nft-sync-engine/internal/config"
	"github.com/gotasapp/nft-sync-engine/internal/domain"
	"github.com/gotasapp/nft-sync-engine/internal/ledger"
	"github.com/gotasapp/nft-sync-engine/internal/logger"
	"github.com/gotasapp/nft-sync-engine/internal/mocks"
	"github.com/gotasapp/nft-sync-engine/internal/store"
	"github.com/gotasapp/nft-sync-engine/internal/store/schema"
	syncpkg "github.com/gotasapp/nft-sync-engine/internal/sync"
	"github.com/gotasapp/nft-sync-engine/internal/uri"
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

// testOrchestratorMocks contains all the mocks needed for testing the orchestrator
type testOrchestratorMocks struct {
	ctrl         *gomock.Controller
	store        *mocks.MockStore
	keys         *mocks.MockKeyResolver
	reader       *mocks.MockLedgerReader
	http         *mocks.MockHTTPClient
	json         *mocks.MockJSON
	jcs          *mocks.MockJCS
	clock        *mocks.MockClock
	orchestrator syncpkg.Orchestrator
}

func setupTestOrchestrator(t *testing.T) *testOrchestratorMocks {
	ctrl := gomock.NewController(t)

	tm := &testOrchestratorMocks{
		ctrl:   ctrl,
		store:  mocks.NewMockStore(ctrl),
		keys:   mocks.NewMockKeyResolver(ctrl),
		reader: mocks.NewMockLedgerReader(ctrl),
		http:   mocks.NewMockHTTPClient(ctrl),
		json:   mocks.NewMockJSON(ctrl),
		jcs:    mocks.NewMockJCS(ctrl),
		clock:  mocks.NewMockClock(ctrl),
	}

	tm.orchestrator = syncpkg.NewOrchestrator(
		config.SyncConfig{WorkerPoolSize: 2},
		[]config.ChainConfig{{
			ChainID:     domain.ChainPolygonAmoy,
			NFTContract: testContract,
		}},
		tm.store,
		tm.keys,
		ledger.Registry{domain.ChainPolygonAmoy: tm.reader},
		uri.NewResolver("https://ipfs.io"),
		tm.http,
		tm.json,
		tm.jcs,
		tm.clock,
	)

	return tm
}

func tearDownTestOrchestrator(mocks *testOrchestratorMocks) {
	mocks.ctrl.Finish()
}

func expectRunClock(tm *testOrchestratorMocks) {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tm.clock.EXPECT().Now().Return(started)
	tm.clock.EXPECT().Now().Return(started.Add(time.Minute))
}

func TestOrchestrator_Run_UpsertsEveryToken(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tearDownTestOrchestrator(tm)

	expectRunClock(tm)
	tm.reader.EXPECT().TotalSupply(gomock.Any()).Return(big.NewInt(2), nil)
	tm.reader.EXPECT().ValidListings(gomock.Any()).Return(nil, nil)
	tm.reader.EXPECT().ValidAuctions(gomock.Any()).Return(nil, nil)

	for i := int64(0); i < 2; i++ {
		tokenID := big.NewInt(i)
		tm.reader.EXPECT().OwnerOf(gomock.Any(), tokenID).Return("0xOWNER", nil)
		tm.reader.EXPECT().TokenURI(gomock.Any(), tokenID).Return("", errors.New("no uri"))
	}
	tm.store.
		EXPECT().
		UpsertUnit(gomock.Any(), domain.CategoryJersey, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Category, unit *schema.Unit) (bool, error) {
			assert.True(t, unit.IsMinted)
			assert.Equal(t, "0xowner", unit.Owner)
			assert.Equal(t, "0xabc0000000000000000000000000000000000001", unit.ContractAddress)
			return true, nil
		}).
		Times(2)

	report, err := tm.orchestrator.Run(context.Background(), syncpkg.Options{})

	assert.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
	assert.Len(t, report.Chains, 1)
	chain := report.Chains[0]
	assert.Equal(t, int64(2), chain.TotalSupply)
	assert.Equal(t, 2, chain.Created)
	assert.Equal(t, 0, chain.Failed)
}

func TestOrchestrator_Run_MetadataDrivesCategory(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tearDownTestOrchestrator(tm)

	expectRunClock(tm)
	tm.reader.EXPECT().TotalSupply(gomock.Any()).Return(big.NewInt(1), nil)
	tm.reader.EXPECT().ValidListings(gomock.Any()).Return(nil, nil)
	tm.reader.EXPECT().ValidAuctions(gomock.Any()).Return(nil, nil)

	meta := map[string]any{
		"name":  "City Stadium",
		"image": "ipfs://QmHash/0.png",
	}
	tm.reader.EXPECT().OwnerOf(gomock.Any(), big.NewInt(0)).Return("0xowner", nil)
	tm.reader.EXPECT().TokenURI(gomock.Any(), big.NewInt(0)).Return("ipfs://QmHash/0.json", nil)
	tm.http.
		EXPECT().
		Get(gomock.Any(), "https://ipfs.io/ipfs/QmHash/0.json", gomock.Any()).
		DoAndReturn(func(ctx context.Context, url string, result interface{}) error {
			*result.(*map[string]any) = meta
			return nil
		})
	tm.json.EXPECT().Marshal(meta).Return([]byte(`{"name":"City Stadium","image":"ipfs://QmHash/0.png"}`), nil)
	tm.jcs.
		EXPECT().
		Transform([]byte(`{"name":"City Stadium","image":"ipfs://QmHash/0.png"}`)).
		Return([]byte(`{"image":"ipfs://QmHash/0.png","name":"City Stadium"}`), nil)
	tm.store.
		EXPECT().
		UpsertUnit(gomock.Any(), domain.CategoryStadium, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Category, unit *schema.Unit) (bool, error) {
			assert.Equal(t, "City Stadium", unit.Name)
			assert.Equal(t, "https://ipfs.io/ipfs/QmHash/0.png", unit.ImageURL)
			// stored metadata is the canonicalized form
			assert.Equal(t, `{"image":"ipfs://QmHash/0.png","name":"City Stadium"}`, string(unit.MetadataRaw))
			return false, nil
		})

	report, err := tm.orchestrator.Run(context.Background(), syncpkg.Options{})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Chains[0].Updated)
}

func TestOrchestrator_Run_WalletFilter(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tearDownTestOrchestrator(tm)

	expectRunClock(tm)
	tm.reader.EXPECT().TotalSupply(gomock.Any()).Return(big.NewInt(2), nil)
	tm.reader.EXPECT().ValidListings(gomock.Any()).Return(nil, nil)
	tm.reader.EXPECT().ValidAuctions(gomock.Any()).Return(nil, nil)

	tm.reader.EXPECT().OwnerOf(gomock.Any(), big.NewInt(0)).Return("0xWanted", nil)
	tm.reader.EXPECT().OwnerOf(gomock.Any(), big.NewInt(1)).Return("0xOther", nil)
	tm.reader.EXPECT().TokenURI(gomock.Any(), big.NewInt(0)).Return("", errors.New("no uri"))
	tm.store.
		EXPECT().
		UpsertUnit(gomock.Any(), domain.CategoryJersey, gomock.Any()).
		Return(true, nil)

	report, err := tm.orchestrator.Run(context.Background(), syncpkg.Options{Wallet: "0xwanted"})

	assert.NoError(t, err)
	chain := report.Chains[0]
	assert.Equal(t, 1, chain.Created)
	assert.Equal(t, 1, chain.Skipped)
}

func TestOrchestrator_Run_FailureIsolation(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tearDownTestOrchestrator(tm)

	expectRunClock(tm)
	tm.reader.EXPECT().TotalSupply(gomock.Any()).Return(big.NewInt(2), nil)
	tm.reader.EXPECT().ValidListings(gomock.Any()).Return(nil, nil)
	tm.reader.EXPECT().ValidAuctions(gomock.Any()).Return(nil, nil)

	// one index fails its owner fetch, the other completes
	tm.reader.EXPECT().OwnerOf(gomock.Any(), big.NewInt(0)).Return("", errors.New("execution reverted"))
	tm.reader.EXPECT().OwnerOf(gomock.Any(), big.NewInt(1)).Return("0xowner", nil)
	tm.reader.EXPECT().TokenURI(gomock.Any(), big.NewInt(1)).Return("", errors.New("no uri"))
	tm.store.
		EXPECT().
		UpsertUnit(gomock.Any(), domain.CategoryJersey, gomock.Any()).
		Return(true, nil)

	report, err := tm.orchestrator.Run(context.Background(), syncpkg.Options{})

	assert.NoError(t, err)
	chain := report.Chains[0]
	assert.Equal(t, 1, chain.Failed)
	assert.Equal(t, 1, chain.Created)
}

func TestOrchestrator_Run_AutoCreatesUnmatchedListing(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tearDownTestOrchestrator(tm)

	end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	listing := domain.MarketListing{
		ListingID:             "5",
		TokenID:               "99",
		ContractAddress:       testContract,
		Creator:               "0xSeller",
		PricePerTokenBaseUnit: "2000000000000000000",
		Currency:              "0xCurrency",
		EndTimestamp:          end,
	}

	expectRunClock(tm)
	// supply of zero: no token loop, only the listing reconciliation runs
	tm.reader.EXPECT().TotalSupply(gomock.Any()).Return(big.NewInt(0), nil)
	tm.reader.EXPECT().ValidListings(gomock.Any()).Return([]domain.MarketListing{listing}, nil)
	tm.reader.EXPECT().ValidAuctions(gomock.Any()).Return(nil, nil)

	predicates := []store.Predicate{{Label: "token_only", Where: map[string]any{"token_id": "99"}}}
	tm.keys.
		EXPECT().
		CandidateKeys(gomock.Any(), "0xabc0000000000000000000000000000000000001", "0xSeller").
		Return(predicates)
	for _, category := range domain.StandardCategories {
		tm.store.EXPECT().FindUnit(gomock.Any(), category, predicates).Return(nil, nil)
	}
	tm.store.
		EXPECT().
		UpsertUnit(gomock.Any(), domain.CategoryJersey, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Category, unit *schema.Unit) (bool, error) {
			assert.True(t, unit.AutoCreated)
			assert.True(t, unit.IsMinted)
			assert.True(t, unit.Marketplace.IsListed)
			assert.Equal(t, "99", unit.TokenID)
			assert.Equal(t, "5", *unit.Marketplace.ListingID)
			assert.Equal(t, "2000000000000000000", *unit.Marketplace.PriceBaseUnits)
			return true, nil
		})

	report, err := tm.orchestrator.Run(context.Background(), syncpkg.Options{})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Chains[0].AutoCreated)
}

func TestOrchestrator_Run_MatchedListingNotAutoCreated(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tearDownTestOrchestrator(tm)

	listing := domain.MarketListing{
		ListingID:       "5",
		TokenID:         "7",
		ContractAddress: testContract,
	}

	expectRunClock(tm)
	tm.reader.EXPECT().TotalSupply(gomock.Any()).Return(big.NewInt(0), nil)
	tm.reader.EXPECT().ValidListings(gomock.Any()).Return([]domain.MarketListing{listing}, nil)
	tm.reader.EXPECT().ValidAuctions(gomock.Any()).Return(nil, nil)

	predicates := []store.Predicate{{Label: "token_only", Where: map[string]any{"token_id": "7"}}}
	tm.keys.
		EXPECT().
		CandidateKeys(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(predicates)
	tm.store.
		EXPECT().
		FindUnit(gomock.Any(), domain.CategoryJersey, predicates).
		Return(&store.UnitMatch{Unit: &schema.Unit{TokenID: "7"}, Predicate: "token_only"}, nil)

	report, err := tm.orchestrator.Run(context.Background(), syncpkg.Options{})

	assert.NoError(t, err)
	assert.Equal(t, 0, report.Chains[0].AutoCreated)
}

func TestOrchestrator_Run_LedgerFailureRecordedOnReport(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tearDownTestOrchestrator(tm)

	expectRunClock(tm)
	tm.reader.EXPECT().TotalSupply(gomock.Any()).Return(nil, domain.ErrLedgerUnavailable)

	report, err := tm.orchestrator.Run(context.Background(), syncpkg.Options{})

	assert.NoError(t, err)
	assert.Len(t, report.Chains, 1)
	assert.NotEmpty(t, report.Chains[0].Error)
}
