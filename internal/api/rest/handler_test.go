package rest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotasapp/nft-sync-engine/internal/api/middleware"
	"github.com/gotasapp/nft-sync-engine/internal/api/rest"
	"github.com/gotasapp/nft-sync-engine/internal/config"
	"github.com/gotasapp/nft-sync-engine/internal/domain"
	"github.com/gotasapp/nft-sync-engine/internal/ledger"
	"github.com/gotasapp/nft-sync-engine/internal/logger"
	"github.com/gotasapp/nft-sync-engine/internal/metadata"
	"github.com/gotasapp/nft-sync-engine/internal/mocks"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

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

// testHandlerMocks contains the mocks needed for testing the REST handlers
type testHandlerMocks struct {
	ctrl         *gomock.Controller
	store        *mocks.MockStore
	keys         *mocks.MockKeyResolver
	resolver     *mocks.MockMetadataResolver
	reader       *mocks.MockLedgerReader
	orchestrator *mocks.MockSyncOrchestrator
	engine       *mocks.MockReconciliationEngine
	router       *gin.Engine
}

func setupTestHandler(t *testing.T) *testHandlerMocks {
	ctrl := gomock.NewController(t)

	tm := &testHandlerMocks{
		ctrl:         ctrl,
		store:        mocks.NewMockStore(ctrl),
		keys:         mocks.NewMockKeyResolver(ctrl),
		resolver:     mocks.NewMockMetadataResolver(ctrl),
		reader:       mocks.NewMockLedgerReader(ctrl),
		orchestrator: mocks.NewMockSyncOrchestrator(ctrl),
		engine:       mocks.NewMockReconciliationEngine(ctrl),
	}

	handler := rest.NewHandler(
		[]config.ChainConfig{{
			ChainID:     domain.ChainPolygonAmoy,
			NFTContract: testContract,
		}},
		config.CacheConfig{
			TradingTTL:  5 * time.Minute,
			MetadataTTL: 30 * time.Minute,
		},
		tm.store,
		tm.keys,
		tm.resolver,
		ledger.Registry{domain.ChainPolygonAmoy: tm.reader},
		tm.orchestrator,
		tm.engine,
	)

	tm.router = gin.New()
	rest.SetupRoutes(tm.router, handler, middleware.AuthConfig{APIKeys: []string{"test-key"}})

	return tm
}

func tearDownTestHandler(mocks *testHandlerMocks) {
	mocks.ctrl.Finish()
}

func TestGetUnit_MetadataReadSkipsMarketplace(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	// no expectations on the ledger reader: a metadata read must never
	// enumerate listings or auctions
	tm.resolver.
		EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req metadata.Request) (*metadata.Resolution, error) {
			assert.Equal(t, 30*time.Minute, req.TTL)
			assert.Equal(t, "7", req.UnitID.Raw)
			return &metadata.Resolution{
				Record: domain.UnitRecord{
					UnitID:          "7",
					TokenID:         "7",
					ContractAddress: "0xabc0000000000000000000000000000000000001",
					Owner:           "0xowner",
				},
				Source: domain.SourceDurable,
			}, nil
		})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/units/7", nil)
	tm.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"source":"durable"`)
	assert.NotContains(t, w.Body.String(), "displayPrice")
}

func TestGetUnit_MarketplaceReadAnnotates(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.resolver.
		EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req metadata.Request) (*metadata.Resolution, error) {
			// marketplace reads use the shorter configured TTL
			assert.Equal(t, 5*time.Minute, req.TTL)
			return &metadata.Resolution{
				Record: domain.UnitRecord{
					UnitID:          "7",
					TokenID:         "7",
					ContractAddress: "0xabc0000000000000000000000000000000000001",
				},
				Source: domain.SourceCache,
			}, nil
		})
	tm.reader.
		EXPECT().
		ValidListings(gomock.Any()).
		Return([]domain.MarketListing{{
			ListingID:             "12",
			TokenID:               "7",
			ContractAddress:       testContract,
			PricePerTokenBaseUnit: "500000000000000000",
		}}, nil)
	tm.reader.
		EXPECT().
		ValidAuctions(gomock.Any()).
		Return(nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/units/7?marketplace=true", nil)
	tm.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isListed":true`)
	assert.Contains(t, w.Body.String(), `"displayPrice":"0.5000"`)
	assert.Contains(t, w.Body.String(), `"source":"cache"`)
}

func TestGetUnit_WalletFeedsLegacyPredicates(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.resolver.
		EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req metadata.Request) (*metadata.Resolution, error) {
			assert.Equal(t, "0xWallet99", req.Wallet)
			return &metadata.Resolution{
				Record: domain.UnitRecord{UnitID: "7", TokenID: "7"},
				Source: domain.SourceDurable,
			}, nil
		})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/units/7?wallet=0xWallet99", nil)
	tm.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
