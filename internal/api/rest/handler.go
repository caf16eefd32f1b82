package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gotasapp/nft-sync-engine/internal/cache"
	"github.com/gotasapp/nft-sync-engine/internal/config"
	"github.com/gotasapp/nft-sync-engine/internal/domain"
	"github.com/gotasapp/nft-sync-engine/internal/keys"
	"github.com/gotasapp/nft-sync-engine/internal/ledger"
	"github.com/gotasapp/nft-sync-engine/internal/logger"
	"github.com/gotasapp/nft-sync-engine/internal/metadata"
	"github.com/gotasapp/nft-sync-engine/internal/reconcile"
	"github.com/gotasapp/nft-sync-engine/internal/store"
	"github.com/gotasapp/nft-sync-engine/internal/store/schema"
	syncpkg "github.com/gotasapp/nft-sync-engine/internal/sync"
	"github.com/gotasapp/nft-sync-engine/internal/trading"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetUnit resolves a single unit through the cache/store/ledger cascade
	// GET /api/v1/units/:id?chain=<chain>&category=<category>&collection=<collection_id>&marketplace=true|false&wallet=<address>
	GetUnit(c *gin.Context)

	// ListCollectionUnits lists a collection's units with live trading state
	// GET /api/v1/collections/:id/units?chain=<chain>&category=<category>
	ListCollectionUnits(c *gin.Context)

	// TriggerSync runs a full ledger-to-store sync (requires authentication)
	// POST /api/v1/sync
	TriggerSync(c *gin.Context)

	// GetReconciliationReport runs a read-only audit pass
	// GET /api/v1/reconciliation/report?chain=<chain>&category=<category>&contract=<address>
	GetReconciliationReport(c *gin.Context)

	// ApplyCorrections applies audited corrections (requires authentication)
	// POST /api/v1/reconciliation/apply
	ApplyCorrections(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	chains       []config.ChainConfig
	cacheCfg     config.CacheConfig
	store        store.Store
	keys         keys.Resolver
	resolver     metadata.Resolver
	ledgers      ledger.Registry
	orchestrator syncpkg.Orchestrator
	engine       reconcile.Engine
}

// NewHandler creates a new REST API handler
func NewHandler(
	chains []config.ChainConfig,
	cacheCfg config.CacheConfig,
	s store.Store,
	k keys.Resolver,
	resolver metadata.Resolver,
	ledgers ledger.Registry,
	orchestrator syncpkg.Orchestrator,
	engine reconcile.Engine,
) Handler {
	if cacheCfg.TradingTTL <= 0 {
		cacheCfg.TradingTTL = cache.TTLTrading
	}
	if cacheCfg.MetadataTTL <= 0 {
		cacheCfg.MetadataTTL = cache.TTLMetadata
	}
	return &handler{
		chains:       chains,
		cacheCfg:     cacheCfg,
		store:        s,
		keys:         k,
		resolver:     resolver,
		ledgers:      ledgers,
		orchestrator: orchestrator,
		engine:       engine,
	}
}

// chainConfig selects the chain configuration for a request. An empty param
// falls back to the first configured chain.
func (h *handler) chainConfig(param string) (config.ChainConfig, bool) {
	if param == "" {
		if len(h.chains) == 0 {
			return config.ChainConfig{}, false
		}
		return h.chains[0], true
	}
	for _, cc := range h.chains {
		if string(cc.ChainID) == param {
			return cc, true
		}
	}
	return config.ChainConfig{}, false
}

// GetUnit resolves a single unit through the cache/store/ledger cascade
func (h *handler) GetUnit(c *gin.Context) {
	rawID := c.Param("id")
	unitID, err := domain.ClassifyIdentifier(rawID)
	if err != nil {
		respondBadRequest(c, "Invalid unit identifier", err.Error())
		return
	}

	chainCfg, ok := h.chainConfig(c.Query("chain"))
	if !ok {
		respondBadRequest(c, "Unknown chain")
		return
	}

	// Marketplace reads get live trading state and the shorter cache TTL,
	// since they tolerate less staleness. Metadata reads skip the listing
	// and auction enumerations entirely.
	marketplace := c.Query("marketplace") == "true"
	ttl := h.cacheCfg.MetadataTTL
	if marketplace {
		ttl = h.cacheCfg.TradingTTL
	}

	var route *keys.Route
	if collectionID := c.Query("collection"); collectionID != "" {
		route, err = h.keys.ResolveCollection(c.Request.Context(), collectionID, domain.Category(c.Query("category")))
		if err != nil {
			if errors.Is(err, domain.ErrCollectionNotFound) {
				respondNotFound(c, "Collection not found")
				return
			}
			if errors.Is(err, domain.ErrInvalidIdentifier) {
				respondBadRequest(c, "Invalid collection identifier", err.Error())
				return
			}
			respondInternalError(c, err, "Failed to resolve collection")
			return
		}
	} else if category := c.Query("category"); category != "" {
		route = &keys.Route{Shape: domain.ShapeStandard, Category: domain.Category(category)}
	}

	resolution, err := h.resolver.Resolve(c.Request.Context(), metadata.Request{
		UnitID: unitID,
		Route:  route,
		Chain:  chainCfg.ChainID,
		Wallet: c.Query("wallet"),
		TTL:    ttl,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnitNotFound) {
			respondNotFound(c, "Unit not found")
			return
		}
		if errors.Is(err, domain.ErrLedgerUnavailable) {
			respondLedgerError(c, err, "Ledger unavailable")
			return
		}
		respondInternalError(c, err, "Failed to resolve unit", zap.String("unitID", rawID))
		return
	}

	if marketplace {
		annotated, _ := h.annotate(c, chainCfg, []domain.UnitRecord{resolution.Record})
		c.JSON(http.StatusOK, MarketplaceUnitResponse{Unit: annotated[0], Source: resolution.Source})
		return
	}
	c.JSON(http.StatusOK, UnitResponse{Unit: resolution.Record, Source: resolution.Source})
}

// annotate joins records with the chain's live trading state. Enumeration
// failures degrade to un-annotated records rather than failing the read.
func (h *handler) annotate(c *gin.Context, chainCfg config.ChainConfig, records []domain.UnitRecord) ([]trading.AnnotatedUnit, trading.Stats) {
	ctx := c.Request.Context()

	var listings []domain.MarketListing
	var auctions []domain.MarketAuction
	if reader, err := h.ledgers.Get(chainCfg.ChainID); err == nil {
		if listings, err = reader.ValidListings(ctx); err != nil {
			logger.WarnCtx(ctx, "listings enumeration failed", zap.Error(err))
		}
		if auctions, err = reader.ValidAuctions(ctx); err != nil {
			logger.WarnCtx(ctx, "auctions enumeration failed", zap.Error(err))
		}
	}

	return trading.NewAnnotator(listings, auctions).Annotate(records)
}

// ListCollectionUnits lists a collection's units with live trading state
func (h *handler) ListCollectionUnits(c *gin.Context) {
	collectionID := c.Param("id")
	chainCfg, ok := h.chainConfig(c.Query("chain"))
	if !ok {
		respondBadRequest(c, "Unknown chain")
		return
	}

	route, err := h.keys.ResolveCollection(c.Request.Context(), collectionID, domain.Category(c.Query("category")))
	if err != nil {
		if errors.Is(err, domain.ErrCollectionNotFound) {
			respondNotFound(c, "Collection not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidIdentifier) {
			respondBadRequest(c, "Invalid collection identifier", err.Error())
			return
		}
		respondInternalError(c, err, "Failed to resolve collection")
		return
	}

	records, err := h.collectionRecords(c, route, chainCfg)
	if err != nil {
		respondInternalError(c, err, "Failed to list collection units")
		return
	}

	annotated, stats := h.annotate(c, chainCfg, records)
	c.JSON(http.StatusOK, CollectionUnitsResponse{
		CollectionID: collectionID,
		Shape:        route.Shape,
		Units:        annotated,
		Stats:        stats,
	})
}

// collectionRecords loads the raw unit records for a resolved collection
func (h *handler) collectionRecords(c *gin.Context, route *keys.Route, chainCfg config.ChainConfig) ([]domain.UnitRecord, error) {
	ctx := c.Request.Context()
	chain := chainCfg.ChainID

	if route.Shape == domain.ShapeCustom {
		mints, err := h.store.ListMintsByCollection(ctx, route.CustomCollectionID)
		if err != nil {
			return nil, err
		}
		records := make([]domain.UnitRecord, 0, len(mints))
		for _, mint := range mints {
			records = append(records, domain.UnitRecord{
				UnitID:          mint.ObjectID,
				Shape:           domain.ShapeCustom,
				ChainID:         chain,
				ContractAddress: domain.NormalizeAddress(mint.ContractAddress),
				TokenID:         mint.TokenID,
				Owner:           mint.Owner,
				Name:            mint.Name,
				ImageURL:        mint.ImageURL,
				CreatedAt:       mint.CreatedAt,
			})
		}
		return records, nil
	}

	contract := route.ContractAddress
	if contract == "" {
		contract = strings.ToLower(chainCfg.NFTContract)
	}

	var records []domain.UnitRecord
	for _, category := range domain.StandardCategories {
		units, err := h.store.ListUnitsByContract(ctx, category, contract)
		if err != nil {
			return nil, err
		}
		for _, unit := range units {
			records = append(records, unitRecord(route.Shape, category, unit))
		}
	}
	return records, nil
}

// unitRecord projects a stored row into the response record shape
func unitRecord(shape domain.CollectionShape, category domain.Category, unit *schema.Unit) domain.UnitRecord {
	return domain.UnitRecord{
		UnitID:          unit.TokenID,
		Shape:           shape,
		Category:        category,
		ChainID:         domain.Chain(unit.ChainID),
		ContractAddress: unit.ContractAddress,
		TokenID:         unit.TokenID,
		Owner:           unit.Owner,
		Name:            unit.Name,
		ImageURL:        unit.ImageURL,
		CreatedAt:       unit.CreatedAt,
	}
}

// TriggerSync runs a full ledger-to-store sync
func (h *handler) TriggerSync(c *gin.Context) {
	var req SyncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err.Error())
			return
		}
	}

	report, err := h.orchestrator.Run(c.Request.Context(), syncpkg.Options{Wallet: req.Wallet})
	if err != nil {
		respondInternalError(c, err, "Sync run failed")
		return
	}
	c.JSON(http.StatusOK, SyncResponse{Report: report})
}

// reconcileScope parses the audit/apply scope from request parameters
func (h *handler) reconcileScope(chainParam, contractParam, categoryParam string) (reconcile.Scope, bool) {
	chainCfg, ok := h.chainConfig(chainParam)
	if !ok {
		return reconcile.Scope{}, false
	}

	contract := contractParam
	if contract == "" {
		contract = chainCfg.NFTContract
	}
	category := domain.Category(categoryParam)
	if !domain.IsValidCategory(category) {
		category = domain.CategoryJersey
	}

	return reconcile.Scope{
		Chain:           chainCfg.ChainID,
		ContractAddress: strings.ToLower(contract),
		Category:        category,
	}, true
}

// GetReconciliationReport runs a read-only audit pass
func (h *handler) GetReconciliationReport(c *gin.Context) {
	scope, ok := h.reconcileScope(c.Query("chain"), c.Query("contract"), c.Query("category"))
	if !ok {
		respondBadRequest(c, "Unknown chain")
		return
	}

	report, err := h.engine.Audit(c.Request.Context(), scope)
	if err != nil {
		if errors.Is(err, domain.ErrLedgerUnavailable) {
			respondLedgerError(c, err, "Ledger unavailable")
			return
		}
		respondInternalError(c, err, "Audit failed")
		return
	}
	c.JSON(http.StatusOK, ReconciliationReportResponse{Report: report})
}

// ApplyCorrections applies audited corrections
func (h *handler) ApplyCorrections(c *gin.Context) {
	var req ApplyCorrectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	scope, ok := h.reconcileScope(req.Chain, req.ContractAddress, req.Category)
	if !ok {
		respondBadRequest(c, "Unknown chain")
		return
	}

	result, err := h.engine.Apply(c.Request.Context(), scope, req.Corrections)
	if err != nil {
		respondInternalError(c, err, "Failed to apply corrections")
		return
	}
	c.JSON(http.StatusOK, ApplyCorrectionsResponse{Result: result})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
