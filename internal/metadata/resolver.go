package metadata

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/gotasapp/nft-sync-engine/internal/adapter"
	"github.com/gotasapp/nft-sync-engine/internal/cache"
	"github.com/gotasapp/nft-sync-engine/internal/domain"
	"github.com/gotasapp/nft-sync-engine/internal/keys"
	"github.com/gotasapp/nft-sync-engine/internal/ledger"
	"github.com/gotasapp/nft-sync-engine/internal/logger"
	"github.com/gotasapp/nft-sync-engine/internal/store"
	"github.com/gotasapp/nft-sync-engine/internal/store/schema"
	"github.com/gotasapp/nft-sync-engine/internal/uri"
)

//go:generate mockgen -source=resolver.go -destination=../mocks/metadata.go -package=mocks -mock_names=Resolver=MockMetadataResolver

// Request scopes one unit resolution
type Request struct {
	UnitID domain.UnitIdentifier
	Route  *keys.Route
	// Chain selects the ledger used for authoritative fetches and image
	// enhancement
	Chain domain.Chain
	// Wallet, when known, feeds the wallet-based legacy recovery predicates
	Wallet string
	// TTL is the cache freshness window chosen by read intent
	TTL time.Duration
}

// Resolution is a resolved unit projection tagged with where it came from
type Resolution struct {
	Record domain.UnitRecord
	Source domain.ResolutionSource
}

// Resolver resolves a unit identifier into its canonical projection by
// cascading cache, durable store and ledger lookups
type Resolver interface {
	Resolve(ctx context.Context, req Request) (*Resolution, error)
}

type resolver struct {
	store   store.Store
	cache   cache.Store
	keys    keys.Resolver
	ledgers ledger.Registry
	uri     *uri.Resolver
	http    adapter.HTTPClient
	json    adapter.JSON
}

// NewResolver creates a metadata resolver
func NewResolver(
	s store.Store,
	c cache.Store,
	k keys.Resolver,
	ledgers ledger.Registry,
	uriResolver *uri.Resolver,
	httpClient adapter.HTTPClient,
	json adapter.JSON,
) Resolver {
	return &resolver{
		store:   s,
		cache:   c,
		keys:    k,
		ledgers: ledgers,
		uri:     uriResolver,
		http:    httpClient,
		json:    json,
	}
}

// Resolve runs the cascade. The three tiers are strictly sequential: each is
// a short-circuit gate, not an independent source to merge. Cache is
// cheapest, the durable store is authoritative for sale state once synced,
// the ledger is authoritative but expensive and rate-limited.
func (r *resolver) Resolve(ctx context.Context, req Request) (*Resolution, error) {
	entry, err := r.cache.Get(ctx, req.UnitID.Raw)
	if err != nil {
		logger.WarnCtx(ctx, "cache lookup failed, continuing cascade",
			zap.String("unitID", req.UnitID.Raw), zap.Error(err))
	}
	if entry != nil && !r.cache.IsStale(entry, req.TTL) {
		return &Resolution{Record: entry.Projection, Source: domain.SourceCache}, nil
	}

	record, err := r.resolveDurable(ctx, req)
	if err != nil {
		return nil, err
	}
	if record != nil {
		if err := r.cache.Put(ctx, req.UnitID.Raw, *record); err != nil {
			logger.WarnCtx(ctx, "cache write-through failed",
				zap.String("unitID", req.UnitID.Raw), zap.Error(err))
		}
		return &Resolution{Record: *record, Source: domain.SourceDurable}, nil
	}

	record, err = r.resolveLedger(ctx, req)
	if err != nil {
		// A stale cache entry beats a hard failure. Availability over
		// freshness.
		if entry != nil {
			logger.WarnCtx(ctx, "ledger fetch failed, serving stale cache entry",
				zap.String("unitID", req.UnitID.Raw), zap.Error(err))
			return &Resolution{Record: entry.Projection, Source: domain.SourceStaleCache}, nil
		}
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrUnitNotFound
	}

	if err := r.cache.Put(ctx, req.UnitID.Raw, *record); err != nil {
		logger.WarnCtx(ctx, "cache write-through failed",
			zap.String("unitID", req.UnitID.Raw), zap.Error(err))
	}
	return &Resolution{Record: *record, Source: domain.SourceLedger}, nil
}

// resolveDurable looks the unit up in the durable store. For custom
// collections the mint store is queried directly; otherwise the candidate
// predicates run across the standard category stores in fixed order, since a
// token id is not globally unique across categories. Category is implicit
// from where the unit was found.
func (r *resolver) resolveDurable(ctx context.Context, req Request) (*domain.UnitRecord, error) {
	if req.Route != nil && req.Route.Shape == domain.ShapeCustom {
		mint, err := r.store.FindMint(ctx, req.Route.CustomCollectionID, req.UnitID)
		if err != nil {
			return nil, err
		}
		if mint == nil {
			return nil, nil
		}
		return r.recordFromMint(req, mint), nil
	}

	contractAddress := ""
	if req.Route != nil {
		contractAddress = req.Route.ContractAddress
	}
	predicates := r.keys.CandidateKeys(req.UnitID, contractAddress, req.Wallet)

	categories := domain.StandardCategories
	if req.Route != nil && req.Route.Shape == domain.ShapeStandard && domain.IsValidCategory(req.Route.Category) {
		// A category hint narrows the probe but the remaining stores are
		// still tried afterwards; first match wins.
		categories = orderedCategories(req.Route.Category)
	}

	for _, category := range categories {
		match, err := r.store.FindUnit(ctx, category, predicates)
		if err != nil {
			return nil, err
		}
		if match == nil {
			continue
		}

		unit := match.Unit
		if unit.ImageURL == "" {
			r.enhanceImage(ctx, req, category, unit)
		}
		return r.recordFromUnit(category, unit)
	}
	return nil, nil
}

// orderedCategories puts the hinted category first, keeping the fixed probe
// order for the rest
func orderedCategories(first domain.Category) []domain.Category {
	ordered := []domain.Category{first}
	for _, c := range domain.StandardCategories {
		if c != first {
			ordered = append(ordered, c)
		}
	}
	return ordered
}

// enhanceImage fills a missing image from the ledger's token metadata.
// Only image fields are merged in; owner and metadata are never overwritten
// by this pass.
func (r *resolver) enhanceImage(ctx context.Context, req Request, category domain.Category, unit *schema.Unit) {
	reader, err := r.ledgers.Get(req.Chain)
	if err != nil {
		return
	}

	tokenID, ok := new(big.Int).SetString(unit.TokenID, 10)
	if !ok {
		return
	}

	tokenURI, err := reader.TokenURI(ctx, tokenID)
	if err != nil {
		logger.WarnCtx(ctx, "image enhancement skipped, token URI fetch failed",
			zap.String("unitID", req.UnitID.Raw), zap.Error(err))
		return
	}

	meta := r.fetchMetadata(ctx, tokenURI, unit.TokenID)
	if meta == nil {
		return
	}
	image, _ := meta["image"].(string)
	if image == "" {
		return
	}

	unit.ImageURL = r.uri.Resolve(image, unit.TokenID)
	if err := r.store.UpdateUnitImage(ctx, category, unit.ID, unit.ImageURL); err != nil {
		logger.WarnCtx(ctx, "failed to persist enhanced image",
			zap.String("unitID", req.UnitID.Raw), zap.Error(err))
	}
}

// resolveLedger performs the authoritative fetch: owner, token URI and a
// best-effort metadata JSON fetch. Metadata fetch failures are tolerated and
// leave metadata null, never fail the resolution.
func (r *resolver) resolveLedger(ctx context.Context, req Request) (*domain.UnitRecord, error) {
	if req.UnitID.IsObjectReference() {
		// Object references have no ledger-native form to fetch by
		return nil, nil
	}

	reader, err := r.ledgers.Get(req.Chain)
	if err != nil {
		return nil, err
	}

	tokenID, ok := new(big.Int).SetString(req.UnitID.Raw, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidIdentifier, req.UnitID.Raw)
	}

	owner, err := reader.OwnerOf(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	record := &domain.UnitRecord{
		UnitID:   req.UnitID.Raw,
		Shape:    domain.ShapeStandard,
		Category: domain.CategoryJersey,
		ChainID:  req.Chain,
		TokenID:  req.UnitID.Raw,
		Owner:    domain.NormalizeAddress(owner),
	}
	if req.Route != nil {
		record.Shape = req.Route.Shape
		record.ContractAddress = req.Route.ContractAddress
		if domain.IsValidCategory(req.Route.Category) {
			record.Category = req.Route.Category
		}
	}

	tokenURI, err := reader.TokenURI(ctx, tokenID)
	if err != nil {
		logger.WarnCtx(ctx, "token URI fetch failed, returning owner-only record",
			zap.String("unitID", req.UnitID.Raw), zap.Error(err))
		return record, nil
	}

	meta := r.fetchMetadata(ctx, tokenURI, req.UnitID.Raw)
	if meta != nil {
		record.MetadataRaw = meta
		if name, _ := meta["name"].(string); name != "" {
			record.Name = name
			record.Category = domain.CategoryFromName(name)
		}
		if image, _ := meta["image"].(string); image != "" {
			record.ImageURL = r.uri.Resolve(image, req.UnitID.Raw)
		}
		record.Attributes = parseAttributes(meta)
	}
	return record, nil
}

// fetchMetadata fetches and decodes token metadata JSON. Returns nil on any
// failure.
func (r *resolver) fetchMetadata(ctx context.Context, tokenURI, tokenID string) map[string]any {
	resolved := r.uri.Resolve(tokenURI, tokenID)
	if !r.uri.IsFetchable(resolved) {
		return nil
	}

	var meta map[string]any
	if err := r.http.Get(ctx, resolved, &meta); err != nil {
		logger.WarnCtx(ctx, "metadata fetch failed",
			zap.String("uri", resolved), zap.Error(err))
		return nil
	}
	return meta
}

// parseAttributes extracts the attributes array from raw metadata
func parseAttributes(meta map[string]any) []domain.Attribute {
	raw, ok := meta["attributes"].([]any)
	if !ok {
		return nil
	}

	attributes := make([]domain.Attribute, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		traitType, _ := m["trait_type"].(string)
		attributes = append(attributes, domain.Attribute{
			TraitType: traitType,
			Value:     m["value"],
		})
	}
	return attributes
}

// recordFromUnit projects a stored unit row into the canonical record shape
func (r *resolver) recordFromUnit(category domain.Category, unit *schema.Unit) (*domain.UnitRecord, error) {
	record := &domain.UnitRecord{
		UnitID:          unit.TokenID,
		Shape:           domain.ShapeStandard,
		Category:        category,
		ChainID:         domain.Chain(unit.ChainID),
		ContractAddress: unit.ContractAddress,
		TokenID:         unit.TokenID,
		Owner:           unit.Owner,
		Name:            unit.Name,
		ImageURL:        unit.ImageURL,
		CreatedAt:       unit.CreatedAt,
	}

	if len(unit.Attributes) > 0 {
		if err := r.json.Unmarshal(unit.Attributes, &record.Attributes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attributes: %w", err)
		}
	}
	if len(unit.MetadataRaw) > 0 {
		if err := r.json.Unmarshal(unit.MetadataRaw, &record.MetadataRaw); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}
	return record, nil
}

// recordFromMint projects a custom-collection mint into the record shape
func (r *resolver) recordFromMint(req Request, mint *schema.CustomCollectionMint) *domain.UnitRecord {
	return &domain.UnitRecord{
		UnitID:          req.UnitID.Raw,
		Shape:           domain.ShapeCustom,
		ChainID:         req.Chain,
		ContractAddress: domain.NormalizeAddress(mint.ContractAddress),
		TokenID:         mint.TokenID,
		Owner:           mint.Owner,
		Name:            mint.Name,
		ImageURL:        mint.ImageURL,
		CreatedAt:       mint.CreatedAt,
	}
}
