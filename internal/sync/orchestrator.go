package sync

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/gotasapp/nft-sync-engine/internal/adapter"
	"github.com/gotasapp/nft-sync-engine/internal/config"
	"github.com/gotasapp/nft-sync-engine/internal/domain"
	"github.com/gotasapp/nft-sync-engine/internal/keys"
	"github.com/gotasapp/nft-sync-engine/internal/ledger"
	"github.com/gotasapp/nft-sync-engine/internal/logger"
	"github.com/gotasapp/nft-sync-engine/internal/store"
	"github.com/gotasapp/nft-sync-engine/internal/store/schema"
	"github.com/gotasapp/nft-sync-engine/internal/trading"
	"github.com/gotasapp/nft-sync-engine/internal/uri"
)

//go:generate mockgen -source=orchestrator.go -destination=../mocks/sync.go -package=mocks -mock_names=Orchestrator=MockSyncOrchestrator

// Options scopes one sync run
type Options struct {
	// Wallet restricts the run to units owned by one address. Empty syncs
	// everything.
	Wallet string `json:"wallet,omitempty"`
}

// ChainReport summarizes the sync outcome for one chain configuration
type ChainReport struct {
	Chain       domain.Chain `json:"chain"`
	Contract    string       `json:"contract"`
	TotalSupply int64        `json:"totalSupply"`
	Created     int          `json:"created"`
	Updated     int          `json:"updated"`
	AutoCreated int          `json:"autoCreated"`
	Skipped     int          `json:"skipped"`
	Failed      int          `json:"failed"`
	Error       string       `json:"error,omitempty"`
}

// RunReport is the outcome of one full sync run
type RunReport struct {
	RunID      string        `json:"runId"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
	Chains     []ChainReport `json:"chains"`
}

// Orchestrator drives the full ledger-to-store sync: enumerate every token
// index, resolve its metadata, and upsert it into the category-appropriate
// store keyed on GlobalID
type Orchestrator interface {
	Run(ctx context.Context, opts Options) (*RunReport, error)
}

type orchestrator struct {
	chains    []config.ChainConfig
	poolSize  int
	queueSize int
	store     store.Store
	keys      keys.Resolver
	ledgers   ledger.Registry
	uri       *uri.Resolver
	http      adapter.HTTPClient
	json      adapter.JSON
	jcs       adapter.JCS
	clock     adapter.Clock
}

// NewOrchestrator creates a sync orchestrator over the configured chains
func NewOrchestrator(
	cfg config.SyncConfig,
	chains []config.ChainConfig,
	s store.Store,
	k keys.Resolver,
	ledgers ledger.Registry,
	uriResolver *uri.Resolver,
	httpClient adapter.HTTPClient,
	json adapter.JSON,
	jcs adapter.JCS,
	clock adapter.Clock,
) Orchestrator {
	poolSize := cfg.WorkerPoolSize
	if poolSize <= 0 {
		poolSize = 8
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 1024
	}
	return &orchestrator{
		chains:    chains,
		poolSize:  poolSize,
		queueSize: queueSize,
		store:     s,
		keys:      k,
		ledgers:   ledgers,
		uri:       uriResolver,
		http:      httpClient,
		json:      json,
		jcs:       jcs,
		clock:     clock,
	}
}

// Run syncs every configured chain. Chains are independent: a failure on one
// is recorded on its report and does not abort the others.
func (o *orchestrator) Run(ctx context.Context, opts Options) (*RunReport, error) {
	report := &RunReport{
		RunID:     uuid.NewString(),
		StartedAt: o.clock.Now(),
	}

	for _, chainCfg := range o.chains {
		chainReport := o.syncChain(ctx, chainCfg, opts)
		report.Chains = append(report.Chains, chainReport)

		if err := ctx.Err(); err != nil {
			// Surface the partial result rather than discarding completed
			// chains
			break
		}
	}

	report.FinishedAt = o.clock.Now()
	logger.InfoCtx(ctx, "sync run finished",
		zap.String("runID", report.RunID),
		zap.Int("chains", len(report.Chains)),
		zap.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)))
	return report, nil
}

type tokenOutcome struct {
	created bool
	skipped bool
	failed  bool
}

func (o *orchestrator) syncChain(ctx context.Context, chainCfg config.ChainConfig, opts Options) ChainReport {
	chain := chainCfg.ChainID
	report := ChainReport{Chain: chain, Contract: strings.ToLower(chainCfg.NFTContract)}

	reader, err := o.ledgers.Get(chain)
	if err != nil {
		report.Error = err.Error()
		return report
	}

	supply, err := reader.TotalSupply(ctx)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.TotalSupply = supply.Int64()

	listings, err := reader.ValidListings(ctx)
	if err != nil {
		logger.WarnCtx(ctx, "listings enumeration failed, syncing without trading state",
			zap.String("chain", string(chain)), zap.Error(err))
		listings = nil
	}
	auctions, err := reader.ValidAuctions(ctx)
	if err != nil {
		logger.WarnCtx(ctx, "auctions enumeration failed, syncing without auction state",
			zap.String("chain", string(chain)), zap.Error(err))
		auctions = nil
	}
	annotator := trading.NewAnnotator(listings, auctions)

	// Bounded fan-out across token indices. One failing index must not abort
	// the batch.
	pool := pond.NewPool(o.poolSize, pond.WithQueueSize(o.queueSize))
	outcomes := make(chan tokenOutcome, report.TotalSupply)
	for i := int64(0); i < report.TotalSupply; i++ {
		index := i
		pool.Submit(func() {
			outcome, err := o.syncToken(ctx, chainCfg, reader, annotator, index, opts)
			outcome.failed = err != nil
			outcomes <- outcome
		})
	}
	pool.StopAndWait()
	close(outcomes)

	for outcome := range outcomes {
		switch {
		case outcome.failed:
			report.Failed++
		case outcome.skipped:
			report.Skipped++
		case outcome.created:
			report.Created++
		default:
			report.Updated++
		}
	}

	report.AutoCreated = o.autoCreateUnmatched(ctx, chainCfg, listings)
	return report
}

// syncToken fetches one token's ledger state, classifies its category from
// metadata heuristics and upserts it keyed on GlobalID
func (o *orchestrator) syncToken(
	ctx context.Context,
	chainCfg config.ChainConfig,
	reader ledger.Reader,
	annotator *trading.Annotator,
	index int64,
	opts Options,
) (tokenOutcome, error) {
	tokenID := big.NewInt(index)

	owner, err := reader.OwnerOf(ctx, tokenID)
	if err != nil {
		logger.WarnCtx(ctx, "owner fetch failed",
			zap.Int64("tokenIndex", index), zap.Error(err))
		return tokenOutcome{}, err
	}
	owner = domain.NormalizeAddress(owner)

	if opts.Wallet != "" && !strings.EqualFold(opts.Wallet, owner) {
		return tokenOutcome{skipped: true}, nil
	}

	unit := &schema.Unit{
		GlobalID:        domain.GlobalID(chainCfg.ChainID, chainCfg.NFTContract, tokenID.String()),
		ChainID:         string(chainCfg.ChainID),
		ContractAddress: strings.ToLower(chainCfg.NFTContract),
		TokenID:         tokenID.String(),
		Owner:           owner,
		IsMinted:        true,
	}

	category := domain.CategoryJersey
	if tokenURI, err := reader.TokenURI(ctx, tokenID); err == nil {
		if meta := o.fetchMetadata(ctx, tokenURI, tokenID.String()); meta != nil {
			if name, _ := meta["name"].(string); name != "" {
				unit.Name = name
				category = domain.CategoryFromName(name)
			}
			if image, _ := meta["image"].(string); image != "" {
				unit.ImageURL = o.uri.Resolve(image, tokenID.String())
			}
			if raw, ok := o.canonicalJSON(meta); ok {
				unit.MetadataRaw = raw
			}
			if attrs, ok := meta["attributes"]; ok {
				if raw, ok := o.canonicalJSON(attrs); ok {
					unit.Attributes = raw
				}
			}
		}
	}

	applyTradingState(unit, annotator)

	created, err := o.store.UpsertUnit(ctx, category, unit)
	if err != nil {
		return tokenOutcome{}, err
	}
	return tokenOutcome{created: created}, nil
}

// applyTradingState denormalizes live listing and auction state onto the
// unit row. Auctions take precedence for price, matching display behavior.
func applyTradingState(unit *schema.Unit, annotator *trading.Annotator) {
	if listing, ok := annotator.Listing(unit.TokenID, unit.ContractAddress); ok {
		unit.Marketplace.IsListed = true
		unit.Marketplace.ListingID = &listing.ListingID
		unit.Marketplace.PriceBaseUnits = &listing.PricePerTokenBaseUnit
		unit.Marketplace.Currency = &listing.Currency
		end := listing.EndTimestamp
		unit.Marketplace.EndTime = &end
	}
	if auction, ok := annotator.Auction(unit.TokenID, unit.ContractAddress); ok {
		unit.Marketplace.IsAuction = true
		unit.Marketplace.AuctionID = &auction.AuctionID
		unit.Marketplace.PriceBaseUnits = &auction.MinimumBid
		unit.Marketplace.Currency = &auction.Currency
		end := auction.EndTimestamp
		unit.Marketplace.EndTime = &end
	}
}

// autoCreateUnmatched inserts placeholder rows for ledger listings that
// match no existing document under any candidate predicate, so the unit
// becomes visible rather than silently dropped
func (o *orchestrator) autoCreateUnmatched(ctx context.Context, chainCfg config.ChainConfig, listings []domain.MarketListing) int {
	contract := strings.ToLower(chainCfg.NFTContract)
	autoCreated := 0

	for _, listing := range listings {
		if strings.ToLower(listing.ContractAddress) != contract {
			continue
		}

		unitID, err := domain.ClassifyIdentifier(listing.TokenID)
		if err != nil {
			continue
		}
		// The listing creator is the best wallet guess for the legacy
		// minter and creator predicates.
		predicates := o.keys.CandidateKeys(unitID, contract, listing.Creator)

		matched := false
		for _, category := range domain.StandardCategories {
			match, err := o.store.FindUnit(ctx, category, predicates)
			if err != nil {
				logger.WarnCtx(ctx, "listing match lookup failed",
					zap.String("tokenID", listing.TokenID), zap.Error(err))
				continue
			}
			if match != nil {
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		placeholder := &schema.Unit{
			GlobalID:        domain.GlobalID(chainCfg.ChainID, contract, listing.TokenID),
			ChainID:         string(chainCfg.ChainID),
			ContractAddress: contract,
			TokenID:         listing.TokenID,
			IsMinted:        true,
			AutoCreated:     true,
		}
		placeholder.Marketplace.IsListed = true
		placeholder.Marketplace.ListingID = &listing.ListingID
		placeholder.Marketplace.PriceBaseUnits = &listing.PricePerTokenBaseUnit
		placeholder.Marketplace.Currency = &listing.Currency
		end := listing.EndTimestamp
		placeholder.Marketplace.EndTime = &end

		if _, err := o.store.UpsertUnit(ctx, domain.CategoryJersey, placeholder); err != nil {
			logger.ErrorCtx(ctx, errors.New("failed to auto-create placeholder"),
				zap.String("tokenID", listing.TokenID), zap.Error(err))
			continue
		}
		logger.InfoCtx(ctx, "auto-created placeholder for unmatched listing",
			zap.String("tokenID", listing.TokenID),
			zap.String("listingID", listing.ListingID))
		autoCreated++
	}
	return autoCreated
}

// canonicalJSON marshals a metadata value and canonicalizes it so repeated
// sync runs write byte-stable JSONB. A canonicalization failure falls back
// to the plain encoding.
func (o *orchestrator) canonicalJSON(v any) (datatypes.JSON, bool) {
	raw, err := o.json.Marshal(v)
	if err != nil {
		return nil, false
	}
	canonical, err := o.jcs.Transform(raw)
	if err != nil {
		return datatypes.JSON(raw), true
	}
	return datatypes.JSON(canonical), true
}

// fetchMetadata fetches token metadata JSON, tolerating failure
func (o *orchestrator) fetchMetadata(ctx context.Context, tokenURI, tokenID string) map[string]any {
	resolved := o.uri.Resolve(tokenURI, tokenID)
	if !o.uri.IsFetchable(resolved) {
		return nil
	}
	var meta map[string]any
	if err := o.http.Get(ctx, resolved, &meta); err != nil {
		logger.WarnCtx(ctx, "metadata fetch failed",
			zap.String("uri", resolved), zap.Error(err))
		return nil
	}
	return meta
}
