package reconcile

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gotasapp/nft-sync-engine/internal/adapter"
	"github.com/gotasapp/nft-sync-engine/internal/domain"
	"github.com/gotasapp/nft-sync-engine/internal/ledger"
	"github.com/gotasapp/nft-sync-engine/internal/logger"
	"github.com/gotasapp/nft-sync-engine/internal/store"
)

//go:generate mockgen -source=engine.go -destination=../mocks/reconcile.go -package=mocks -mock_names=Engine=MockReconciliationEngine

// Scope selects the contract being reconciled
type Scope struct {
	Chain           domain.Chain
	ContractAddress string
	Category        domain.Category
}

// Report is the outcome of one read-only audit pass
type Report struct {
	Scope       Scope                     `json:"scope"`
	TotalSupply int64                     `json:"totalSupply"`
	StoredUnits int                       `json:"storedUnits"`
	Corrections []domain.CorrectionAction `json:"corrections"`
	// SkippedRecords counts stored rows whose token id could not be parsed
	SkippedRecords int       `json:"skippedRecords"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// ApplyResult summarizes one apply pass
type ApplyResult struct {
	Applied int      `json:"applied"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// Engine compares the ledger-visible NFT set against the durable store.
// Audit never writes; it classifies discrepancies and proposes corrections
// for a separate apply step, so operators can review before anything changes.
// The two phases must not be collapsed into one auto-apply pass.
type Engine interface {
	Audit(ctx context.Context, scope Scope) (*Report, error)
	Apply(ctx context.Context, scope Scope, corrections []domain.CorrectionAction) (*ApplyResult, error)
}

type engine struct {
	store   store.Store
	ledgers ledger.Registry
	clock   adapter.Clock
}

// NewEngine creates a reconciliation engine
func NewEngine(s store.Store, ledgers ledger.Registry, clock adapter.Clock) Engine {
	return &engine{store: s, ledgers: ledgers, clock: clock}
}

// Audit runs the three discrepancy checks over the full enumerated ledger
// state and the full stored state for the scoped contract
func (e *engine) Audit(ctx context.Context, scope Scope) (*Report, error) {
	reader, err := e.ledgers.Get(scope.Chain)
	if err != nil {
		return nil, err
	}

	supply, err := reader.TotalSupply(ctx)
	if err != nil {
		return nil, err
	}
	totalSupply := supply.Int64()

	stored, err := e.store.ListUnitsByContract(ctx, scope.Category, scope.ContractAddress)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Scope:       scope,
		TotalSupply: totalSupply,
		StoredUnits: len(stored),
		Corrections: []domain.CorrectionAction{},
		GeneratedAt: e.clock.Now(),
	}

	now := report.GeneratedAt
	mintedByToken := make(map[string]bool, len(stored))
	listingsByToken := make(map[string]string, len(stored))
	for _, unit := range stored {
		if unit.IsMinted {
			mintedByToken[unit.TokenID] = true
		}
		if unit.Marketplace.ListingID != nil {
			listingsByToken[unit.TokenID] = *unit.Marketplace.ListingID
		}
	}

	// Minted-not-recorded: every ledger index must have a minted record
	for i := int64(0); i < totalSupply; i++ {
		tokenID := big.NewInt(i).String()
		if mintedByToken[tokenID] {
			continue
		}
		report.Corrections = append(report.Corrections, domain.CorrectionAction{
			ID:              domain.NewCorrectionID(now),
			Kind:            domain.CorrectionMarkAsMinted,
			ChainID:         scope.Chain,
			ContractAddress: strings.ToLower(scope.ContractAddress),
			Category:        scope.Category,
			TokenID:         tokenID,
		})
	}

	// Recorded-not-minted: minted flags on records whose index is beyond the
	// ledger's supply are stale test data or failed mints recorded
	// optimistically
	for _, unit := range stored {
		if !unit.IsMinted {
			continue
		}
		index, ok := new(big.Int).SetString(unit.TokenID, 10)
		if !ok {
			report.SkippedRecords++
			continue
		}
		if index.Cmp(supply) < 0 {
			continue
		}
		report.Corrections = append(report.Corrections, domain.CorrectionAction{
			ID:              domain.NewCorrectionID(now),
			Kind:            domain.CorrectionMarkAsNotMinted,
			ChainID:         scope.Chain,
			ContractAddress: strings.ToLower(scope.ContractAddress),
			Category:        scope.Category,
			TokenID:         unit.TokenID,
		})
	}

	// Listed-not-synced: every active ledger listing must be denormalized
	// onto its record
	listings, err := reader.ValidListings(ctx)
	if err != nil {
		return nil, err
	}
	contract := strings.ToLower(scope.ContractAddress)
	for _, listing := range listings {
		if strings.ToLower(listing.ContractAddress) != contract {
			continue
		}
		if listingsByToken[listing.TokenID] == listing.ListingID {
			continue
		}
		report.Corrections = append(report.Corrections, domain.CorrectionAction{
			ID:              domain.NewCorrectionID(now),
			Kind:            domain.CorrectionAddListingInfo,
			ChainID:         scope.Chain,
			ContractAddress: contract,
			Category:        scope.Category,
			TokenID:         listing.TokenID,
			Listing: &domain.ListingPayload{
				ListingID:             listing.ListingID,
				PricePerTokenBaseUnit: listing.PricePerTokenBaseUnit,
				Currency:              listing.Currency,
				EndTimestamp:          listing.EndTimestamp,
			},
		})
	}

	return report, nil
}

// Apply performs the writes an audit proposed. Each correction is an
// upsert-by-token operation restricted to the fields the correction
// concerns, never a full-document overwrite, so repeated application
// converges. One failing correction does not abort the rest.
func (e *engine) Apply(ctx context.Context, scope Scope, corrections []domain.CorrectionAction) (*ApplyResult, error) {
	result := &ApplyResult{}

	for _, correction := range corrections {
		fields, err := correctionFields(correction)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		category := correction.Category
		if !domain.IsValidCategory(category) {
			category = scope.Category
		}

		globalID, err := e.store.UpdateUnitFields(ctx, category,
			correction.ChainID, correction.ContractAddress, correction.TokenID, fields)
		if err != nil {
			logger.ErrorCtx(ctx, errors.New("failed to apply correction"),
				zap.String("correctionID", correction.ID),
				zap.String("kind", string(correction.Kind)),
				zap.Error(err))
			result.Failed++
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		logger.InfoCtx(ctx, "applied correction",
			zap.String("correctionID", correction.ID),
			zap.String("kind", string(correction.Kind)),
			zap.String("globalID", globalID))
		result.Applied++
	}

	return result, nil
}

// correctionFields maps a correction to the restricted field set it writes
func correctionFields(correction domain.CorrectionAction) (map[string]any, error) {
	switch correction.Kind {
	case domain.CorrectionMarkAsMinted:
		return map[string]any{"is_minted": true}, nil
	case domain.CorrectionMarkAsNotMinted:
		return map[string]any{"is_minted": false}, nil
	case domain.CorrectionAddListingInfo:
		if correction.Listing == nil {
			return nil, domain.ErrInvalidCorrection
		}
		return map[string]any{
			"marketplace_is_listed":        true,
			"marketplace_listing_id":       correction.Listing.ListingID,
			"marketplace_price_base_units": correction.Listing.PricePerTokenBaseUnit,
			"marketplace_currency":         correction.Listing.Currency,
			"marketplace_end_time":         correction.Listing.EndTimestamp,
		}, nil
	default:
		return nil, domain.ErrInvalidCorrection
	}
}
