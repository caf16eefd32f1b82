package keys

import (
	"context"
	"fmt"
	"strings"

	"github.com/gotasapp/nft-sync-engine/internal/domain"
	"github.com/gotasapp/nft-sync-engine/internal/store"
)

//go:generate mockgen -source=resolver.go -destination=../mocks/keys.go -package=mocks -mock_names=Resolver=MockKeyResolver

// Route is the lookup routing for a classified collection identifier
type Route struct {
	Shape domain.CollectionShape

	// Category selects the standard per-category store. Set for standard and
	// launchpad shapes.
	Category domain.Category

	// ContractAddress scopes standard-store lookups. Set for launchpad
	// collections, which wrap a contract whose units live in the standard
	// stores.
	ContractAddress string

	// CustomCollectionID is the custom collection the unit's mints belong to.
	// Set only for the custom shape.
	CustomCollectionID string
}

// Resolver classifies collection identifiers and derives lookup key spaces.
// All shape detection lives here; other components consume Route and never
// re-derive shape themselves.
type Resolver interface {
	// ResolveCollection classifies a collection identifier and returns where
	// its units are stored
	ResolveCollection(ctx context.Context, collectionID string, categoryHint domain.Category) (*Route, error)

	// CandidateKeys returns the ordered lookup predicates for a unit. The
	// wallet, when known, feeds the minter and creator recovery predicates;
	// an empty wallet omits them.
	CandidateKeys(unitID domain.UnitIdentifier, contractAddress, wallet string) []store.Predicate
}

type resolver struct {
	store store.Store
}

// NewResolver creates a key resolver backed by the durable store's collection
// definitions
func NewResolver(s store.Store) Resolver {
	return &resolver{store: s}
}

// ResolveCollection classifies a collection identifier and derives the
// routing target. Object references are tried as launchpad collections
// before custom ones: a launchpad collection is a wrapper over a contract
// address whose minted units live in the standard per-category stores, not
// in the custom-mint store, so the more specific interpretation must win.
func (r *resolver) ResolveCollection(ctx context.Context, collectionID string, categoryHint domain.Category) (*Route, error) {
	category := categoryHint
	if !domain.IsValidCategory(category) {
		category = domain.CategoryJersey
	}

	id, err := domain.ClassifyIdentifier(collectionID)
	if err != nil {
		return nil, err
	}

	if !id.IsObjectReference() {
		return &Route{Shape: domain.ShapeStandard, Category: category}, nil
	}

	launchpad, err := r.store.GetLaunchpadCollection(ctx, id.Raw)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve launchpad collection: %w", err)
	}
	if launchpad != nil {
		return &Route{
			Shape:           domain.ShapeLaunchpad,
			Category:        category,
			ContractAddress: strings.ToLower(launchpad.ContractAddress),
		}, nil
	}

	custom, err := r.store.GetCustomCollection(ctx, id.Raw)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve custom collection: %w", err)
	}
	if custom != nil {
		return &Route{
			Shape:              domain.ShapeCustom,
			CustomCollectionID: custom.ObjectID,
		}, nil
	}

	return nil, domain.ErrCollectionNotFound
}

// CandidateKeys returns the ordered lookup predicates to try against the
// durable store for a unit identifier. Historical records use inconsistent
// field names for the same concept, so resolution tries a fixed sequence of
// shapes and stops at the first match. The ordering is a compatibility
// policy: earlier predicates are strictly more specific and must win.
func (r *resolver) CandidateKeys(unitID domain.UnitIdentifier, contractAddress, wallet string) []store.Predicate {
	contract := strings.ToLower(contractAddress)
	wallet = strings.ToLower(wallet)
	token := unitID.Raw

	predicates := []store.Predicate{
		{Label: "token_and_contract", Where: map[string]any{
			"token_id":         token,
			"contract_address": contract,
		}},
		{Label: "legacy_token_and_contract", Where: map[string]any{
			"blockchain_token_id": token,
			"contract_address":    contract,
		}},
		{Label: "token_only", Where: map[string]any{
			"token_id": token,
		}},
		{Label: "legacy_token_only", Where: map[string]any{
			"blockchain_token_id": token,
		}},
	}

	// Records imported from the previous document store are addressable by
	// their original object id.
	if unitID.IsObjectReference() {
		predicates = append(predicates, store.Predicate{
			Label: "legacy_object_id",
			Where: map[string]any{"legacy_object_id": token},
		})
	}

	// The last three shapes recover units created before the schema was
	// normalized, keyed by the wallets that minted or authored them. Without
	// a wallet there is nothing for them to match on.
	if wallet != "" {
		predicates = append(predicates,
			store.Predicate{Label: "minter_and_token", Where: map[string]any{
				"minter_address": wallet,
				"token_id":       token,
			}},
			store.Predicate{Label: "minter_and_contract", Where: map[string]any{
				"minter_address":   wallet,
				"contract_address": contract,
			}},
			store.Predicate{Label: "creator_wallet", Where: map[string]any{
				"creator_wallet": wallet,
			}},
		)
	}

	return predicates
}
