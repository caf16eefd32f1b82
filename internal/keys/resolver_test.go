package keys_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/gotasapp/nft-sync-engine/internal/domain"
	"github.com/gotasapp/nft-sync-engine/internal/keys"
	"github.com/gotasapp/nft-sync-engine/internal/mocks"
	"github.com/gotasapp/nft-sync-engine/internal/store/schema"
)

const testObjectID = "507f1f77bcf86cd799439011"

// testResolverMocks contains the mocks needed for testing the key resolver
type testResolverMocks struct {
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	resolver keys.Resolver
}

func setupTestResolver(t *testing.T) *testResolverMocks {
	ctrl := gomock.NewController(t)

	tm := &testResolverMocks{
		ctrl:  ctrl,
		store: mocks.NewMockStore(ctrl),
	}
	tm.resolver = keys.NewResolver(tm.store)

	return tm
}

func TestResolveCollection_Standard(t *testing.T) {
	tm := setupTestResolver(t)
	defer tm.ctrl.Finish()

	route, err := tm.resolver.ResolveCollection(context.Background(), "42", domain.CategoryStadium)

	assert.NoError(t, err)
	assert.Equal(t, domain.ShapeStandard, route.Shape)
	assert.Equal(t, domain.CategoryStadium, route.Category)
	assert.Empty(t, route.ContractAddress)
	assert.Empty(t, route.CustomCollectionID)
}

func TestResolveCollection_DefaultsCategory(t *testing.T) {
	tm := setupTestResolver(t)
	defer tm.ctrl.Finish()

	route, err := tm.resolver.ResolveCollection(context.Background(), "42", domain.Category("unknown"))

	assert.NoError(t, err)
	assert.Equal(t, domain.CategoryJersey, route.Category)
}

func TestResolveCollection_LaunchpadBeforeCustom(t *testing.T) {
	tm := setupTestResolver(t)
	defer tm.ctrl.Finish()

	// When an object id matches a launchpad collection, the custom
	// collection store must not be consulted at all.
	tm.store.
		EXPECT().
		GetLaunchpadCollection(gomock.Any(), testObjectID).
		Return(&schema.Collection{
			ObjectID:        testObjectID,
			Type:            schema.CollectionTypeLaunchpad,
			ContractAddress: "0xABCDEF0123456789ABCDEF0123456789ABCDEF01",
		}, nil)

	route, err := tm.resolver.ResolveCollection(context.Background(), testObjectID, domain.CategoryJersey)

	assert.NoError(t, err)
	assert.Equal(t, domain.ShapeLaunchpad, route.Shape)
	assert.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", route.ContractAddress)
	assert.Empty(t, route.CustomCollectionID)
}

func TestResolveCollection_CustomFallback(t *testing.T) {
	tm := setupTestResolver(t)
	defer tm.ctrl.Finish()

	tm.store.
		EXPECT().
		GetLaunchpadCollection(gomock.Any(), testObjectID).
		Return(nil, nil)
	tm.store.
		EXPECT().
		GetCustomCollection(gomock.Any(), testObjectID).
		Return(&schema.CustomCollection{ObjectID: testObjectID}, nil)

	route, err := tm.resolver.ResolveCollection(context.Background(), testObjectID, domain.CategoryJersey)

	assert.NoError(t, err)
	assert.Equal(t, domain.ShapeCustom, route.Shape)
	assert.Equal(t, testObjectID, route.CustomCollectionID)
}

func TestResolveCollection_NotFound(t *testing.T) {
	tm := setupTestResolver(t)
	defer tm.ctrl.Finish()

	tm.store.
		EXPECT().
		GetLaunchpadCollection(gomock.Any(), testObjectID).
		Return(nil, nil)
	tm.store.
		EXPECT().
		GetCustomCollection(gomock.Any(), testObjectID).
		Return(nil, nil)

	_, err := tm.resolver.ResolveCollection(context.Background(), testObjectID, domain.CategoryJersey)

	assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
}

func TestResolveCollection_InvalidIdentifier(t *testing.T) {
	tm := setupTestResolver(t)
	defer tm.ctrl.Finish()

	_, err := tm.resolver.ResolveCollection(context.Background(), "not-a-collection", domain.CategoryJersey)

	assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
}

func TestCandidateKeys_NumericOrdering(t *testing.T) {
	tm := setupTestResolver(t)
	defer tm.ctrl.Finish()

	id, err := domain.ClassifyIdentifier("7")
	assert.NoError(t, err)

	preds := tm.resolver.CandidateKeys(id, "0xABC123", "0xWALLET99")

	labels := make([]string, 0, len(preds))
	for _, p := range preds {
		labels = append(labels, p.Label)
	}
	assert.Equal(t, []string{
		"token_and_contract",
		"legacy_token_and_contract",
		"token_only",
		"legacy_token_only",
		"minter_and_token",
		"minter_and_contract",
		"creator_wallet",
	}, labels)

	// addresses are matched in lowered form
	assert.Equal(t, "0xabc123", preds[0].Where["contract_address"])
	assert.Equal(t, "7", preds[0].Where["token_id"])

	// the minter and creator predicates bind the wallet, not the contract
	assert.Equal(t, "0xwallet99", preds[4].Where["minter_address"])
	assert.Equal(t, "7", preds[4].Where["token_id"])
	assert.Equal(t, "0xwallet99", preds[5].Where["minter_address"])
	assert.Equal(t, "0xabc123", preds[5].Where["contract_address"])
	assert.Equal(t, "0xwallet99", preds[6].Where["creator_wallet"])
}

func TestCandidateKeys_NoWalletOmitsWalletPredicates(t *testing.T) {
	tm := setupTestResolver(t)
	defer tm.ctrl.Finish()

	id, err := domain.ClassifyIdentifier("7")
	assert.NoError(t, err)

	preds := tm.resolver.CandidateKeys(id, "0xABC123", "")

	labels := make([]string, 0, len(preds))
	for _, p := range preds {
		labels = append(labels, p.Label)
	}
	assert.Equal(t, []string{
		"token_and_contract",
		"legacy_token_and_contract",
		"token_only",
		"legacy_token_only",
	}, labels)
}

func TestCandidateKeys_ObjectReferenceIncludesLegacyID(t *testing.T) {
	tm := setupTestResolver(t)
	defer tm.ctrl.Finish()

	id, err := domain.ClassifyIdentifier(testObjectID)
	assert.NoError(t, err)

	preds := tm.resolver.CandidateKeys(id, "0xabc123", "0xwallet99")

	assert.Len(t, preds, 8)
	assert.Equal(t, "legacy_object_id", preds[4].Label)
	assert.Equal(t, testObjectID, preds[4].Where["legacy_object_id"])
	// the legacy object id predicate slots in after the token forms and
	// before the minter shims
	assert.Equal(t, "legacy_token_only", preds[3].Label)
	assert.Equal(t, "minter_and_token", preds[5].Label)
}
