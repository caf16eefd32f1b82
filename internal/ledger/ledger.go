package ledger

import (
	"context"
	"math/big"

	"github.com/gotasapp/nft-sync-engine/internal/domain"
)

//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=Reader=MockLedgerReader

// Reader reads the authoritative on-chain state of an NFT contract and its
// marketplace. All reads are point-in-time snapshots at the latest block.
type Reader interface {
	// TotalSupply returns the number of minted tokens on the NFT contract
	TotalSupply(ctx context.Context) (*big.Int, error)

	// OwnerOf returns the current owner of a token, or an error for
	// nonexistent tokens
	OwnerOf(ctx context.Context, tokenID *big.Int) (string, error)

	// TokenURI returns the metadata URI of a token
	TokenURI(ctx context.Context, tokenID *big.Int) (string, error)

	// ValidListings returns all open direct listings on the marketplace.
	// Cancelled listings are filtered out before returning.
	ValidListings(ctx context.Context) ([]domain.MarketListing, error)

	// ValidAuctions returns all open auctions on the marketplace, with
	// cancelled auctions filtered out
	ValidAuctions(ctx context.Context) ([]domain.MarketAuction, error)

	// Close releases the underlying RPC connection
	Close()
}

// Registry maps chains to their ledger readers
type Registry map[domain.Chain]Reader

// Get returns the reader for a chain
func (r Registry) Get(chain domain.Chain) (Reader, error) {
	reader, ok := r[chain]
	if !ok {
		return nil, domain.ErrUnknownChain
	}
	return reader, nil
}

// Close closes every reader in the registry
func (r Registry) Close() {
	for _, reader := range r {
		reader.Close()
	}
}
