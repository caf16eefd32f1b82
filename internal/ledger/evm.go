package ledger

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/gotasapp/nft-sync-engine/internal/adapter"
	"github.com/gotasapp/nft-sync-engine/internal/domain"
)

// enumerationWindow bounds one getAllValid* range call. Public RPC endpoints
// cap response sizes, so large marketplaces are read in windows.
const enumerationWindow = 100

type evmReader struct {
	chainID             domain.Chain
	nftContract         string
	marketplaceContract string
	client              adapter.EthClient
}

// NewEVMReader creates a ledger reader bound to one chain's NFT and
// marketplace contracts
func NewEVMReader(chainID domain.Chain, nftContract, marketplaceContract string, client adapter.EthClient) Reader {
	return &evmReader{
		chainID:             chainID,
		nftContract:         nftContract,
		marketplaceContract: marketplaceContract,
		client:              client,
	}
}

// call packs a view-function call, executes it against the contract and
// unpacks the single return value into out
func (r *evmReader) call(ctx context.Context, contractAddress, abiJSON, method string, out any, args ...any) error {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return fmt.Errorf("failed to parse ABI: %w", err)
	}

	data, err := parsed.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("failed to pack data: %w", err)
	}

	contractAddr := common.HexToAddress(contractAddress)
	result, err := r.client.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrLedgerUnavailable, method, err)
	}

	if err := parsed.UnpackIntoInterface(out, method, result); err != nil {
		return fmt.Errorf("failed to unpack result: %w", err)
	}
	return nil
}

// TotalSupply returns the number of minted tokens on the NFT contract
func (r *evmReader) TotalSupply(ctx context.Context) (*big.Int, error) {
	// ERC721Enumerable totalSupply function signature: totalSupply() returns (uint256)
	const totalSupplyABI = `[{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}]`

	var supply *big.Int
	if err := r.call(ctx, r.nftContract, totalSupplyABI, "totalSupply", &supply); err != nil {
		return nil, err
	}
	return supply, nil
}

// OwnerOf returns the current owner of a token
func (r *evmReader) OwnerOf(ctx context.Context, tokenID *big.Int) (string, error) {
	// ERC721 ownerOf function signature: ownerOf(uint256) returns (address)
	const ownerOfABI = `[{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"}]`

	var owner common.Address
	if err := r.call(ctx, r.nftContract, ownerOfABI, "ownerOf", &owner, tokenID); err != nil {
		return "", err
	}
	return owner.Hex(), nil
}

// TokenURI returns the metadata URI of a token
func (r *evmReader) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	// ERC721 tokenURI function signature: tokenURI(uint256) returns (string)
	const tokenURIABI = `[{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"tokenURI","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"}]`

	var uri string
	if err := r.call(ctx, r.nftContract, tokenURIABI, "tokenURI", &uri, tokenID); err != nil {
		return "", err
	}
	return uri, nil
}

// marketplaceListing mirrors the marketplace's direct listing tuple layout
type marketplaceListing struct {
	ListingId      *big.Int
	TokenId        *big.Int
	Quantity       *big.Int
	PricePerToken  *big.Int
	StartTimestamp *big.Int
	EndTimestamp   *big.Int
	ListingCreator common.Address
	AssetContract  common.Address
	Currency       common.Address
	TokenType      uint8
	Status         uint8
	Reserved       bool
}

// ValidListings returns all open direct listings on the marketplace
func (r *evmReader) ValidListings(ctx context.Context) ([]domain.MarketListing, error) {
	// Marketplace totalListings function signature: totalListings() returns (uint256)
	const totalListingsABI = `[{"inputs":[],"name":"totalListings","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`

	var total *big.Int
	if err := r.call(ctx, r.marketplaceContract, totalListingsABI, "totalListings", &total); err != nil {
		return nil, err
	}
	if total.Sign() == 0 {
		return []domain.MarketListing{}, nil
	}

	// Marketplace getAllValidListings signature:
	// getAllValidListings(uint256 _startId, uint256 _endId) returns (Listing[])
	const getAllValidListingsABI = `[{"inputs":[{"name":"_startId","type":"uint256"},{"name":"_endId","type":"uint256"}],"name":"getAllValidListings","outputs":[{"components":[{"name":"listingId","type":"uint256"},{"name":"tokenId","type":"uint256"},{"name":"quantity","type":"uint256"},{"name":"pricePerToken","type":"uint256"},{"name":"startTimestamp","type":"uint128"},{"name":"endTimestamp","type":"uint128"},{"name":"listingCreator","type":"address"},{"name":"assetContract","type":"address"},{"name":"currency","type":"address"},{"name":"tokenType","type":"uint8"},{"name":"status","type":"uint8"},{"name":"reserved","type":"bool"}],"name":"","type":"tuple[]"}],"stateMutability":"view","type":"function"}]`

	var raw []marketplaceListing
	for start := int64(0); start < total.Int64(); start += enumerationWindow {
		end := start + enumerationWindow - 1
		if end >= total.Int64() {
			end = total.Int64() - 1
		}
		var window []marketplaceListing
		if err := r.call(ctx, r.marketplaceContract, getAllValidListingsABI, "getAllValidListings", &window, big.NewInt(start), big.NewInt(end)); err != nil {
			return nil, err
		}
		raw = append(raw, window...)
	}

	listings := make([]domain.MarketListing, 0, len(raw))
	for _, l := range raw {
		listing := domain.MarketListing{
			ListingID:             l.ListingId.String(),
			TokenID:               l.TokenId.String(),
			ContractAddress:       l.AssetContract.Hex(),
			Creator:               l.ListingCreator.Hex(),
			PricePerTokenBaseUnit: l.PricePerToken.String(),
			Currency:              l.Currency.Hex(),
			EndTimestamp:          time.Unix(l.EndTimestamp.Int64(), 0).UTC(),
			Status:                int64(l.Status),
		}
		if listing.Cancelled() {
			continue
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// marketplaceAuction mirrors the marketplace's english auction tuple layout
type marketplaceAuction struct {
	AuctionId           *big.Int
	TokenId             *big.Int
	Quantity            *big.Int
	MinimumBidAmount    *big.Int
	BuyoutBidAmount     *big.Int
	TimeBufferInSeconds uint64
	BidBufferBps        uint64
	StartTimestamp      uint64
	EndTimestamp        uint64
	AuctionCreator      common.Address
	AssetContract       common.Address
	Currency            common.Address
	TokenType           uint8
	Status              uint8
}

// ValidAuctions returns all open auctions on the marketplace
func (r *evmReader) ValidAuctions(ctx context.Context) ([]domain.MarketAuction, error) {
	// Marketplace totalAuctions function signature: totalAuctions() returns (uint256)
	const totalAuctionsABI = `[{"inputs":[],"name":"totalAuctions","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`

	var total *big.Int
	if err := r.call(ctx, r.marketplaceContract, totalAuctionsABI, "totalAuctions", &total); err != nil {
		return nil, err
	}
	if total.Sign() == 0 {
		return []domain.MarketAuction{}, nil
	}

	// Marketplace getAllValidAuctions signature:
	// getAllValidAuctions(uint256 _startId, uint256 _endId) returns (Auction[])
	const getAllValidAuctionsABI = `[{"inputs":[{"name":"_startId","type":"uint256"},{"name":"_endId","type":"uint256"}],"name":"getAllValidAuctions","outputs":[{"components":[{"name":"auctionId","type":"uint256"},{"name":"tokenId","type":"uint256"},{"name":"quantity","type":"uint256"},{"name":"minimumBidAmount","type":"uint256"},{"name":"buyoutBidAmount","type":"uint256"},{"name":"timeBufferInSeconds","type":"uint64"},{"name":"bidBufferBps","type":"uint64"},{"name":"startTimestamp","type":"uint64"},{"name":"endTimestamp","type":"uint64"},{"name":"auctionCreator","type":"address"},{"name":"assetContract","type":"address"},{"name":"currency","type":"address"},{"name":"tokenType","type":"uint8"},{"name":"status","type":"uint8"}],"name":"","type":"tuple[]"}],"stateMutability":"view","type":"function"}]`

	var raw []marketplaceAuction
	for start := int64(0); start < total.Int64(); start += enumerationWindow {
		end := start + enumerationWindow - 1
		if end >= total.Int64() {
			end = total.Int64() - 1
		}
		var window []marketplaceAuction
		if err := r.call(ctx, r.marketplaceContract, getAllValidAuctionsABI, "getAllValidAuctions", &window, big.NewInt(start), big.NewInt(end)); err != nil {
			return nil, err
		}
		raw = append(raw, window...)
	}

	auctions := make([]domain.MarketAuction, 0, len(raw))
	for _, a := range raw {
		auction := domain.MarketAuction{
			AuctionID:       a.AuctionId.String(),
			TokenID:         a.TokenId.String(),
			ContractAddress: a.AssetContract.Hex(),
			Creator:         a.AuctionCreator.Hex(),
			MinimumBid:      a.MinimumBidAmount.String(),
			BuyoutBid:       a.BuyoutBidAmount.String(),
			Currency:        a.Currency.Hex(),
			StartTimestamp:  time.Unix(int64(a.StartTimestamp), 0).UTC(), //nolint:gosec,G115 // chain timestamps fit in int64
			EndTimestamp:    time.Unix(int64(a.EndTimestamp), 0).UTC(),   //nolint:gosec,G115 // chain timestamps fit in int64
			Status:          int64(a.Status),
		}
		if auction.Cancelled() {
			continue
		}
		auctions = append(auctions, auction)
	}
	return auctions, nil
}

// Close closes the RPC connection
func (r *evmReader) Close() {
	r.client.Close()
}
