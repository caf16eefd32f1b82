package uri_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gotasapp/nft-sync-engine/internal/uri"
)

func TestResolver_Resolve(t *testing.T) {
	r := uri.NewResolver("https://ipfs.io/")

	tests := []struct {
		name    string
		rawURI  string
		tokenID string
		want    string
	}{
		{
			name:   "ipfs scheme rewritten to gateway",
			rawURI: "ipfs://QmHash/metadata.json",
			want:   "https://ipfs.io/ipfs/QmHash/metadata.json",
		},
		{
			name:   "http url passes through",
			rawURI: "https://example.com/7.json",
			want:   "https://example.com/7.json",
		},
		{
			name:   "private gateway re-rooted",
			rawURI: "https://my-private.gateway.dev/ipfs/QmHash/7.json",
			want:   "https://ipfs.io/ipfs/QmHash/7.json",
		},
		{
			name:    "erc1155 id placeholder substituted",
			rawURI:  "https://example.com/{id}.json",
			tokenID: "42",
			want:    "https://example.com/42.json",
		},
		{
			name:    "placeholder and ipfs combined",
			rawURI:  "ipfs://QmHash/{id}",
			tokenID: "7",
			want:    "https://ipfs.io/ipfs/QmHash/7",
		},
		{
			name:   "unknown scheme untouched",
			rawURI: "ar://tx-id",
			want:   "ar://tx-id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.rawURI, tt.tokenID))
		})
	}
}

func TestResolver_IsFetchable(t *testing.T) {
	r := uri.NewResolver("https://ipfs.io")

	assert.True(t, r.IsFetchable("https://example.com/7.json"))
	assert.True(t, r.IsFetchable("http://example.com/7.json"))
	assert.False(t, r.IsFetchable("ipfs://QmHash"))
	assert.False(t, r.IsFetchable("data:application/json;base64,e30="))
}
