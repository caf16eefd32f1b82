package uri

import (
	"fmt"
	"strings"
)

// Resolver rewrites token URIs into fetchable HTTP URLs
type Resolver struct {
	ipfsGateway string
}

// NewResolver creates a resolver using the given IPFS gateway base
// (e.g. "https://ipfs.io")
func NewResolver(ipfsGateway string) *Resolver {
	return &Resolver{ipfsGateway: strings.TrimSuffix(ipfsGateway, "/")}
}

// Resolve processes a token URI to handle different protocols and formats:
//   - the ERC1155 {id} placeholder is substituted with the token id
//   - HTTP URLs embedding /ipfs/ are re-rooted on the configured gateway to
//     avoid private gateways
//   - ipfs:// URIs are rewritten to the configured gateway
func (r *Resolver) Resolve(rawURI, tokenID string) string {
	uri := strings.ReplaceAll(rawURI, "{id}", tokenID)

	if strings.HasPrefix(uri, "http") && strings.Contains(uri, "/ipfs/") {
		parts := strings.Split(uri, "/ipfs/")
		if len(parts) > 1 {
			uri = "ipfs://" + parts[1]
		}
	}

	if after, ok := strings.CutPrefix(uri, "ipfs://"); ok {
		return fmt.Sprintf("%s/ipfs/%s", r.ipfsGateway, after)
	}

	return uri
}

// IsFetchable reports whether the resolved URI can be fetched over HTTP
func (r *Resolver) IsFetchable(uri string) bool {
	return strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")
}
