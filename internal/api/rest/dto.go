package rest

import (
	"github.com/gotasapp/nft-sync-engine/internal/domain"
	"github.com/gotasapp/nft-sync-engine/internal/reconcile"
	"github.com/gotasapp/nft-sync-engine/internal/sync"
	"github.com/gotasapp/nft-sync-engine/internal/trading"
)

// UnitResponse is the payload of GET /api/v1/units/:id
type UnitResponse struct {
	Unit   domain.UnitRecord       `json:"unit"`
	Source domain.ResolutionSource `json:"source"`
}

// MarketplaceUnitResponse is the payload of GET /api/v1/units/:id when
// marketplace=true requests live trading state
type MarketplaceUnitResponse struct {
	Unit   trading.AnnotatedUnit   `json:"unit"`
	Source domain.ResolutionSource `json:"source"`
}

// CollectionUnitsResponse is the payload of GET /api/v1/collections/:id/units
type CollectionUnitsResponse struct {
	CollectionID string                  `json:"collectionId"`
	Shape        domain.CollectionShape  `json:"collectionShape"`
	Units        []trading.AnnotatedUnit `json:"units"`
	Stats        trading.Stats           `json:"stats"`
}

// SyncRequest is the body of POST /api/v1/sync
type SyncRequest struct {
	Wallet string `json:"wallet"`
}

// SyncResponse wraps a sync run report
type SyncResponse struct {
	Report *sync.RunReport `json:"report"`
}

// ReconciliationReportResponse wraps an audit report
type ReconciliationReportResponse struct {
	Report *reconcile.Report `json:"report"`
}

// ApplyCorrectionsRequest is the body of POST /api/v1/reconciliation/apply
type ApplyCorrectionsRequest struct {
	Chain           string                    `json:"chain" binding:"required"`
	ContractAddress string                    `json:"contractAddress"`
	Category        string                    `json:"category"`
	Corrections     []domain.CorrectionAction `json:"corrections" binding:"required"`
}

// ApplyCorrectionsResponse wraps an apply result
type ApplyCorrectionsResponse struct {
	Result *reconcile.ApplyResult `json:"result"`
}
