package domain

import "errors"

var (
	// ErrInvalidIdentifier is returned when a unit identifier is neither a
	// numeric token id nor a 24-character object reference
	ErrInvalidIdentifier = errors.New("invalid unit identifier")

	// ErrUnitNotFound is returned when a unit is absent from all three
	// resolution tiers (cache, durable store, ledger)
	ErrUnitNotFound = errors.New("unit not found")

	// ErrCollectionNotFound is returned when a collection id resolves to
	// neither a custom nor a launchpad collection
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrInvalidCorrection is returned when a correction action is malformed
	// or of an unknown kind
	ErrInvalidCorrection = errors.New("invalid correction action")

	// ErrLedgerUnavailable is returned when an RPC call to the ledger fails
	ErrLedgerUnavailable = errors.New("ledger unavailable")

	// ErrUnknownChain is returned when no ledger reader is configured for a chain
	ErrUnknownChain = errors.New("unknown chain")
)
