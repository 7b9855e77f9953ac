package repositories

import "context"

// DedupRepository reserves external correlation identifiers so that repeated
// imports of the same upstream record cannot create duplicate transactions.
// Reservations are best-effort and expire; the unique index on
// (owner_id, external_id) remains the source of truth.
type DedupRepository interface {
	// ReserveExternalID returns false when another request already holds the
	// reservation for (ownerID, externalID).
	ReserveExternalID(ctx context.Context, ownerID, externalID string) (bool, error)

	// ReleaseExternalID frees a reservation after a failed create.
	ReleaseExternalID(ctx context.Context, ownerID, externalID string) error
}
