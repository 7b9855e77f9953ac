package redisdedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	portsrepo "github.com/pachecofc/verde-financas-sub001/internal/core/ports/repositories"
)

// reservationTTL bounds how long a reservation outlives a crashed create.
// The unique index on (owner_id, external_id) remains the source of truth, so
// an expired reservation can never let a duplicate through.
const reservationTTL = 5 * time.Minute

type RedisDedupRepository struct {
	rdb *redis.Client
}

// NewRedisDedupRepository creates the external-ID reservation store.
func NewRedisDedupRepository(rdb *redis.Client) portsrepo.DedupRepository {
	return &RedisDedupRepository{rdb: rdb}
}

var _ portsrepo.DedupRepository = (*RedisDedupRepository)(nil)

func reservationKey(ownerID, externalID string) string {
	return fmt.Sprintf("dedup:%s:%s", ownerID, externalID)
}

// ReserveExternalID atomically claims (ownerID, externalID). It returns false
// when another request already holds the reservation.
func (r *RedisDedupRepository) ReserveExternalID(ctx context.Context, ownerID, externalID string) (bool, error) {
	ok, err := r.rdb.SetNX(ctx, reservationKey(ownerID, externalID), "1", reservationTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve external ID: %w", err)
	}
	return ok, nil
}

// ReleaseExternalID frees a reservation after a failed create so the client
// can retry immediately instead of waiting out the TTL.
func (r *RedisDedupRepository) ReleaseExternalID(ctx context.Context, ownerID, externalID string) error {
	if err := r.rdb.Del(ctx, reservationKey(ownerID, externalID)).Err(); err != nil {
		return fmt.Errorf("failed to release external ID reservation: %w", err)
	}
	return nil
}
