package repository

import (
	"context"
	"time"

	"shophub/internal/infra/db"
	"shophub/internal/usecase/commands"

	"github.com/google/uuid"
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(pool db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: pool}
}

const tryInsertIdempotencyKeySQL = `
INSERT INTO idempotency_keys (key, account_id, endpoint, request_hash, status, expires_at, created_at)
VALUES ($1, $2, $3, $4, 'processing', $5, now())
ON CONFLICT (key, account_id) DO NOTHING`

// TryInsert claims the key for this request. An existing row is not an error;
// Get reveals whether it is a replay or a conflicting reuse.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, accountID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	if _, err := r.db.Exec(ctx, tryInsertIdempotencyKeySQL, key, accountID, endpoint, requestHash, expiresAt); err != nil {
		return classify("failed to insert idempotency key", err)
	}
	return nil
}

const getIdempotencyKeySQL = `
SELECT key, account_id, status, request_hash, result_order_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND account_id = $2 AND expires_at > now()`

func (r *IdempotencyRepository) Get(ctx context.Context, key, accountID uuid.UUID) (*commands.IdempotencyRecord, error) {
	var rec commands.IdempotencyRecord
	row := r.db.QueryRow(ctx, getIdempotencyKeySQL, key, accountID)
	if err := row.Scan(&rec.Key, &rec.AccountID, &rec.Status, &rec.RequestHash, &rec.ResultOrderID, &rec.ExpiresAt); err != nil {
		return nil, classify("failed to get idempotency key", err)
	}
	return &rec, nil
}

const completeIdempotencyKeySQL = `
UPDATE idempotency_keys
SET status = 'completed', response_body_hash = $3, result_order_id = $4
WHERE key = $1 AND account_id = $2`

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, accountID uuid.UUID, responseBodyHash string, resultOrderID uuid.UUID) error {
	if _, err := tx.Exec(ctx, completeIdempotencyKeySQL, key, accountID, responseBodyHash, resultOrderID); err != nil {
		return classify("failed to complete idempotency key", err)
	}
	return nil
}

const deleteExpiredIdempotencyKeysSQL = `
DELETE FROM idempotency_keys WHERE expires_at <= now()`

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteExpiredIdempotencyKeysSQL)
	if err != nil {
		return 0, classify("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
