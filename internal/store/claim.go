package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bsan5566/food-waste/internal/utils"
	"github.com/bsan5566/food-waste/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
)

const claimTableName = "claims"

const claimBrowseLimit = 200

const claimTimestampLayout = "2006-01-02 15:04:05"

var claimColumns = utils.StructTagValues(types.Claim{})

type ClaimRepository struct {
	conn *sql.DB
	now  func() time.Time
}

func NewClaimRepository(conn *sql.DB) *ClaimRepository {
	return &ClaimRepository{conn: conn, now: time.Now}
}

// NewClaimRepositoryWithClock fixes the default-timestamp reference for tests.
func NewClaimRepositoryWithClock(conn *sql.DB, now func() time.Time) *ClaimRepository {
	return &ClaimRepository{conn: conn, now: now}
}

func (r *ClaimRepository) Claims(ctx context.Context) ([]*types.Claim, error) {
	query, args, err := psql().
		Select(claimColumns...).
		From(claimTableName).
		OrderBy("claim_id DESC").
		Limit(claimBrowseLimit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate claims query: %w", err)
	}

	claims := make([]*types.Claim, 0)
	err = sqlscan.Select(ctx, r.conn, &claims, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch claims: %w", err)
	}

	return claims, nil
}

func (r *ClaimRepository) Claim(ctx context.Context, claimID int) (*types.Claim, error) {
	query, args, err := psql().
		Select(claimColumns...).
		From(claimTableName).
		Where(sq.Eq{"claim_id": claimID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate claim query: %w", err)
	}

	var claim types.Claim
	err = sqlscan.Get(ctx, r.conn, &claim, query, args...)
	if err != nil && !sqlscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrClaimNotFound
	}

	return &claim, nil
}

func (r *ClaimRepository) CreateClaim(ctx context.Context, claim *types.Claim) error {
	if claim.Timestamp == nil || *claim.Timestamp == "" {
		claim.Timestamp = utils.StringPtr(r.now().Format(claimTimestampLayout))
	}

	claimMap := utils.StructToMap(claim)
	delete(claimMap, "claim_id")

	query, args, err := psql().Insert(claimTableName).SetMap(claimMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert claim query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapWriteErr(err, "failed to create claim")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new claim id: %w", err)
	}
	claim.ClaimID = int(id)

	return nil
}

func (r *ClaimRepository) UpdateClaim(ctx context.Context, claimID int, claim *types.Claim) error {
	claim.ClaimID = claimID

	claimMap := utils.StructToMap(claim)
	delete(claimMap, "claim_id")

	query, args, err := psql().
		Update(claimTableName).
		SetMap(claimMap).
		Where(sq.Eq{"claim_id": claimID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update claim query for claim %d: %w", claimID, err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)

	return wrapWriteErr(err, "failed to update claim")
}

// DeleteClaim removes the row; absent ids are a no-op.
func (r *ClaimRepository) DeleteClaim(ctx context.Context, claimID int) error {
	query, args, err := psql().
		Delete(claimTableName).
		Where(sq.Eq{"claim_id": claimID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete claim query for claim %d: %w", claimID, err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)

	return wrapWriteErr(err, "failed to delete claim")
}
