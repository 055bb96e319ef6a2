package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bsan5566/food-waste/internal/utils"
	"github.com/bsan5566/food-waste/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
)

const providerTableName = "providers"

var providerColumns = utils.StructTagValues(types.Provider{})

type ProviderRepository struct {
	conn *sql.DB
}

func NewProviderRepository(conn *sql.DB) *ProviderRepository {
	return &ProviderRepository{conn: conn}
}

func (r *ProviderRepository) Providers(ctx context.Context) ([]*types.Provider, error) {
	query, args, err := psql().
		Select(providerColumns...).
		From(providerTableName).
		OrderBy("provider_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate providers query: %w", err)
	}

	providers := make([]*types.Provider, 0)
	err = sqlscan.Select(ctx, r.conn, &providers, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch providers: %w", err)
	}

	return providers, nil
}

func (r *ProviderRepository) Provider(ctx context.Context, providerID int) (*types.Provider, error) {
	query, args, err := psql().
		Select(providerColumns...).
		From(providerTableName).
		Where(sq.Eq{"provider_id": providerID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate provider query: %w", err)
	}

	var provider types.Provider
	err = sqlscan.Get(ctx, r.conn, &provider, query, args...)
	if err != nil && !sqlscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrProviderNotFound
	}

	return &provider, nil
}

func (r *ProviderRepository) CreateProvider(ctx context.Context, provider *types.Provider) error {
	providerMap := utils.StructToMap(provider)
	delete(providerMap, "provider_id")

	query, args, err := psql().Insert(providerTableName).SetMap(providerMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert provider query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapWriteErr(err, "failed to create provider")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new provider id: %w", err)
	}
	provider.ProviderID = int(id)

	return nil
}

func (r *ProviderRepository) UpdateProvider(ctx context.Context, providerID int, provider *types.Provider) error {
	provider.ProviderID = providerID

	providerMap := utils.StructToMap(provider)
	delete(providerMap, "provider_id")

	query, args, err := psql().
		Update(providerTableName).
		SetMap(providerMap).
		Where(sq.Eq{"provider_id": providerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update provider query for provider %d: %w", providerID, err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)

	return wrapWriteErr(err, "failed to update provider")
}

// DeleteProvider physically removes the row. Listings that referenced the
// provider keep existing with a null provider_id. Deleting an absent id is a
// no-op, not an error.
func (r *ProviderRepository) DeleteProvider(ctx context.Context, providerID int) error {
	query, args, err := psql().
		Delete(providerTableName).
		Where(sq.Eq{"provider_id": providerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete provider query for provider %d: %w", providerID, err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)

	return wrapWriteErr(err, "failed to delete provider")
}
