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

const listingTableName = "food_listings"

// Browse views are bounded; recent listings feed the overview cards.
const (
	listingBrowseLimit = 200
	recentListingLimit = 20
)

var listingColumns = utils.StructTagValues(types.FoodListing{})

type ListingRepository struct {
	conn *sql.DB
}

func NewListingRepository(conn *sql.DB) *ListingRepository {
	return &ListingRepository{conn: conn}
}

func (r *ListingRepository) Listings(ctx context.Context) ([]*types.FoodListing, error) {
	query, args, err := psql().
		Select(listingColumns...).
		From(listingTableName).
		OrderBy("food_id DESC").
		Limit(listingBrowseLimit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate listings query: %w", err)
	}

	listings := make([]*types.FoodListing, 0)
	err = sqlscan.Select(ctx, r.conn, &listings, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}

	return listings, nil
}

func (r *ListingRepository) RecentListings(ctx context.Context) ([]*types.FoodListing, error) {
	query, args, err := psql().
		Select(listingColumns...).
		From(listingTableName).
		OrderBy("food_id DESC").
		Limit(recentListingLimit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate recent listings query: %w", err)
	}

	listings := make([]*types.FoodListing, 0)
	err = sqlscan.Select(ctx, r.conn, &listings, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent listings: %w", err)
	}

	return listings, nil
}

func (r *ListingRepository) Listing(ctx context.Context, foodID int) (*types.FoodListing, error) {
	query, args, err := psql().
		Select(listingColumns...).
		From(listingTableName).
		Where(sq.Eq{"food_id": foodID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate listing query: %w", err)
	}

	var listing types.FoodListing
	err = sqlscan.Get(ctx, r.conn, &listing, query, args...)
	if err != nil && !sqlscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrListingNotFound
	}

	return &listing, nil
}

func (r *ListingRepository) CreateListing(ctx context.Context, listing *types.FoodListing) error {
	listingMap := utils.StructToMap(listing)
	delete(listingMap, "food_id")

	query, args, err := psql().Insert(listingTableName).SetMap(listingMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert listing query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapWriteErr(err, "failed to create listing")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new listing id: %w", err)
	}
	listing.FoodID = int(id)

	return nil
}

func (r *ListingRepository) UpdateListing(ctx context.Context, foodID int, listing *types.FoodListing) error {
	listing.FoodID = foodID

	listingMap := utils.StructToMap(listing)
	delete(listingMap, "food_id")

	query, args, err := psql().
		Update(listingTableName).
		SetMap(listingMap).
		Where(sq.Eq{"food_id": foodID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update listing query for listing %d: %w", foodID, err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)

	return wrapWriteErr(err, "failed to update listing")
}

// DeleteListing cascades to any claims on the listing. Deleting an absent id
// is a no-op.
func (r *ListingRepository) DeleteListing(ctx context.Context, foodID int) error {
	query, args, err := psql().
		Delete(listingTableName).
		Where(sq.Eq{"food_id": foodID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete listing query for listing %d: %w", foodID, err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)

	return wrapWriteErr(err, "failed to delete listing")
}
