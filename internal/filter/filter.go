// Package filter builds listing queries from ad-hoc category selections.
// Each populated category becomes a parameter-bound IN predicate; categories
// are ANDed together and an empty selection matches everything.
package filter

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bsan5566/food-waste/internal/db"
	"github.com/bsan5566/food-waste/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
)

// Selections holds the chosen values per filter category. A nil or empty
// slice imposes no constraint on that category.
type Selections struct {
	Cities        []string `form:"city"`
	ProviderTypes []string `form:"provider_type"`
	FoodTypes     []string `form:"food_type"`
	MealTypes     []string `form:"meal_type"`
}

func (s Selections) Empty() bool {
	return len(s.Cities) == 0 && len(s.ProviderTypes) == 0 &&
		len(s.FoodTypes) == 0 && len(s.MealTypes) == 0
}

type Builder struct {
	conn *sql.DB
}

func New(conn *sql.DB) *Builder {
	return &Builder{conn: conn}
}

// Listings returns every food listing matching the conjunction of the
// populated categories.
func (b *Builder) Listings(ctx context.Context, sel Selections) (*types.Table, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Question).
		Select("*").
		From("food_listings")

	if len(sel.Cities) > 0 {
		builder = builder.Where(sq.Eq{"location": sel.Cities})
	}
	if len(sel.ProviderTypes) > 0 {
		builder = builder.Where(sq.Eq{"provider_type": sel.ProviderTypes})
	}
	if len(sel.FoodTypes) > 0 {
		builder = builder.Where(sq.Eq{"food_type": sel.FoodTypes})
	}
	if len(sel.MealTypes) > 0 {
		builder = builder.Where(sq.Eq{"meal_type": sel.MealTypes})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate filter query: %w", err)
	}

	table, err := db.QueryTable(ctx, b.conn, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filter listings: %w", err)
	}

	return table, nil
}

// Options are the distinct values available per category, feeding the
// filter pickers.
type Options struct {
	Cities        []string `json:"cities"`
	ProviderTypes []string `json:"provider_types"`
	FoodTypes     []string `json:"food_types"`
	MealTypes     []string `json:"meal_types"`
}

func (b *Builder) Options(ctx context.Context) (*Options, error) {
	opts := &Options{}

	for _, c := range []struct {
		column string
		dest   *[]string
	}{
		{"location", &opts.Cities},
		{"provider_type", &opts.ProviderTypes},
		{"food_type", &opts.FoodTypes},
		{"meal_type", &opts.MealTypes},
	} {
		values, err := b.distinctValues(ctx, c.column)
		if err != nil {
			return nil, err
		}
		*c.dest = values
	}

	return opts, nil
}

func (b *Builder) distinctValues(ctx context.Context, column string) ([]string, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Question).
		Select("DISTINCT " + column).
		From("food_listings").
		Where(column + " IS NOT NULL").
		OrderBy(column + " ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate distinct %s query: %w", column, err)
	}

	values := make([]string, 0)
	if err := sqlscan.Select(ctx, b.conn, &values, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch distinct %s values: %w", column, err)
	}

	return values, nil
}
