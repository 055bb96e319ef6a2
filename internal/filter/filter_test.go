package filter

import (
	"context"
	"database/sql"
	"reflect"
	"testing"

	"github.com/bsan5566/food-waste/internal/db"
)

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()

	conn, err := db.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	seedListings(t, conn)

	return New(conn)
}

func seedListings(t *testing.T, conn *sql.DB) {
	t.Helper()

	_, err := conn.Exec(`INSERT INTO food_listings
		(food_id, food_name, quantity, expiry_date, provider_id, provider_type, location, food_type, meal_type) VALUES
		(1, 'Rice', 10, '2025-03-09', NULL, 'Restaurant', 'Chennai', 'Vegetarian', 'Lunch'),
		(2, 'Bread', 5, '2025-03-13', NULL, 'Bakery', 'Chennai', 'Vegetarian', 'Breakfast'),
		(3, 'Chicken Curry', 2, '2025-03-17', NULL, 'Restaurant', 'Mumbai', 'Non-Vegetarian', 'Dinner'),
		(4, 'Milk', 8, '2025-03-18', NULL, 'Grocery Store', 'Delhi', 'Vegan', 'Breakfast')`)
	if err != nil {
		t.Fatalf("seed listings: %v", err)
	}
}

func foodNames(rows [][]any) []string {
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row[1].(string))
	}
	return names
}

func TestListingsNoSelections(t *testing.T) {
	b := newTestBuilder(t)

	table, err := b.Listings(context.Background(), Selections{})
	if err != nil {
		t.Fatal(err)
	}

	if len(table.Rows) != 4 {
		t.Fatalf("empty selection should match all 4 rows, got %d", len(table.Rows))
	}
}

func TestListingsSingleCity(t *testing.T) {
	b := newTestBuilder(t)

	table, err := b.Listings(context.Background(), Selections{Cities: []string{"Chennai"}})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Rice", "Bread"}
	if got := foodNames(table.Rows); !reflect.DeepEqual(got, want) {
		t.Fatalf("city filter returned %v, want %v", got, want)
	}
}

func TestListingsValuesWithinCategoryAreORed(t *testing.T) {
	b := newTestBuilder(t)

	table, err := b.Listings(context.Background(), Selections{Cities: []string{"Chennai", "Delhi"}})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Rice", "Bread", "Milk"}
	if got := foodNames(table.Rows); !reflect.DeepEqual(got, want) {
		t.Fatalf("multi-value city filter returned %v, want %v", got, want)
	}
}

func TestListingsCategoriesAreANDed(t *testing.T) {
	b := newTestBuilder(t)

	table, err := b.Listings(context.Background(), Selections{
		Cities:        []string{"Chennai"},
		ProviderTypes: []string{"Restaurant"},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Rice"}
	if got := foodNames(table.Rows); !reflect.DeepEqual(got, want) {
		t.Fatalf("combined filter returned %v, want %v", got, want)
	}
}

func TestListingsHandlesArbitraryValueCharacters(t *testing.T) {
	b := newTestBuilder(t)

	// Values are bound, never interpolated, so quoting characters are data.
	table, err := b.Listings(context.Background(), Selections{
		Cities: []string{"Chennai'; DROP TABLE food_listings;--"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(table.Rows) != 0 {
		t.Fatalf("hostile value matched %d rows, want 0", len(table.Rows))
	}

	// Table still intact.
	all, err := b.Listings(context.Background(), Selections{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all.Rows) != 4 {
		t.Fatalf("expected 4 surviving rows, got %d", len(all.Rows))
	}
}

func TestOptions(t *testing.T) {
	b := newTestBuilder(t)

	opts, err := b.Options(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if want := []string{"Chennai", "Delhi", "Mumbai"}; !reflect.DeepEqual(opts.Cities, want) {
		t.Fatalf("cities = %v, want %v", opts.Cities, want)
	}
	if want := []string{"Breakfast", "Dinner", "Lunch"}; !reflect.DeepEqual(opts.MealTypes, want) {
		t.Fatalf("meal types = %v, want %v", opts.MealTypes, want)
	}
}
