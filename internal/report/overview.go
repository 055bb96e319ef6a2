package report

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// Counts feeds the overview summary cards.
type Counts struct {
	Providers    int `json:"providers"`
	Receivers    int `json:"receivers"`
	FoodListings int `json:"food_listings"`
	Claims       int `json:"claims"`
}

func (s *Service) Counts(ctx context.Context) (*Counts, error) {
	counts := &Counts{}

	for _, c := range []struct {
		table string
		dest  *int
	}{
		{"providers", &counts.Providers},
		{"receivers", &counts.Receivers},
		{"food_listings", &counts.FoodListings},
		{"claims", &counts.Claims},
	} {
		if err := sqlscan.Get(ctx, s.conn, c.dest, fmt.Sprintf("SELECT COUNT(*) FROM %s", c.table)); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
	}

	return counts, nil
}
