package report

import (
	"context"
	"fmt"

	"github.com/bsan5566/food-waste/internal/db"
	"github.com/bsan5566/food-waste/pkg/types"
)

// Dashboard bundles the chart roll-ups behind the interactive dashboard.
type Dashboard struct {
	ProvidersPerCity    *types.Table `json:"providers_per_city"`
	FoodTypeShare       *types.Table `json:"food_type_share"`
	ClaimsStatus        *types.Table `json:"claims_status"`
	TopProviders        *types.Table `json:"top_providers"`
	MonthlyTrend        *types.Table `json:"monthly_trend"`
	TopFoodItems        *types.Table `json:"top_food_items"`
	TopReceivers        *types.Table `json:"top_receivers"`
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	d := &Dashboard{}

	for _, part := range []struct {
		name  string
		query string
		dest  **types.Table
	}{
		{"providers per city", `SELECT city, COUNT(*) AS provider_count
			FROM providers
			GROUP BY city
			ORDER BY provider_count DESC`, &d.ProvidersPerCity},
		{"food type share", `SELECT food_type, COUNT(*) AS cnt
			FROM food_listings
			GROUP BY food_type
			ORDER BY cnt DESC`, &d.FoodTypeShare},
		{"claims status", `SELECT LOWER(status) AS status, COUNT(*) AS cnt
			FROM claims
			GROUP BY LOWER(status)`, &d.ClaimsStatus},
		{"top providers", `SELECT p.name, SUM(fl.quantity) AS total_donated
			FROM food_listings fl
			JOIN providers p ON fl.provider_id = p.provider_id
			GROUP BY p.name
			ORDER BY total_donated DESC
			LIMIT 10`, &d.TopProviders},
		{"monthly trend", `SELECT substr(expiry_date,1,7) AS month, SUM(quantity) AS total_quantity
			FROM food_listings
			GROUP BY substr(expiry_date,1,7)
			ORDER BY month`, &d.MonthlyTrend},
		{"top food items", `SELECT food_name, SUM(quantity) AS total_quantity
			FROM food_listings
			GROUP BY food_name
			ORDER BY total_quantity DESC
			LIMIT 5`, &d.TopFoodItems},
		{"top receivers", `SELECT r.name, COUNT(c.claim_id) AS total_claims
			FROM claims c
			JOIN receivers r ON c.receiver_id = r.receiver_id
			GROUP BY r.name
			ORDER BY total_claims DESC
			LIMIT 5`, &d.TopReceivers},
	} {
		table, err := db.QueryTable(ctx, s.conn, part.query)
		if err != nil {
			return nil, fmt.Errorf("dashboard %s: %w", part.name, err)
		}
		*part.dest = table
	}

	return d, nil
}
