package report

import (
	"context"
	"fmt"

	"github.com/bsan5566/food-waste/internal/db"
	"github.com/bsan5566/food-waste/pkg/types"
)

// Expiry-risk deep dive looks 5 days out, wider than the 3-day export and
// alert window.
const riskExpiryWindowDays = 5

// KPI is a single headline figure: the leading value of a dimension and how
// often it occurs.
type KPI struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Insights bundles the KPI cards and deep-dive roll-ups.
type Insights struct {
	TopCity            *KPI         `json:"top_city"`
	TopFoodType        *KPI         `json:"top_food_type"`
	TopReceiver        *KPI         `json:"top_receiver"`
	ClaimsStatusTrend  *types.Table `json:"claims_status_trend"`
	MealTypePopularity *types.Table `json:"meal_type_popularity"`
	ExpiryRisk         *types.Table `json:"expiry_risk"`
}

func (s *Service) Insights(ctx context.Context) (*Insights, error) {
	ins := &Insights{}

	var err error
	if ins.TopCity, err = s.kpi(ctx, `SELECT location, COUNT(*) AS listings
		FROM food_listings
		GROUP BY location
		ORDER BY listings DESC
		LIMIT 1`); err != nil {
		return nil, fmt.Errorf("insights top city: %w", err)
	}

	if ins.TopFoodType, err = s.kpi(ctx, `SELECT food_type, COUNT(*) AS cnt
		FROM food_listings
		GROUP BY food_type
		ORDER BY cnt DESC
		LIMIT 1`); err != nil {
		return nil, fmt.Errorf("insights top food type: %w", err)
	}

	if ins.TopReceiver, err = s.kpi(ctx, `SELECT r.name, COUNT(c.claim_id) AS claims
		FROM claims c
		JOIN receivers r ON c.receiver_id = r.receiver_id
		GROUP BY r.name
		ORDER BY claims DESC
		LIMIT 1`); err != nil {
		return nil, fmt.Errorf("insights top receiver: %w", err)
	}

	if ins.ClaimsStatusTrend, err = db.QueryTable(ctx, s.conn, `SELECT SUBSTR(timestamp, 1, 7) AS month, status, COUNT(*) AS cnt
		FROM claims
		GROUP BY month, status
		ORDER BY month`); err != nil {
		return nil, fmt.Errorf("insights claims trend: %w", err)
	}

	if ins.MealTypePopularity, err = db.QueryTable(ctx, s.conn, `SELECT meal_type, COUNT(*) AS cnt
		FROM food_listings
		GROUP BY meal_type`); err != nil {
		return nil, fmt.Errorf("insights meal popularity: %w", err)
	}

	if ins.ExpiryRisk, err = db.QueryTable(ctx, s.conn, `SELECT location, COUNT(*) AS near_expiry
		FROM food_listings
		WHERE date(expiry_date) <= date(?, ?)
		GROUP BY location
		ORDER BY near_expiry DESC`,
		s.today(), fmt.Sprintf("+%d day", riskExpiryWindowDays)); err != nil {
		return nil, fmt.Errorf("insights expiry risk: %w", err)
	}

	return ins, nil
}

// kpi runs a two-column LIMIT 1 query. An empty table yields a nil KPI so
// callers can render an "N/A" card.
func (s *Service) kpi(ctx context.Context, query string) (*KPI, error) {
	table, err := db.QueryTable(ctx, s.conn, query)
	if err != nil {
		return nil, err
	}

	if table.Empty() {
		return nil, nil
	}

	row := table.Rows[0]
	kpi := &KPI{}
	if label, ok := row[0].(string); ok {
		kpi.Label = label
	}
	if count, ok := row[1].(int64); ok {
		kpi.Count = int(count)
	}

	return kpi, nil
}
