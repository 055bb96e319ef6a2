// Package report holds the export-oriented reports and the aggregate
// roll-ups behind the overview, dashboard and insights views.
package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bsan5566/food-waste/internal/db"
	"github.com/bsan5566/food-waste/pkg/types"
)

type ReportName string

const (
	ProvidersList    ReportName = "Providers List"
	ReceiversList    ReportName = "Receivers List"
	FoodListings     ReportName = "Food Listings"
	Claims           ReportName = "Claims"
	ExpiringSoonFood ReportName = "Expiring Soon Food"
)

var Names = []ReportName{
	ProvidersList,
	ReceiversList,
	FoodListings,
	Claims,
	ExpiringSoonFood,
}

// Expiring Soon Food shares the 3-day window with the expiring-soon alert
// rule. The insights expiry-risk view uses a wider 5-day window; the two
// are distinct on purpose.
const exportExpiryWindowDays = 3

type Service struct {
	conn *sql.DB
	now  func() time.Time
}

func New(conn *sql.DB) *Service {
	return &Service{conn: conn, now: time.Now}
}

func NewWithClock(conn *sql.DB, now func() time.Time) *Service {
	return &Service{conn: conn, now: now}
}

func (s *Service) today() string {
	return s.now().Format("2006-01-02")
}

// Run executes the named exportable report. Unknown names fail with
// types.ErrUnknownReport.
func (s *Service) Run(ctx context.Context, name ReportName) (*types.Table, error) {
	var (
		query string
		args  []any
	)

	switch name {
	case ProvidersList:
		query = `SELECT * FROM providers ORDER BY provider_id`
	case ReceiversList:
		query = `SELECT * FROM receivers ORDER BY receiver_id`
	case FoodListings:
		query = `SELECT * FROM food_listings ORDER BY expiry_date`
	case Claims:
		query = `SELECT * FROM claims ORDER BY timestamp DESC`
	case ExpiringSoonFood:
		query = `SELECT * FROM food_listings
			WHERE date(expiry_date) <= date(?, ?)
			ORDER BY expiry_date`
		args = []any{s.today(), fmt.Sprintf("+%d day", exportExpiryWindowDays)}
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownReport, name)
	}

	table, err := db.QueryTable(ctx, s.conn, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report %q: %w", name, err)
	}

	return table, nil
}
