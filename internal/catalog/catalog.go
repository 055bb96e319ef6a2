// Package catalog holds the fixed set of named analytical queries the
// dashboard exposes. Every entry is a read-only query dispatched through a
// single Run function; results come back as ordered tables with the column
// order the SELECT declared.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bsan5566/food-waste/internal/db"
	"github.com/bsan5566/food-waste/pkg/types"
)

type QueryName string

const (
	// Provider / receiver analytics
	ProvidersPerCity        QueryName = "Providers per city"
	TopCitiesByProviders    QueryName = "Top 5 cities by number of providers"
	ReceiversPerCity        QueryName = "Receivers per city"
	TopCitiesByReceivers    QueryName = "Top 5 cities by number of receivers"
	AvgDonationsPerProvider QueryName = "Average donations per provider"
	AvgClaimsPerReceiver    QueryName = "Average claims per receiver"

	// Food analytics
	ProviderTypeContribution QueryName = "Provider type contribution (by total quantity)"
	MostDonatedFoodItems     QueryName = "Most donated food items"
	ExpiredFoodListings      QueryName = "Expired food listings"
	ExpiringInNext7Days      QueryName = "Food listings expiring in next 7 days"

	// Claims analytics
	TopReceiversByClaims      QueryName = "Top receivers by number of claims"
	MostCompletedClaims       QueryName = "Receivers with most completed claims"
	MostCancelledClaims       QueryName = "Food items with most cancelled claims"
	ClaimsPerFoodItem         QueryName = "Claims per food item"
	TopProviderByCompleted    QueryName = "Provider with highest completed claims"
	ClaimsStatusDistribution  QueryName = "Claims status distribution"
	ClaimCompletionPercentage QueryName = "Claim completion percentage"
	AvgQuantityPerReceiver    QueryName = "Avg quantity per receiver (approx)"
	TopReceiversByQuantity    QueryName = "Top 5 receivers by quantity claimed"
	MostClaimedMealType       QueryName = "Most-claimed meal type"
	ListingToClaimLatency     QueryName = "Average time between listing and claim"

	// Efficiency & ratios
	ClaimToListingRatio     QueryName = "Claim to listing ratio by provider"
	TotalQuantityByProvider QueryName = "Total quantity donated by provider"

	// Parameterized entries
	ProviderContactsInCity QueryName = "Provider contacts in selected city"
	ListingsNearingExpiry  QueryName = "Listings nearing expiry (<= N days)"
)

// Names lists every catalog entry in presentation order.
var Names = []QueryName{
	ProvidersPerCity,
	TopCitiesByProviders,
	ReceiversPerCity,
	TopCitiesByReceivers,
	AvgDonationsPerProvider,
	AvgClaimsPerReceiver,
	ProviderTypeContribution,
	MostDonatedFoodItems,
	ExpiredFoodListings,
	ExpiringInNext7Days,
	TopReceiversByClaims,
	MostCompletedClaims,
	MostCancelledClaims,
	ClaimsPerFoodItem,
	TopProviderByCompleted,
	ClaimsStatusDistribution,
	ClaimCompletionPercentage,
	AvgQuantityPerReceiver,
	TopReceiversByQuantity,
	MostClaimedMealType,
	ListingToClaimLatency,
	ClaimToListingRatio,
	TotalQuantityByProvider,
	ProviderContactsInCity,
	ListingsNearingExpiry,
}

// Params carries the caller-supplied inputs the two parameterized entries
// need. All other entries ignore it.
type Params struct {
	City *string
	Days *int
}

type Catalog struct {
	conn *sql.DB
	now  func() time.Time
}

func New(conn *sql.DB) *Catalog {
	return &Catalog{conn: conn, now: time.Now}
}

// NewWithClock fixes the "today" reference so date-window entries are
// deterministic in tests.
func NewWithClock(conn *sql.DB, now func() time.Time) *Catalog {
	return &Catalog{conn: conn, now: now}
}

// Run executes the named catalog entry. Unknown names fail with
// types.ErrUnknownQuery; a parameterized entry without its parameter fails
// with types.ErrMissingParameter. Read failures carry the query name.
func (c *Catalog) Run(ctx context.Context, name QueryName, params Params) (*types.Table, error) {
	query, args, err := c.build(name, params)
	if err != nil {
		return nil, err
	}

	table, err := db.QueryTable(ctx, c.conn, query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog query %q: %w", name, err)
	}

	return table, nil
}

func (c *Catalog) today() string {
	return c.now().Format("2006-01-02")
}

func (c *Catalog) build(name QueryName, params Params) (string, []any, error) {
	switch name {
	case ProvidersPerCity:
		return `SELECT city, COUNT(*) AS provider_count
			FROM providers
			GROUP BY city
			ORDER BY provider_count DESC`, nil, nil

	case TopCitiesByProviders:
		return `SELECT city, COUNT(*) AS provider_count
			FROM providers
			GROUP BY city
			ORDER BY provider_count DESC
			LIMIT 5`, nil, nil

	case ReceiversPerCity:
		return `SELECT city, COUNT(*) AS receiver_count
			FROM receivers
			GROUP BY city
			ORDER BY receiver_count DESC`, nil, nil

	case TopCitiesByReceivers:
		return `SELECT city, COUNT(*) AS receiver_count
			FROM receivers
			GROUP BY city
			ORDER BY receiver_count DESC
			LIMIT 5`, nil, nil

	case AvgDonationsPerProvider:
		return `SELECT p.name, AVG(fl.quantity) AS avg_quantity
			FROM food_listings fl
			JOIN providers p ON fl.provider_id = p.provider_id
			GROUP BY p.name
			ORDER BY avg_quantity DESC`, nil, nil

	case AvgClaimsPerReceiver:
		return `SELECT r.name, AVG(c.claim_id) AS avg_claims
			FROM claims c
			JOIN receivers r ON c.receiver_id = r.receiver_id
			GROUP BY r.name
			ORDER BY avg_claims DESC`, nil, nil

	case ProviderTypeContribution:
		return `SELECT fl.provider_type, SUM(fl.quantity) AS total_quantity
			FROM food_listings fl
			GROUP BY fl.provider_type
			ORDER BY total_quantity DESC`, nil, nil

	case MostDonatedFoodItems:
		return `SELECT food_name, SUM(quantity) AS total_quantity
			FROM food_listings
			GROUP BY food_name
			ORDER BY total_quantity DESC
			LIMIT 10`, nil, nil

	case ExpiredFoodListings:
		return `SELECT *
			FROM food_listings
			WHERE date(expiry_date) < date(?)
			ORDER BY expiry_date ASC`, []any{c.today()}, nil

	case ExpiringInNext7Days:
		return `SELECT *
			FROM food_listings
			WHERE date(expiry_date) BETWEEN date(?) AND date(?, '+7 day')
			ORDER BY expiry_date ASC`, []any{c.today(), c.today()}, nil

	case TopReceiversByClaims:
		return `SELECT r.name AS receiver_name, COUNT(c.claim_id) AS total_claims
			FROM claims c
			JOIN receivers r ON c.receiver_id = r.receiver_id
			GROUP BY r.name
			ORDER BY total_claims DESC`, nil, nil

	case MostCompletedClaims:
		return `SELECT r.name, COUNT(c.claim_id) AS completed_claims
			FROM claims c
			JOIN receivers r ON c.receiver_id = r.receiver_id
			WHERE LOWER(c.status) = 'completed'
			GROUP BY r.name
			ORDER BY completed_claims DESC`, nil, nil

	case MostCancelledClaims:
		return `SELECT fl.food_name, COUNT(c.claim_id) AS cancelled_claims
			FROM claims c
			JOIN food_listings fl ON c.food_id = fl.food_id
			WHERE LOWER(c.status) = 'cancelled'
			GROUP BY fl.food_name
			ORDER BY cancelled_claims DESC`, nil, nil

	case ClaimsPerFoodItem:
		return `SELECT fl.food_name, COUNT(c.claim_id) AS claims_count
			FROM food_listings fl
			LEFT JOIN claims c ON fl.food_id = c.food_id
			GROUP BY fl.food_name
			ORDER BY claims_count DESC`, nil, nil

	case TopProviderByCompleted:
		return `SELECT p.name, COUNT(c.claim_id) AS completed_claims
			FROM claims c
			JOIN food_listings fl ON c.food_id = fl.food_id
			JOIN providers p ON fl.provider_id = p.provider_id
			WHERE LOWER(c.status) = 'completed'
			GROUP BY p.name
			ORDER BY completed_claims DESC`, nil, nil

	case ClaimsStatusDistribution:
		return `SELECT LOWER(status) AS status, COUNT(*) AS cnt
			FROM claims
			GROUP BY LOWER(status)
			ORDER BY cnt DESC`, nil, nil

	case ClaimCompletionPercentage:
		// Denominator is the table-wide claim count, not any filtered subset.
		return `SELECT status,
				COUNT(*) * 100.0 / (SELECT COUNT(*) FROM claims) AS percentage
			FROM claims
			GROUP BY status`, nil, nil

	case AvgQuantityPerReceiver:
		return `SELECT r.name AS receiver_name,
				AVG(fl.quantity) AS avg_quantity_of_items_they_claimed
			FROM claims c
			JOIN receivers r ON c.receiver_id = r.receiver_id
			JOIN food_listings fl ON c.food_id = fl.food_id
			GROUP BY r.name
			ORDER BY avg_quantity_of_items_they_claimed DESC`, nil, nil

	case TopReceiversByQuantity:
		return `SELECT r.name, SUM(fl.quantity) AS total_claimed
			FROM claims c
			JOIN receivers r ON c.receiver_id = r.receiver_id
			JOIN food_listings fl ON c.food_id = fl.food_id
			GROUP BY r.name
			ORDER BY total_claimed DESC
			LIMIT 5`, nil, nil

	case MostClaimedMealType:
		return `SELECT fl.meal_type, COUNT(c.claim_id) AS claims_count
			FROM claims c
			JOIN food_listings fl ON c.food_id = fl.food_id
			GROUP BY fl.meal_type
			ORDER BY claims_count DESC`, nil, nil

	case ListingToClaimLatency:
		// The difference may be negative when a claim lands before the
		// listing expires; the sign is preserved.
		return `SELECT fl.food_id, fl.food_name,
				ROUND(julianday(c.timestamp) - julianday(fl.expiry_date), 2) AS days_difference
			FROM food_listings fl
			JOIN claims c ON fl.food_id = c.food_id
			ORDER BY days_difference ASC`, nil, nil

	case ClaimToListingRatio:
		// Providers without listings divide zero by zero; SQLite yields NULL
		// and DESC ordering sorts those rows last.
		return `SELECT p.name,
				COUNT(DISTINCT c.claim_id)*1.0 / COUNT(DISTINCT fl.food_id) AS claim_to_listing_ratio
			FROM providers p
			LEFT JOIN food_listings fl ON p.provider_id = fl.provider_id
			LEFT JOIN claims c ON fl.food_id = c.food_id
			GROUP BY p.name
			ORDER BY claim_to_listing_ratio DESC`, nil, nil

	case TotalQuantityByProvider:
		return `SELECT p.name, SUM(fl.quantity) AS total_donated
			FROM food_listings fl
			JOIN providers p ON fl.provider_id = p.provider_id
			GROUP BY p.name
			ORDER BY total_donated DESC`, nil, nil

	case ProviderContactsInCity:
		if params.City == nil || *params.City == "" {
			return "", nil, fmt.Errorf("%w: city for %q", types.ErrMissingParameter, name)
		}
		return `SELECT provider_id, name, type, address, city, contact
			FROM providers
			WHERE city = ?
			ORDER BY name ASC`, []any{*params.City}, nil

	case ListingsNearingExpiry:
		if params.Days == nil {
			return "", nil, fmt.Errorf("%w: days for %q", types.ErrMissingParameter, name)
		}
		offset := fmt.Sprintf("+%d day", *params.Days)
		return `SELECT *
			FROM food_listings
			WHERE date(expiry_date) <= date(?, ?)
			ORDER BY expiry_date ASC`, []any{c.today(), offset}, nil
	}

	return "", nil, fmt.Errorf("%w: %q", types.ErrUnknownQuery, name)
}
