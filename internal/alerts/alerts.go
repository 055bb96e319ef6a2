// Package alerts evaluates the three dashboard alert rules against current
// data. Each rule is independent; a rule is active when it has supporting
// rows. Evaluate always reports all three so callers can render all-clear
// states too.
package alerts

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
)

type RuleName string

const (
	RuleExpiringSoon  RuleName = "expiring-soon"
	RuleLowStock      RuleName = "low-stock"
	RulePendingClaims RuleName = "pending-claims"
)

// Inclusive day window for the expiring-soon rule: today through today+3.
const expiryWindowDays = 3

// Inclusive quantity threshold for the low-stock rule.
const lowStockThreshold = 5

type ExpiringListing struct {
	FoodName   *string `db:"food_name" json:"food_name"`
	Quantity   *int    `db:"quantity" json:"quantity"`
	ExpiryDate *string `db:"expiry_date" json:"expiry_date"`
	Location   *string `db:"location" json:"location"`
}

type LowStockListing struct {
	FoodName   *string `db:"food_name" json:"food_name"`
	Quantity   *int    `db:"quantity" json:"quantity"`
	Location   *string `db:"location" json:"location"`
	ExpiryDate *string `db:"expiry_date" json:"expiry_date"`
}

type PendingClaim struct {
	ClaimID   int     `db:"claim_id" json:"claim_id"`
	Receiver  *string `db:"receiver" json:"receiver"`
	FoodName  *string `db:"food_name" json:"food_name"`
	Status    string  `db:"status" json:"status"`
	Timestamp *string `db:"timestamp" json:"timestamp"`
}

type Alert struct {
	Rule   RuleName `json:"rule"`
	Active bool     `json:"active"`
	Rows   any      `json:"rows"`
}

type Evaluator struct {
	conn *sql.DB
	now  func() time.Time
}

func New(conn *sql.DB) *Evaluator {
	return &Evaluator{conn: conn, now: time.Now}
}

// NewWithClock fixes the expiry-window reference for tests.
func NewWithClock(conn *sql.DB, now func() time.Time) *Evaluator {
	return &Evaluator{conn: conn, now: now}
}

// Evaluate runs the three rules and returns them in declaration order.
func (e *Evaluator) Evaluate(ctx context.Context) ([]Alert, error) {
	expiring, err := e.ExpiringSoon(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := e.LowStock(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := e.PendingClaims(ctx)
	if err != nil {
		return nil, err
	}

	return []Alert{
		{Rule: RuleExpiringSoon, Active: len(expiring) > 0, Rows: expiring},
		{Rule: RuleLowStock, Active: len(lowStock) > 0, Rows: lowStock},
		{Rule: RulePendingClaims, Active: len(pending) > 0, Rows: pending},
	}, nil
}

func (e *Evaluator) ExpiringSoon(ctx context.Context) ([]*ExpiringListing, error) {
	query := `SELECT food_name, quantity, expiry_date, location
		FROM food_listings
		WHERE date(expiry_date) <= date(?, ?)
		ORDER BY expiry_date ASC`

	today := e.now().Format("2006-01-02")
	offset := fmt.Sprintf("+%d day", expiryWindowDays)

	listings := make([]*ExpiringListing, 0)
	if err := sqlscan.Select(ctx, e.conn, &listings, query, today, offset); err != nil {
		return nil, fmt.Errorf("failed to fetch expiring listings: %w", err)
	}

	return listings, nil
}

func (e *Evaluator) LowStock(ctx context.Context) ([]*LowStockListing, error) {
	query := `SELECT food_name, quantity, location, expiry_date
		FROM food_listings
		WHERE quantity <= ?
		ORDER BY quantity ASC`

	listings := make([]*LowStockListing, 0)
	if err := sqlscan.Select(ctx, e.conn, &listings, query, lowStockThreshold); err != nil {
		return nil, fmt.Errorf("failed to fetch low stock listings: %w", err)
	}

	return listings, nil
}

func (e *Evaluator) PendingClaims(ctx context.Context) ([]*PendingClaim, error) {
	query := `SELECT c.claim_id, r.name AS receiver, f.food_name, c.status, c.timestamp
		FROM claims c
		JOIN receivers r ON c.receiver_id = r.receiver_id
		JOIN food_listings f ON c.food_id = f.food_id
		WHERE LOWER(c.status) = 'pending'
		ORDER BY c.timestamp ASC`

	claims := make([]*PendingClaim, 0)
	if err := sqlscan.Select(ctx, e.conn, &claims, query); err != nil {
		return nil, fmt.Errorf("failed to fetch pending claims: %w", err)
	}

	return claims, nil
}
