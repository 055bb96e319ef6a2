package alerts

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/bsan5566/food-waste/internal/db"
	"github.com/bsan5566/food-waste/internal/utils"
)

var fixedNow = func() time.Time {
	return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	stmts := []string{
		`INSERT INTO receivers (receiver_id, name, type, city, contact) VALUES
			(1, 'Hope Shelter', 'Shelter', 'Chennai', '9900000001')`,
		// Expiry dates straddle the 3-day boundary: today+3 is in, today+4 out.
		`INSERT INTO food_listings (food_id, food_name, quantity, expiry_date, provider_id, provider_type, location, food_type, meal_type) VALUES
			(1, 'Rice', 10, '2025-03-13', NULL, 'Restaurant', 'Chennai', 'Vegetarian', 'Lunch'),
			(2, 'Bread', 3, '2025-03-14', NULL, 'Bakery', 'Chennai', 'Vegetarian', 'Breakfast'),
			(3, 'Milk', 5, '2025-03-20', NULL, 'Grocery Store', 'Mumbai', 'Vegan', 'Breakfast')`,
		`INSERT INTO claims (claim_id, food_id, receiver_id, status, timestamp) VALUES
			(1, 1, 1, 'Pending', '2025-03-02 11:00:00'),
			(2, 2, 1, 'PENDING', '2025-03-01 09:00:00'),
			(3, 3, 1, 'Completed', '2025-03-03 10:00:00')`,
	}

	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			t.Fatalf("seed test database: %v", err)
		}
	}

	return conn
}

func TestEvaluateReturnsAllRules(t *testing.T) {
	e := NewWithClock(newTestDB(t), fixedNow)

	results, err := e.Evaluate(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 3 {
		t.Fatalf("expected all 3 rules, got %d", len(results))
	}

	order := []RuleName{RuleExpiringSoon, RuleLowStock, RulePendingClaims}
	for i, alert := range results {
		if alert.Rule != order[i] {
			t.Fatalf("rule %d = %s, want %s", i, alert.Rule, order[i])
		}
		if !alert.Active {
			t.Fatalf("rule %s should be active", alert.Rule)
		}
	}
}

func TestExpiringSoonWindowInclusive(t *testing.T) {
	e := NewWithClock(newTestDB(t), fixedNow)

	listings, err := e.ExpiringSoon(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// Rice expires exactly at today+3 and is included; Bread at today+4 is
	// not.
	if len(listings) != 1 {
		t.Fatalf("expected 1 expiring listing, got %d", len(listings))
	}
	if utils.PtrString(listings[0].FoodName) != "Rice" {
		t.Fatalf("expected Rice, got %s", utils.PtrString(listings[0].FoodName))
	}
}

func TestLowStockThresholdInclusiveAndOrdered(t *testing.T) {
	e := NewWithClock(newTestDB(t), fixedNow)

	listings, err := e.LowStock(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// Bread (3) and Milk (exactly 5) qualify, ascending by quantity.
	if len(listings) != 2 {
		t.Fatalf("expected 2 low stock listings, got %d", len(listings))
	}
	if utils.PtrString(listings[0].FoodName) != "Bread" || utils.PtrString(listings[1].FoodName) != "Milk" {
		t.Fatalf("unexpected low stock order: %s, %s",
			utils.PtrString(listings[0].FoodName), utils.PtrString(listings[1].FoodName))
	}
}

func TestPendingClaimsCaseInsensitiveOldestFirst(t *testing.T) {
	e := NewWithClock(newTestDB(t), fixedNow)

	claims, err := e.PendingClaims(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// Both 'Pending' and 'PENDING' count; the completed claim does not.
	if len(claims) != 2 {
		t.Fatalf("expected 2 pending claims, got %d", len(claims))
	}

	// Oldest timestamp first; original casing preserved.
	if claims[0].ClaimID != 2 || claims[0].Status != "PENDING" {
		t.Fatalf("expected claim 2 (PENDING) first, got %d (%s)", claims[0].ClaimID, claims[0].Status)
	}
	if utils.PtrString(claims[0].Receiver) != "Hope Shelter" {
		t.Fatalf("expected receiver name joined in, got %s", utils.PtrString(claims[0].Receiver))
	}
}

func TestInactiveRulesStillReported(t *testing.T) {
	conn, err := db.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	e := NewWithClock(conn, fixedNow)

	results, err := e.Evaluate(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 3 {
		t.Fatalf("expected all 3 rules on empty data, got %d", len(results))
	}
	for _, alert := range results {
		if alert.Active {
			t.Fatalf("rule %s should be inactive on empty data", alert.Rule)
		}
	}
}
