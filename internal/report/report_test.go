package report

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/bsan5566/food-waste/internal/alerts"
	"github.com/bsan5566/food-waste/internal/db"
	"github.com/bsan5566/food-waste/pkg/types"
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
		`INSERT INTO providers (provider_id, name, type, address, city, contact) VALUES
			(1, 'Annapurna Kitchen', 'Restaurant', '12 MG Road', 'Chennai', '9800000001')`,
		`INSERT INTO receivers (receiver_id, name, type, city, contact) VALUES
			(1, 'Hope Shelter', 'Shelter', 'Chennai', '9900000001')`,
		// Rice today+1, Bread exactly today+3, Curry today+5, Milk today+8.
		`INSERT INTO food_listings (food_id, food_name, quantity, expiry_date, provider_id, provider_type, location, food_type, meal_type) VALUES
			(1, 'Rice', 10, '2025-03-11', 1, 'Restaurant', 'Chennai', 'Vegetarian', 'Lunch'),
			(2, 'Bread', 5, '2025-03-13', 1, 'Restaurant', 'Chennai', 'Vegetarian', 'Breakfast'),
			(3, 'Curry', 2, '2025-03-15', 1, 'Restaurant', 'Mumbai', 'Non-Vegetarian', 'Dinner'),
			(4, 'Milk', 8, '2025-03-18', 1, 'Restaurant', 'Delhi', 'Vegan', 'Breakfast')`,
		`INSERT INTO claims (claim_id, food_id, receiver_id, status, timestamp) VALUES
			(1, 1, 1, 'Completed', '2025-03-01 10:00:00'),
			(2, 2, 1, 'Pending', '2025-03-02 11:00:00')`,
	}

	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			t.Fatalf("seed test database: %v", err)
		}
	}

	return conn
}

func TestRunUnknownReport(t *testing.T) {
	s := NewWithClock(newTestDB(t), fixedNow)

	_, err := s.Run(context.Background(), "Quarterly Figures")
	if !errors.Is(err, types.ErrUnknownReport) {
		t.Fatalf("expected ErrUnknownReport, got %v", err)
	}
}

func TestRunAllNamedReports(t *testing.T) {
	s := NewWithClock(newTestDB(t), fixedNow)

	for _, name := range Names {
		table, err := s.Run(context.Background(), name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(table.Columns) == 0 {
			t.Fatalf("%s: no columns returned", name)
		}
	}
}

func TestExpiringSoonFoodMatchesAlertRule(t *testing.T) {
	conn := newTestDB(t)
	s := NewWithClock(conn, fixedNow)
	e := alerts.NewWithClock(conn, fixedNow)

	table, err := s.Run(context.Background(), ExpiringSoonFood)
	if err != nil {
		t.Fatal(err)
	}

	fromAlert, err := e.ExpiringSoon(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// Same 3-day window, same clock: identical row sets.
	if len(table.Rows) != len(fromAlert) {
		t.Fatalf("report has %d rows, alert rule has %d", len(table.Rows), len(fromAlert))
	}
	for i, row := range table.Rows {
		if row[1].(string) != *fromAlert[i].FoodName {
			t.Fatalf("row %d: report %v vs alert %v", i, row[1], *fromAlert[i].FoodName)
		}
	}
}

func TestExpiryWindowContainment(t *testing.T) {
	conn := newTestDB(t)
	s := NewWithClock(conn, fixedNow)

	threeDay, err := s.Run(context.Background(), ExpiringSoonFood)
	if err != nil {
		t.Fatal(err)
	}

	ins, err := s.Insights(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	var fiveDayCount int64
	for _, row := range ins.ExpiryRisk.Rows {
		fiveDayCount += row[1].(int64)
	}

	// Rice and Bread (<= today+3) are in both windows; Curry (today+5)
	// only in the wider one. The 3-day set is contained in the 5-day set.
	if len(threeDay.Rows) != 2 {
		t.Fatalf("3-day window has %d rows, want 2", len(threeDay.Rows))
	}
	if fiveDayCount != 3 {
		t.Fatalf("5-day window covers %d listings, want 3", fiveDayCount)
	}
}

func TestCounts(t *testing.T) {
	s := NewWithClock(newTestDB(t), fixedNow)

	counts, err := s.Counts(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := &Counts{Providers: 1, Receivers: 1, FoodListings: 4, Claims: 2}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("counts = %+v, want %+v", counts, want)
	}
}

func TestDashboard(t *testing.T) {
	s := NewWithClock(newTestDB(t), fixedNow)

	d, err := s.Dashboard(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(d.TopProviders.Rows) != 1 || d.TopProviders.Rows[0][1] != int64(25) {
		t.Fatalf("top providers = %v, want Annapurna Kitchen with 25", d.TopProviders.Rows)
	}
	if len(d.ClaimsStatus.Rows) != 2 {
		t.Fatalf("claims status rows = %d, want 2", len(d.ClaimsStatus.Rows))
	}
}

func TestInsightsKPIs(t *testing.T) {
	s := NewWithClock(newTestDB(t), fixedNow)

	ins, err := s.Insights(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if ins.TopCity == nil || ins.TopCity.Label != "Chennai" || ins.TopCity.Count != 2 {
		t.Fatalf("top city = %+v, want Chennai with 2", ins.TopCity)
	}
	if ins.TopReceiver == nil || ins.TopReceiver.Label != "Hope Shelter" {
		t.Fatalf("top receiver = %+v, want Hope Shelter", ins.TopReceiver)
	}
}

func TestWriteCSV(t *testing.T) {
	table := &types.Table{
		Columns: []string{"name", "quantity", "city"},
		Rows: [][]any{
			{"Rice", int64(10), "Chennai"},
			{"Bread, sliced", int64(5), nil},
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, table); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "name,quantity,city" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[2] != `"Bread, sliced",5,` {
		t.Fatalf("quoted row = %q", lines[2])
	}
}
