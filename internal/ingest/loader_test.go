package ingest

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/bsan5566/food-waste/internal/db"

	"github.com/sirupsen/logrus"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func countRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestNormalizeColumn(t *testing.T) {
	cases := map[string]string{
		" Provider ID ": "provider_id",
		"Food_Name":     "food_name",
		"city":          "city",
		"Meal Type":     "meal_type",
	}
	for in, want := range cases {
		if got := NormalizeColumn(in); got != want {
			t.Errorf("NormalizeColumn(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadFullRefresh(t *testing.T) {
	conn := newTestDB(t)
	dir := t.TempDir()

	src := Sources{
		Providers: writeFile(t, dir, "providers.csv",
			"Provider ID,Name,Type,Address,City,Contact\n"+
				"1,Annapurna Kitchen,Restaurant,12 MG Road,Chennai,9800000001\n"+
				"2,GreenLeaf Grocers,Grocery Store,4 Hill Street,Mumbai,9800000002\n"),
		Receivers: writeFile(t, dir, "receivers.csv",
			"Receiver ID,Name,Type,City,Contact\n"+
				"1,Hope Shelter,Shelter,Chennai,9900000001\n"),
		Listings: writeFile(t, dir, "listings.csv",
			"Food ID,Food Name,Quantity,Expiry Date,Provider ID,Provider Type,Location,Food Type,Meal Type\n"+
				"1,Rice,10,2025-03-13,1,Restaurant,Chennai,Vegetarian,Lunch\n"+
				"2,Bread,5,2025-03-14,2,Grocery Store,Mumbai,Vegetarian,Breakfast\n"),
		Claims: writeFile(t, dir, "claims.csv",
			"Claim ID,Food ID,Receiver ID,Status,Timestamp\n"+
				"1,1,1,Pending,2025-03-02 11:00:00\n"),
	}

	loader := New(conn, testLogger())
	if err := loader.Load(context.Background(), src); err != nil {
		t.Fatal(err)
	}

	for table, want := range map[string]int{
		"providers":     2,
		"receivers":     1,
		"food_listings": 2,
		"claims":        1,
	} {
		if got := countRows(t, conn, table); got != want {
			t.Errorf("%s has %d rows, want %d", table, got, want)
		}
	}

	// A second load replaces, not appends.
	if err := loader.Load(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if got := countRows(t, conn, "providers"); got != 2 {
		t.Fatalf("reload should keep 2 providers, got %d", got)
	}
}

func TestLoadSkipsMissingFiles(t *testing.T) {
	conn := newTestDB(t)
	dir := t.TempDir()

	src := Sources{
		Providers: writeFile(t, dir, "providers.csv",
			"Provider ID,Name,Type,Address,City,Contact\n"+
				"1,Annapurna Kitchen,Restaurant,12 MG Road,Chennai,9800000001\n"),
		Receivers: filepath.Join(dir, "does-not-exist.csv"),
	}

	loader := New(conn, testLogger())
	if err := loader.Load(context.Background(), src); err != nil {
		t.Fatal(err)
	}

	if got := countRows(t, conn, "providers"); got != 1 {
		t.Fatalf("providers = %d, want 1", got)
	}
	if got := countRows(t, conn, "receivers"); got != 0 {
		t.Fatalf("receivers = %d, want 0", got)
	}
}

func TestLoadClearsStaleRows(t *testing.T) {
	conn := newTestDB(t)
	dir := t.TempDir()

	if _, err := conn.Exec(`INSERT INTO providers (provider_id, name) VALUES (99, 'Stale Provider')`); err != nil {
		t.Fatal(err)
	}

	src := Sources{
		Providers: writeFile(t, dir, "providers.csv",
			"Provider ID,Name,Type,Address,City,Contact\n"+
				"1,Fresh Provider,Restaurant,1 New Road,Delhi,9811111111\n"),
	}

	loader := New(conn, testLogger())
	if err := loader.Load(context.Background(), src); err != nil {
		t.Fatal(err)
	}

	var name string
	if err := conn.QueryRow("SELECT name FROM providers").Scan(&name); err != nil {
		t.Fatal(err)
	}
	if name != "Fresh Provider" {
		t.Fatalf("expected only the fresh row, got %q", name)
	}
}
