// Package ingest bulk-loads the four entity tables from CSV files. A load is
// a full refresh: prior rows are cleared in dependency order, the files are
// inserted, and the foreign-key indexes are (re)built.
package ingest

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/bsan5566/food-waste/internal/db"

	sq "github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
)

// Sources names the CSV file per table. An empty or missing path skips that
// table with a warning.
type Sources struct {
	Providers string
	Receivers string
	Listings  string
	Claims    string
}

// expected column order per table; files may carry the columns in any order
// and with arbitrary header casing/spacing.
var tableColumns = map[string][]string{
	"providers":     {"provider_id", "name", "type", "address", "city", "contact"},
	"receivers":     {"receiver_id", "name", "type", "city", "contact"},
	"food_listings": {"food_id", "food_name", "quantity", "expiry_date", "provider_id", "provider_type", "location", "food_type", "meal_type"},
	"claims":        {"claim_id", "food_id", "receiver_id", "status", "timestamp"},
}

type Loader struct {
	conn   *sql.DB
	logger *logrus.Logger
}

func New(conn *sql.DB, logger *logrus.Logger) *Loader {
	return &Loader{conn: conn, logger: logger}
}

// Load refreshes all four tables from src inside one transaction, then
// builds the supporting indexes.
func (l *Loader) Load(ctx context.Context, src Sources) error {
	files := []struct {
		table string
		path  string
	}{
		{"providers", src.Providers},
		{"receivers", src.Receivers},
		{"food_listings", src.Listings},
		{"claims", src.Claims},
	}

	tx, err := l.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load transaction: %w", err)
	}
	defer tx.Rollback()

	// Children before parents so foreign keys never dangle mid-refresh.
	for _, table := range []string{"claims", "food_listings", "receivers", "providers"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, f := range files {
		if f.path == "" {
			l.logger.WithField("table", f.table).Warn("no source file configured, skipping")
			continue
		}

		header, rows, err := readCSV(f.path)
		if err != nil {
			if os.IsNotExist(err) {
				l.logger.WithFields(logrus.Fields{"table": f.table, "path": f.path}).Warn("source file not found, skipping")
				continue
			}
			return fmt.Errorf("read %s: %w", f.path, err)
		}

		if len(header) == 0 {
			l.logger.WithFields(logrus.Fields{"table": f.table, "path": f.path}).Warn("source file empty, skipping")
			continue
		}

		inserted, err := insertRows(ctx, tx, f.table, header, rows)
		if err != nil {
			return fmt.Errorf("load %s: %w", f.table, err)
		}

		l.logger.WithFields(logrus.Fields{"table": f.table, "rows": inserted}).Info("table loaded")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load transaction: %w", err)
	}

	return db.CreateIndexes(ctx, l.conn)
}

// readCSV returns the normalized header and the data rows.
func readCSV(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) == 0 {
		return nil, nil, nil
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = NormalizeColumn(name)
	}

	return header, records[1:], nil
}

// NormalizeColumn unifies a header name: trimmed, lower-cased, spaces to
// underscores.
func NormalizeColumn(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func insertRows(ctx context.Context, tx *sql.Tx, table string, header []string, rows [][]string) (int, error) {
	expected := tableColumns[table]

	// Map each expected column to its position in the file, keeping only
	// columns the file actually carries.
	columns := make([]string, 0, len(expected))
	positions := make([]int, 0, len(expected))
	for _, col := range expected {
		for i, h := range header {
			if h == col {
				columns = append(columns, col)
				positions = append(positions, i)
				break
			}
		}
	}

	if len(columns) == 0 {
		return 0, fmt.Errorf("no recognized columns in header %v", header)
	}

	inserted := 0
	for _, row := range rows {
		values := make([]any, len(columns))
		for i, pos := range positions {
			if pos >= len(row) || row[pos] == "" {
				values[i] = nil
				continue
			}
			values[i] = row[pos]
		}

		query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Question).
			Insert(table).
			Columns(columns...).
			Values(values...).
			ToSql()
		if err != nil {
			return inserted, fmt.Errorf("build insert: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return inserted, err
		}
		inserted++
	}

	return inserted, nil
}
