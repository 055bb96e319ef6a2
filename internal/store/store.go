package store

import (
	"errors"
	"fmt"

	"github.com/bsan5566/food-waste/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
)

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// wrapWriteErr surfaces foreign-key and type constraint failures as
// types.ErrConstraint so callers can classify them; everything else is
// wrapped verbatim.
func wrapWriteErr(err error, msg string) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%s: %w: %s", msg, types.ErrConstraint, sqliteErr.Error())
	}

	return fmt.Errorf("%s: %w", msg, err)
}
