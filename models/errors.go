package models

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Tagged store error kinds. Handlers branch on these instead of inspecting
// driver error strings.
var (
	ErrNotFound     = errors.New("record not found")
	ErrTableMissing = errors.New("relation does not exist")
	ErrConflict     = errors.New("duplicate record")
)

const (
	pgUndefinedTable  = "42P01"
	pgUniqueViolation = "23505"
)

// ClassifyDBError maps GORM and Postgres driver errors onto the tagged
// kinds above. Unrecognized errors pass through unchanged.
func ClassifyDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUndefinedTable:
			return ErrTableMissing
		case pgUniqueViolation:
			return ErrConflict
		}
	}
	return err
}
