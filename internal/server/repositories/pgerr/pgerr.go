// Package pgerr translates PostgreSQL driver errors into the repository
// sentinel errors from the common package.
package pgerr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/catsocial/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
)

// Wrap maps err to a repository error:
//
//   - sql.ErrNoRows and foreign key violations wrap common.ErrorNotFound
//   - unique violations wrap common.ErrConflict
//   - check violations and malformed input (e.g. a non-UUID id) wrap
//     common.ErrValidation
//   - anything else becomes "db error: ..."
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", common.ErrConflict, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %s", common.ErrorNotFound, pgErr.ConstraintName)
		case codeCheckViolation, codeInvalidText:
			return fmt.Errorf("%w: %s", common.ErrValidation, pgErr.Message)
		}
	}

	return fmt.Errorf("db error: %w", err)
}
