package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories react to.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// ErrRecordNotFound is returned by writes that target a row that does not exist.
var ErrRecordNotFound = errors.New("record not found")

// UniqueViolationError reports a collision on a unique column.
type UniqueViolationError struct {
	Table      string
	Constraint string
	Field      string
	Err        error
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("unique violation on %s.%s", e.Table, e.Field)
}

func (e *UniqueViolationError) Unwrap() error { return e.Err }

// ForeignKeyViolationError reports an insert/update pointing at a missing
// parent row, or a delete of a row that is still referenced.
type ForeignKeyViolationError struct {
	Table      string
	Constraint string
	Err        error
}

func (e *ForeignKeyViolationError) Error() string {
	return fmt.Sprintf("foreign key violation on %s (%s)", e.Table, e.Constraint)
}

func (e *ForeignKeyViolationError) Unwrap() error { return e.Err }

// TranslateError turns driver errors into the storage signals above. Errors it
// does not recognise are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return &UniqueViolationError{
			Table:      pgErr.TableName,
			Constraint: pgErr.ConstraintName,
			Field:      fieldFromConstraint(pgErr.TableName, pgErr.ConstraintName, pgErr.ColumnName),
			Err:        err,
		}
	case codeForeignKeyViolation:
		return &ForeignKeyViolationError{
			Table:      pgErr.TableName,
			Constraint: pgErr.ConstraintName,
			Err:        err,
		}
	}
	return err
}

// fieldFromConstraint recovers the column from PostgreSQL's default unique
// constraint naming, <table>_<column>_key.
func fieldFromConstraint(table, constraint, column string) string {
	if column != "" {
		return column
	}
	field := strings.TrimPrefix(constraint, table+"_")
	field = strings.TrimSuffix(field, "_key")
	if field == "" {
		return constraint
	}
	return field
}
