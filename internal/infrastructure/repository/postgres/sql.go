package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

const (
	codeUniqueViolation       pq.ErrorCode = "23505"
	codeInsufficientPrivilege pq.ErrorCode = "42501"
	codeUndefinedColumn       pq.ErrorCode = "42703"
	codeUndefinedFunction     pq.ErrorCode = "42883"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func pqErrorCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

func isInsufficientPrivilege(err error) bool {
	return pqErrorCode(err) == codeInsufficientPrivilege
}

func isUndefinedColumn(err error) bool {
	return pqErrorCode(err) == codeUndefinedColumn
}

func isUndefinedFunction(err error) bool {
	return pqErrorCode(err) == codeUndefinedFunction
}

func nullStringToString(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}
