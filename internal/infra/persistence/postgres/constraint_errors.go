package postgres

import (
	"strings"

	domainerrors "courierhub/internal/domain/errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes surfaced in driver error messages.
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateNotNullViolation    = "23502"
	sqlStateCheckViolation      = "23514"
)

// Helper functions for PostgreSQL error checking
func isUniqueConstraintViolation(err error) bool {
	// Check for GORM's duplicate key error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// Without TranslateError the raw driver message is all we get
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, sqlStateUniqueViolation)
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "violates foreign key") ||
		strings.Contains(errMsg, sqlStateForeignKeyViolation)
}

func isNotNullConstraintViolation(err error) bool {
	// Check error message for PostgreSQL-specific not null constraint violation patterns
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "not null") ||
		strings.Contains(errMsg, sqlStateNotNullViolation)
}

func isCheckConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), sqlStateCheckViolation)
}

// mapWriteError turns a failed insert or update into a domain error.
// conflict is returned for unique violations, nil means the caller has no specific conflict error.
func mapWriteError(err error, conflict error, action string) error {
	switch {
	case conflict != nil && isUniqueConstraintViolation(err):
		return conflict
	case isForeignKeyConstraintViolation(err),
		isNotNullConstraintViolation(err),
		isCheckConstraintViolation(err):
		return domainerrors.ErrInvalidInput.WithDetails(action + ": constraint violated")
	default:
		return domainerrors.NewDatabaseExecuteError(err, action)
	}
}
