package postgres

import (
	"strings"

	domainerrors "polystore/internal/domain/errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// translateError classifies a failed write. Every outcome is still a storage failure;
// the classification only sharpens the details returned to the caller.
func translateError(err error, details string) error {
	switch {
	case isUniqueConstraintViolation(err):
		return domainerrors.NewDatabaseExecuteError(err, details+": unique constraint violated")
	case isNotNullConstraintViolation(err):
		return domainerrors.NewDatabaseExecuteError(err, details+": missing required field")
	case isForeignKeyConstraintViolation(err):
		return domainerrors.NewDatabaseExecuteError(err, details+": invalid foreign key reference")
	case isCheckConstraintViolation(err):
		return domainerrors.NewDatabaseExecuteError(err, details+": check constraint violated")
	default:
		return domainerrors.NewDatabaseExecuteError(err, details)
	}
}

// Helper functions for PostgreSQL error checking
func isUniqueConstraintViolation(err error) bool {
	// Check for GORM's duplicate key error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	return strings.Contains(err.Error(), "23505") // unique_violation
}

func isForeignKeyConstraintViolation(err error) bool {
	// Check for GORM's foreign key violation error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	return strings.Contains(err.Error(), "23503") // foreign_key_violation
}

func isNotNullConstraintViolation(err error) bool {
	// Check error message for PostgreSQL-specific not null constraint violation patterns
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "not null") ||
		strings.Contains(errMsg, "23502") // PostgreSQL not_null_violation error code
}

func isCheckConstraintViolation(err error) bool {
	// Check for GORM's check constraint violation error
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	return strings.Contains(err.Error(), "23514") // check_violation
}
