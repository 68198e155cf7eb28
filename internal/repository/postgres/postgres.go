package postgres

import (
	"strings"
)

// PostgreSQL error detection by SQLSTATE code embedded in the error text.
// 23505 unique_violation, 23503 foreign_key_violation, 23514 check_violation.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23503")
}

func isCheckViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23514")
}
