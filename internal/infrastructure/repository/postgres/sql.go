package postgres

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}

	text := strings.ToLower(err.Error())
	return strings.Contains(text, "duplicate key value") || strings.Contains(text, uniqueViolationCode)
}
