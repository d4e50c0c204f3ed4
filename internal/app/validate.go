package app

import (
	"math"
	"strings"
	"time"

	"github.com/krishisetu/krishisetu/internal/domain"
)

const dateLayout = "2006-01-02"

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &domain.ValidationError{Field: field, Reason: "must be a finite number"}
	}
	if v < 0 {
		return &domain.ValidationError{Field: field, Reason: "must not be negative"}
	}
	return nil
}

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return &domain.ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

// parseDate parses an optional YYYY-MM-DD date. An empty string yields nil.
func parseDate(field, v string) (*time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return nil, &domain.ValidationError{Field: field, Reason: "must be a date in YYYY-MM-DD format"}
	}
	return &d, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
