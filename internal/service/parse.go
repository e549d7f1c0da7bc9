package service

import (
	"strconv"
	"strings"
)

// parseNonNegative parses a required form value as an integer >= 0.
func parseNonNegative(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, newValidationError(field, "is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newValidationError(field, "must be a whole number")
	}
	if n < 0 {
		return 0, newValidationError(field, "must not be negative")
	}
	return n, nil
}

// parsePositive parses a required form value as an integer > 0.
func parsePositive(field, raw string) (int, error) {
	n, err := parseNonNegative(field, raw)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, newValidationError(field, "must be greater than zero")
	}
	return n, nil
}
