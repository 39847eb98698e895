package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxArrivalStops is the largest number of stops a single arrivals request
// may ask for.
const MaxArrivalStops = 5

// Compiled regular expressions for validation
var (
	// Allow alphanumeric, underscore, hyphen, dot - common in transit IDs
	validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

// ValidateID validates that an ID is safe and within reasonable limits
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > 100 {
		return errors.New("id too long (max 100 characters)")
	}

	if !validIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}

	return nil
}

// ValidateDirection checks a route direction name. Direction names are free
// text such as "Kopli - Kadriorg", so only emptiness, length and control
// characters are rejected.
func ValidateDirection(direction string) error {
	if strings.TrimSpace(direction) == "" {
		return errors.New("direction cannot be empty")
	}

	if utf8.RuneCountInString(direction) > 200 {
		return errors.New("direction too long (max 200 characters)")
	}

	if strings.ContainsFunc(direction, func(r rune) bool { return r < 0x20 || r == 0x7f }) {
		return errors.New("direction contains invalid characters")
	}

	return nil
}

// ParseStopIDs splits a comma-separated stop id list, keeping request order
// and duplicates. Between 1 and MaxArrivalStops valid ids are accepted.
func ParseStopIDs(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("missing stops query parameter")
	}

	parts := strings.Split(raw, ",")
	if len(parts) > MaxArrivalStops {
		return nil, fmt.Errorf("invalid number of stops provided (1-%d)", MaxArrivalStops)
	}

	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		id := strings.TrimSpace(part)
		if err := ValidateID(id); err != nil {
			return nil, fmt.Errorf("invalid stop id %q: %w", id, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
