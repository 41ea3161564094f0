package queries

import (
	"strconv"
	"strings"

	"visit-analytics/internal/models"
)

// NewDateRange parses the optional start and stop query parameters.
func NewDateRange(start, stop string) (models.DateRange, error) {
	dr, err := models.NewDateRange(start, stop)
	if err != nil {
		return models.DateRange{}, errInvalidDateRange(err)
	}
	return dr, nil
}

// ParseLimit parses the limit query parameter. An empty limit means every group.
func ParseLimit(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(s)
	if err != nil || limit < 0 {
		return 0, errInvalidLimit(s)
	}
	return limit, nil
}
