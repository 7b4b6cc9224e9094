package dto

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// PricingRequest is the wire payload of POST /hallowner/pricing. HallID
// arrives as either a JSON number or a numeric string.
type PricingRequest struct {
	HallID   any      `json:"hallId"`
	Date     string   `json:"date"`
	TimeSlot string   `json:"timeSlot"`
	Price    *float64 `json:"price"`
}

// ParseHallID coerces the hallId field into a positive integer.
func (r PricingRequest) ParseHallID() (int64, error) {
	switch v := r.HallID.(type) {
	case float64:
		if v <= 0 || v != math.Trunc(v) {
			return 0, fmt.Errorf("hallId must be a positive integer")
		}
		return int64(v), nil
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil || id <= 0 {
			return 0, fmt.Errorf("hallId must be a positive integer")
		}
		return id, nil
	default:
		return 0, fmt.Errorf("hallId is required")
	}
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate parses the ISO date field.
func (r PricingRequest) ParseDate() (time.Time, error) {
	raw := strings.TrimSpace(r.Date)
	if raw == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Truncate(24 * time.Hour), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date")
}

// HallCreateRequest payload for registering a hall.
type HallCreateRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
}
