package domain

import "time"

// BookingStatus enumerates booking lifecycle states.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking represents occupancy of one hall for one calendar date and one
// time range. The tuple (HallID, Date, StartTime, EndTime) is unique.
// JSON names follow the established wire contract.
type Booking struct {
	ID        int64         `json:"id"`
	HallID    int64         `json:"hallid"`
	UserID    int64         `json:"userid"`
	Date      time.Time     `json:"date"`
	StartTime string        `json:"starttime"`
	EndTime   string        `json:"endtime"`
	Status    BookingStatus `json:"status"`
	PlusPrice *float64      `json:"PlusPrice"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
