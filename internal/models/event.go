package models

import "time"

type Event struct {
	ID          int64     `json:"id"`
	HostID      int64     `json:"host_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    string    `json:"starts_at"`
	Capacity    int       `json:"capacity"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventDetails is an Event joined with its host name and the live
// registration count. The count is computed on read, never stored.
type EventDetails struct {
	Event
	HostName   string `json:"host_name"`
	Registered int    `json:"registered"`
}
