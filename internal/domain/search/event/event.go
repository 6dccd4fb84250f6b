// Package event describes search analytics events.
package event

import "time"

// Search records one executed product search. ID is unique per event so
// consumers can drop redelivered messages.
type Search struct {
	ID         string    `json:"id"`
	Query      string    `json:"query"`
	Page       int       `json:"page"`
	Size       int       `json:"size"`
	TotalHits  int64     `json:"totalHits"`
	Returned   int       `json:"returned"`
	Degraded   bool      `json:"degraded"`
	Failed     bool      `json:"failed"`
	DurationMs int64     `json:"durationMs"`
	At         time.Time `json:"at"`
}
