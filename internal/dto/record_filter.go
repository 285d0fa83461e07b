package dto

import "time"

// RecordFilters contains filtering options for querying inference records.
type RecordFilters struct {
	Label      string
	DateAfter  time.Time
	DateBefore time.Time
	Limit      int
	Offset     int
}
