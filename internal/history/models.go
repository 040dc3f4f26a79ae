package history

import "time"

// ListingRecord is one recorded listing invocation.
type ListingRecord struct {
	ID         int64
	ListedAt   time.Time
	AppFilter  string
	Count      int
	DurationMS int64
}
