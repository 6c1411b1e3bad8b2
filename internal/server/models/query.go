package models

import "time"

// QueryRecord is one entry of a user's query history against a dataset.
// GeneratedSQL and ResultData are filled in by the (future) query engine
// and may be empty.
type QueryRecord struct {
	ID           string
	UserID       string
	DatasetID    string
	Prompt       string
	GeneratedSQL string
	ResultData   string
	CreatedAt    time.Time
}
