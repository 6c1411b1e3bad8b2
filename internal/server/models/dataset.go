package models

import "time"

// Dataset is the metadata record for an uploaded tabular file. The upload
// pipeline itself lives elsewhere; only the bookkeeping is stored here.
type Dataset struct {
	ID          string
	UserID      string
	Name        string
	Description string
	FileName    string
	FileSize    int64
	ColumnsInfo string
	RowCount    int64
	CreatedAt   time.Time
}
