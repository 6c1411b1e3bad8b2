package client

import (
	"context"
	"time"
)

// Identity describes the account the current session belongs to.
type Identity struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

type Dataset struct {
	ID          string    `json:"dataset_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	ColumnsInfo string    `json:"columns_info"`
	RowCount    int64     `json:"row_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type QueryRecord struct {
	ID           string    `json:"query_id"`
	DatasetID    string    `json:"dataset_id"`
	Prompt       string    `json:"prompt"`
	GeneratedSQL string    `json:"generated_sql"`
	ResultData   string    `json:"result_data"`
	CreatedAt    time.Time `json:"created_at"`
}

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Register(ctx context.Context, email string, password string, fullName string) (*Identity, error)
	Login(ctx context.Context, email string, password string) (*Identity, error)
	Me(ctx context.Context) (*Identity, error)
	DeleteAccount(ctx context.Context) error
	Logout(ctx context.Context) error
	ListDatasets(ctx context.Context) ([]*Dataset, error)
	QueryHistory(ctx context.Context) ([]*QueryRecord, error)
}
