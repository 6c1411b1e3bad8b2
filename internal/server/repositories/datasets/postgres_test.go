package datasets

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fluxpad/fluxpad/internal/common"
	"github.com/fluxpad/fluxpad/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+datasets`

	created := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(created)
	mock.ExpectQuery(q).
		WithArgs("d-1", "u-1", "sales", "Q2 numbers", "sales.csv", int64(1024), `["region","amount"]`, int64(200)).
		WillReturnRows(rows)

	d := &models.Dataset{
		ID: "d-1", UserID: "u-1", Name: "sales", Description: "Q2 numbers",
		FileName: "sales.csv", FileSize: 1024, ColumnsInfo: `["region","amount"]`, RowCount: 200,
	}
	got, err := repo.Create(context.Background(), d)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected created_at: %v", got.CreatedAt)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+datasets`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Dataset{ID: "d-1", UserID: "u-1", Name: "x", FileName: "x.csv"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestListByUser_OrdersNewestFirst(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*FROM\s+datasets\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC\s*$`

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "description", "file_name", "file_size", "columns_info", "row_count", "created_at"}).
		AddRow("d-2", "u-1", "newer", "", "b.csv", int64(10), "[]", int64(1), time.Now()).
		AddRow("d-1", "u-1", "older", "", "a.csv", int64(10), "[]", int64(1), time.Now().Add(-time.Hour))
	mock.ExpectQuery(q).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "d-2" || got[1].ID != "d-1" {
		t.Fatalf("unexpected datasets: %+v", got)
	}
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "description", "file_name", "file_size", "columns_info", "row_count", "created_at"})
	mock.ExpectQuery(`(?s)^SELECT\s+.*FROM\s+datasets`).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no datasets, got %d", len(got))
	}
}

func TestGetByID_OwnerScoped(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*FROM\s+datasets\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "description", "file_name", "file_size", "columns_info", "row_count", "created_at"}).
		AddRow("d-1", "u-1", "sales", "", "sales.csv", int64(1024), "[]", int64(200), time.Now())
	mock.ExpectQuery(q).
		WithArgs("d-1", "u-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "u-1", "d-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Name != "sales" {
		t.Fatalf("unexpected dataset: %+v", got)
	}
}

func TestGetByID_OtherOwnerLooksMissing(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+.*FROM\s+datasets`).
		WithArgs("d-1", "u-2").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "u-2", "d-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
