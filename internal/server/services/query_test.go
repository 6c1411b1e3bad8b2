package services

import (
	"context"
	"errors"
	"testing"

	"github.com/fluxpad/fluxpad/internal/common"
	"github.com/fluxpad/fluxpad/internal/server/models"
)

func TestQueryRecord_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{
		d: &fakeDatasetsRepo{getOut: &models.Dataset{ID: "d-1", UserID: "u1"}},
		q: &fakeQueriesRepo{},
	}
	s := NewQueryService(db, rm)

	rec, err := s.Record(context.Background(), &models.QueryRecord{UserID: "u1", DatasetID: "d-1", Prompt: "p"})
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if rec.ID == "" {
		t.Fatalf("expected generated id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestQueryRecord_DatasetMissingRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		d: &fakeDatasetsRepo{getErr: common.ErrorNotFound},
		q: &fakeQueriesRepo{},
	}
	s := NewQueryService(db, rm)

	_, err := s.Record(context.Background(), &models.QueryRecord{UserID: "u1", DatasetID: "gone", Prompt: "p"})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestQueryRecord_CreateErrRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		d: &fakeDatasetsRepo{getOut: &models.Dataset{ID: "d-1", UserID: "u1"}},
		q: &fakeQueriesRepo{createErr: errBoom{}},
	}
	s := NewQueryService(db, rm)

	if _, err := s.Record(context.Background(), &models.QueryRecord{UserID: "u1", DatasetID: "d-1", Prompt: "p"}); err == nil {
		t.Fatalf("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestQueryHistory(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	want := []*models.QueryRecord{{ID: "q-1", UserID: "u1", Prompt: "p"}}
	rm := &fakeRepoManager{q: &fakeQueriesRepo{listOut: want}}
	s := NewQueryService(db, rm)

	got, err := s.History(context.Background(), "u1")
	if err != nil || len(got) != 1 || got[0].ID != "q-1" {
		t.Fatalf("History: got (%+v, %v)", got, err)
	}
}
