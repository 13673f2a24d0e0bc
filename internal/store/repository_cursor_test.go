package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/zylch/zylch-go/internal/logger"
	"github.com/zylch/zylch-go/models"
)

func newTestCursorRepo(t *testing.T) (*cursorRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &cursorRepository{
		DB:     &DB{DB: db, driver: "sqlite3", logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestCursorGet_NeverPulled(t *testing.T) {
	repo, mock, db := newTestCursorRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM sync_cursors").
		WithArgs(models.CollectionEmail).
		WillReturnError(sql.ErrNoRows)

	cursor, err := repo.Get(context.Background(), models.CollectionEmail)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor.Cursor != "" {
		t.Errorf("expected empty cursor for never-pulled collection, got %q", cursor.Cursor)
	}
	if cursor.Collection != models.CollectionEmail {
		t.Errorf("expected collection email, got %s", cursor.Collection)
	}
}

func TestCursorGet_Stored(t *testing.T) {
	repo, mock, db := newTestCursorRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"collection", "cursor", "updated_at"}).
		AddRow("email", "cursor-42", now)

	mock.ExpectQuery("SELECT (.+) FROM sync_cursors").
		WithArgs(models.CollectionEmail).
		WillReturnRows(rows)

	cursor, err := repo.Get(context.Background(), models.CollectionEmail)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor.Cursor != "cursor-42" {
		t.Errorf("expected cursor-42, got %q", cursor.Cursor)
	}
}

func TestCursorSet_UpdatesExisting(t *testing.T) {
	repo, mock, db := newTestCursorRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE sync_cursors").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Set(context.Background(), models.SyncCursor{
		Collection: models.CollectionEmail,
		Cursor:     "cursor-43",
		UpdatedAt:  time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCursorSet_InsertsFirstCursor(t *testing.T) {
	repo, mock, db := newTestCursorRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE sync_cursors").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO sync_cursors").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Set(context.Background(), models.SyncCursor{
		Collection: models.CollectionCalendar,
		Cursor:     "cursor-1",
		UpdatedAt:  time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
