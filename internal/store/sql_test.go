package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockSQL(t *testing.T) (*SQL, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock DB: %v", err)
	}
	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatal(err)
	}
	s := NewSQL(gdb)
	t.Cleanup(func() { s.Close() })
	return s, mock
}

func TestSQLGet(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectQuery("SELECT \\* FROM `kv_entries` WHERE `kv_entries`.`key` = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}).
			AddRow("cricket-packs-state-v1:coins", "1900", time.Now()))

	v, ok, err := s.Get(context.Background(), "cricket-packs-state-v1:coins")
	if err != nil || !ok || v != "1900" {
		t.Fatalf("got %q ok=%v err=%v", v, ok, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}

func TestSQLGetMissing(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectQuery("SELECT \\* FROM `kv_entries`").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}))

	_, ok, err := s.Get(context.Background(), "nope")
	if err != nil || ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}

func TestSQLGetError(t *testing.T) {
	s, mock := newMockSQL(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery("SELECT \\* FROM `kv_entries`").WillReturnError(boom)

	if _, _, err := s.Get(context.Background(), "k"); !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
}

func TestSQLSetUpserts(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectExec("INSERT INTO `kv_entries` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.Set(context.Background(), "k", "v"); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}

func TestSQLDelete(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectExec("DELETE FROM `kv_entries` WHERE `kv_entries`.`key` = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.Delete(context.Background(), "k"); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}

func TestSQLEmptyKeyStillFiltersByKey(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectQuery("SELECT \\* FROM `kv_entries` WHERE `kv_entries`.`key` = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}))
	mock.ExpectExec("DELETE FROM `kv_entries` WHERE `kv_entries`.`key` = \\?").
		WithArgs("").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if _, ok, err := s.Get(context.Background(), ""); err != nil || ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if err := s.Delete(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}
