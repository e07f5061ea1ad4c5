package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"predictiontrader/src/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	})

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		sqlDB.Close()
		t.Fatalf("failed to open gorm DB with sqlmock: %v", err)
	}

	return gdb, mock
}

// The status transition is a guarded UPDATE: the previous status is part of
// the WHERE clause, so a lost race surfaces as zero affected rows instead of
// overwriting a concurrent transition.
func TestProposalTransitionIsGuarded(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProposalRepository().WithDB(db)

	updateSQL := regexp.QuoteMeta(
		`UPDATE "trade_proposals" SET "status"=$1,"updated_at"=$2 WHERE id = $3 AND status = $4`,
	)

	mock.ExpectBegin()
	mock.ExpectExec(updateSQL).
		WithArgs(model.ProposalStatusRejected, sqlmock.AnyArg(), uint(7), model.ProposalStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Reject(context.Background(), 7); err != nil {
		t.Fatalf("expected guarded reject to succeed, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectExec(updateSQL).
		WithArgs(model.ProposalStatusRejected, sqlmock.AnyArg(), uint(7), model.ProposalStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.Reject(context.Background(), 7); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition when no row matches, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
