package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/models"
)

func newTestGrantRepo(t *testing.T) (*grantRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, sqlDB := newTestDB(t)
	l := logger.NewLogger("test")
	repo := &grantRepository{
		DB:     db,
		logger: l,
	}
	return repo, mock, sqlDB
}

func TestRecordGrant_Success(t *testing.T) {
	repo, mock, db := newTestGrantRepo(t)
	defer db.Close()

	ctx := context.Background()
	grant := models.AccessGrant{
		Handle:    "h-42",
		Principal: models.PrincipalCoordinator,
		GrantedAt: time.Now(),
	}

	mock.ExpectExec("INSERT INTO access_grants").
		WithArgs(grant.Handle, grant.Principal, grant.GrantedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.RecordGrant(ctx, grant); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecordGrant_IdempotentReGrant(t *testing.T) {
	repo, mock, db := newTestGrantRepo(t)
	defer db.Close()

	ctx := context.Background()
	grant := models.AccessGrant{
		Handle:    "h-42",
		Principal: models.PrincipalCoordinator,
		GrantedAt: time.Now(),
	}

	// ON CONFLICT DO NOTHING: zero rows affected is still success.
	mock.ExpectExec("INSERT INTO access_grants").
		WithArgs(grant.Handle, grant.Principal, grant.GrantedAt).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.RecordGrant(ctx, grant); err != nil {
		t.Fatalf("expected idempotent re-grant to succeed, got %v", err)
	}
}

func TestRecordGrant_ExecError(t *testing.T) {
	repo, mock, db := newTestGrantRepo(t)
	defer db.Close()

	ctx := context.Background()
	grant := models.AccessGrant{Handle: "h-42", Principal: models.PrincipalCoordinator}

	mock.ExpectExec("INSERT INTO access_grants").
		WillReturnError(errors.New("db network error"))

	err := repo.RecordGrant(ctx, grant)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestGetGrantsByHandle_Success(t *testing.T) {
	repo, mock, db := newTestGrantRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"handle", "principal", "granted_at"}).
		AddRow("h-42", "coordinator", now).
		AddRow("h-42", "subject:1001", now.Add(time.Second))

	mock.ExpectQuery("SELECT handle(.|\\s)+FROM access_grants").
		WithArgs(models.HandleID("h-42")).
		WillReturnRows(rows)

	grants, err := repo.GetGrantsByHandle(ctx, "h-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grants) != 2 {
		t.Fatalf("expected 2 grants, got %d", len(grants))
	}
	if grants[0].Principal != models.PrincipalCoordinator {
		t.Errorf("expected coordinator principal first, got %s", grants[0].Principal)
	}
}

func TestGetGrantsByHandle_UngrantedYieldsEmpty(t *testing.T) {
	repo, mock, db := newTestGrantRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"handle", "principal", "granted_at"})

	mock.ExpectQuery("SELECT handle(.|\\s)+FROM access_grants").
		WithArgs(models.HandleID("h-void")).
		WillReturnRows(rows)

	grants, err := repo.GetGrantsByHandle(ctx, "h-void")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grants) != 0 {
		t.Fatalf("expected empty slice, got %d grants", len(grants))
	}
}

func TestGetGrantsByHandle_QueryError(t *testing.T) {
	repo, mock, db := newTestGrantRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT handle(.|\\s)+FROM access_grants").
		WillReturnError(errors.New("db failure"))

	_, err := repo.GetGrantsByHandle(ctx, "h-42")
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}
