package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obscuralabs/blind-payroll/internal/config"
	"github.com/obscuralabs/blind-payroll/internal/crypto"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/store"
	"github.com/obscuralabs/blind-payroll/models"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newAuthServiceForTest(repo *mockOperatorRepository) AuthService {
	cfg := config.App{
		TokenSignKey:  "auth-test-sign-key",
		TokenIssuer:   "blind-payroll-test",
		TokenDuration: time.Hour,
	}
	return NewAuthService(repo, crypto.NewKeyringService(), cfg, logger.Nop())
}

// ─────────────────────────────────────────────
// RegisterOperator
// ─────────────────────────────────────────────

func TestRegisterOperator_Success(t *testing.T) {
	repo := &mockOperatorRepository{}
	svc := newAuthServiceForTest(repo)

	operator, err := svc.RegisterOperator(context.Background(), models.RegisterRequest{
		Login:    "alice",
		Name:     "Alice",
		Password: "correct horse battery staple",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), operator.OperatorID)
	assert.Equal(t, "alice", operator.Login)

	require.Len(t, repo.createdOperators, 1)
	stored := repo.createdOperators[0]
	assert.True(t, strings.HasPrefix(stored.AuthHash, "$argon2id$"), "stored credential must be a verifier, got %q", stored.AuthHash)
	assert.NotContains(t, stored.AuthHash, "correct horse battery staple")
}

func TestRegisterOperator_EmptyCredentials(t *testing.T) {
	svc := newAuthServiceForTest(&mockOperatorRepository{})

	tests := []struct {
		name    string
		request models.RegisterRequest
	}{
		{name: "empty login", request: models.RegisterRequest{Password: "secret"}},
		{name: "empty password", request: models.RegisterRequest{Login: "alice"}},
		{name: "both empty", request: models.RegisterRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterOperator(context.Background(), tt.request)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestRegisterOperator_LoginTaken(t *testing.T) {
	repo := &mockOperatorRepository{createErr: store.ErrLoginAlreadyExists}
	svc := newAuthServiceForTest(repo)

	_, err := svc.RegisterOperator(context.Background(), models.RegisterRequest{
		Login:    "alice",
		Password: "secret",
	})

	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	keyring := crypto.NewKeyringService()
	authHash, err := keyring.HashPassword("hunter2hunter2")
	require.NoError(t, err)

	repo := &mockOperatorRepository{
		foundOperator: models.Operator{OperatorID: 42, Login: "bob", AuthHash: authHash},
	}
	svc := newAuthServiceForTest(repo)

	operator, err := svc.Login(context.Background(), models.LoginRequest{Login: "bob", Password: "hunter2hunter2"})

	require.NoError(t, err)
	assert.Equal(t, int64(42), operator.OperatorID)
	assert.Equal(t, "bob", operator.Login)
}

func TestLogin_WrongPassword(t *testing.T) {
	keyring := crypto.NewKeyringService()
	authHash, err := keyring.HashPassword("the-real-password")
	require.NoError(t, err)

	repo := &mockOperatorRepository{
		foundOperator: models.Operator{OperatorID: 42, Login: "bob", AuthHash: authHash},
	}
	svc := newAuthServiceForTest(repo)

	_, err = svc.Login(context.Background(), models.LoginRequest{Login: "bob", Password: "a-guess"})

	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_OperatorNotFound(t *testing.T) {
	repo := &mockOperatorRepository{findErr: store.ErrOperatorNotFound}
	svc := newAuthServiceForTest(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Login: "nobody", Password: "secret"})

	assert.ErrorIs(t, err, store.ErrOperatorNotFound)
}

func TestLogin_EmptyCredentials(t *testing.T) {
	svc := newAuthServiceForTest(&mockOperatorRepository{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Login: "bob"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Login(context.Background(), models.LoginRequest{Password: "secret"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestLogin_MalformedStoredVerifier(t *testing.T) {
	repo := &mockOperatorRepository{
		foundOperator: models.Operator{OperatorID: 7, Login: "mallory", AuthHash: "not-a-verifier"},
	}
	svc := newAuthServiceForTest(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Login: "mallory", Password: "whatever"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrWrongPassword, "a broken verifier is an internal failure, not a credential mismatch")
}

// ─────────────────────────────────────────────
// CreateToken / ParseToken
// ─────────────────────────────────────────────

func TestCreateToken_RoundTrip(t *testing.T) {
	svc := newAuthServiceForTest(&mockOperatorRepository{})
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.Operator{OperatorID: 42, Login: "bob"})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.OperatorID)
}

func TestParseToken_Garbage(t *testing.T) {
	svc := newAuthServiceForTest(&mockOperatorRepository{})

	_, err := svc.ParseToken(context.Background(), "not.a.jwt")

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestParseToken_Expired(t *testing.T) {
	repo := &mockOperatorRepository{}
	cfg := config.App{
		TokenSignKey:  "auth-test-sign-key",
		TokenIssuer:   "blind-payroll-test",
		TokenDuration: -time.Minute,
	}
	svc := NewAuthService(repo, crypto.NewKeyringService(), cfg, logger.Nop())
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.Operator{OperatorID: 1})
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpired)
}

func TestParseToken_WrongIssuer(t *testing.T) {
	repo := &mockOperatorRepository{}
	issuing := NewAuthService(repo, crypto.NewKeyringService(), config.App{
		TokenSignKey:  "auth-test-sign-key",
		TokenIssuer:   "someone-else",
		TokenDuration: time.Hour,
	}, logger.Nop())
	verifying := newAuthServiceForTest(repo)
	ctx := context.Background()

	token, err := issuing.CreateToken(ctx, models.Operator{OperatorID: 1})
	require.NoError(t, err)

	_, err = verifying.ParseToken(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestParseToken_WrongKey(t *testing.T) {
	repo := &mockOperatorRepository{}
	issuing := NewAuthService(repo, crypto.NewKeyringService(), config.App{
		TokenSignKey:  "a-different-key",
		TokenIssuer:   "blind-payroll-test",
		TokenDuration: time.Hour,
	}, logger.Nop())
	verifying := newAuthServiceForTest(repo)
	ctx := context.Background()

	token, err := issuing.CreateToken(ctx, models.Operator{OperatorID: 1})
	require.NoError(t, err)

	_, err = verifying.ParseToken(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestRegisterThenLogin_EndToEnd(t *testing.T) {
	repo := &mockOperatorRepository{}
	svc := newAuthServiceForTest(repo)
	ctx := context.Background()

	registered, err := svc.RegisterOperator(ctx, models.RegisterRequest{Login: "carol", Password: "s3cr3t-s3cr3t"})
	require.NoError(t, err)

	// The login lookup returns what registration stored.
	repo.foundOperator = repo.createdOperators[0]
	repo.foundOperator.OperatorID = registered.OperatorID

	authenticated, err := svc.Login(ctx, models.LoginRequest{Login: "carol", Password: "s3cr3t-s3cr3t"})
	require.NoError(t, err)
	assert.Equal(t, registered.OperatorID, authenticated.OperatorID)

	_, err = svc.Login(ctx, models.LoginRequest{Login: "carol", Password: "s3cr3t-wrong"})
	assert.ErrorIs(t, err, ErrWrongPassword)
}
