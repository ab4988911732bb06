package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/obscuralabs/blind-payroll/internal/config"
	"github.com/obscuralabs/blind-payroll/internal/crypto"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/store"
	"github.com/obscuralabs/blind-payroll/internal/utils"
	"github.com/obscuralabs/blind-payroll/models"
)

// authService is the concrete implementation of AuthService.
// It handles operator registration, credential verification, and JWT token
// lifecycle using an OperatorRepository for persistence and Argon2id for
// password hashing.
type authService struct {
	// operatorRepository is the data-access layer used to create and look up
	// operator accounts.
	operatorRepository store.OperatorRepository

	// keyring derives and verifies the Argon2id password verifiers stored in
	// the operators table.
	keyring crypto.KeyringService

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// OperatorRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(operatorRepository store.OperatorRepository, keyring crypto.KeyringService, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		operatorRepository: operatorRepository,
		keyring:            keyring,
		tokenSignKey:       cfg.TokenSignKey,
		tokenIssuer:        cfg.TokenIssuer,
		tokenDuration:      cfg.TokenDuration,
		logger:             logger,
	}
}

// RegisterOperator creates a new operator account.
//
// It validates that both Login and Password are non-empty, derives the
// Argon2id verifier for the password, and delegates persistence to the
// OperatorRepository. The plaintext password is never stored.
//
// Returns the persisted operator (with a server-assigned OperatorID) or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A wrapped storage error if the repository call fails (e.g. login already
//     taken — see store.ErrLoginAlreadyExists).
func (a *authService) RegisterOperator(ctx context.Context, request models.RegisterRequest) (models.Operator, error) {
	log := logger.FromContext(ctx)

	if request.Login == "" || request.Password == "" {
		log.Error().Str("login", request.Login).Msg("invalid operator data provided")
		return models.Operator{}, ErrInvalidDataProvided
	}

	authHash, err := a.keyring.HashPassword(request.Password)
	if err != nil {
		log.Err(err).Str("login", request.Login).Msg("password hashing failed")
		return models.Operator{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredOperator, err := a.operatorRepository.CreateOperator(ctx, models.Operator{
		Login:    request.Login,
		Name:     request.Name,
		AuthHash: authHash,
	})
	if err != nil {
		log.Err(err).Str("login", request.Login).Msg("operator creation ended with error")
		return models.Operator{}, fmt.Errorf("operator creation ended with error: %w", err)
	}

	return registeredOperator, nil
}

// Login authenticates an existing operator.
//
// It validates that both Login and Password are non-empty, looks up the
// account by login, and verifies the supplied password against the stored
// Argon2id verifier in constant time.
//
// Returns the authenticated operator record or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A wrapped storage error if the repository lookup fails (e.g. operator
//     not found — see store.ErrOperatorNotFound).
//   - ErrWrongPassword if the password does not match the stored verifier.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.Operator, error) {
	log := logger.FromContext(ctx)

	if request.Login == "" || request.Password == "" {
		log.Error().Str("login", request.Login).Msg("invalid operator data provided")
		return models.Operator{}, ErrInvalidDataProvided
	}

	foundOperator, err := a.operatorRepository.FindOperatorByLogin(ctx, request.Login)
	if err != nil {
		log.Err(err).Str("login", request.Login).Msg("operator search by login failed")
		return models.Operator{}, fmt.Errorf("operator search by login failed: %w", err)
	}

	ok, err := a.keyring.VerifyPassword(request.Password, foundOperator.AuthHash)
	if err != nil {
		log.Err(err).
			Int64("id", foundOperator.OperatorID).
			Str("login", foundOperator.Login).
			Msg("stored verifier could not be checked")
		return models.Operator{}, fmt.Errorf("stored verifier could not be checked: %w", err)
	}
	if !ok {
		log.Error().
			Int64("id", foundOperator.OperatorID).
			Str("login", foundOperator.Login).
			Msg("wrong password")
		return models.Operator{}, ErrWrongPassword
	}

	return foundOperator, nil
}

// CreateToken issues a signed JWT for the given operator.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, operator models.Operator) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, operator.OperatorID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. An expired token is reported as ErrTokenIsExpired; every
// other validation failure (wrong issuer, bad signature, malformed) is
// normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
