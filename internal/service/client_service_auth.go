package service

import (
	"context"
	"fmt"

	"github.com/obscuralabs/blind-payroll/internal/adapter"
	"github.com/obscuralabs/blind-payroll/internal/crypto"
	"github.com/obscuralabs/blind-payroll/models"
)

// cacheSaltPrefix pins local-cache key derivation to the operator login so
// two operators sharing one machine never derive the same cache key.
const cacheSaltPrefix = "blind-payroll/cache-key/v1:"

type clientAuthService struct {
	adapter    adapter.ServerAdapter
	keyring    crypto.KeyringService
	decryption ClientDecryptionService
}

func NewClientAuthService(serverAdapter adapter.ServerAdapter, keyring crypto.KeyringService, decryption ClientDecryptionService) ClientAuthService {
	return &clientAuthService{adapter: serverAdapter, keyring: keyring, decryption: decryption}
}

func (a *clientAuthService) Register(ctx context.Context, request models.RegisterRequest) error {
	if _, err := a.adapter.Register(ctx, request); err != nil {
		return fmt.Errorf("%w: %w", ErrRegisterOnServer, mapAdapterError(err))
	}

	return nil
}

func (a *clientAuthService) Login(ctx context.Context, request models.LoginRequest) (models.Operator, error) {
	operator, err := a.adapter.Login(ctx, request)
	if err != nil {
		return models.Operator{}, fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	// The cache key is derived from the password with a login-bound salt, so
	// the same operator reopens the same cache on every session. The password
	// itself never leaves this scope.
	cacheKey := a.keyring.DeriveCacheKey(request.Password, []byte(cacheSaltPrefix+request.Login))
	a.decryption.SetCacheKey(cacheKey)

	return operator, nil
}
