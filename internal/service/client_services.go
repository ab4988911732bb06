package service

import (
	"github.com/obscuralabs/blind-payroll/internal/adapter"
	"github.com/obscuralabs/blind-payroll/internal/config"
	"github.com/obscuralabs/blind-payroll/internal/crypto"
	"github.com/obscuralabs/blind-payroll/internal/store"
)

// ClientServices bundles every service the operator client is built from.
type ClientServices struct {
	AuthService       ClientAuthService
	RunService        ClientRunService
	ItemService       ClientItemService
	DecryptionService ClientDecryptionService
	RefreshJob        ClientRefreshJob
}

func NewClientServices(localStore *store.ClientStorages, serverAdapter adapter.ServerAdapter, keyring crypto.KeyringService, cfg *config.ClientConfig) *ClientServices {
	decryptionSvc := NewClientDecryptionService(serverAdapter, localStore.DecryptionCache, keyring)

	return &ClientServices{
		AuthService:       NewClientAuthService(serverAdapter, keyring, decryptionSvc),
		RunService:        NewClientRunService(serverAdapter, localStore.RunCache),
		ItemService:       NewClientItemService(serverAdapter, cfg.App.InputKey),
		DecryptionService: decryptionSvc,
		RefreshJob:        NewClientRefreshJob(decryptionSvc),
	}
}
