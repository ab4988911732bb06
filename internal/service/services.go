package service

import (
	"context"
	"fmt"

	"github.com/obscuralabs/blind-payroll/internal/config"
	"github.com/obscuralabs/blind-payroll/internal/crypto"
	"github.com/obscuralabs/blind-payroll/internal/engine"
	"github.com/obscuralabs/blind-payroll/internal/engine/acl"
	"github.com/obscuralabs/blind-payroll/internal/gateway"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/payroll"
	"github.com/obscuralabs/blind-payroll/internal/store"
	"github.com/obscuralabs/blind-payroll/internal/tax"
	"github.com/obscuralabs/blind-payroll/internal/tiers"
	"github.com/obscuralabs/blind-payroll/models"
)

// Services aggregates every server-side service behind one value.
type Services struct {
	AuthService       AuthService
	RunService        RunService
	ItemService       ItemService
	ClaimService      ClaimService
	DecryptionService DecryptionService
	AppInfoService    AppInfoService
}

// NewServices assembles the payroll core and the services around it: the
// ciphertext engine, the ACL producer recording grants through the grant
// repository, the bracket evaluator and cap selector over the default
// schedules, the run registry restored from storage, the coordinator, and
// the decryption gateway with its derived callback key.
func NewServices(ctx context.Context, storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	keyring := crypto.NewKeyringService()

	eng := engine.NewMemEngine([]byte(cfg.Engine.InputKey), logger)
	producer := acl.NewProducer(eng, models.PrincipalCoordinator, storages.GrantRepository, logger)

	evaluator, err := tax.NewEvaluator(ctx, eng, models.DefaultBracketSchedule(), logger)
	if err != nil {
		return nil, fmt.Errorf("building bracket evaluator: %w", err)
	}
	table, err := tiers.NewTable(ctx, eng, models.DefaultTierCaps(), logger)
	if err != nil {
		return nil, fmt.Errorf("building cap table: %w", err)
	}
	claims, err := tiers.NewClaims(eng)
	if err != nil {
		return nil, fmt.Errorf("building claim helpers: %w", err)
	}

	registry := payroll.NewRegistry()
	if err := seedRegistry(ctx, registry, storages); err != nil {
		return nil, fmt.Errorf("restoring registry: %w", err)
	}

	coordinator := payroll.NewCoordinator(registry, eng, producer, evaluator, table, cfg.Payroll.RunFrequency, logger)

	callbackKey := keyring.DeriveCallbackKey(cfg.Gateway.SharedSecret, []byte(cfg.Gateway.KeySalt))
	gw := gateway.NewGateway(eng, callbackKey, logger)

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:       NewAuthService(storages.OperatorRepository, keyring, cfg.App, logger),
		RunService:        NewRunService(coordinator, storages.PayrollStorage, storages.ItemRepository, storages.ResultRepository, logger),
		ItemService:       NewItemService(coordinator, producer, storages.ItemRepository, logger),
		ClaimService:      NewClaimService(coordinator, claims, producer, logger),
		DecryptionService: NewDecryptionService(gw, storages.DecryptionRepository, cfg.Gateway.DefaultDeadline, logger),
		AppInfoService:    appInfoService,
	}, nil
}

// seedRegistry restores the run ledger from storage: items in ascending
// index order, then each run aggregate with its processed index set and
// per-item results. Restored handles reference ciphertexts of the previous
// engine instance; scheduling, coverage, and metadata stay correct, while
// restored totals are opaque to the fresh engine until folded anew.
func seedRegistry(ctx context.Context, registry *payroll.Registry, storages *store.Storages) error {
	items, err := storages.ItemRepository.GetAllItems(ctx)
	if err != nil {
		return fmt.Errorf("loading items: %w", err)
	}
	for _, item := range items {
		registry.SeedItem(item)
	}

	runs, err := storages.PayrollStorage.GetAllRuns(ctx)
	if err != nil {
		return fmt.Errorf("loading runs: %w", err)
	}
	for _, run := range runs {
		processed, err := storages.ResultRepository.GetProcessedIndexes(ctx, run.RunID)
		if err != nil {
			return fmt.Errorf("loading processed indexes for run %d: %w", run.RunID, err)
		}
		registry.SeedRun(run, processed)

		results, err := storages.ResultRepository.GetResults(ctx, run.RunID)
		if err != nil {
			return fmt.Errorf("loading results for run %d: %w", run.RunID, err)
		}
		for _, result := range results {
			registry.SeedResult(result)
		}
	}

	return nil
}
