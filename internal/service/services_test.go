package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obscuralabs/blind-payroll/internal/config"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/payroll"
	"github.com/obscuralabs/blind-payroll/internal/store"
	"github.com/obscuralabs/blind-payroll/models"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func servicesConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "services-test-sign-key",
			TokenIssuer:   "blind-payroll-test",
			TokenDuration: time.Hour,
			Version:       "1.0.0",
		},
		Engine:  config.Engine{InputKey: testEngineKey},
		Gateway: config.Gateway{SharedSecret: "shared", KeySalt: "salt", DefaultDeadline: 5 * time.Minute},
		Payroll: config.Payroll{RunFrequency: time.Hour},
	}
}

func emptyStorages() *store.Storages {
	return &store.Storages{
		OperatorRepository:   &mockOperatorRepository{},
		PayrollStorage:       &mockPayrollStorage{},
		ItemRepository:       &mockItemRepository{},
		ResultRepository:     &mockResultRepository{},
		GrantRepository:      &mockGrantRepository{},
		DecryptionRepository: &mockDecryptionRepository{},
	}
}

// ─────────────────────────────────────────────
// NewServices
// ─────────────────────────────────────────────

func TestNewServices_Success(t *testing.T) {
	services, err := NewServices(context.Background(), emptyStorages(), servicesConfig(), logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, services)
	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.RunService)
	assert.NotNil(t, services.ItemService)
	assert.NotNil(t, services.ClaimService)
	assert.NotNil(t, services.DecryptionService)
	assert.NotNil(t, services.AppInfoService)
}

func TestNewServices_MissingVersion(t *testing.T) {
	cfg := servicesConfig()
	cfg.App.Version = ""

	_, err := NewServices(context.Background(), emptyStorages(), cfg, logger.Nop())

	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

func TestNewServices_SeedsRegistryFromStorage(t *testing.T) {
	now := time.Now()
	storages := emptyStorages()
	storages.ItemRepository = &mockItemRepository{
		getAllResult: []models.Item{
			{Index: 0, SubjectID: 1001, Tier: 2, Active: true, BaseValue: models.EncryptedAmount{Handle: "h-base-0"}},
			{Index: 1, SubjectID: 1002, Tier: 3, Active: true, BaseValue: models.EncryptedAmount{Handle: "h-base-1"}},
		},
	}
	storages.PayrollStorage = &mockPayrollStorage{
		getAllResult: []models.RunAggregate{
			{
				RunID:        3,
				State:        models.RunStateAccumulating,
				ItemCount:    1,
				ActiveAtInit: 2,
				TotalGross:   models.EncryptedAmount{Handle: "h-gross"},
				CreatedAt:    now,
			},
		},
	}
	storages.ResultRepository = &mockResultRepository{
		processedByRun: map[int64][]int64{3: {0}},
		resultsByRun: map[int64][]models.ItemResult{
			3: {{RunID: 3, ItemIndex: 0, Net: models.EncryptedAmount{Handle: "h-net-0"}}},
		},
	}

	services, err := NewServices(context.Background(), storages, servicesConfig(), logger.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	// The restored run is visible with its coverage intact.
	run, err := services.RunService.GetRun(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, models.RunStateAccumulating, run.State)
	assert.Equal(t, int64(1), run.ItemCount)
	assert.Equal(t, int64(1), run.ProcessedCount)

	// The restored items are in ledger order.
	items, err := services.ItemService.GetAllItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1001), items[0].SubjectID)
	assert.Equal(t, int64(1002), items[1].SubjectID)

	// The due gate picks up from the restored run's init time.
	dueAt, ok := services.RunService.NextDueAt(ctx)
	require.True(t, ok)
	assert.WithinDuration(t, now.Add(time.Hour), dueAt, time.Second)

	_, err = services.RunService.InitRun(ctx)
	assert.ErrorIs(t, err, payroll.ErrNotDueYet)
}

func TestNewServices_SeedLoadFailure(t *testing.T) {
	storages := emptyStorages()
	storages.ItemRepository = &mockItemRepository{getAllErr: errors.New("relation does not exist")}

	_, err := NewServices(context.Background(), storages, servicesConfig(), logger.Nop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "restoring registry")
}
