package service

import (
	"context"
	"time"

	"github.com/obscuralabs/blind-payroll/internal/store"
	"github.com/obscuralabs/blind-payroll/models"
)

// Stub repositories shared by the server-side service tests. Each mock
// records the values it was handed and returns the configured error.

var (
	_ store.OperatorRepository   = (*mockOperatorRepository)(nil)
	_ store.PayrollStorage       = (*mockPayrollStorage)(nil)
	_ store.ItemRepository       = (*mockItemRepository)(nil)
	_ store.ResultRepository     = (*mockResultRepository)(nil)
	_ store.GrantRepository      = (*mockGrantRepository)(nil)
	_ store.DecryptionRepository = (*mockDecryptionRepository)(nil)
)

// ─────────────────────────────────────────────
// Mock: OperatorRepository
// ─────────────────────────────────────────────

type mockOperatorRepository struct {
	createErr error
	findErr   error

	foundOperator    models.Operator
	createdOperators []models.Operator
}

func (m *mockOperatorRepository) CreateOperator(_ context.Context, operator models.Operator) (models.Operator, error) {
	if m.createErr != nil {
		return models.Operator{}, m.createErr
	}
	operator.OperatorID = int64(len(m.createdOperators) + 1)
	m.createdOperators = append(m.createdOperators, operator)
	return operator, nil
}

func (m *mockOperatorRepository) FindOperatorByLogin(_ context.Context, _ string) (models.Operator, error) {
	return m.foundOperator, m.findErr
}

// ─────────────────────────────────────────────
// Mock: PayrollStorage
// ─────────────────────────────────────────────

type mockPayrollStorage struct {
	saveErr   error
	updateErr error
	sealErr   error

	savedRuns   []models.RunAggregate
	updatedRuns []models.RunAggregate
	sealedRuns  []models.RunAggregate

	getAllResult []models.RunAggregate
	getAllErr    error
}

func (m *mockPayrollStorage) SaveRun(_ context.Context, run models.RunAggregate) error {
	if m.saveErr == nil {
		m.savedRuns = append(m.savedRuns, run)
	}
	return m.saveErr
}

func (m *mockPayrollStorage) UpdateRun(_ context.Context, run models.RunAggregate) error {
	if m.updateErr == nil {
		m.updatedRuns = append(m.updatedRuns, run)
	}
	return m.updateErr
}

func (m *mockPayrollStorage) SealRun(_ context.Context, run models.RunAggregate) error {
	if m.sealErr == nil {
		m.sealedRuns = append(m.sealedRuns, run)
	}
	return m.sealErr
}

func (m *mockPayrollStorage) GetRun(_ context.Context, _ int64) (models.RunAggregate, error) {
	return models.RunAggregate{}, nil
}

func (m *mockPayrollStorage) GetAllRuns(_ context.Context) ([]models.RunAggregate, error) {
	return m.getAllResult, m.getAllErr
}

func (m *mockPayrollStorage) GetRunsByState(_ context.Context, _ models.RunState) ([]models.RunAggregate, error) {
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: ItemRepository
// ─────────────────────────────────────────────

type mockItemRepository struct {
	saveErr   error
	updateErr error

	savedItems   []models.Item
	updatedItems []models.Item

	getAllResult []models.Item
	getAllErr    error
}

func (m *mockItemRepository) SaveItem(_ context.Context, item models.Item) error {
	if m.saveErr == nil {
		m.savedItems = append(m.savedItems, item)
	}
	return m.saveErr
}

func (m *mockItemRepository) UpdateItem(_ context.Context, item models.Item) error {
	if m.updateErr == nil {
		m.updatedItems = append(m.updatedItems, item)
	}
	return m.updateErr
}

func (m *mockItemRepository) GetItem(_ context.Context, _ int64) (models.Item, error) {
	return models.Item{}, nil
}

func (m *mockItemRepository) GetAllItems(_ context.Context) ([]models.Item, error) {
	return m.getAllResult, m.getAllErr
}

func (m *mockItemRepository) GetItems(_ context.Context, _ models.ItemFilter) ([]models.Item, error) {
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: ResultRepository
// ─────────────────────────────────────────────

type mockResultRepository struct {
	saveErr error

	savedResults []models.ItemResult

	resultsByRun   map[int64][]models.ItemResult
	processedByRun map[int64][]int64
}

func (m *mockResultRepository) SaveResult(_ context.Context, result models.ItemResult) error {
	if m.saveErr == nil {
		m.savedResults = append(m.savedResults, result)
	}
	return m.saveErr
}

func (m *mockResultRepository) GetResults(_ context.Context, runID int64) ([]models.ItemResult, error) {
	return m.resultsByRun[runID], nil
}

func (m *mockResultRepository) GetProcessedIndexes(_ context.Context, runID int64) ([]int64, error) {
	return m.processedByRun[runID], nil
}

// ─────────────────────────────────────────────
// Mock: GrantRepository
// ─────────────────────────────────────────────

type mockGrantRepository struct {
	recordErr error

	grants []models.AccessGrant
}

func (m *mockGrantRepository) RecordGrant(_ context.Context, grant models.AccessGrant) error {
	if m.recordErr == nil {
		m.grants = append(m.grants, grant)
	}
	return m.recordErr
}

func (m *mockGrantRepository) GetGrantsByHandle(_ context.Context, _ models.HandleID) ([]models.AccessGrant, error) {
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: DecryptionRepository
// ─────────────────────────────────────────────

type stateTransition struct {
	requestID   string
	state       models.DecryptionState
	fulfilledAt *time.Time
}

type mockDecryptionRepository struct {
	saveErr   error
	updateErr error

	savedRequests []models.DecryptionRequest
	transitions   []stateTransition
}

func (m *mockDecryptionRepository) SaveDecryptionRequest(_ context.Context, request models.DecryptionRequest) error {
	if m.saveErr == nil {
		m.savedRequests = append(m.savedRequests, request)
	}
	return m.saveErr
}

func (m *mockDecryptionRepository) UpdateDecryptionState(_ context.Context, requestID string, state models.DecryptionState, fulfilledAt *time.Time) error {
	if m.updateErr == nil {
		m.transitions = append(m.transitions, stateTransition{requestID: requestID, state: state, fulfilledAt: fulfilledAt})
	}
	return m.updateErr
}

func (m *mockDecryptionRepository) GetDecryptionRequest(_ context.Context, _ string) (models.DecryptionRequest, error) {
	return models.DecryptionRequest{}, nil
}

func (m *mockDecryptionRepository) GetPendingPastDeadline(_ context.Context, _ time.Time) ([]models.DecryptionRequest, error) {
	return nil, nil
}
