package service

import (
	"context"
	"fmt"

	"github.com/obscuralabs/blind-payroll/internal/adapter"
	"github.com/obscuralabs/blind-payroll/internal/engine"
	"github.com/obscuralabs/blind-payroll/models"
)

type clientItemService struct {
	adapter  adapter.ServerAdapter
	inputKey []byte
}

func NewClientItemService(serverAdapter adapter.ServerAdapter, inputKey string) ClientItemService {
	return &clientItemService{adapter: serverAdapter, inputKey: []byte(inputKey)}
}

func (i *clientItemService) EnrollItem(ctx context.Context, operatorID int64, form EnrollItemForm) (models.ItemView, error) {
	if len(i.inputKey) == 0 {
		return models.ItemView{}, ErrInputKeyNotSet
	}

	// The plaintext amount is sealed before it leaves the process; the
	// request carries only the ciphertext and its admission proof.
	request := models.EnrollItemRequest{
		SubjectID: form.SubjectID,
		Category:  form.Category,
		Tier:      form.Tier,
		Active:    form.Active,
		BaseValue: engine.SealInput(i.inputKey, form.Value, models.OperatorPrincipal(operatorID)),
	}

	item, err := i.adapter.EnrollItem(ctx, request)
	if err != nil {
		return models.ItemView{}, fmt.Errorf("enroll item on server: %w", mapAdapterError(err))
	}

	return item, nil
}

func (i *clientItemService) AttachAdjustment(ctx context.Context, operatorID, index int64, value models.Micro) (models.ItemView, error) {
	if len(i.inputKey) == 0 {
		return models.ItemView{}, ErrInputKeyNotSet
	}

	request := models.AdjustmentRequest{
		Adjustment: engine.SealInput(i.inputKey, value, models.OperatorPrincipal(operatorID)),
	}

	item, err := i.adapter.AttachAdjustment(ctx, index, request)
	if err != nil {
		return models.ItemView{}, fmt.Errorf("attach adjustment on server: %w", mapAdapterError(err))
	}

	return item, nil
}

func (i *clientItemService) GetItems(ctx context.Context) ([]models.ItemView, error) {
	items, err := i.adapter.GetItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("get items on server: %w", mapAdapterError(err))
	}

	return items, nil
}

func (i *clientItemService) ClaimAboveThreshold(ctx context.Context, request models.ClaimRequest) (models.ClaimResponse, error) {
	response, err := i.adapter.ClaimAboveThreshold(ctx, request)
	if err != nil {
		return models.ClaimResponse{}, fmt.Errorf("claim above threshold on server: %w", mapAdapterError(err))
	}

	return response, nil
}

func (i *clientItemService) ClaimWithinRange(ctx context.Context, request models.ClaimRequest) (models.ClaimResponse, error) {
	response, err := i.adapter.ClaimWithinRange(ctx, request)
	if err != nil {
		return models.ClaimResponse{}, fmt.Errorf("claim within range on server: %w", mapAdapterError(err))
	}

	return response, nil
}
