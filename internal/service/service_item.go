package service

import (
	"context"
	"fmt"

	"github.com/obscuralabs/blind-payroll/internal/engine/acl"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/payroll"
	"github.com/obscuralabs/blind-payroll/internal/store"
	"github.com/obscuralabs/blind-payroll/internal/validators"
	"github.com/obscuralabs/blind-payroll/models"
)

// itemService is the concrete implementation of ItemService. Submitted
// ciphertexts pass through the ACL producer, which proof-checks them and
// grants the coordinator, the submitting operator, and the item's subject
// before the ledger ever sees the handle.
type itemService struct {
	coordinator *payroll.Coordinator
	producer    *acl.Producer

	itemRepository store.ItemRepository

	validator validators.Validator

	logger *logger.Logger
}

// NewItemService constructs an ItemService over the given coordinator,
// producer, and item repository.
func NewItemService(coordinator *payroll.Coordinator, producer *acl.Producer, itemRepository store.ItemRepository, logger *logger.Logger) ItemService {
	return &itemService{
		coordinator:    coordinator,
		producer:       producer,
		itemRepository: itemRepository,
		validator:      validators.NewPayrollValidator(),
		logger:         logger,
	}
}

// EnrollItem admits a submitted base value and appends a new item to the
// ledger. The ciphertext is verified against its input proof; admission
// grants the coordinator, the submitting operator, and the subject.
//
// Returns the enrolled item's projection or:
//   - ErrInvalidDataProvided (wrapping the field error) for a malformed request.
//   - A wrapped engine error if proof verification fails.
//   - A wrapped storage error if persisting the item fails.
func (s *itemService) EnrollItem(ctx context.Context, operatorID int64, request models.EnrollItemRequest) (models.ItemView, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request); err != nil {
		return models.ItemView{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	base, err := s.producer.VerifyInput(ctx, request.BaseValue, models.OperatorPrincipal(operatorID), models.SubjectPrincipal(request.SubjectID))
	if err != nil {
		log.Err(err).Int64("subject_id", request.SubjectID).Msg("base value admission failed")
		return models.ItemView{}, fmt.Errorf("admitting base value: %w", err)
	}

	item, err := s.coordinator.EnrollItem(ctx, request.SubjectID, request.Category, request.Tier, request.Active, base)
	if err != nil {
		return models.ItemView{}, err
	}

	if err := s.itemRepository.SaveItem(ctx, item); err != nil {
		log.Err(err).Int64("index", item.Index).Msg("persisting enrolled item failed")
		return models.ItemView{}, fmt.Errorf("persisting item %d: %w", item.Index, err)
	}

	return itemView(item), nil
}

// AttachAdjustment admits a submitted one-time adjustment and attaches it to
// the item at the given ledger index. The grant set mirrors enrollment: the
// coordinator, the submitting operator, and the item's subject.
//
// Returns the updated item's projection or:
//   - ErrInvalidDataProvided (wrapping the field error) for a malformed request.
//   - payroll.ErrItemNotFound if the index is outside the ledger.
//   - A wrapped engine error if proof verification fails.
//   - A wrapped storage error if persisting the item fails.
func (s *itemService) AttachAdjustment(ctx context.Context, operatorID, index int64, request models.AdjustmentRequest) (models.ItemView, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request); err != nil {
		return models.ItemView{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	// The subject grant needs the item's owner, so resolve the index first.
	item, err := s.coordinator.Item(index)
	if err != nil {
		return models.ItemView{}, err
	}

	adjustment, err := s.producer.VerifyInput(ctx, request.Adjustment, models.OperatorPrincipal(operatorID), models.SubjectPrincipal(item.SubjectID))
	if err != nil {
		log.Err(err).Int64("index", index).Msg("adjustment admission failed")
		return models.ItemView{}, fmt.Errorf("admitting adjustment: %w", err)
	}

	updated, err := s.coordinator.AttachAdjustment(ctx, index, adjustment)
	if err != nil {
		return models.ItemView{}, err
	}

	if err := s.itemRepository.UpdateItem(ctx, updated); err != nil {
		log.Err(err).Int64("index", index).Msg("persisting adjusted item failed")
		return models.ItemView{}, fmt.Errorf("persisting item %d: %w", index, err)
	}

	return itemView(updated), nil
}

// GetAllItems returns the operator-facing projection of every enrolled item
// in ledger order.
func (s *itemService) GetAllItems(ctx context.Context) ([]models.ItemView, error) {
	items := s.coordinator.Items()

	views := make([]models.ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, itemView(item))
	}

	return views, nil
}

func itemView(item models.Item) models.ItemView {
	return models.ItemView{
		Index:     item.Index,
		SubjectID: item.SubjectID,
		Category:  item.Category,
		Tier:      item.Tier,
		Active:    item.Active,
		LatestNet: item.LatestNet,
	}
}
