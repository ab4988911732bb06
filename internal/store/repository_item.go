package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/models"
)

// itemRepository is the PostgreSQL-backed implementation of [ItemRepository].
// It persists enrolled payroll items against the "payroll_items" table.
// Encrypted fields (base value, adjustment, latest net) are written as
// opaque handle strings.
type itemRepository struct {
	*DB
	logger *logger.Logger
}

// NewItemRepository constructs an [ItemRepository] backed by the provided
// database connection and logger.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	return &itemRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveItem inserts a freshly enrolled item.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrItemAlreadyExists].
//   - Any other execution failure → wrapped with [ErrExecutingQuery].
func (r *itemRepository) SaveItem(ctx context.Context, item models.Item) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, saveItem,
		item.Index,
		item.SubjectID,
		item.Category,
		item.Tier,
		item.Active,
		item.BaseValue.Handle,
		item.Adjustment.Handle,
		item.LatestNet.Handle,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.SaveItem").
			Int64("item_index", item.Index).
			Msg("failed to insert item")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return fmt.Errorf("%w: index=%d", ErrItemAlreadyExists, item.Index)
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// UpdateItem rewrites the mutable columns of an existing item. Processing a
// batch touches the adjustment and latest-net handles of every item in the
// range, so items are replaced whole.
//
// Returns [ErrItemNotFound] when no row matches the ledger index.
func (r *itemRepository) UpdateItem(ctx context.Context, item models.Item) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, updateItem,
		item.Index,
		item.SubjectID,
		item.Category,
		item.Tier,
		item.Active,
		item.BaseValue.Handle,
		item.Adjustment.Handle,
		item.LatestNet.Handle,
		item.UpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.UpdateItem").
			Int64("item_index", item.Index).
			Msg("failed to update item")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.UpdateItem").
			Int64("item_index", item.Index).
			Msg("failed to get rows affected after update")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if rowsAffected == 0 {
		log.Warn().
			Str("func", "itemRepository.UpdateItem").
			Int64("item_index", item.Index).
			Msg("no rows affected during update: item not found")
		return fmt.Errorf("%w: index=%d", ErrItemNotFound, item.Index)
	}

	return nil
}

// GetItem retrieves a single item by its ledger index.
//
// Returns [ErrItemNotFound] when the index matches no row.
func (r *itemRepository) GetItem(ctx context.Context, index int64) (models.Item, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getItem, index)
	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "itemRepository.GetItem").
			Int64("item_index", index).
			Msg("failed to execute query for getting item")
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, fmt.Errorf("%w: index=%d", ErrItemNotFound, index)
		}
		log.Err(err).
			Str("func", "itemRepository.GetItem").
			Int64("item_index", index).
			Msg("failed to scan item row")
		return models.Item{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

// GetAllItems retrieves every enrolled item in ascending index order. The
// coordinator seeds its ledger from this listing at startup, so the ordering
// guarantee matters: list positions must line up with stored indexes.
func (r *itemRepository) GetAllItems(ctx context.Context) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getAllItems)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.GetAllItems").
			Msg("failed to execute query for getting all items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectItems(ctx, rows, "itemRepository.GetAllItems")
}

// GetItems retrieves items matching the given filter in ascending index
// order. Nil filter fields add no restriction.
func (r *itemRepository) GetItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildItemsQuery(ctx, filter)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.GetItems").
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.GetItems").
			Msg("failed to execute query for getting filtered items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectItems(ctx, rows, "itemRepository.GetItems")
}

// scanItem reads one payroll_items row in [getItem] column order.
func scanItem(row rowScanner) (models.Item, error) {
	var item models.Item

	err := row.Scan(
		&item.Index,
		&item.SubjectID,
		&item.Category,
		&item.Tier,
		&item.Active,
		&item.BaseValue.Handle,
		&item.Adjustment.Handle,
		&item.LatestNet.Handle,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return models.Item{}, err
	}

	return item, nil
}

// collectItems drains a result set of payroll_items rows.
func collectItems(ctx context.Context, rows *sql.Rows, funcName string) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	items := make([]models.Item, 0, 64)

	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Msg("failed to scan item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}
