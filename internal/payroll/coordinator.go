// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package payroll

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/obscuralabs/blind-payroll/internal/engine"
	"github.com/obscuralabs/blind-payroll/internal/engine/acl"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/tax"
	"github.com/obscuralabs/blind-payroll/internal/tiers"
	"github.com/obscuralabs/blind-payroll/models"
)

// BatchOutcome reports one committed batch: the refreshed aggregate, the
// per-item results produced, and how many indexes in the range were visited
// but skipped as inactive.
type BatchOutcome struct {
	Run       models.RunAggregate
	Results   []models.ItemResult
	Processed int64
	Skipped   int64
}

// Coordinator drives payroll runs over the enrolled item list.
//
// Mutating operations are serialized end to end on opMu, so their semantics
// are those of a single-threaded ledger: each call executes to completion
// before the next begins, and a one-time adjustment can never be folded
// twice even when two unsealed runs overlap in time. Read APIs take only the
// short registry lock and stay responsive during a long batch.
//
// In addition, each run carries an in-flight marker checked before opMu is
// acquired. A nested call on a run whose operation is still executing fails
// fast with ErrReentrantCall instead of deadlocking on the non-reentrant
// mutex.
type Coordinator struct {
	mu       sync.Mutex // guards registry data and the inFlight set
	opMu     sync.Mutex // serializes mutating operations end to end
	registry *Registry
	inFlight map[int64]bool

	engine      engine.Engine
	producer    *acl.Producer
	accumulator *Accumulator
	evaluator   *tax.Evaluator
	table       *tiers.Table

	frequency time.Duration

	log *logger.Logger
}

// NewCoordinator takes ownership of the registry. frequency is the minimum
// interval between run initializations; zero disables the due gate.
func NewCoordinator(registry *Registry, eng engine.Engine, producer *acl.Producer, evaluator *tax.Evaluator, table *tiers.Table, frequency time.Duration, log *logger.Logger) *Coordinator {
	return &Coordinator{
		registry:    registry,
		inFlight:    make(map[int64]bool),
		engine:      eng,
		producer:    producer,
		accumulator: NewAccumulator(producer),
		evaluator:   evaluator,
		table:       table,
		frequency:   frequency,
		log:         log,
	}
}

// InitRun opens the next payroll run: assigns a monotonically increasing run
// id, captures the current active item count, and seeds encrypted-zero
// totals. The due gate is anchored at the init transition itself, so the
// schedule runs init-to-init and a slow run cannot push the next period
// later.
func (c *Coordinator) InitRun(ctx context.Context) (models.RunAggregate, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	now := time.Now()
	if !c.registry.lastInitAt.IsZero() {
		if due := c.registry.lastInitAt.Add(c.frequency); now.Before(due) {
			return models.RunAggregate{}, fmt.Errorf("%w: due at %s", ErrNotDueYet, due.Format(time.RFC3339))
		}
	}

	runID := c.registry.nextRunID

	active := int64(0)
	for _, item := range c.registry.items {
		if item.Active {
			active++
		}
	}

	agg, err := c.accumulator.Init(ctx, runID, active, now)
	if err != nil {
		return models.RunAggregate{}, fmt.Errorf("init run %d: %w", runID, err)
	}

	c.mu.Lock()
	c.registry.runs[runID] = &agg
	c.registry.processed[runID] = &bitset{}
	c.registry.nextRunID = runID + 1
	c.registry.lastInitAt = now
	c.mu.Unlock()

	c.log.Info().
		Int64("run_id", runID).
		Int64("active_at_init", active).
		Msg("payroll run initialized")

	return agg, nil
}

// ProcessBatch computes the half-open item range [start, end) for the given
// run. Every active item in the range is evaluated branchlessly, its result
// granted to the coordinator and the item's subject, and its contribution
// folded into the run totals; inactive items are skipped. The batch commits
// atomically: a failure anywhere leaves the registry exactly as it was.
//
// A range that overlaps an index this run already covered is rejected with
// ErrDoubleProcessing before any work is done.
func (c *Coordinator) ProcessBatch(ctx context.Context, runID, start, end int64) (BatchOutcome, error) {
	if err := c.beginRunOp(runID, ErrRunNotInitialized); err != nil {
		return BatchOutcome{}, err
	}
	defer c.endRunOp(runID)

	c.opMu.Lock()
	defer c.opMu.Unlock()

	agg := *c.registry.runs[runID]
	if agg.Sealed() {
		return BatchOutcome{}, fmt.Errorf("run %d: %w", runID, ErrAlreadySealed)
	}
	if start < 0 || start >= end || end > int64(len(c.registry.items)) {
		return BatchOutcome{}, fmt.Errorf("%w: [%d, %d) over %d items", ErrInvalidRange, start, end, len(c.registry.items))
	}

	processed := c.registry.processed[runID]
	if processed.covered(start, end) {
		return BatchOutcome{}, fmt.Errorf("%w: range [%d, %d)", ErrDoubleProcessing, start, end)
	}

	// Compute phase. Nothing below mutates the registry; intermediate
	// handles created by a failed batch are orphaned in the engine and
	// never granted.
	type stagedItem struct {
		item   *models.Item
		result models.ItemResult
		reset  models.EncryptedAmount
	}

	var (
		staged        []stagedItem
		contributions []Contribution
		skipped       int64
	)
	for i := start; i < end; i++ {
		item := c.registry.items[i]
		if !item.Active {
			skipped++
			continue
		}

		result, reset, err := c.computeItem(ctx, runID, item)
		if err != nil {
			return BatchOutcome{}, fmt.Errorf("run %d item %d: %w", runID, item.Index, err)
		}

		staged = append(staged, stagedItem{
			item:   item,
			result: result,
			reset:  reset,
		})
		contributions = append(contributions, Contribution{
			Gross:      result.Gross,
			Deductions: result.Deductions,
			Net:        result.Net,
		})
	}

	folded, err := c.accumulator.FoldIn(ctx, agg, contributions...)
	if err != nil {
		return BatchOutcome{}, fmt.Errorf("run %d fold: %w", runID, err)
	}

	// Commit phase: publish the folded aggregate, per-item results, the
	// adjustment resets and the coverage marks in one registry lock.
	now := time.Now()
	outcome := BatchOutcome{
		Run:       folded,
		Results:   make([]models.ItemResult, 0, len(staged)),
		Processed: int64(len(staged)),
		Skipped:   skipped,
	}

	c.mu.Lock()
	*c.registry.runs[runID] = folded
	if c.registry.results[runID] == nil {
		c.registry.results[runID] = make(map[int64]models.ItemResult)
	}
	for _, s := range staged {
		s.item.LatestNet = s.result.Net
		s.item.Adjustment = s.reset
		s.item.UpdatedAt = now
		c.registry.results[runID][s.result.ItemIndex] = s.result
		outcome.Results = append(outcome.Results, s.result)
	}
	for i := start; i < end; i++ {
		processed.set(i)
	}
	c.mu.Unlock()

	c.log.Debug().
		Int64("run_id", runID).
		Int64("start", start).
		Int64("end", end).
		Int64("items", outcome.Processed).
		Int64("skipped", skipped).
		Msg("batch committed")

	return outcome, nil
}

// FinalizeRun seals the run: no further batch may fold into it, and its
// audit fingerprint is fixed. Sealing is refused while active items from
// init remain unprocessed unless force is set.
func (c *Coordinator) FinalizeRun(ctx context.Context, runID int64, force bool) (models.RunAggregate, error) {
	if err := c.beginRunOp(runID, ErrRunNotFound); err != nil {
		return models.RunAggregate{}, err
	}
	defer c.endRunOp(runID)

	c.opMu.Lock()
	defer c.opMu.Unlock()

	agg := *c.registry.runs[runID]
	if agg.Sealed() {
		return models.RunAggregate{}, fmt.Errorf("run %d: %w", runID, ErrAlreadySealed)
	}
	if !force && agg.ItemCount < agg.ActiveAtInit {
		return models.RunAggregate{}, fmt.Errorf("%w: processed %d of %d active items", ErrRunIncomplete, agg.ItemCount, agg.ActiveAtInit)
	}

	entropy := make([]byte, 16)
	if _, err := rand.Read(entropy); err != nil {
		return models.RunAggregate{}, fmt.Errorf("sealing run %d: %w", runID, err)
	}

	sealed, err := c.accumulator.Seal(agg, time.Now(), entropy)
	if err != nil {
		return models.RunAggregate{}, err
	}

	c.mu.Lock()
	*c.registry.runs[runID] = sealed
	c.mu.Unlock()

	c.log.Info().
		Int64("run_id", runID).
		Int64("item_count", sealed.ItemCount).
		Bool("forced", force).
		Str("fingerprint", hex.EncodeToString(sealed.Fingerprint)).
		Msg("payroll run sealed")

	return sealed, nil
}

// EnrollItem appends a subject to the end of the ledger list. The base value
// must already be verified and granted; enrollment only records it. The
// one-time adjustment starts as a granted encrypted zero.
func (c *Coordinator) EnrollItem(ctx context.Context, subjectID int64, category string, tier uint64, active bool, base models.EncryptedAmount) (models.Item, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	zero, err := c.producer.EncryptConstant(ctx, 0, models.SubjectPrincipal(subjectID))
	if err != nil {
		return models.Item{}, fmt.Errorf("enrolling subject %d: %w", subjectID, err)
	}

	now := time.Now()
	item := &models.Item{
		Index:      int64(len(c.registry.items)),
		SubjectID:  subjectID,
		Category:   category,
		Tier:       tier,
		Active:     active,
		BaseValue:  base,
		Adjustment: zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	c.mu.Lock()
	c.registry.items = append(c.registry.items, item)
	c.mu.Unlock()

	c.log.Info().
		Int64("index", item.Index).
		Int64("subject_id", subjectID).
		Uint64("tier", tier).
		Bool("active", active).
		Msg("item enrolled")

	return *item, nil
}

// AttachAdjustment replaces the item's one-time adjustment. The amount must
// already be verified and granted. It will be folded into exactly one run
// and reset to encrypted zero afterwards.
func (c *Coordinator) AttachAdjustment(ctx context.Context, index int64, adjustment models.EncryptedAmount) (models.Item, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if index < 0 || index >= int64(len(c.registry.items)) {
		return models.Item{}, fmt.Errorf("%w: index %d", ErrItemNotFound, index)
	}

	c.mu.Lock()
	item := c.registry.items[index]
	item.Adjustment = adjustment
	item.UpdatedAt = time.Now()
	snapshot := *item
	c.mu.Unlock()

	return snapshot, nil
}

// SetItemActive flips the item's participation flag. The change affects the
// next run's active count; runs already initialized keep the count captured
// at their init.
func (c *Coordinator) SetItemActive(ctx context.Context, index int64, active bool) (models.Item, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if index < 0 || index >= int64(len(c.registry.items)) {
		return models.Item{}, fmt.Errorf("%w: index %d", ErrItemNotFound, index)
	}

	c.mu.Lock()
	item := c.registry.items[index]
	item.Active = active
	item.UpdatedAt = time.Now()
	snapshot := *item
	c.mu.Unlock()

	return snapshot, nil
}

// NextDueAt reports when the next run becomes initializable. ok is false
// when no run was ever initialized, in which case a run is due immediately.
func (c *Coordinator) NextDueAt() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.registry.lastInitAt.IsZero() {
		return time.Time{}, false
	}

	return c.registry.lastInitAt.Add(c.frequency), true
}

// Run returns the externally visible projection of one run.
func (c *Coordinator) Run(runID int64) (models.RunMetadata, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	agg, ok := c.registry.runs[runID]
	if !ok {
		return models.RunMetadata{}, fmt.Errorf("%w: run %d", ErrRunNotFound, runID)
	}

	return runMetadata(agg, c.registry.processed[runID]), nil
}

// Runs lists every known run, oldest first.
func (c *Coordinator) Runs() []models.RunMetadata {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.RunMetadata, 0, len(c.registry.runs))
	for id, agg := range c.registry.runs {
		out = append(out, runMetadata(agg, c.registry.processed[id]))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RunID < out[j].RunID })

	return out
}

// Aggregate returns a copy of the run's full aggregate, encrypted totals
// included. Callers inside the service boundary use it to feed decryption
// requests; the handles never leave the server in any other form.
func (c *Coordinator) Aggregate(runID int64) (models.RunAggregate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	agg, ok := c.registry.runs[runID]
	if !ok {
		return models.RunAggregate{}, fmt.Errorf("%w: run %d", ErrRunNotFound, runID)
	}

	return *agg, nil
}

// Item returns a copy of one enrolled item.
func (c *Coordinator) Item(index int64) (models.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= int64(len(c.registry.items)) {
		return models.Item{}, fmt.Errorf("%w: index %d", ErrItemNotFound, index)
	}

	return *c.registry.items[index], nil
}

// Items returns copies of every enrolled item in ledger order.
func (c *Coordinator) Items() []models.Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Item, 0, len(c.registry.items))
	for _, item := range c.registry.items {
		out = append(out, *item)
	}

	return out
}

// Result returns the per-run result of one item.
func (c *Coordinator) Result(runID, index int64) (models.ItemResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.registry.runs[runID]; !ok {
		return models.ItemResult{}, fmt.Errorf("%w: run %d", ErrRunNotFound, runID)
	}
	result, ok := c.registry.results[runID][index]
	if !ok {
		return models.ItemResult{}, fmt.Errorf("%w: no result for index %d in run %d", ErrItemNotFound, index, runID)
	}

	return result, nil
}

// computeItem runs the branchless per-item pipeline: clamp the one-time
// adjustment to the item's tier cap, derive gross, deductions and net, and
// grant every derived value to the coordinator and the item's subject. It
// also produces the granted encrypted zero that will replace the adjustment
// at commit.
func (c *Coordinator) computeItem(ctx context.Context, runID int64, item *models.Item) (models.ItemResult, models.EncryptedAmount, error) {
	subject := models.SubjectPrincipal(item.SubjectID)

	tierValue, err := c.engine.EncryptConstant(ctx, models.Micro(item.Tier))
	if err != nil {
		return models.ItemResult{}, models.EncryptedAmount{}, fmt.Errorf("encrypting tier: %w", err)
	}
	bonus, err := c.table.Approve(ctx, tierValue, item.Adjustment)
	if err != nil {
		return models.ItemResult{}, models.EncryptedAmount{}, fmt.Errorf("clamping adjustment: %w", err)
	}

	gross, err := c.engine.Add(ctx, item.BaseValue, bonus)
	if err != nil {
		return models.ItemResult{}, models.EncryptedAmount{}, fmt.Errorf("deriving gross: %w", err)
	}
	deductions, err := c.evaluator.EvaluateBrackets(ctx, gross)
	if err != nil {
		return models.ItemResult{}, models.EncryptedAmount{}, fmt.Errorf("evaluating brackets: %w", err)
	}
	net, err := c.engine.Sub(ctx, gross, deductions)
	if err != nil {
		return models.ItemResult{}, models.EncryptedAmount{}, fmt.Errorf("deriving net: %w", err)
	}

	for _, derived := range []models.EncryptedAmount{gross, deductions, net} {
		if err := c.producer.Own(ctx, derived, subject); err != nil {
			return models.ItemResult{}, models.EncryptedAmount{}, err
		}
	}

	reset, err := c.producer.EncryptConstant(ctx, 0, subject)
	if err != nil {
		return models.ItemResult{}, models.EncryptedAmount{}, fmt.Errorf("resetting adjustment: %w", err)
	}

	result := models.ItemResult{
		RunID:      runID,
		ItemIndex:  item.Index,
		Gross:      gross,
		Deductions: deductions,
		Net:        net,
		ComputedAt: time.Now(),
	}

	return result, reset, nil
}

// beginRunOp marks the run as having an operation in flight. It runs before
// opMu is taken, so a nested call on the same run errors instead of
// deadlocking.
func (c *Coordinator) beginRunOp(runID int64, missing error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.registry.runs[runID]; !ok {
		return fmt.Errorf("%w: run %d", missing, runID)
	}
	if c.inFlight[runID] {
		return fmt.Errorf("%w %d", ErrReentrantCall, runID)
	}
	c.inFlight[runID] = true

	return nil
}

func (c *Coordinator) endRunOp(runID int64) {
	c.mu.Lock()
	delete(c.inFlight, runID)
	c.mu.Unlock()
}

func runMetadata(agg *models.RunAggregate, processed *bitset) models.RunMetadata {
	meta := models.RunMetadata{
		RunID:        agg.RunID,
		State:        agg.State,
		ItemCount:    agg.ItemCount,
		ActiveAtInit: agg.ActiveAtInit,
		Sealed:       agg.Sealed(),
		CreatedAt:    agg.CreatedAt,
		SealedAt:     agg.SealedAt,
	}
	if processed != nil {
		meta.ProcessedCount = processed.count
	}
	if len(agg.Fingerprint) > 0 {
		meta.Fingerprint = hex.EncodeToString(agg.Fingerprint)
	}

	return meta
}
