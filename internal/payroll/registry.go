// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package payroll

import (
	"time"

	"github.com/obscuralabs/blind-payroll/models"
)

// Registry is the explicit mutable state of the payroll ledger: every run
// aggregate, the ordered item list, per-run processed-index sets and per-run
// item results. There is exactly one Registry per Coordinator and no
// package-level state; ownership passes to the Coordinator at construction
// and all access after that goes through Coordinator methods.
type Registry struct {
	runs      map[int64]*models.RunAggregate
	processed map[int64]*bitset
	results   map[int64]map[int64]models.ItemResult
	items     []*models.Item

	nextRunID  int64
	lastInitAt time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		runs:      make(map[int64]*models.RunAggregate),
		processed: make(map[int64]*bitset),
		results:   make(map[int64]map[int64]models.ItemResult),
		nextRunID: 1,
	}
}

// SeedRun restores a persisted aggregate together with the item indexes it
// has already processed. Used when the server reloads state at startup;
// run-id assignment and the due gate pick up where the restored runs left
// off.
func (r *Registry) SeedRun(agg models.RunAggregate, processedIndexes []int64) {
	run := agg
	r.runs[run.RunID] = &run

	resurrected := &bitset{}
	for _, index := range processedIndexes {
		resurrected.set(index)
	}
	r.processed[run.RunID] = resurrected

	if run.RunID >= r.nextRunID {
		r.nextRunID = run.RunID + 1
	}
	if run.CreatedAt.After(r.lastInitAt) {
		r.lastInitAt = run.CreatedAt
	}
}

// SeedItem restores a persisted item. Items must be seeded in ascending
// index order so list positions line up with their stored indexes.
func (r *Registry) SeedItem(item models.Item) {
	restored := item
	r.items = append(r.items, &restored)
}

// SeedResult restores a persisted per-run item result.
func (r *Registry) SeedResult(result models.ItemResult) {
	if r.results[result.RunID] == nil {
		r.results[result.RunID] = make(map[int64]models.ItemResult)
	}
	r.results[result.RunID][result.ItemIndex] = result
}
