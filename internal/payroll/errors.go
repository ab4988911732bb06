// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package payroll

import "errors"

var (
	// ErrInvalidRange is returned when a batch range is not a half-open,
	// non-empty slice of the current item list.
	ErrInvalidRange = errors.New("batch range is invalid")

	// ErrRunNotFound is returned when the requested run id was never
	// assigned.
	ErrRunNotFound = errors.New("run not found")

	// ErrRunNotInitialized is returned when batch processing is attempted
	// against a run id with no initialized aggregate.
	ErrRunNotInitialized = errors.New("run not initialized")

	// ErrAlreadySealed is returned for any mutation of a sealed run.
	ErrAlreadySealed = errors.New("run is already sealed")

	// ErrNotDueYet is returned when a run is initialized before the
	// configured interval since the previous init has elapsed.
	ErrNotDueYet = errors.New("run is not due yet")

	// ErrDoubleProcessing is returned when a batch range overlaps an index
	// this run has already covered.
	ErrDoubleProcessing = errors.New("item index already processed in this run")

	// ErrRunIncomplete is returned when sealing is attempted before every
	// item that was active at init has been processed.
	ErrRunIncomplete = errors.New("run has unprocessed active items")

	// ErrReentrantCall is returned when a run operation is entered while
	// another operation on the same run is still in flight.
	ErrReentrantCall = errors.New("reentrant call on run")

	// ErrItemNotFound is returned when an item index is outside the
	// enrolled list.
	ErrItemNotFound = errors.New("item not found")
)
