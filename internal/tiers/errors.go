package tiers

import "errors"

var (
	// ErrEmptyTable is returned when a cap table is constructed with no
	// tiers.
	ErrEmptyTable = errors.New("tier cap table is empty")

	// ErrTierOrder is returned when tier identifiers are not strictly
	// increasing.
	ErrTierOrder = errors.New("tier identifiers must be strictly increasing")
)
