package tax

import "errors"

var (
	// ErrEmptySchedule is returned when an evaluator is constructed with
	// no brackets.
	ErrEmptySchedule = errors.New("bracket schedule is empty")

	// ErrThresholdOrder is returned when bracket thresholds are not
	// strictly increasing.
	ErrThresholdOrder = errors.New("bracket thresholds must be strictly increasing")

	// ErrInvalidRatePlan is returned when a shift combination is out of
	// range or realizes a non-positive rate.
	ErrInvalidRatePlan = errors.New("invalid rate plan")
)
