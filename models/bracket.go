// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package models

import "math"

// MaxThreshold marks the open upper bound of the final bracket.
const MaxThreshold = Micro(math.MaxUint64)

// RatePlan describes how a bracket's rate is applied to an encrypted amount.
//
// The engine this system targets has no encrypted multiply or divide, so a
// rate is realized as a fixed combination of right shifts:
//
//	contribution = (x >> LeadShift) - (x >> s) for each s in SubShifts
//
// The effective fraction is 2^-LeadShift minus the sum of 2^-s terms. Each
// shift truncates toward zero, so the realized contribution deviates from
// the exact product by strictly less than one micro-unit per shift term;
// callers comparing against an exact oracle must allow that epsilon.
type RatePlan struct {
	// PartsPerMillion is the nominal rate scaled by one million, kept for
	// display and audit: 93750 means 9.375%. The shifts, not this field,
	// are authoritative for the computed value.
	PartsPerMillion uint32 `json:"parts_per_million"`

	// LeadShift is the leading right-shift term, added once. Must be in
	// the range [1, 63].
	LeadShift uint `json:"lead_shift"`

	// SubShifts are right-shift terms subtracted from the leading term.
	// Each must be strictly greater than LeadShift so the realized
	// fraction stays positive.
	SubShifts []uint `json:"sub_shifts,omitempty"`
}

// EffectivePartsPerMillion returns the rate the shift combination actually
// realizes, scaled by one million and truncated. For shifts up to six bits
// the value is exact.
func (r RatePlan) EffectivePartsPerMillion() uint64 {
	ppm := uint64(1_000_000) >> r.LeadShift
	for _, s := range r.SubShifts {
		ppm -= uint64(1_000_000) >> s
	}
	return ppm
}

// MaxTruncationError returns the worst-case deviation of the shift
// combination from the exact rational product, in micro-units.
func (r RatePlan) MaxTruncationError() Micro {
	return Micro(1 + len(r.SubShifts))
}

// Bracket is one segment of a progressive schedule: amounts between the
// previous bracket's threshold and UpperThreshold accrue at Rate.
type Bracket struct {
	// UpperThreshold is the inclusive upper bound of the bracket in
	// micro-units. The final bracket uses MaxThreshold.
	UpperThreshold Micro `json:"upper_threshold"`

	// Rate applies to the portion of the amount inside this bracket.
	Rate RatePlan `json:"rate"`
}

// DefaultBracketSchedule is the progressive schedule used when the server
// configuration supplies none: 50,000 and 100,000 unit thresholds with
// shift-realized rates of 9.375%, 18.75% and 31.25%.
//
//	9.375%  = 1/8 - 1/32
//	18.75%  = 1/4 - 1/16
//	31.25%  = 1/2 - 1/8 - 1/16
func DefaultBracketSchedule() []Bracket {
	return []Bracket{
		{UpperThreshold: MicroFromUnits(50_000), Rate: RatePlan{PartsPerMillion: 93_750, LeadShift: 3, SubShifts: []uint{5}}},
		{UpperThreshold: MicroFromUnits(100_000), Rate: RatePlan{PartsPerMillion: 187_500, LeadShift: 2, SubShifts: []uint{4}}},
		{UpperThreshold: MaxThreshold, Rate: RatePlan{PartsPerMillion: 312_500, LeadShift: 1, SubShifts: []uint{3, 4}}},
	}
}
