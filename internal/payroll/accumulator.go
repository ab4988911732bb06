// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package payroll

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/obscuralabs/blind-payroll/internal/engine/acl"
	"github.com/obscuralabs/blind-payroll/models"
)

// Contribution is one processed item's fold input: the three encrypted
// values a run total accrues.
type Contribution struct {
	Gross      models.EncryptedAmount
	Deductions models.EncryptedAmount
	Net        models.EncryptedAmount
}

// Accumulator owns the encrypted totals of a run. All handle production goes
// through an acl.Producer, so every replacement total is granted to the
// coordinator principal before it becomes visible; a fold that skipped the
// re-grant would leave the run unreadable by its own owner.
//
// FoldIn and Seal operate on aggregate values, not pointers: they return an
// updated copy and leave the input untouched, which lets the coordinator
// publish the result only after a whole batch has succeeded.
type Accumulator struct {
	producer *acl.Producer
}

func NewAccumulator(producer *acl.Producer) *Accumulator {
	return &Accumulator{producer: producer}
}

// Init creates a fresh aggregate whose totals are three independently
// produced encrypted zeros.
func (a *Accumulator) Init(ctx context.Context, runID, activeAtInit int64, now time.Time) (models.RunAggregate, error) {
	gross, err := a.producer.EncryptConstant(ctx, 0)
	if err != nil {
		return models.RunAggregate{}, err
	}
	deductions, err := a.producer.EncryptConstant(ctx, 0)
	if err != nil {
		return models.RunAggregate{}, err
	}
	net, err := a.producer.EncryptConstant(ctx, 0)
	if err != nil {
		return models.RunAggregate{}, err
	}

	return models.RunAggregate{
		RunID:           runID,
		State:           models.RunStateInitialized,
		ActiveAtInit:    activeAtInit,
		TotalGross:      gross,
		TotalDeductions: deductions,
		TotalNet:        net,
		CreatedAt:       now,
	}, nil
}

// FoldIn returns a copy of agg with every contribution added in and the item
// count advanced. A failed fold discards cleanly because the input aggregate
// is never mutated.
func (a *Accumulator) FoldIn(ctx context.Context, agg models.RunAggregate, contributions ...Contribution) (models.RunAggregate, error) {
	if agg.Sealed() {
		return models.RunAggregate{}, ErrAlreadySealed
	}

	for _, contribution := range contributions {
		var err error
		if agg.TotalGross, err = a.producer.Add(ctx, agg.TotalGross, contribution.Gross); err != nil {
			return models.RunAggregate{}, err
		}
		if agg.TotalDeductions, err = a.producer.Add(ctx, agg.TotalDeductions, contribution.Deductions); err != nil {
			return models.RunAggregate{}, err
		}
		if agg.TotalNet, err = a.producer.Add(ctx, agg.TotalNet, contribution.Net); err != nil {
			return models.RunAggregate{}, err
		}
		agg.ItemCount++
	}
	agg.State = models.RunStateAccumulating

	return agg, nil
}

// Seal freezes the aggregate and stamps the audit fingerprint. Entropy is
// caller-provided public randomness, recorded on the aggregate so auditors
// can recompute the digest later.
func (a *Accumulator) Seal(agg models.RunAggregate, sealedAt time.Time, entropy []byte) (models.RunAggregate, error) {
	if agg.Sealed() {
		return models.RunAggregate{}, ErrAlreadySealed
	}

	agg.State = models.RunStateSealed
	agg.SealedAt = &sealedAt
	agg.Entropy = append([]byte(nil), entropy...)
	agg.Fingerprint = Fingerprint(agg.RunID, agg.ItemCount, sealedAt, entropy)

	return agg, nil
}

// Fingerprint derives the seal digest from public run metadata only: run id,
// item count, seal timestamp and the recorded entropy. No encrypted handle
// and no plaintext amount flows into it, so publishing the digest reveals
// nothing about the totals.
func Fingerprint(runID, itemCount int64, sealedAt time.Time, entropy []byte) []byte {
	var meta [24]byte
	binary.BigEndian.PutUint64(meta[0:8], uint64(runID))
	binary.BigEndian.PutUint64(meta[8:16], uint64(itemCount))
	binary.BigEndian.PutUint64(meta[16:24], uint64(sealedAt.UnixNano()))

	digest := sha256.New()
	digest.Write(meta[:])
	digest.Write(entropy)

	return digest.Sum(nil)
}
