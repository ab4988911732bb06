// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package payroll

// bitset remembers which item indexes a run has already covered. It grows on
// demand because items enrolled after run init extend the ledger list and may
// still appear in a later batch range.
type bitset struct {
	words []uint64
	count int64
}

func (b *bitset) get(i int64) bool {
	w := int(i >> 6)
	if w >= len(b.words) {
		return false
	}
	return b.words[w]&(1<<(uint(i)&63)) != 0
}

func (b *bitset) set(i int64) {
	w := int(i >> 6)
	for w >= len(b.words) {
		b.words = append(b.words, 0)
	}
	mask := uint64(1) << (uint(i) & 63)
	if b.words[w]&mask == 0 {
		b.words[w] |= mask
		b.count++
	}
}

// covered reports whether any index in the half-open range [start, end) is
// already set.
func (b *bitset) covered(start, end int64) bool {
	for i := start; i < end; i++ {
		if b.get(i) {
			return true
		}
	}
	return false
}
