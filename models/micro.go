package models

import (
	"fmt"
	"strconv"
	"strings"
)

// MicroFactor is the fixed-point scale of every amount in the system:
// one currency unit equals 1,000,000 micro-units (six decimal places).
const MicroFactor = 1_000_000

// Micro is a plaintext amount in micro-units. It appears only in
// configuration, test oracles, and decrypted gateway results - never inside
// the computation core, which operates on ciphertext handles alone.
type Micro uint64

// MicroFromUnits converts whole currency units to micro-units.
func MicroFromUnits(units uint64) Micro {
	return Micro(units * MicroFactor)
}

// Units returns the whole-unit part of the amount, truncating micros.
func (m Micro) Units() uint64 {
	return uint64(m) / MicroFactor
}

// String renders the amount as a decimal with six fractional digits,
// e.g. 40000.000000.
func (m Micro) String() string {
	return fmt.Sprintf("%d.%06d", uint64(m)/MicroFactor, uint64(m)%MicroFactor)
}

// ParseMicro parses a decimal string with up to six fractional digits into
// micro-units. Missing fractional digits are zero-padded.
func ParseMicro(s string) (Micro, error) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(s), ".")
	if whole == "" {
		whole = "0"
	}

	units, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse micro amount %q: %w", s, err)
	}

	if len(frac) > 6 {
		return 0, fmt.Errorf("parse micro amount %q: more than six fractional digits", s)
	}
	frac += strings.Repeat("0", 6-len(frac))

	micros, err := strconv.ParseUint(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse micro amount %q: %w", s, err)
	}

	return Micro(units*MicroFactor + micros), nil
}
