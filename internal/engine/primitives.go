package engine

// Primitive names one ciphertext operation type. Primitives are the alphabet
// of operation-type traces and of capability declarations.
type Primitive string

const (
	PrimEncrypt    Primitive = "encrypt"
	PrimVerify     Primitive = "verify"
	PrimAdd        Primitive = "add"
	PrimSub        Primitive = "sub"
	PrimMul        Primitive = "mul"
	PrimDiv        Primitive = "div"
	PrimMin        Primitive = "min"
	PrimMax        Primitive = "max"
	PrimGt         Primitive = "gt"
	PrimGe         Primitive = "ge"
	PrimLe         Primitive = "le"
	PrimEq         Primitive = "eq"
	PrimAnd        Primitive = "and"
	PrimOr         Primitive = "or"
	PrimSelect     Primitive = "select"
	PrimShiftRight Primitive = "shr"
)

// PrimitiveSet declares which operations an engine provides. Consumers that
// depend on specific primitives must verify support at construction time and
// fail fast with ErrUnsupportedPrimitive, never mid-computation.
type PrimitiveSet map[Primitive]struct{}

// NewPrimitiveSet builds a set from the listed primitives.
func NewPrimitiveSet(primitives ...Primitive) PrimitiveSet {
	set := make(PrimitiveSet, len(primitives))
	for _, p := range primitives {
		set[p] = struct{}{}
	}
	return set
}

// Supports reports whether every listed primitive is available.
func (s PrimitiveSet) Supports(primitives ...Primitive) bool {
	for _, p := range primitives {
		if _, ok := s[p]; !ok {
			return false
		}
	}
	return true
}

// Missing returns the subset of required primitives the engine lacks,
// in the order given. An empty result means all requirements are met.
func (s PrimitiveSet) Missing(required ...Primitive) []Primitive {
	var missing []Primitive
	for _, p := range required {
		if _, ok := s[p]; !ok {
			missing = append(missing, p)
		}
	}
	return missing
}
