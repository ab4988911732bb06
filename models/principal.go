package models

import "strconv"

// Principal names a party that may hold access grants on ciphertext handles:
// the run coordinator itself, a payroll operator, or a data subject (the
// employee an item belongs to).
type Principal string

// PrincipalCoordinator is the computation's own principal. Every aggregate
// and intermediate that must survive an invocation boundary is granted to it.
const PrincipalCoordinator Principal = "coordinator"

// OperatorPrincipal derives the grant principal for an authenticated
// payroll operator.
func OperatorPrincipal(operatorID int64) Principal {
	return Principal("operator:" + strconv.FormatInt(operatorID, 10))
}

// SubjectPrincipal derives the grant principal for a data subject, the
// employee whose encrypted values an item carries.
func SubjectPrincipal(subjectID int64) Principal {
	return Principal("subject:" + strconv.FormatInt(subjectID, 10))
}

func (p Principal) String() string {
	return string(p)
}
