package payroll

import (
	"fmt"
	"strings"
)

type CycleStatus string

const (
	CycleStatusDraft    CycleStatus = "DRAFT"
	CycleStatusApproved CycleStatus = "APPROVED"
	CycleStatusClosed   CycleStatus = "CLOSED"
)

func (s CycleStatus) IsValid() bool {
	switch s {
	case CycleStatusDraft, CycleStatusApproved, CycleStatusClosed:
		return true
	}
	return false
}

// CycleOperation names every mutation gated by the cycle lifecycle.
type CycleOperation string

const (
	OpApprove          CycleOperation = "approve"
	OpClose            CycleOperation = "close"
	OpUpdate           CycleOperation = "update"
	OpGeneratePayslips CycleOperation = "generate payslips for"
	OpRecalculate      CycleOperation = "recalculate payslips of"
	OpUpdateDaysWorked CycleOperation = "update days worked in"
	OpEditPayslip      CycleOperation = "edit a payslip of"
	OpDeletePayslip    CycleOperation = "delete a payslip of"
)

// allowedFrom lists the statuses each operation may start from. DRAFT ->
// APPROVED -> CLOSED is one-directional; nothing leads back.
var allowedFrom = map[CycleOperation][]CycleStatus{
	OpApprove:          {CycleStatusDraft},
	OpClose:            {CycleStatusApproved},
	OpUpdate:           {CycleStatusDraft},
	OpGeneratePayslips: {CycleStatusDraft},
	OpRecalculate:      {CycleStatusDraft},
	OpUpdateDaysWorked: {CycleStatusDraft},
	OpEditPayslip:      {CycleStatusDraft},
	OpDeletePayslip:    {CycleStatusDraft},
}

// Require returns a *CycleStateError when op is illegal in the cycle's current status.
func (c Cycle) Require(op CycleOperation) error {
	expected := allowedFrom[op]
	for _, s := range expected {
		if c.Status == s {
			return nil
		}
	}
	return &CycleStateError{
		CycleID:   c.ID,
		Operation: op,
		Expected:  expected,
		Actual:    c.Status,
	}
}

// NextStatus is the status a transition operation lands on.
func NextStatus(op CycleOperation) (CycleStatus, bool) {
	switch op {
	case OpApprove:
		return CycleStatusApproved, true
	case OpClose:
		return CycleStatusClosed, true
	}
	return "", false
}

// CycleStateError reports an operation attempted from the wrong cycle status.
type CycleStateError struct {
	CycleID   int64
	Operation CycleOperation
	Expected  []CycleStatus
	Actual    CycleStatus
}

func (e *CycleStateError) Error() string {
	expected := make([]string, len(e.Expected))
	for i, s := range e.Expected {
		expected[i] = string(s)
	}
	return fmt.Sprintf("cannot %s cycle %d: cycle is %s, expected %s",
		e.Operation, e.CycleID, e.Actual, strings.Join(expected, " or "))
}

func (e *CycleStateError) Is(target error) bool {
	return target == ErrCycleStateConflict
}
