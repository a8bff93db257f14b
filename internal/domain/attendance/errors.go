package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn       = errors.New("employee already has an entry for this day")
	ErrAlreadyCheckedOut      = errors.New("employee already has an exit for this day")
	ErrNotCheckedIn           = errors.New("no entry recorded for this day")
	ErrExitBeforeEntry        = errors.New("exit time is before the entry time")
	ErrAttendanceNotFound     = errors.New("attendance record not found")
	ErrAttendanceCancelled    = errors.New("attendance record is already cancelled")
	ErrEmployeeNotInCompany   = errors.New("employee does not belong to this entreprise")
	ErrExitHasDependentRecord = errors.New("entry cannot be cancelled while its exit is still valid")
)
