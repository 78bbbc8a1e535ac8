package payroll

import "errors"

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this employee and period")
	ErrRecordImmutable            = errors.New("payroll record can no longer be modified")
	ErrInvalidStatusTransition    = errors.New("invalid payroll status transition")
	ErrOnlyDraftDeletable         = errors.New("only draft payroll records can be deleted")
)
