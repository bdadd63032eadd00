package services

import "errors"

// Business failures callers are expected to branch on. Controllers map
// these to HTTP statuses; anything else is a 500.
var (
	ErrInvalidPaymentAmount        = errors.New("settlement tender must be positive")
	ErrMalformedSettlementRequest  = errors.New("settlement request is missing order or payment method")
	ErrInsufficientCreditRequested = errors.New("requested credit exceeds available balance")
	ErrApprovalPreconditionFailed  = errors.New("approval requires at least one order and a positive payment total")
	ErrRejectionReasonRequired     = errors.New("rejection requires a reason")
	ErrRequestNotPending           = errors.New("settlement request is no longer pending")
	ErrAttachmentRequired          = errors.New("at least one proof attachment is required")
	ErrStaleOrder                  = errors.New("order was modified by another operator, reload and retry")
	ErrStaleCredit                 = errors.New("credit entry was modified by another operator, reload and retry")
	ErrDepositLocked               = errors.New("deposits cannot change once the order is paid")

	// Deliberately covers both unknown user and wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
