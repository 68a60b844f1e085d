package interfaces

import (
	"bankist_app/data"
)

// Reason explains why a guarded action was rejected. Successful outcomes
// carry ReasonNone.
type Reason string

const (
	ReasonNone                 Reason = ""
	ReasonNotLoggedIn          Reason = "not logged in"
	ReasonInvalidCredentials   Reason = "invalid credentials"
	ReasonBadAmount            Reason = "amount must be a positive number"
	ReasonUnknownRecipient     Reason = "unknown recipient"
	ReasonSelfTransfer         Reason = "cannot transfer to the sending account"
	ReasonInsufficientFunds    Reason = "insufficient funds"
	ReasonNoQualifyingDeposit  Reason = "no deposit covers a tenth of the requested amount"
	ReasonConfirmationMismatch Reason = "confirmation does not match the active account"
)

type Service interface {
	Login(in *LoginIn) *LoginOut
	Transfer(in *TransferIn) *TransferOut
	RequestLoan(in *RequestLoanIn) *RequestLoanOut
	CloseAccount(in *CloseAccountIn) *CloseAccountOut
	Logout()
	Active() *data.Account
	RemainingSeconds() int
}

// All In fields are raw strings as supplied by the input source; pins and
// amounts are coerced numerically and coercion failure fails the guard.

type LoginIn struct {
	Username string
	PIN      string
}

type LoginOut struct {
	Success bool
	Reason  Reason

	// Account is a snapshot of the authenticated account on success.
	Account *data.Account
}

type TransferIn struct {
	ToUsername string
	Amount     string
}

type TransferOut struct {
	Success bool
	Reason  Reason
}

type RequestLoanIn struct {
	Amount string
}

type RequestLoanOut struct {
	// Success means the request was accepted; the credit itself posts only
	// after the approval delay has elapsed.
	Success bool
	Reason  Reason
}

type CloseAccountIn struct {
	ConfirmUsername string
	ConfirmPIN      string
}

type CloseAccountOut struct {
	Success bool
	Reason  Reason
}
