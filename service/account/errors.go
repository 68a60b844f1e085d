package account

import "errors"

var (
	// ErrNotFound means no account with the given username exists.
	ErrNotFound = errors.New("account not found")

	// ErrBadAmount means the amount is zero, negative where a positive value
	// is required, or otherwise unusable.
	ErrBadAmount = errors.New("bad amount")

	// ErrInsufficient means the sender's balance cannot cover the transfer.
	ErrInsufficient = errors.New("insufficient balance")

	// ErrSameAccount means sender and recipient are the same account.
	ErrSameAccount = errors.New("sender and recipient are the same account")
)
