package data

import (
	"time"

	"github.com/shopspring/decimal"
)

type MovementKind string

const (
	MKDeposit    MovementKind = "deposit"
	MKWithdrawal MovementKind = "withdrawal"
)

// Movement is one signed ledger entry. Positive amounts are deposits,
// negative amounts are withdrawals; zero is never stored.
type Movement struct {
	ID     string
	Amount decimal.Decimal
	Time   time.Time
}

func (m Movement) Kind() MovementKind {
	if m.Amount.IsPositive() {
		return MKDeposit
	}
	return MKWithdrawal
}

type Account struct {
	Owner    string
	Username string // derived from Owner at store initialization
	PIN      int
	Currency string // ISO 4217 code
	Locale   string // BCP 47 tag

	// InterestRate is a percentage, e.g. 1.2 means 1.2%.
	InterestRate decimal.Decimal

	Movements []Movement
}

// CurrencyNames maps the supported ISO codes to display names.
var CurrencyNames = map[string]string{
	"USD": "United States dollar",
	"EUR": "Euro",
	"GBP": "Pound sterling",
}
