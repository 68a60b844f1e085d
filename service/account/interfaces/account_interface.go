package interfaces

import (
	"time"

	"github.com/shopspring/decimal"

	"bankist_app/data"
)

type Store interface {
	FindByUsername(username string) (*data.Account, error)
	RemoveByUsername(username string) error
	Append(username string, amount decimal.Decimal, at time.Time) (data.Movement, error)
	Transfer(fromUsername, toUsername string, amount decimal.Decimal, at time.Time) error
	HasDepositAtLeast(username string, threshold decimal.Decimal) (bool, error)
}
