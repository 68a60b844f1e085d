// Package account owns every Account record and its movement ledger. All
// reads and writes go through one mutex so that cross-account operations
// (transfers) either complete fully or not at all, and every accessor hands
// out copies rather than internal pointers.
package account

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bankist_app/data"
	"bankist_app/service/account/interfaces"
	"bankist_app/service/ledger"
)

var _ interfaces.Store = (*Store)(nil)

type Store struct {
	mu       sync.Mutex
	accounts []*data.Account
}

// NewStore takes ownership of the given records, derives each username from
// the owner name and assigns ids to any seed movements that lack one.
func NewStore(accounts []*data.Account) *Store {
	for _, acc := range accounts {
		acc.Username = DeriveUsername(acc.Owner)
		for i := range acc.Movements {
			if acc.Movements[i].ID == "" {
				acc.Movements[i].ID = uuid.New().String()
			}
		}
	}
	return &Store{accounts: accounts}
}

// DeriveUsername lowercases the owner name and concatenates the first letter
// of each whitespace-separated word: "Jonas Schmedtmann" -> "js".
func DeriveUsername(owner string) string {
	var b strings.Builder
	for _, word := range strings.Fields(strings.ToLower(owner)) {
		b.WriteString(word[:1])
	}
	return b.String()
}

// FindByUsername returns a snapshot of the matching account, or ErrNotFound.
func (s *Store) FindByUsername(username string) (*data.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.find(username)
	if acc == nil {
		return nil, ErrNotFound
	}
	return snapshot(acc), nil
}

// RemoveByUsername deletes the matching account and its ledger.
func (s *Store) RemoveByUsername(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, acc := range s.accounts {
		if acc.Username == username {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Append adds one signed movement to the account's ledger and returns a copy
// of the stored record. Zero amounts are rejected.
func (s *Store) Append(username string, amount decimal.Decimal, at time.Time) (data.Movement, error) {
	if amount.IsZero() {
		return data.Movement{}, ErrBadAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.find(username)
	if acc == nil {
		return data.Movement{}, ErrNotFound
	}
	movement := data.Movement{ID: uuid.New().String(), Amount: amount, Time: at}
	acc.Movements = append(acc.Movements, movement)
	return movement, nil
}

// Transfer moves amount from one account to another inside a single critical
// section: validate, then append the debit and the credit with the same
// timestamp. Any failed check leaves both ledgers untouched.
func (s *Store) Transfer(fromUsername, toUsername string, amount decimal.Decimal, at time.Time) error {
	if !amount.IsPositive() {
		return ErrBadAmount
	}
	if fromUsername == toUsername {
		return ErrSameAccount
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.find(fromUsername)
	to := s.find(toUsername)
	if from == nil || to == nil {
		return ErrNotFound
	}
	if ledger.Balance(from.Movements).Cmp(amount) < 0 {
		return ErrInsufficient
	}

	from.Movements = append(from.Movements, data.Movement{ID: uuid.New().String(), Amount: amount.Neg(), Time: at})
	to.Movements = append(to.Movements, data.Movement{ID: uuid.New().String(), Amount: amount, Time: at})
	return nil
}

// HasDepositAtLeast reports whether any deposit in the account's ledger is
// greater than or equal to threshold.
func (s *Store) HasDepositAtLeast(username string, threshold decimal.Decimal) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.find(username)
	if acc == nil {
		return false, ErrNotFound
	}
	for _, movement := range acc.Movements {
		if movement.Amount.IsPositive() && movement.Amount.Cmp(threshold) >= 0 {
			return true, nil
		}
	}
	return false, nil
}

// find must be called with s.mu held.
func (s *Store) find(username string) *data.Account {
	for _, acc := range s.accounts {
		if acc.Username == username {
			return acc
		}
	}
	return nil
}

func snapshot(acc *data.Account) *data.Account {
	cp := *acc
	cp.Movements = make([]data.Movement, len(acc.Movements))
	copy(cp.Movements, acc.Movements)
	return &cp
}
