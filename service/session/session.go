// Package session implements the authenticated-session state machine: login,
// transfer, loan request, account closure and the inactivity countdown. At
// most one account is logged in at a time; every guarded action reports an
// explicit outcome instead of silently doing nothing.
package session

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bankist_app/data"
	"bankist_app/service/account"
	accountInterface "bankist_app/service/account/interfaces"
	sessionInterface "bankist_app/service/session/interfaces"
	"bankist_app/util"
)

var _ sessionInterface.Service = (*Service)(nil)

type Config struct {
	// InactivityTimeout is the number of seconds an idle session stays alive.
	// Login and every qualifying action reset the countdown to this value.
	InactivityTimeout int

	// TickInterval is the real duration of one countdown second.
	TickInterval time.Duration

	// LoanDelay is the simulated approval delay before a granted loan posts.
	LoanDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		InactivityTimeout: 600,
		TickInterval:      time.Second,
		LoanDelay:         3 * time.Second,
	}
}

type Service struct {
	store accountInterface.Store
	cfg   Config
	now   func() time.Time

	mu        sync.Mutex
	active    string    // username of the logged-in account; "" when logged out
	epoch     uuid.UUID // identity of the current session; uuid.Nil when logged out
	countdown *util.Countdown
}

func NewService(store accountInterface.Store, cfg Config) *Service {
	return &Service{
		store:     store,
		cfg:       cfg,
		now:       time.Now,
		countdown: util.NewCountdown(cfg.TickInterval),
	}
}

// Login authenticates by username and numeric pin. Success replaces any
// session already active and starts a fresh inactivity countdown; pending
// completions of the replaced session are fenced out by the epoch change.
func (s *Service) Login(in *sessionInterface.LoginIn) *sessionInterface.LoginOut {
	pin, err := strconv.Atoi(in.PIN)
	if err != nil {
		return &sessionInterface.LoginOut{Reason: sessionInterface.ReasonInvalidCredentials}
	}

	acc, err := s.store.FindByUsername(in.Username)
	if err != nil || acc.PIN != pin {
		return &sessionInterface.LoginOut{Reason: sessionInterface.ReasonInvalidCredentials}
	}

	s.mu.Lock()
	s.active = acc.Username
	s.epoch = uuid.New()
	s.resetCountdownLocked()
	s.mu.Unlock()

	return &sessionInterface.LoginOut{Success: true, Account: acc}
}

// Transfer moves a positive amount from the active account to another one.
// The countdown resets only when the transfer actually happened.
func (s *Service) Transfer(in *sessionInterface.TransferIn) *sessionInterface.TransferOut {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == "" {
		return &sessionInterface.TransferOut{Reason: sessionInterface.ReasonNotLoggedIn}
	}

	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return &sessionInterface.TransferOut{Reason: sessionInterface.ReasonBadAmount}
	}

	if err := s.store.Transfer(s.active, in.ToUsername, amount, s.now()); err != nil {
		return &sessionInterface.TransferOut{Reason: transferReason(err)}
	}

	s.resetCountdownLocked()
	return &sessionInterface.TransferOut{Success: true}
}

func transferReason(err error) sessionInterface.Reason {
	switch {
	case errors.Is(err, account.ErrBadAmount):
		return sessionInterface.ReasonBadAmount
	case errors.Is(err, account.ErrSameAccount):
		return sessionInterface.ReasonSelfTransfer
	case errors.Is(err, account.ErrNotFound):
		return sessionInterface.ReasonUnknownRecipient
	case errors.Is(err, account.ErrInsufficient):
		return sessionInterface.ReasonInsufficientFunds
	default:
		return sessionInterface.ReasonBadAmount
	}
}

// RequestLoan grants a loan when some past deposit covers a tenth of the
// requested amount. The credit posts after the approval delay; the countdown
// resets immediately, accepted or not.
func (s *Service) RequestLoan(in *sessionInterface.RequestLoanIn) *sessionInterface.RequestLoanOut {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == "" {
		return &sessionInterface.RequestLoanOut{Reason: sessionInterface.ReasonNotLoggedIn}
	}

	// Requesting a loan counts as activity even when the request is refused.
	defer s.resetCountdownLocked()

	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return &sessionInterface.RequestLoanOut{Reason: sessionInterface.ReasonBadAmount}
	}
	amount = amount.Truncate(0)
	if !amount.IsPositive() {
		return &sessionInterface.RequestLoanOut{Reason: sessionInterface.ReasonBadAmount}
	}

	qualifies, err := s.store.HasDepositAtLeast(s.active, amount.Div(decimal.NewFromInt(10)))
	if err != nil || !qualifies {
		return &sessionInterface.RequestLoanOut{Reason: sessionInterface.ReasonNoQualifyingDeposit}
	}

	epoch := s.epoch
	username := s.active
	time.AfterFunc(s.cfg.LoanDelay, func() {
		s.completeLoan(epoch, username, amount)
	})

	return &sessionInterface.RequestLoanOut{Success: true}
}

// completeLoan posts a granted loan once the approval delay has elapsed. A
// completion that outlived its session (logout, timeout, closure, relogin)
// is discarded.
func (s *Service) completeLoan(epoch uuid.UUID, username string, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return
	}
	_, _ = s.store.Append(username, amount, s.now())
}

// CloseAccount removes the active account when both confirmation fields match
// it exactly, ending the session.
func (s *Service) CloseAccount(in *sessionInterface.CloseAccountIn) *sessionInterface.CloseAccountOut {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == "" {
		return &sessionInterface.CloseAccountOut{Reason: sessionInterface.ReasonNotLoggedIn}
	}

	pin, err := strconv.Atoi(in.ConfirmPIN)
	if err != nil {
		return &sessionInterface.CloseAccountOut{Reason: sessionInterface.ReasonConfirmationMismatch}
	}

	acc, err := s.store.FindByUsername(s.active)
	if err != nil || in.ConfirmUsername != acc.Username || pin != acc.PIN {
		return &sessionInterface.CloseAccountOut{Reason: sessionInterface.ReasonConfirmationMismatch}
	}

	if err := s.store.RemoveByUsername(s.active); err != nil {
		return &sessionInterface.CloseAccountOut{Reason: sessionInterface.ReasonConfirmationMismatch}
	}

	s.endLocked()
	return &sessionInterface.CloseAccountOut{Success: true}
}

// Logout ends the session and cancels the countdown.
func (s *Service) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endLocked()
}

// Active returns a snapshot of the logged-in account, or nil.
func (s *Service) Active() *data.Account {
	s.mu.Lock()
	username := s.active
	s.mu.Unlock()
	if username == "" {
		return nil
	}
	acc, err := s.store.FindByUsername(username)
	if err != nil {
		return nil
	}
	return acc
}

// RemainingSeconds reports the countdown value; zero when logged out.
func (s *Service) RemainingSeconds() int {
	return s.countdown.Remaining()
}

func (s *Service) resetCountdownLocked() {
	epoch := s.epoch
	s.countdown.Start(s.cfg.InactivityTimeout, func() {
		s.expire(epoch)
	})
}

// expire handles the countdown reaching zero. The epoch check makes the
// logout apply to the session the countdown was started for, never a newer
// one.
func (s *Service) expire(epoch uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return
	}
	s.active = ""
	s.epoch = uuid.Nil
}

// endLocked clears session state and stops the countdown. Callers hold s.mu.
func (s *Service) endLocked() {
	s.active = ""
	s.epoch = uuid.Nil
	s.countdown.Stop()
}
