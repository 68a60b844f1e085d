package session

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankist_app/data"
	"bankist_app/service/account"
	"bankist_app/service/ledger"
	sessionInterface "bankist_app/service/session/interfaces"
)

// testConfig shrinks every duration so scenarios finish in well under a
// second while keeping the 1:1 shape of the real configuration.
func testConfig() Config {
	return Config{
		InactivityTimeout: 50,
		TickInterval:      20 * time.Millisecond,
		LoanDelay:         40 * time.Millisecond,
	}
}

func newTestService(cfg Config) (*Service, *account.Store) {
	store := account.NewStore(data.SeedAccounts())
	return NewService(store, cfg), store
}

func login(t *testing.T, svc *Service, username, pin string) *data.Account {
	t.Helper()
	out := svc.Login(&sessionInterface.LoginIn{Username: username, PIN: pin})
	require.True(t, out.Success)
	require.NotNil(t, out.Account)
	return out.Account
}

func movementCount(t *testing.T, store *account.Store, username string) int {
	t.Helper()
	acc, err := store.FindByUsername(username)
	require.NoError(t, err)
	return len(acc.Movements)
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestService(testConfig())

	acc := login(t, svc, "js", "1111")
	assert.Equal(t, "Jonas Schmedtmann", acc.Owner)

	active := svc.Active()
	require.NotNil(t, active)
	assert.Equal(t, "js", active.Username)
	assert.Positive(t, svc.RemainingSeconds())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(testConfig())

	cases := []sessionInterface.LoginIn{
		{Username: "js", PIN: "9999"}, // wrong pin
		{Username: "zz", PIN: "1111"}, // unknown user
		{Username: "js", PIN: "abcd"}, // non-numeric pin
		{Username: "js", PIN: ""},     // empty pin
		{Username: "JS", PIN: "1111"}, // usernames are exact
	}
	for _, in := range cases {
		out := svc.Login(&in)
		assert.False(t, out.Success)
		assert.Equal(t, sessionInterface.ReasonInvalidCredentials, out.Reason)
		assert.Nil(t, out.Account)
	}

	assert.Nil(t, svc.Active())
	assert.Zero(t, svc.RemainingSeconds())
}

func TestTransferMovesMoneyBetweenAccounts(t *testing.T) {
	svc, store := newTestService(testConfig())
	login(t, svc, "js", "1111")

	out := svc.Transfer(&sessionInterface.TransferIn{ToUsername: "jd", Amount: "500"})
	require.True(t, out.Success)

	from, err := store.FindByUsername("js")
	require.NoError(t, err)
	to, err := store.FindByUsername("jd")
	require.NoError(t, err)
	assert.True(t, ledger.Balance(from.Movements).Equal(decimal.RequireFromString("25452.59")))
	assert.True(t, ledger.Balance(to.Movements).Equal(decimal.NewFromInt(12220)))
}

func TestTransferRejections(t *testing.T) {
	svc, store := newTestService(testConfig())
	login(t, svc, "js", "1111")

	cases := []struct {
		in     sessionInterface.TransferIn
		reason sessionInterface.Reason
	}{
		{sessionInterface.TransferIn{ToUsername: "jd", Amount: "1000000"}, sessionInterface.ReasonInsufficientFunds},
		{sessionInterface.TransferIn{ToUsername: "js", Amount: "10"}, sessionInterface.ReasonSelfTransfer},
		{sessionInterface.TransferIn{ToUsername: "zz", Amount: "10"}, sessionInterface.ReasonUnknownRecipient},
		{sessionInterface.TransferIn{ToUsername: "jd", Amount: "0"}, sessionInterface.ReasonBadAmount},
		{sessionInterface.TransferIn{ToUsername: "jd", Amount: "-25"}, sessionInterface.ReasonBadAmount},
		{sessionInterface.TransferIn{ToUsername: "jd", Amount: "lots"}, sessionInterface.ReasonBadAmount},
	}
	for _, c := range cases {
		out := svc.Transfer(&c.in)
		assert.False(t, out.Success)
		assert.Equal(t, c.reason, out.Reason)
	}

	assert.Equal(t, 8, movementCount(t, store, "js"))
	assert.Equal(t, 8, movementCount(t, store, "jd"))
}

func TestActionsRequireLogin(t *testing.T) {
	svc, _ := newTestService(testConfig())

	transfer := svc.Transfer(&sessionInterface.TransferIn{ToUsername: "jd", Amount: "10"})
	assert.Equal(t, sessionInterface.ReasonNotLoggedIn, transfer.Reason)

	loan := svc.RequestLoan(&sessionInterface.RequestLoanIn{Amount: "10"})
	assert.Equal(t, sessionInterface.ReasonNotLoggedIn, loan.Reason)

	closed := svc.CloseAccount(&sessionInterface.CloseAccountIn{ConfirmUsername: "js", ConfirmPIN: "1111"})
	assert.Equal(t, sessionInterface.ReasonNotLoggedIn, closed.Reason)
}

func TestLoanPostsAfterDelayNotBefore(t *testing.T) {
	cfg := testConfig()
	svc, store := newTestService(cfg)
	login(t, svc, "js", "1111")

	out := svc.RequestLoan(&sessionInterface.RequestLoanIn{Amount: "2000"})
	require.True(t, out.Success)

	// Granted but not yet posted.
	assert.Equal(t, 8, movementCount(t, store, "js"))

	time.Sleep(4 * cfg.LoanDelay)
	acc, err := store.FindByUsername("js")
	require.NoError(t, err)
	require.Len(t, acc.Movements, 9)
	assert.True(t, acc.Movements[8].Amount.Equal(decimal.NewFromInt(2000)))
}

func TestLoanAmountIsTruncated(t *testing.T) {
	cfg := testConfig()
	svc, store := newTestService(cfg)
	login(t, svc, "js", "1111")

	out := svc.RequestLoan(&sessionInterface.RequestLoanIn{Amount: "2000.99"})
	require.True(t, out.Success)

	time.Sleep(4 * cfg.LoanDelay)
	acc, err := store.FindByUsername("js")
	require.NoError(t, err)
	require.Len(t, acc.Movements, 9)
	assert.True(t, acc.Movements[8].Amount.Equal(decimal.NewFromInt(2000)))
}

func TestLoanRejections(t *testing.T) {
	cfg := testConfig()
	svc, store := newTestService(cfg)
	login(t, svc, "jd", "2222")

	cases := []struct {
		amount string
		reason sessionInterface.Reason
	}{
		// Jessica's largest deposit is 8500; 100000 would need one of 10000.
		{"100000", sessionInterface.ReasonNoQualifyingDeposit},
		{"0", sessionInterface.ReasonBadAmount},
		{"-40", sessionInterface.ReasonBadAmount},
		{"0.9", sessionInterface.ReasonBadAmount}, // truncates to zero
		{"soon", sessionInterface.ReasonBadAmount},
	}
	for _, c := range cases {
		out := svc.RequestLoan(&sessionInterface.RequestLoanIn{Amount: c.amount})
		assert.False(t, out.Success)
		assert.Equal(t, c.reason, out.Reason)
	}

	time.Sleep(4 * cfg.LoanDelay)
	assert.Equal(t, 8, movementCount(t, store, "jd"))
}

func TestLoanCompletionDiscardedAfterLogout(t *testing.T) {
	cfg := testConfig()
	svc, store := newTestService(cfg)
	login(t, svc, "js", "1111")

	out := svc.RequestLoan(&sessionInterface.RequestLoanIn{Amount: "2000"})
	require.True(t, out.Success)

	svc.Logout()
	time.Sleep(4 * cfg.LoanDelay)

	assert.Equal(t, 8, movementCount(t, store, "js"))
}

func TestLoanCompletionDiscardedAfterRelogin(t *testing.T) {
	cfg := testConfig()
	svc, store := newTestService(cfg)
	login(t, svc, "js", "1111")

	out := svc.RequestLoan(&sessionInterface.RequestLoanIn{Amount: "2000"})
	require.True(t, out.Success)

	// A fresh login is a new session; the old session's pending loan must
	// not leak into it.
	login(t, svc, "js", "1111")
	time.Sleep(4 * cfg.LoanDelay)

	assert.Equal(t, 8, movementCount(t, store, "js"))
}

func TestCloseAccountMismatchKeepsSession(t *testing.T) {
	svc, store := newTestService(testConfig())
	login(t, svc, "js", "1111")

	cases := []sessionInterface.CloseAccountIn{
		{ConfirmUsername: "jd", ConfirmPIN: "1111"},
		{ConfirmUsername: "js", ConfirmPIN: "2222"},
		{ConfirmUsername: "js", ConfirmPIN: "nope"},
	}
	for _, in := range cases {
		out := svc.CloseAccount(&in)
		assert.False(t, out.Success)
		assert.Equal(t, sessionInterface.ReasonConfirmationMismatch, out.Reason)
	}

	_, err := store.FindByUsername("js")
	assert.NoError(t, err)
	assert.NotNil(t, svc.Active())
}

func TestCloseAccountRemovesAccountAndEndsSession(t *testing.T) {
	svc, store := newTestService(testConfig())
	login(t, svc, "js", "1111")

	out := svc.CloseAccount(&sessionInterface.CloseAccountIn{ConfirmUsername: "js", ConfirmPIN: "1111"})
	require.True(t, out.Success)

	_, err := store.FindByUsername("js")
	assert.ErrorIs(t, err, account.ErrNotFound)
	assert.Nil(t, svc.Active())
	assert.Zero(t, svc.RemainingSeconds())
}

func TestInactivityTimeoutLogsOut(t *testing.T) {
	cfg := testConfig()
	cfg.InactivityTimeout = 2
	svc, _ := newTestService(cfg)
	login(t, svc, "js", "1111")

	time.Sleep(8 * cfg.TickInterval)

	assert.Nil(t, svc.Active())
	assert.Zero(t, svc.RemainingSeconds())

	// A qualifying action after timeout needs a fresh login.
	out := svc.Transfer(&sessionInterface.TransferIn{ToUsername: "jd", Amount: "10"})
	assert.Equal(t, sessionInterface.ReasonNotLoggedIn, out.Reason)

	login(t, svc, "js", "1111")
	assert.NotNil(t, svc.Active())
}

func TestQualifyingActivityResetsCountdown(t *testing.T) {
	cfg := testConfig()
	cfg.InactivityTimeout = 4
	cfg.TickInterval = 50 * time.Millisecond
	svc, _ := newTestService(cfg)
	login(t, svc, "js", "1111")

	// Let most of the countdown elapse, then act; the session must survive
	// past the original deadline.
	time.Sleep(3 * cfg.TickInterval)
	out := svc.Transfer(&sessionInterface.TransferIn{ToUsername: "jd", Amount: "10"})
	require.True(t, out.Success)

	time.Sleep(3 * cfg.TickInterval)
	assert.NotNil(t, svc.Active())

	time.Sleep(4 * cfg.TickInterval)
	assert.Nil(t, svc.Active())
}

func TestRejectedLoanStillResetsCountdown(t *testing.T) {
	cfg := testConfig()
	cfg.InactivityTimeout = 4
	cfg.TickInterval = 50 * time.Millisecond
	svc, _ := newTestService(cfg)
	login(t, svc, "jd", "2222")

	time.Sleep(3 * cfg.TickInterval)
	out := svc.RequestLoan(&sessionInterface.RequestLoanIn{Amount: "100000"})
	require.False(t, out.Success)

	time.Sleep(3 * cfg.TickInterval)
	assert.NotNil(t, svc.Active())
}
