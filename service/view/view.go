// Package view derives display-ready values from account state: statement
// rows, summary figures, formatted money and dates. Everything here is pure;
// rendering itself is left to whichever writer consumes the values.
package view

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"bankist_app/data"
	"bankist_app/service/ledger"
)

// Row is one rendered statement line.
type Row struct {
	// Position is the 1-based place of the movement in the displayed order
	// (after any sort), counted from the oldest entry.
	Position int
	Kind     data.MovementKind
	Date     string
	Amount   string
}

// SummaryFigures are the formatted totals shown under a statement.
type SummaryFigures struct {
	Balance  string
	In       string
	Out      string
	Interest string
}

// StatementRows projects the account's movements into display rows, newest
// first. sortAscending orders by amount instead of ledger order; the stored
// ledger is never touched.
func StatementRows(acc *data.Account, now time.Time, sortAscending bool) []Row {
	movements := ledger.OrderedForDisplay(acc.Movements, sortAscending)
	rows := make([]Row, 0, len(movements))
	for i := len(movements) - 1; i >= 0; i-- {
		m := movements[i]
		rows = append(rows, Row{
			Position: i + 1,
			Kind:     m.Kind(),
			Date:     MovementDate(m.Time, now, acc.Locale),
			Amount:   Money(m.Amount, acc.Locale, acc.Currency),
		})
	}
	return rows
}

// Summary computes and formats balance, income, outgoings and interest.
func Summary(acc *data.Account) SummaryFigures {
	return SummaryFigures{
		Balance:  Money(ledger.Balance(acc.Movements), acc.Locale, acc.Currency),
		In:       Money(ledger.TotalDeposits(acc.Movements), acc.Locale, acc.Currency),
		Out:      Money(ledger.TotalWithdrawals(acc.Movements), acc.Locale, acc.Currency),
		Interest: Money(ledger.TotalInterest(acc.Movements, acc.InterestRate), acc.Locale, acc.Currency),
	}
}

// Money formats an amount in the account's currency for the given locale.
// An unknown currency code falls back to a plain two-decimal string; an
// unparseable locale falls back to English.
func Money(amount decimal.Decimal, locale, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return amount.StringFixed(2)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	return p.Sprintf("%v", currency.Symbol(unit.Amount(amount.InexactFloat64())))
}

// MovementDate renders a movement timestamp relative to now: Today,
// Yesterday, "N days ago" up to a week, then a calendar date.
func MovementDate(t, now time.Time, locale string) string {
	days := int(math.Round(math.Abs(now.Sub(t).Hours() / 24)))
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days)
	}
	return calendarDate(t, locale)
}

// LoginTimestamp renders the moment of login with two-digit day and month,
// ordered per locale.
func LoginTimestamp(now time.Time, locale string) string {
	if monthFirst(locale) {
		return now.Format("01/02/2006, 15:04")
	}
	return now.Format("02/01/2006, 15:04")
}

// CountdownLabel renders remaining seconds as MM:SS.
func CountdownLabel(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Welcome greets the owner by first name.
func Welcome(owner string) string {
	fields := strings.Fields(owner)
	if len(fields) == 0 {
		return "Welcome back"
	}
	return "Welcome back, " + fields[0]
}

// CurrencyName resolves an ISO code to its display name, falling back to the
// code itself.
func CurrencyName(code string) string {
	if name, ok := data.CurrencyNames[code]; ok {
		return name
	}
	return code
}

func calendarDate(t time.Time, locale string) string {
	if monthFirst(locale) {
		return t.Format("01/02/2006")
	}
	return t.Format("02/01/2006")
}

// monthFirst picks month-day ordering for US-region locales, day-month for
// everyone else. Full CLDR date patterns are out of scope here.
func monthFirst(locale string) bool {
	tag, err := language.Parse(locale)
	if err != nil {
		return false
	}
	region, _ := tag.Region()
	return region.String() == "US"
}
