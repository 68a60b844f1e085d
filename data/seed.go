package data

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SeedAccounts returns the fixed demo dataset. Usernames are left empty;
// the account store derives them when it takes ownership of the records.
func SeedAccounts() []*Account {
	return []*Account{
		{
			Owner:        "Jonas Schmedtmann",
			PIN:          1111,
			Currency:     "EUR",
			Locale:       "pt-PT",
			InterestRate: decimal.NewFromFloat(1.2),
			Movements: seedMovements(
				[]string{"200", "455.23", "-306.5", "25000", "-642.21", "-133.9", "79.97", "1300"},
				[]string{
					"2019-11-18T21:31:17.178Z",
					"2019-12-23T07:42:02.383Z",
					"2020-01-28T09:15:04.904Z",
					"2020-04-01T10:17:24.185Z",
					"2020-05-08T14:11:59.604Z",
					"2020-05-27T17:01:17.194Z",
					"2020-07-11T23:36:17.929Z",
					"2024-03-15T10:51:36.790Z",
				},
			),
		},
		{
			Owner:        "Jessica Davis",
			PIN:          2222,
			Currency:     "USD",
			Locale:       "en-US",
			InterestRate: decimal.NewFromFloat(1.5),
			Movements: seedMovements(
				[]string{"5000", "3400", "-150", "-790", "-3210", "-1000", "8500", "-30"},
				[]string{
					"2019-11-01T13:15:33.035Z",
					"2019-11-30T09:48:16.867Z",
					"2019-12-25T06:04:23.907Z",
					"2020-01-25T14:18:46.235Z",
					"2020-02-05T16:33:06.386Z",
					"2020-04-10T14:43:26.374Z",
					"2020-06-25T18:49:59.371Z",
					"2024-03-26T12:01:20.894Z",
				},
			),
		},
	}
}

func seedMovements(amounts, timestamps []string) []Movement {
	if len(amounts) != len(timestamps) {
		panic(fmt.Sprintf("seed data mismatch: %d amounts, %d timestamps", len(amounts), len(timestamps)))
	}
	movements := make([]Movement, 0, len(amounts))
	for i := range amounts {
		amount, err := decimal.NewFromString(amounts[i])
		if err != nil {
			panic(fmt.Sprintf("bad seed amount %q: %v", amounts[i], err))
		}
		t, err := time.Parse(time.RFC3339, timestamps[i])
		if err != nil {
			panic(fmt.Sprintf("bad seed timestamp %q: %v", timestamps[i], err))
		}
		movements = append(movements, Movement{Amount: amount, Time: t})
	}
	return movements
}
