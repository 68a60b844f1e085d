package main

import (
	"fmt"
	"log"
	"time"

	"bankist_app/data"
	"bankist_app/service/account"
	"bankist_app/service/session"
	sessionInterface "bankist_app/service/session/interfaces"
	"bankist_app/service/view"
)

// Demo entry: seed the store, log in as the first demo account and print its
// statement the way a renderer would consume it.
func main() {
	store := account.NewStore(data.SeedAccounts())
	svc := session.NewService(store, session.DefaultConfig())

	out := svc.Login(&sessionInterface.LoginIn{Username: "js", PIN: "1111"})
	if !out.Success {
		log.Fatalf("demo login failed: %s", out.Reason)
	}

	acc := out.Account
	now := time.Now()

	fmt.Println(view.Welcome(acc.Owner))
	fmt.Println(view.LoginTimestamp(now, acc.Locale))
	for _, row := range view.StatementRows(acc, now, false) {
		fmt.Printf("%2d %-10s %-12s %s\n", row.Position, row.Kind, row.Date, row.Amount)
	}

	figures := view.Summary(acc)
	fmt.Printf("Balance %s  In %s  Out %s  Interest %s\n",
		figures.Balance, figures.In, figures.Out, figures.Interest)
	fmt.Println("Logout in", view.CountdownLabel(svc.RemainingSeconds()))

	svc.Logout()
}
