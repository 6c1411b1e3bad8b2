package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/fluxpad/fluxpad/internal/client/client"
)

// deleteAccount permanently removes the current account after an explicit
// confirmation. A second invocation while a request is still running is
// rejected.
func (a *App) deleteAccount(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Not signed in.")
		return client.ErrUnauthorized
	}

	if a.deleteInFlight {
		fmt.Println("Deletion already in progress.")
		return nil
	}

	answer, err := getSimpleText(a.reader,
		"This permanently deletes your account and all its data. Type 'yes' to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Println("Cancelled.")
		return nil
	}

	a.deleteInFlight = true
	defer func() { a.deleteInFlight = false }()

	if err := a.api.DeleteAccount(ctx); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			// account is already gone; drop the local session too
			if err := a.guard.SignOut(ctx); err != nil {
				return err
			}
			fmt.Println("Account no longer exists; signed out.")
			return nil
		}
		log.Printf("Error: %s", err.Error())
		return err
	}

	if err := a.guard.SignOut(ctx); err != nil {
		return err
	}
	fmt.Println("Account deleted.")
	return nil
}
