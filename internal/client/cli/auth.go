package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/fluxpad/fluxpad/internal/client/client"
	"github.com/fluxpad/fluxpad/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email, full name and password and attempts to
// create a new account. On success the fresh session is recorded in the
// guard. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	fullName, err := getSimpleText(a.reader, "Enter full name (optional)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	identity, err := a.api.Register(ctx, email, string(password), fullName)
	if err != nil {
		if errors.Is(err, client.ErrEmailTaken) {
			log.Printf("Registration failed: email already registered")
			return err
		}
		log.Printf("Registration failed: %s", err.Error())
		return err
	}

	a.guard.SetAuthenticated(identity)
	fmt.Printf("Welcome, %s!\n", identity.Email)
	return nil
}

// Login prompts for credentials and tries to authenticate.
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	identity, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			log.Printf("Login failed: server unavailable")
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	a.guard.SetAuthenticated(identity)
	log.Printf("Login successful")
	return nil
}

// WhoAmI verifies the session against the backend and prints the account.
func (a *App) WhoAmI(ctx context.Context) error {
	identity, err := a.api.Me(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Println("Not signed in.")
		} else {
			log.Printf("Error: %s", err.Error())
		}
		return err
	}

	fmt.Printf("Email:      %s\n", identity.Email)
	if identity.FullName != "" {
		fmt.Printf("Full name:  %s\n", identity.FullName)
	}
	fmt.Printf("Member since: %s\n", identity.CreatedAt.Format("2006-01-02"))
	return nil
}

// Logout discards the local session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.guard.SignOut(ctx); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	fmt.Println("Signed out.")
	return nil
}
