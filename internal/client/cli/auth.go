package cli

import (
	"context"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details and attempts to create a new account
// via the AuthService. On success the session is established immediately.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Your display name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Your email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.auth.Register(ctx, userName, password, name, email)
	if err != nil {
		printfFn("Registration unsuccessful: %s\n", err.Error())
		return err
	}

	printfFn("Welcome, %s!\n", user.Name)
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
// The local cache survives a failed login; only logout wipes it.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, userName, password)
	if err != nil {
		printfFn("Login unsuccessful: %s\n", err.Error())
		return err
	}

	printfFn("Hello, %s!\n", user.Name)
	return nil
}

// Logout ends the session and wipes the local cache.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		printfFn("Logout failed: %s\n", err.Error())
		return err
	}
	printlnFn("Logged out.")
	return nil
}
