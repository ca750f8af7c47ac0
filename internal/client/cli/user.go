package cli

import (
	"context"

	"github.com/rosebudapp/rosebud/internal/client/models"
)

func printProfile(u *models.User, stale bool) {
	if stale {
		printlnFn("--- cached ---")
	} else {
		printlnFn("--- up to date ---")
	}
	printfFn("%s (@%s) <%s>\n", u.Name, u.Username, u.Email)
}

// whoami shows the current account's profile.
func (a *App) whoami(ctx context.Context) {
	res := a.users.Profile(ctx, a.currentUserID(), printProfile)
	if res.Err != nil {
		printlnFn(res.Err.Error())
	}
}
