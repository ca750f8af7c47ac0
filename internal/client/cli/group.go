package cli

import (
	"context"
	"errors"
	"os"

	"github.com/rosebudapp/rosebud/internal/client/models"
	"github.com/rosebudapp/rosebud/internal/common"
)

func printGroups(list []models.Group, stale bool) {
	if stale {
		printlnFn("--- cached ---")
	} else {
		printlnFn("--- up to date ---")
	}
	for _, g := range list {
		printfFn("%s  %s (join code: %s)\n", g.ID, g.Name, g.JoinCode)
	}
	if len(list) == 0 {
		printlnFn("(no groups)")
	}
}

// listGroups shows the groups the current user belongs to.
func (a *App) listGroups(ctx context.Context) {
	res := a.groups.GroupsForUser(ctx, a.currentUserID(), printGroups)
	if res.Err != nil {
		printlnFn(res.Err.Error())
	}
}

// createGroup prompts for a name and creates a group. A partial sync is
// reported but the group is still usable.
func (a *App) createGroup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Group name", os.Stdout)
	if err != nil {
		return err
	}

	group, err := a.groups.Create(ctx, a.currentUserID(), name)
	if err != nil {
		if errors.Is(err, common.ErrPartialSync) && group != nil {
			printfFn("Created group %s, but its membership has not synced yet. It will on the next 'groups'.\n", group.Name)
			return nil
		}
		printlnFn(err.Error())
		return err
	}
	printfFn("Created group %s. Share the join code: %s\n", group.Name, group.JoinCode)
	return nil
}

// joinGroup redeems a join code.
func (a *App) joinGroup(ctx context.Context) error {
	code, err := getSimpleText(a.reader, "Join code", os.Stdout)
	if err != nil {
		return err
	}

	group, err := a.groups.Join(ctx, code)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	printfFn("Joined %s!\n", group.Name)
	return nil
}
