package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/rosebudapp/rosebud/internal/client/api"
	"github.com/rosebudapp/rosebud/internal/client/models"
	"github.com/rosebudapp/rosebud/internal/common"
)

// printEntries is the shared render callback for entry feeds. The cached
// snapshot is marked so the user can tell it apart from the fresh one.
func printEntries(list []models.Entry, stale bool) {
	if stale {
		printlnFn("--- cached ---")
	} else {
		printlnFn("--- up to date ---")
	}
	for _, e := range list {
		printfFn("[%s] %s\n", e.Date, e.ID)
		printfFn("  rose:  %s\n", e.RoseText)
		printfFn("  bud:   %s\n", e.BudText)
		printfFn("  thorn: %s\n", e.ThornText)
	}
	if len(list) == 0 {
		printlnFn("(no entries)")
	}
}

// today prompts for the three parts of a daily entry and creates it.
func (a *App) today(ctx context.Context) error {
	rose, err := GetMultiline(a.reader, "Rose (a highlight of your day)", os.Stdout)
	if err != nil {
		return err
	}
	bud, err := GetMultiline(a.reader, "Bud (something you look forward to)", os.Stdout)
	if err != nil {
		return err
	}
	thorn, err := GetMultiline(a.reader, "Thorn (a difficulty)", os.Stdout)
	if err != nil {
		return err
	}

	entry := &models.Entry{
		UserID:    a.currentUserID(),
		Date:      time.Now().Format(models.DateLayout),
		RoseText:  rose,
		BudText:   bud,
		ThornText: thorn,
	}

	created, err := a.entries.Create(ctx, entry)
	if err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusConflict {
			printlnFn("You already wrote an entry today. Use 'edit' to change it.")
			return nil
		}
		printlnFn(err.Error())
		return err
	}
	printfFn("Saved entry %s\n", created.ID)
	return nil
}

// list shows the user's own feed, cache first, then the server copy.
func (a *App) list(ctx context.Context) {
	res := a.entries.HomeEntries(ctx, a.currentUserID(), printEntries)
	if res.Err != nil {
		printlnFn(res.Err.Error())
	}
}

// feed shows a group feed by group id.
func (a *App) feed(ctx context.Context, groupID string) {
	res := a.entries.GroupFeed(ctx, groupID, printEntries)
	if res.Err != nil {
		printlnFn(res.Err.Error())
	}
}

// recent prints the most recent cached entry. This is a cache-only read,
// useful as a quick reminder of where the journal left off.
func (a *App) recent(ctx context.Context) {
	entry, err := a.entries.MostRecent(ctx, a.currentUserID())
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("No entries yet.")
			return
		}
		printlnFn(err.Error())
		return
	}
	printEntries([]models.Entry{*entry}, true)
}

// remove deletes an entry by id, server first, then the cache.
func (a *App) remove(ctx context.Context, id string) {
	if err := a.entries.Delete(ctx, id); err != nil {
		printlnFn(err.Error())
		return
	}
	printlnFn("Deleted.")
}
