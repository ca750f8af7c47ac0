package cli

import (
	"context"
	"os"

	"github.com/rosebudapp/rosebud/internal/client/models"
)

func printTags(list []models.Tag, stale bool) {
	if stale {
		printlnFn("--- cached ---")
	} else {
		printlnFn("--- up to date ---")
	}
	for _, tag := range list {
		printfFn("%s  #%s (%d entries)\n", tag.ID, tag.TagName, len(tag.Entries))
	}
	if len(list) == 0 {
		printlnFn("(no tags)")
	}
}

// listTags shows the user's tags.
func (a *App) listTags(ctx context.Context) {
	res := a.tags.TagsForUser(ctx, a.currentUserID(), printTags)
	if res.Err != nil {
		printlnFn(res.Err.Error())
	}
}

// addTag creates a tag.
func (a *App) addTag(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Tag name", os.Stdout)
	if err != nil {
		return err
	}

	tag, err := a.tags.Create(ctx, &models.Tag{UserID: a.currentUserID(), TagName: name})
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	printfFn("Created tag #%s\n", tag.TagName)
	return nil
}

// tagged shows the entries carrying a tag.
func (a *App) tagged(ctx context.Context, tagID string) {
	res := a.entries.EntriesByTag(ctx, a.currentUserID(), tagID, printEntries)
	if res.Err != nil {
		printlnFn(res.Err.Error())
	}
}
