package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/rosebudapp/rosebud/internal/client/api"
	"github.com/rosebudapp/rosebud/internal/client/config"
	"github.com/rosebudapp/rosebud/internal/client/repositories/entries"
	"github.com/rosebudapp/rosebud/internal/client/repositories/groups"
	"github.com/rosebudapp/rosebud/internal/client/repositories/members"
	"github.com/rosebudapp/rosebud/internal/client/repositories/tags"
	"github.com/rosebudapp/rosebud/internal/client/repositories/users"
	"github.com/rosebudapp/rosebud/internal/client/services"
	"github.com/rosebudapp/rosebud/internal/client/store"
	"github.com/rosebudapp/rosebud/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	store   *store.Store
	auth    *services.AuthService
	entries *services.EntryService
	groups  *services.GroupService
	tags    *services.TagService
	users   *services.UserService
	reader  *bufio.Reader
}

// NewApp wires the CLI together. A local store that cannot be opened is not
// fatal: the repositories resolve the handle per call, every cached read
// then degrades to network-only, and the app stays usable.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) *App {

	st := store.New(c.DatabasePath)
	if _, err := st.Open(ctx); err != nil {
		logger.Warn(ctx, "local store unavailable, continuing network-only", "error", err)
	}

	apiClient := api.NewWithTimeout(c.ServerBaseURL, c.RequestTimeout)

	userRepo := users.NewStoreRepository(st)
	entryRepo := entries.NewStoreRepository(st)
	groupRepo := groups.NewStoreRepository(st)
	memberRepo := members.NewStoreRepository(st)
	tagRepo := tags.NewStoreRepository(st)

	return &App{
		config:  c,
		store:   st,
		auth:    services.NewAuthService(apiClient, st, userRepo, logger),
		entries: services.NewEntryService(apiClient, entryRepo, logger),
		groups:  services.NewGroupService(apiClient, groupRepo, memberRepo, logger),
		tags:    services.NewTagService(apiClient, tagRepo, logger),
		users:   services.NewUserService(apiClient, userRepo, logger),
		reader:  bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.store.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.auth.CurrentUser() != nil
}

func (a *App) currentUserID() string {
	if u := a.auth.CurrentUser(); u != nil {
		return u.ID
	}
	return ""
}
