package repomanager

import (
	"context"
	"database/sql"

	"github.com/rosebudapp/rosebud/internal/dbx"
	"github.com/rosebudapp/rosebud/internal/server/repositories/entries"
	"github.com/rosebudapp/rosebud/internal/server/repositories/groups"
	"github.com/rosebudapp/rosebud/internal/server/repositories/members"
	"github.com/rosebudapp/rosebud/internal/server/repositories/tags"
	"github.com/rosebudapp/rosebud/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Entries(db dbx.DBTX) entries.Repository
	Groups(db dbx.DBTX) groups.Repository
	Tags(db dbx.DBTX) tags.Repository
	Members(db dbx.DBTX) members.Repository
}
