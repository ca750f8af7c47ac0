package services

import (
	"context"
	"database/sql"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/rosebudapp/rosebud/internal/common"
	"github.com/rosebudapp/rosebud/internal/dbx"
	"github.com/rosebudapp/rosebud/internal/server/models"
	"github.com/rosebudapp/rosebud/internal/server/repositories/entries"
	"github.com/rosebudapp/rosebud/internal/server/repositories/groups"
	"github.com/rosebudapp/rosebud/internal/server/repositories/members"
	"github.com/rosebudapp/rosebud/internal/server/repositories/tags"
	"github.com/rosebudapp/rosebud/internal/server/repositories/users"
)

// fakeRM hands back in-memory repositories regardless of the DBTX, so
// services can be exercised without a database. Transactional paths still
// need a sqlmock db for Begin/Commit.
type fakeRM struct {
	users   *fakeUserRepo
	entries *fakeEntryRepo
	groups  *fakeGroupRepo
	tags    *fakeTagRepo
	members *fakeMemberRepo
}

func newFakeRM() *fakeRM {
	return &fakeRM{
		users:   &fakeUserRepo{byID: map[string]*models.User{}},
		entries: &fakeEntryRepo{byID: map[string]*models.Entry{}, tagsByEntry: map[string][]string{}},
		groups:  &fakeGroupRepo{byID: map[string]*models.Group{}},
		tags:    &fakeTagRepo{byID: map[string]*models.Tag{}},
		members: &fakeMemberRepo{byID: map[string]*models.Membership{}},
	}
}

func (f *fakeRM) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (f *fakeRM) Users(db dbx.DBTX) users.Repository                  { return f.users }
func (f *fakeRM) Entries(db dbx.DBTX) entries.Repository              { return f.entries }
func (f *fakeRM) Groups(db dbx.DBTX) groups.Repository                { return f.groups }
func (f *fakeRM) Tags(db dbx.DBTX) tags.Repository                    { return f.tags }
func (f *fakeRM) Members(db dbx.DBTX) members.Repository              { return f.members }

// mockDB returns a db whose Begin/Commit always succeed, for services that
// open transactions around fake repositories.
func mockDB() (*sql.DB, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		panic(err)
	}
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 16; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectRollback()
	}
	return db, func() { _ = db.Close() }
}

type fakeUserRepo struct {
	byID map[string]*models.User
}

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return nil, common.ErrUsernameTaken
		}
	}
	cp := *u
	r.byID[u.ID] = &cp
	return u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

type fakeEntryRepo struct {
	byID        map[string]*models.Entry
	tagsByEntry map[string][]string
}

func (r *fakeEntryRepo) Create(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	for _, existing := range r.byID {
		if existing.UserID == e.UserID && existing.Date == e.Date {
			return nil, common.ErrEntryExistsForDate
		}
	}
	cp := *e
	r.byID[e.ID] = &cp
	return e, nil
}

func (r *fakeEntryRepo) GetByID(ctx context.Context, id string) (*models.Entry, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEntryRepo) ListByUser(ctx context.Context, userID string) ([]models.Entry, error) {
	result := []models.Entry{}
	for _, e := range r.byID {
		if e.UserID == userID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (r *fakeEntryRepo) ListByGroup(ctx context.Context, groupID string) ([]models.Entry, error) {
	result := []models.Entry{}
	for _, e := range r.byID {
		if e.GroupID == groupID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (r *fakeEntryRepo) ListByTag(ctx context.Context, tagID string) ([]models.Entry, error) {
	result := []models.Entry{}
	for id, tagIDs := range r.tagsByEntry {
		for _, t := range tagIDs {
			if t == tagID {
				result = append(result, *r.byID[id])
			}
		}
	}
	return result, nil
}

func (r *fakeEntryRepo) Update(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	if _, ok := r.byID[e.ID]; !ok {
		return nil, common.ErrNotFound
	}
	cp := *e
	r.byID[e.ID] = &cp
	return e, nil
}

func (r *fakeEntryRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	delete(r.tagsByEntry, id)
	return nil
}

func (r *fakeEntryRepo) SetTags(ctx context.Context, entryID string, tagIDs []string) error {
	r.tagsByEntry[entryID] = append([]string(nil), tagIDs...)
	return nil
}

type fakeGroupRepo struct {
	byID map[string]*models.Group
}

func (r *fakeGroupRepo) Create(ctx context.Context, g *models.Group) (*models.Group, error) {
	for _, existing := range r.byID {
		if existing.JoinCode == g.JoinCode {
			return nil, common.ErrDuplicateKey
		}
	}
	cp := *g
	r.byID[g.ID] = &cp
	return g, nil
}

func (r *fakeGroupRepo) GetByID(ctx context.Context, id string) (*models.Group, error) {
	g, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *fakeGroupRepo) GetByJoinCode(ctx context.Context, joinCode string) (*models.Group, error) {
	for _, g := range r.byID {
		if g.JoinCode == joinCode {
			cp := *g
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

type fakeTagRepo struct {
	byID map[string]*models.Tag
}

func (r *fakeTagRepo) Create(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	for _, existing := range r.byID {
		if existing.UserID == tag.UserID && existing.TagName == tag.TagName {
			return nil, common.ErrDuplicateKey
		}
	}
	cp := *tag
	r.byID[tag.ID] = &cp
	return tag, nil
}

func (r *fakeTagRepo) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	tag, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *tag
	return &cp, nil
}

func (r *fakeTagRepo) ListByUser(ctx context.Context, userID string) ([]models.Tag, error) {
	result := []models.Tag{}
	for _, tag := range r.byID {
		if tag.UserID == userID {
			result = append(result, *tag)
		}
	}
	return result, nil
}

func (r *fakeTagRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type fakeMemberRepo struct {
	byID map[string]*models.Membership
}

func (r *fakeMemberRepo) Create(ctx context.Context, m *models.Membership) (*models.Membership, error) {
	for _, existing := range r.byID {
		if existing.UserID == m.UserID && existing.GroupID == m.GroupID {
			return nil, common.ErrDuplicateKey
		}
	}
	cp := *m
	r.byID[m.ID] = &cp
	return m, nil
}

func (r *fakeMemberRepo) GetByUserAndGroup(ctx context.Context, userID, groupID string) (*models.Membership, error) {
	for _, m := range r.byID {
		if m.UserID == userID && m.GroupID == groupID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeMemberRepo) ListByUser(ctx context.Context, userID string) ([]models.Membership, error) {
	result := []models.Membership{}
	for _, m := range r.byID {
		if m.UserID == userID {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (r *fakeMemberRepo) ListByGroup(ctx context.Context, groupID string) ([]models.Membership, error) {
	result := []models.Membership{}
	for _, m := range r.byID {
		if m.GroupID == groupID {
			result = append(result, *m)
		}
	}
	return result, nil
}
