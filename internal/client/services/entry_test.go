package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosebudapp/rosebud/internal/client/models"
	"github.com/rosebudapp/rosebud/internal/client/repositories/entries"
	"github.com/rosebudapp/rosebud/internal/common"
	"github.com/rosebudapp/rosebud/internal/logging"

	_ "modernc.org/sqlite"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupEntriesDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE entries (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  group_id TEXT NOT NULL DEFAULT '',
  date TEXT NOT NULL,
  rose_text TEXT NOT NULL DEFAULT '',
  bud_text TEXT NOT NULL DEFAULT '',
  thorn_text TEXT NOT NULL DEFAULT '',
  is_public INTEGER NOT NULL DEFAULT 0,
  tags TEXT NOT NULL DEFAULT '[]',
  reactions TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE entry_tags (
  entry_id TEXT NOT NULL,
  tag_id TEXT NOT NULL,
  PRIMARY KEY (entry_id, tag_id)
);
`)
	require.NoError(t, err)

	return db
}

type fakeEntryAPI struct {
	entries      []models.Entry
	groupEntries []models.Entry
	err          error
}

func (f *fakeEntryAPI) ListEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	return f.entries, f.err
}

func (f *fakeEntryAPI) ListGroupEntries(ctx context.Context, groupID string) ([]models.Entry, error) {
	return f.groupEntries, f.err
}

func (f *fakeEntryAPI) CreateEntry(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	stored := *entry
	stored.ID = "server-id"
	return &stored, nil
}

func (f *fakeEntryAPI) UpdateEntry(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	return entry, f.err
}

func (f *fakeEntryAPI) DeleteEntry(ctx context.Context, id string) error {
	return f.err
}

func entry(id, userID, date, rose string) models.Entry {
	return models.Entry{
		ID: id, UserID: userID, Date: date, RoseText: rose,
		Tags: []string{}, Reactions: []models.Reaction{},
	}
}

func TestHomeEntries_NetworkSupersedesCache(t *testing.T) {
	db := setupEntriesDB(t)
	repo := entries.NewSQLiteRepository(db)
	ctx := context.Background()

	// Cached copy from a previous session.
	stale := entry("e1", "u1", "2024-01-01", "old")
	require.NoError(t, repo.Add(ctx, &stale))

	fresh := entry("e1", "u1", "2024-01-01", "new")
	svc := NewEntryService(&fakeEntryAPI{entries: []models.Entry{fresh}}, repo, testLogger())

	var renders [][]models.Entry
	res := svc.HomeEntries(ctx, "u1", func(data []models.Entry, staleRender bool) {
		renders = append(renders, data)
	})

	// Cached paint first, then the authoritative copy.
	require.Len(t, renders, 2)
	assert.Equal(t, "old", renders[0][0].RoseText)
	assert.Equal(t, "new", renders[1][0].RoseText)
	assert.False(t, res.Stale)

	// The reconciled record is persisted for the next cold start.
	got, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.RoseText)
}

func TestHomeEntries_OfflineKeepsCache(t *testing.T) {
	db := setupEntriesDB(t)
	repo := entries.NewSQLiteRepository(db)
	ctx := context.Background()

	cached := entry("e1", "u1", "2024-01-01", "rose")
	require.NoError(t, repo.Add(ctx, &cached))

	svc := NewEntryService(&fakeEntryAPI{err: errors.New("offline")}, repo, testLogger())

	res := svc.HomeEntries(ctx, "u1", nil)
	assert.True(t, res.Stale)
	assert.Error(t, res.Err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "e1", res.Data[0].ID)
}

type brokenEntryRepo struct {
	entries.Repository
}

func (brokenEntryRepo) GetAllByUser(ctx context.Context, userID string) ([]models.Entry, error) {
	return nil, common.ErrStoreUnavailable
}

func (brokenEntryRepo) Update(ctx context.Context, entry *models.Entry) error {
	return common.ErrStoreUnavailable
}

func TestHomeEntries_StoreUnavailableGoesNetworkOnly(t *testing.T) {
	ctx := context.Background()

	fresh := entry("e1", "u1", "2024-01-01", "rose")
	svc := NewEntryService(&fakeEntryAPI{entries: []models.Entry{fresh}}, brokenEntryRepo{}, testLogger())

	var renders int
	res := svc.HomeEntries(ctx, "u1", func(data []models.Entry, stale bool) {
		renders++
		assert.False(t, stale)
	})

	// The view completes on the network result alone.
	assert.Equal(t, 1, renders)
	assert.False(t, res.Stale)
	assert.NoError(t, res.Err)
	require.Len(t, res.Data, 1)
}

func TestGroupFeed_MergeDoesNotDuplicate(t *testing.T) {
	db := setupEntriesDB(t)
	repo := entries.NewSQLiteRepository(db)
	ctx := context.Background()

	// "e1" is already cached from the owner's own sync.
	e1 := entry("e1", "u1", "2024-01-01", "mine")
	e1.GroupID = "g1"
	require.NoError(t, repo.Add(ctx, &e1))

	e2 := entry("e2", "u2", "2024-01-02", "theirs")
	e2.GroupID = "g1"

	svc := NewEntryService(&fakeEntryAPI{groupEntries: []models.Entry{e1, e2}}, repo, testLogger())

	res := svc.GroupFeed(ctx, "g1", nil)
	require.NoError(t, res.Err)

	got, err := repo.GetAllByGroup(ctx, "g1")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Running the same feed sync again stays at two.
	res = svc.GroupFeed(ctx, "g1", nil)
	require.NoError(t, res.Err)
	got, err = repo.GetAllByGroup(ctx, "g1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestEntriesByTag(t *testing.T) {
	db := setupEntriesDB(t)
	repo := entries.NewSQLiteRepository(db)
	ctx := context.Background()

	tagged := entry("e1", "u1", "2024-01-01", "a")
	tagged.Tags = []string{"t1"}
	plain := entry("e2", "u1", "2024-01-02", "b")

	svc := NewEntryService(&fakeEntryAPI{entries: []models.Entry{tagged, plain}}, repo, testLogger())

	res := svc.EntriesByTag(ctx, "u1", "t1", nil)
	require.NoError(t, res.Err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "e1", res.Data[0].ID)

	// The tag index now serves the cached render on the next attempt.
	cached, err := repo.GetByTag(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, cached, 1)
}

func TestCreate_CachesStoredCopy(t *testing.T) {
	db := setupEntriesDB(t)
	repo := entries.NewSQLiteRepository(db)
	ctx := context.Background()

	svc := NewEntryService(&fakeEntryAPI{}, repo, testLogger())

	draft := entry("", "u1", "2024-01-01", "rose")
	stored, err := svc.Create(ctx, &draft)
	require.NoError(t, err)
	assert.Equal(t, "server-id", stored.ID)

	got, err := repo.GetByID(ctx, "server-id")
	require.NoError(t, err)
	assert.Equal(t, "rose", got.RoseText)
}

func TestMostRecent(t *testing.T) {
	db := setupEntriesDB(t)
	repo := entries.NewSQLiteRepository(db)
	ctx := context.Background()

	svc := NewEntryService(&fakeEntryAPI{}, repo, testLogger())

	_, err := svc.MostRecent(ctx, "u1")
	assert.ErrorIs(t, err, common.ErrNotFound)

	older := entry("e1", "u1", "2024-01-01", "a")
	newer := entry("e2", "u1", "2024-03-01", "b")
	require.NoError(t, repo.Add(ctx, &older))
	require.NoError(t, repo.Add(ctx, &newer))

	got, err := svc.MostRecent(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "e2", got.ID)
}
