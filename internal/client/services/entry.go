package services

import (
	"context"
	"fmt"

	"github.com/rosebudapp/rosebud/internal/client/models"
	"github.com/rosebudapp/rosebud/internal/client/repositories/entries"
	"github.com/rosebudapp/rosebud/internal/client/sync"
	"github.com/rosebudapp/rosebud/internal/logging"
)

// EntryAPI is the slice of the API client used by EntryService.
type EntryAPI interface {
	ListEntries(ctx context.Context, userID string) ([]models.Entry, error)
	ListGroupEntries(ctx context.Context, groupID string) ([]models.Entry, error)
	CreateEntry(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	UpdateEntry(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
}

// EntryService backs the home calendar and group feed views.
type EntryService struct {
	api       EntryAPI
	entryRepo entries.Repository
	log       logging.Logger
}

func NewEntryService(apiClient EntryAPI, entryRepo entries.Repository, log logging.Logger) *EntryService {
	return &EntryService{api: apiClient, entryRepo: entryRepo, log: log}
}

// HomeEntries syncs the user's entries for the home calendar: cached
// snapshot first, then the authoritative list, persisted back record by
// record (update-as-upsert, so overlapping ids are simply replaced).
func (s *EntryService) HomeEntries(ctx context.Context, userID string, render func([]models.Entry, bool)) sync.Result[[]models.Entry] {
	src := sync.Source[[]models.Entry]{
		ReadCache: func(ctx context.Context) ([]models.Entry, bool, error) {
			cached, err := s.entryRepo.GetAllByUser(ctx, userID)
			if err != nil {
				return nil, false, err
			}
			return cached, len(cached) > 0, nil
		},
		Fetch: func(ctx context.Context) ([]models.Entry, error) {
			return s.api.ListEntries(ctx, userID)
		},
		WriteCache: func(ctx context.Context, fetched []models.Entry) error {
			for i := range fetched {
				if err := s.entryRepo.Update(ctx, &fetched[i]); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return sync.Run(ctx, s.log, src, render)
}

// GroupFeed syncs a group's shared entries. Fetched records are merged with
// AddIfNotPresent: the batch may overlap entries already cached from the
// owners' own syncs, and the merge must not fabricate duplicates.
func (s *EntryService) GroupFeed(ctx context.Context, groupID string, render func([]models.Entry, bool)) sync.Result[[]models.Entry] {
	src := sync.Source[[]models.Entry]{
		ReadCache: func(ctx context.Context) ([]models.Entry, bool, error) {
			cached, err := s.entryRepo.GetAllByGroup(ctx, groupID)
			if err != nil {
				return nil, false, err
			}
			return cached, len(cached) > 0, nil
		},
		Fetch: func(ctx context.Context) ([]models.Entry, error) {
			return s.api.ListGroupEntries(ctx, groupID)
		},
		WriteCache: func(ctx context.Context, fetched []models.Entry) error {
			for i := range fetched {
				if err := s.entryRepo.AddIfNotPresent(ctx, &fetched[i]); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return sync.Run(ctx, s.log, src, render)
}

// MostRecent returns the user's latest cached entry, or common.ErrNotFound.
// This read is cache-only: the home view calls it after HomeEntries has
// already reconciled.
func (s *EntryService) MostRecent(ctx context.Context, userID string) (*models.Entry, error) {
	return s.entryRepo.GetMostRecent(ctx, userID)
}

// EntriesByTag backs tag search: cached tag-indexed entries first, then the
// authoritative list filtered down to the tag.
func (s *EntryService) EntriesByTag(ctx context.Context, userID, tagID string, render func([]models.Entry, bool)) sync.Result[[]models.Entry] {
	src := sync.Source[[]models.Entry]{
		ReadCache: func(ctx context.Context) ([]models.Entry, bool, error) {
			cached, err := s.entryRepo.GetByTag(ctx, tagID)
			if err != nil {
				return nil, false, err
			}
			return cached, len(cached) > 0, nil
		},
		Fetch: func(ctx context.Context) ([]models.Entry, error) {
			all, err := s.api.ListEntries(ctx, userID)
			if err != nil {
				return nil, err
			}
			matched := make([]models.Entry, 0)
			for _, e := range all {
				for _, id := range e.Tags {
					if id == tagID {
						matched = append(matched, e)
						break
					}
				}
			}
			return matched, nil
		},
		WriteCache: func(ctx context.Context, fetched []models.Entry) error {
			for i := range fetched {
				if err := s.entryRepo.Update(ctx, &fetched[i]); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return sync.Run(ctx, s.log, src, render)
}

// Create posts a new entry and caches the stored copy. Writes require a
// live network round-trip; there is no offline outbox.
func (s *EntryService) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	stored, err := s.api.CreateEntry(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	if err := s.entryRepo.Update(ctx, stored); err != nil {
		s.log.Warn(ctx, "failed to cache created entry", "error", err)
	}
	return stored, nil
}

// Edit replaces an entry server-side and reconciles the cache.
func (s *EntryService) Edit(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	stored, err := s.api.UpdateEntry(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}
	if err := s.entryRepo.Update(ctx, stored); err != nil {
		s.log.Warn(ctx, "failed to cache updated entry", "error", err)
	}
	return stored, nil
}

// Delete removes an entry server-side, then locally. A local miss is fine.
func (s *EntryService) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if err := s.entryRepo.Delete(ctx, id); err != nil {
		s.log.Warn(ctx, "failed to evict deleted entry", "error", err)
	}
	return nil
}
