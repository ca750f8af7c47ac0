package services

import (
	"context"
	"fmt"

	"github.com/rosebudapp/rosebud/internal/client/models"
	"github.com/rosebudapp/rosebud/internal/client/repositories/tags"
	"github.com/rosebudapp/rosebud/internal/client/sync"
	"github.com/rosebudapp/rosebud/internal/logging"
)

// TagAPI is the slice of the API client used by TagService.
type TagAPI interface {
	ListTags(ctx context.Context, userID string) ([]models.Tag, error)
	CreateTag(ctx context.Context, tag *models.Tag) (*models.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}

// TagService backs the tag search view.
type TagService struct {
	api     TagAPI
	tagRepo tags.Repository
	log     logging.Logger
}

func NewTagService(apiClient TagAPI, tagRepo tags.Repository, log logging.Logger) *TagService {
	return &TagService{api: apiClient, tagRepo: tagRepo, log: log}
}

// TagsForUser syncs the user's tags for search.
func (s *TagService) TagsForUser(ctx context.Context, userID string, render func([]models.Tag, bool)) sync.Result[[]models.Tag] {
	src := sync.Source[[]models.Tag]{
		ReadCache: func(ctx context.Context) ([]models.Tag, bool, error) {
			cached, err := s.tagRepo.GetAllByUser(ctx, userID)
			if err != nil {
				return nil, false, err
			}
			return cached, len(cached) > 0, nil
		},
		Fetch: func(ctx context.Context) ([]models.Tag, error) {
			return s.api.ListTags(ctx, userID)
		},
		WriteCache: func(ctx context.Context, fetched []models.Tag) error {
			for i := range fetched {
				if err := s.tagRepo.Update(ctx, &fetched[i]); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return sync.Run(ctx, s.log, src, render)
}

// Create makes a tag server-side and caches the stored copy.
func (s *TagService) Create(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	stored, err := s.api.CreateTag(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	if err := s.tagRepo.Update(ctx, stored); err != nil {
		s.log.Warn(ctx, "failed to cache created tag", "error", err)
	}
	return stored, nil
}

// Delete removes a tag server-side, then locally.
func (s *TagService) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteTag(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if err := s.tagRepo.Delete(ctx, id); err != nil {
		s.log.Warn(ctx, "failed to evict deleted tag", "error", err)
	}
	return nil
}
