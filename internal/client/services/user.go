package services

import (
	"context"
	"errors"

	"github.com/rosebudapp/rosebud/internal/client/models"
	"github.com/rosebudapp/rosebud/internal/client/repositories/users"
	"github.com/rosebudapp/rosebud/internal/client/sync"
	"github.com/rosebudapp/rosebud/internal/common"
	"github.com/rosebudapp/rosebud/internal/logging"
)

// UserAPI is the slice of the API client used by UserService.
type UserAPI interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// UserService backs profile views.
type UserService struct {
	api      UserAPI
	userRepo users.Repository
	log      logging.Logger
}

func NewUserService(apiClient UserAPI, userRepo users.Repository, log logging.Logger) *UserService {
	return &UserService{api: apiClient, userRepo: userRepo, log: log}
}

// Profile syncs one user record.
func (s *UserService) Profile(ctx context.Context, id string, render func(*models.User, bool)) sync.Result[*models.User] {
	src := sync.Source[*models.User]{
		ReadCache: func(ctx context.Context) (*models.User, bool, error) {
			u, err := s.userRepo.GetByID(ctx, id)
			if errors.Is(err, common.ErrNotFound) {
				return nil, false, nil
			}
			if err != nil {
				return nil, false, err
			}
			return u, true, nil
		},
		Fetch: func(ctx context.Context) (*models.User, error) {
			return s.api.GetUser(ctx, id)
		},
		WriteCache: func(ctx context.Context, fetched *models.User) error {
			return s.userRepo.Update(ctx, fetched)
		},
	}
	return sync.Run(ctx, s.log, src, render)
}
