// Package services hosts the client's view-facing services. Each read path
// follows the cache-then-network protocol through the sync package; write
// paths go to the network first and update the cache on success (there is
// no offline write queue).
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rosebudapp/rosebud/internal/client/api"
	"github.com/rosebudapp/rosebud/internal/client/models"
	"github.com/rosebudapp/rosebud/internal/client/repositories/users"
	"github.com/rosebudapp/rosebud/internal/client/store"
	"github.com/rosebudapp/rosebud/internal/common"
	"github.com/rosebudapp/rosebud/internal/logging"
)

// AuthAPI is the slice of the API client used by AuthService.
type AuthAPI interface {
	Register(ctx context.Context, username, password, name, email string) (*api.AuthResponse, error)
	Login(ctx context.Context, username, password string) (*api.AuthResponse, error)
	SetToken(token string)
}

// AuthService handles session lifecycle: register, login, logout. Logout
// wipes the local store before it is considered complete, so the next
// account on this device starts from an empty cache.
type AuthService struct {
	api      AuthAPI
	store    *store.Store
	userRepo users.Repository
	log      logging.Logger

	current *models.User
}

func NewAuthService(apiClient AuthAPI, st *store.Store, userRepo users.Repository, log logging.Logger) *AuthService {
	return &AuthService{api: apiClient, store: st, userRepo: userRepo, log: log}
}

func (s *AuthService) Register(ctx context.Context, username, password, name, email string) (*models.User, error) {
	resp, err := s.api.Register(ctx, username, password, name, email)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return s.establishSession(ctx, resp)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	resp, err := s.api.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return s.establishSession(ctx, resp)
}

func (s *AuthService) establishSession(ctx context.Context, resp *api.AuthResponse) (*models.User, error) {
	s.api.SetToken(resp.Token)
	s.current = &resp.User

	// Cache the authenticated user; a failed write-back never blocks login.
	if err := s.userRepo.Update(ctx, &resp.User); err != nil {
		s.log.Warn(ctx, "failed to cache user", "error", err)
	}
	return s.current, nil
}

// Logout clears the session token and wipes every cached collection. The
// wipe runs synchronously: logout is not complete until it returns. A store
// that never opened has nothing cached, so the wipe is skipped.
func (s *AuthService) Logout(ctx context.Context) error {
	s.api.SetToken("")
	s.current = nil

	if err := s.store.Wipe(ctx); err != nil {
		if errors.Is(err, common.ErrStoreUnavailable) {
			s.log.Warn(ctx, "skipping cache wipe, store never opened", "error", err)
			return nil
		}
		return fmt.Errorf("failed to wipe local store: %w", err)
	}
	return nil
}

// CurrentUser returns the user of the active session, or nil.
func (s *AuthService) CurrentUser() *models.User {
	return s.current
}
