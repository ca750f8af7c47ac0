// Package services implements the server's business logic on top of the
// repository layer. Each service holds the shared *sql.DB and a
// RepositoryManager and opens transactions where a unit of work spans
// multiple tables.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rosebudapp/rosebud/internal/common"
	"github.com/rosebudapp/rosebud/internal/server/auth"
	"github.com/rosebudapp/rosebud/internal/server/config"
	"github.com/rosebudapp/rosebud/internal/server/models"
	"github.com/rosebudapp/rosebud/internal/server/repositories/repomanager"
)

type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

func (s *UserService) Register(ctx context.Context, username, password, name, email string) (*models.User, string, error) {

	if username == "" || password == "" {
		return nil, "", fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	repo := s.repomanager.Users(s.db)

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			return nil, "", common.ErrUsernameTaken
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return user, token, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, string, error) {

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrInvalidLoginOrPass
		}
		return nil, "", common.ErrInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", common.ErrInvalidLoginOrPass
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return user, token, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

func (s *UserService) generateToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.tokenValidityDuration)
}
