package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rosebudapp/rosebud/internal/common"
	"github.com/rosebudapp/rosebud/internal/dbx"
	"github.com/rosebudapp/rosebud/internal/server/models"
	"github.com/rosebudapp/rosebud/internal/server/repositories/repomanager"
)

const joinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const joinCodeLength = 8

// joinCodeAttempts bounds retries when a generated code collides with an
// existing group's.
const joinCodeAttempts = 5

type GroupService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewGroupService(db *sql.DB, m repomanager.RepositoryManager) *GroupService {
	return &GroupService{db: db, repomanager: m}
}

func generateJoinCode() (string, error) {
	buf := make([]byte, joinCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = joinCodeAlphabet[int(b)%len(joinCodeAlphabet)]
	}
	return string(buf), nil
}

// Create makes a new group and its creator's admin membership in one
// transaction, so a group is never visible without an admin.
func (s *GroupService) Create(ctx context.Context, userID, name string) (*models.Group, *models.Membership, error) {

	if name == "" {
		return nil, nil, fmt.Errorf("%w: group name is required", common.ErrValidation)
	}

	var (
		group      *models.Group
		membership *models.Membership
	)

	for attempt := 0; attempt < joinCodeAttempts; attempt++ {
		code, err := generateJoinCode()
		if err != nil {
			return nil, nil, common.ErrInternal
		}

		group = &models.Group{ID: uuid.NewString(), Name: name, JoinCode: code}
		membership = &models.Membership{ID: uuid.NewString(), UserID: userID, GroupID: group.ID, IsAdmin: true}

		err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			if _, err := s.repomanager.Groups(tx).Create(ctx, group); err != nil {
				return err
			}
			_, err := s.repomanager.Members(tx).Create(ctx, membership)
			return err
		})
		if errors.Is(err, common.ErrDuplicateKey) {
			continue // join code collision, roll the dice again
		}
		if err != nil {
			return nil, nil, err
		}
		return group, membership, nil
	}

	return nil, nil, common.ErrInternal
}

// Join redeems a join code for userID. Joining a group twice returns the
// existing membership rather than an error.
func (s *GroupService) Join(ctx context.Context, userID, joinCode string) (*models.Group, *models.Membership, error) {

	group, err := s.repomanager.Groups(s.db).GetByJoinCode(ctx, joinCode)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrJoinCodeNotFound
		}
		return nil, nil, err
	}

	memberRepo := s.repomanager.Members(s.db)

	membership := &models.Membership{ID: uuid.NewString(), UserID: userID, GroupID: group.ID}
	if _, err := memberRepo.Create(ctx, membership); err != nil {
		if errors.Is(err, common.ErrDuplicateKey) {
			existing, err := memberRepo.GetByUserAndGroup(ctx, userID, group.ID)
			if err != nil {
				return nil, nil, err
			}
			return group, existing, nil
		}
		return nil, nil, err
	}

	return group, membership, nil
}

// Get returns a group the caller belongs to. The payload carries the join
// code, so non-members are refused.
func (s *GroupService) Get(ctx context.Context, userID, id string) (*models.Group, error) {
	if _, err := s.repomanager.Members(s.db).GetByUserAndGroup(ctx, userID, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}
	return s.repomanager.Groups(s.db).GetByID(ctx, id)
}

func (s *GroupService) ListMemberships(ctx context.Context, userID string) ([]models.Membership, error) {
	return s.repomanager.Members(s.db).ListByUser(ctx, userID)
}

// ListGroupMembers returns the member list of a group the caller belongs to.
func (s *GroupService) ListGroupMembers(ctx context.Context, userID, groupID string) ([]models.Membership, error) {
	if _, err := s.repomanager.Members(s.db).GetByUserAndGroup(ctx, userID, groupID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}
	return s.repomanager.Members(s.db).ListByGroup(ctx, groupID)
}
