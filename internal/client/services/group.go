package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rosebudapp/rosebud/internal/client/api"
	"github.com/rosebudapp/rosebud/internal/client/models"
	"github.com/rosebudapp/rosebud/internal/client/repositories/groups"
	"github.com/rosebudapp/rosebud/internal/client/repositories/members"
	"github.com/rosebudapp/rosebud/internal/client/sync"
	"github.com/rosebudapp/rosebud/internal/common"
	"github.com/rosebudapp/rosebud/internal/logging"
)

// GroupAPI is the slice of the API client used by GroupService.
type GroupAPI interface {
	GetGroup(ctx context.Context, id string) (*models.Group, error)
	CreateGroup(ctx context.Context, name string) (*models.Group, error)
	JoinGroup(ctx context.Context, joinCode string) (*api.JoinResponse, error)
	ListMemberships(ctx context.Context, userID string) ([]models.Membership, error)
}

// GroupService backs the groups view: the list of groups the user belongs
// to, plus create and join flows.
type GroupService struct {
	api        GroupAPI
	groupRepo  groups.Repository
	memberRepo members.Repository
	log        logging.Logger
}

func NewGroupService(apiClient GroupAPI, groupRepo groups.Repository, memberRepo members.Repository, log logging.Logger) *GroupService {
	return &GroupService{api: apiClient, groupRepo: groupRepo, memberRepo: memberRepo, log: log}
}

// GroupsForUser syncs the user's groups. The cached snapshot walks the
// membership index and resolves each group locally; the fetch resolves the
// authoritative membership list and its groups, which then fully replace
// the rendered state, including the case where the user's memberships
// legitimately shrank to zero.
//
// Memberships rarely arrive without a server id, but when one does the
// cached row gets a locally generated one so the (user, group) pair is
// still represented until the next sync returns the real id.
func (s *GroupService) GroupsForUser(ctx context.Context, userID string, render func([]models.Group, bool)) sync.Result[[]models.Group] {
	var fetchedMemberships []models.Membership

	src := sync.Source[[]models.Group]{
		ReadCache: func(ctx context.Context) ([]models.Group, bool, error) {
			memberships, err := s.memberRepo.GetAllByUser(ctx, userID)
			if err != nil {
				return nil, false, err
			}
			cached := make([]models.Group, 0, len(memberships))
			for _, m := range memberships {
				g, err := s.groupRepo.GetByID(ctx, m.GroupID)
				if errors.Is(err, common.ErrNotFound) {
					continue // membership cached before its group; fetch will fill it
				}
				if err != nil {
					return nil, false, err
				}
				cached = append(cached, *g)
			}
			return cached, len(cached) > 0, nil
		},
		Fetch: func(ctx context.Context) ([]models.Group, error) {
			memberships, err := s.api.ListMemberships(ctx, userID)
			if err != nil {
				return nil, err
			}
			fetchedMemberships = memberships

			result := make([]models.Group, 0, len(memberships))
			for _, m := range memberships {
				g, err := s.api.GetGroup(ctx, m.GroupID)
				if err != nil {
					return nil, err
				}
				result = append(result, *g)
			}
			return result, nil
		},
		WriteCache: func(ctx context.Context, fetched []models.Group) error {
			for i := range fetched {
				if err := s.groupRepo.Update(ctx, &fetched[i]); err != nil {
					return err
				}
			}
			for _, m := range fetchedMemberships {
				if m.ID == "" {
					m.ID = uuid.NewString()
				}
				if err := s.memberRepo.AddIfNew(ctx, &m); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return sync.Run(ctx, s.log, src, render)
}

// Create makes a group server-side, then reconciles the creator's
// membership. When the second step fails the group still exists; that gap
// is reported as a partial sync, not rolled back.
func (s *GroupService) Create(ctx context.Context, userID, name string) (*models.Group, error) {
	group, err := s.api.CreateGroup(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	if err := s.groupRepo.Update(ctx, group); err != nil {
		s.log.Warn(ctx, "failed to cache created group", "error", err)
	}

	memberships, err := s.api.ListMemberships(ctx, userID)
	if err != nil {
		s.log.Warn(ctx, "group created but membership sync failed", "group_id", group.ID, "error", err)
		return group, fmt.Errorf("%w: membership sync failed: %v", common.ErrPartialSync, err)
	}
	for _, m := range memberships {
		if m.GroupID != group.ID {
			continue
		}
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if err := s.memberRepo.AddIfNew(ctx, &m); err != nil {
			s.log.Warn(ctx, "failed to cache membership", "error", err)
		}
	}
	return group, nil
}

// Join redeems a join code. The server hands back the membership it
// created, so the cache stores the authoritative membership id.
func (s *GroupService) Join(ctx context.Context, joinCode string) (*models.Group, error) {
	resp, err := s.api.JoinGroup(ctx, joinCode)
	if err != nil {
		return nil, fmt.Errorf("failed to join group: %w", err)
	}

	if err := s.groupRepo.Update(ctx, &resp.Group); err != nil {
		s.log.Warn(ctx, "failed to cache joined group", "error", err)
	}
	m := resp.Membership
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if err := s.memberRepo.AddIfNew(ctx, &m); err != nil {
		s.log.Warn(ctx, "failed to cache membership", "error", err)
	}
	return &resp.Group, nil
}
