package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosebudapp/rosebud/internal/common"
)

func TestGroupCreate_MakesAdminMembership(t *testing.T) {
	rm := newFakeRM()
	db, closeDB := mockDB()
	defer closeDB()

	svc := NewGroupService(db, rm)

	group, membership, err := svc.Create(context.Background(), "u-1", "family")
	require.NoError(t, err)

	assert.Equal(t, "family", group.Name)
	assert.Len(t, group.JoinCode, joinCodeLength)
	assert.Equal(t, group.ID, membership.GroupID)
	assert.Equal(t, "u-1", membership.UserID)
	assert.True(t, membership.IsAdmin)

	stored, err := rm.members.GetByUserAndGroup(context.Background(), "u-1", group.ID)
	require.NoError(t, err)
	assert.Equal(t, membership.ID, stored.ID)
}

func TestGroupCreate_RequiresName(t *testing.T) {
	rm := newFakeRM()
	db, closeDB := mockDB()
	defer closeDB()

	svc := NewGroupService(db, rm)

	_, _, err := svc.Create(context.Background(), "u-1", "")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestGroupJoin(t *testing.T) {
	rm := newFakeRM()
	db, closeDB := mockDB()
	defer closeDB()

	svc := NewGroupService(db, rm)

	group, _, err := svc.Create(context.Background(), "u-1", "family")
	require.NoError(t, err)

	t.Run("by code", func(t *testing.T) {
		joined, membership, err := svc.Join(context.Background(), "u-2", group.JoinCode)
		require.NoError(t, err)
		assert.Equal(t, group.ID, joined.ID)
		assert.Equal(t, "u-2", membership.UserID)
		assert.False(t, membership.IsAdmin)
	})

	t.Run("joining twice is idempotent", func(t *testing.T) {
		_, first, err := svc.Join(context.Background(), "u-3", group.JoinCode)
		require.NoError(t, err)

		_, second, err := svc.Join(context.Background(), "u-3", group.JoinCode)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		memberships, err := rm.members.ListByUser(context.Background(), "u-3")
		require.NoError(t, err)
		assert.Len(t, memberships, 1)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, _, err := svc.Join(context.Background(), "u-4", "NO-SUCH-CODE")
		assert.ErrorIs(t, err, common.ErrJoinCodeNotFound)
	})
}

func TestListGroupMembers_RequiresMembership(t *testing.T) {
	rm := newFakeRM()
	db, closeDB := mockDB()
	defer closeDB()

	svc := NewGroupService(db, rm)

	group, _, err := svc.Create(context.Background(), "u-1", "family")
	require.NoError(t, err)

	_, err = svc.ListGroupMembers(context.Background(), "outsider", group.ID)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	membersList, err := svc.ListGroupMembers(context.Background(), "u-1", group.ID)
	require.NoError(t, err)
	assert.Len(t, membersList, 1)
}

func TestGenerateJoinCode_Alphabet(t *testing.T) {
	code, err := generateJoinCode()
	require.NoError(t, err)
	require.Len(t, code, joinCodeLength)
	for _, c := range code {
		assert.Contains(t, joinCodeAlphabet, string(c))
	}
}
