package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestEvent(t *testing.T, creator primitive.ObjectID) *Event {
	t.Helper()
	return NewEvent("Sam & Alex Wedding", "", EventTypeWedding, time.Time{}, "", creator, RoleBride, "AB12CD34", time.Now())
}

func countOwners(ev *Event) int {
	n := 0
	for _, m := range ev.Members {
		if m.Permissions == PermissionOwner {
			n++
		}
	}
	return n
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name    string
		member  *Membership
		level   AccessLevel
		wantErr error
	}{
		{"absent member", nil, AccessActiveCollaborator, ErrNotMember},
		{"owner passes owner gate", &Membership{Permissions: PermissionOwner}, AccessOwner, nil},
		{"admin fails owner gate", &Membership{Permissions: PermissionAdmin}, AccessOwner, ErrForbidden},
		{"admin passes owner-or-admin", &Membership{Permissions: PermissionAdmin}, AccessOwnerOrAdmin, nil},
		{"collaborator fails owner-or-admin", &Membership{Permissions: PermissionCollaborator}, AccessOwnerOrAdmin, ErrForbidden},
		{"collaborator passes active gate", &Membership{Permissions: PermissionCollaborator}, AccessActiveCollaborator, nil},
		{"owner passes active gate", &Membership{Permissions: PermissionOwner}, AccessActiveCollaborator, nil},
		{"pending fails active gate", &Membership{Permissions: PermissionPending}, AccessActiveCollaborator, ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.member, tt.level)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNewEventCreatorIsSoleOwner(t *testing.T) {
	creator := primitive.NewObjectID()
	ev := newTestEvent(t, creator)

	require.Len(t, ev.Members, 1)
	assert.Equal(t, creator, ev.Members[0].UserID)
	assert.Equal(t, PermissionOwner, ev.Members[0].Permissions)
	assert.Equal(t, 1, countOwners(ev))
	assert.True(t, ev.IsActive)
}

func TestEnsureMemberIdempotent(t *testing.T) {
	creator := primitive.NewObjectID()
	joiner := primitive.NewObjectID()
	ev := newTestEvent(t, creator)

	m1, added := ev.EnsureMember(joiner, RoleGuest, time.Now())
	require.True(t, added)
	assert.Equal(t, PermissionPending, m1.Permissions)
	assert.Equal(t, RoleGuest, m1.Role)

	m2, added := ev.EnsureMember(joiner, RoleGuest, time.Now())
	assert.False(t, added)
	assert.Equal(t, m1.UserID, m2.UserID)
	assert.Len(t, ev.Members, 2)

	// joining again never touches the existing membership, even after a
	// promotion
	require.NoError(t, ev.SetPermission(creator, joiner, PermissionCollaborator))
	m3, added := ev.EnsureMember(joiner, RoleGuest, time.Now())
	assert.False(t, added)
	assert.Equal(t, PermissionCollaborator, m3.Permissions)
	assert.Len(t, ev.Members, 2)
}

func TestEnsureMemberCreatorNoop(t *testing.T) {
	creator := primitive.NewObjectID()
	ev := newTestEvent(t, creator)

	m, added := ev.EnsureMember(creator, RoleGuest, time.Now())
	assert.False(t, added)
	assert.Equal(t, PermissionOwner, m.Permissions)
	assert.Equal(t, 1, countOwners(ev))
}

func TestSetPermissionNeverYieldsOwner(t *testing.T) {
	creator := primitive.NewObjectID()
	member := primitive.NewObjectID()
	ev := newTestEvent(t, creator)
	ev.EnsureMember(member, RoleGuest, time.Now())

	// not even the owner can mint a second owner
	assert.ErrorIs(t, ev.SetPermission(creator, member, PermissionOwner), ErrForbidden)
	// and the owner's own permission is immutable
	assert.ErrorIs(t, ev.SetPermission(creator, creator, PermissionAdmin), ErrForbidden)
	assert.Equal(t, 1, countOwners(ev))
}

func TestSetPermissionGuards(t *testing.T) {
	owner := primitive.NewObjectID()
	adminA := primitive.NewObjectID()
	adminB := primitive.NewObjectID()
	collab := primitive.NewObjectID()
	pending := primitive.NewObjectID()

	setup := func(t *testing.T) *Event {
		t.Helper()
		ev := newTestEvent(t, owner)
		now := time.Now()
		ev.EnsureMember(adminA, RoleFamily, now)
		ev.EnsureMember(adminB, RoleFriend, now)
		ev.EnsureMember(collab, RoleFriend, now)
		ev.EnsureMember(pending, RoleGuest, now)
		require.NoError(t, ev.SetPermission(owner, adminA, PermissionAdmin))
		require.NoError(t, ev.SetPermission(owner, adminB, PermissionAdmin))
		require.NoError(t, ev.SetPermission(owner, collab, PermissionCollaborator))
		return ev
	}

	t.Run("admin promotes pending to collaborator", func(t *testing.T) {
		ev := setup(t)
		require.NoError(t, ev.SetPermission(adminA, pending, PermissionCollaborator))
		assert.Equal(t, PermissionCollaborator, ev.Member(pending).Permissions)
	})

	t.Run("admin cannot promote to admin", func(t *testing.T) {
		ev := setup(t)
		assert.ErrorIs(t, ev.SetPermission(adminA, collab, PermissionAdmin), ErrForbidden)
	})

	t.Run("admin cannot demote peer admin", func(t *testing.T) {
		ev := setup(t)
		assert.ErrorIs(t, ev.SetPermission(adminA, adminB, PermissionCollaborator), ErrForbidden)
		assert.Equal(t, PermissionAdmin, ev.Member(adminB).Permissions)
	})

	t.Run("owner demotes admin", func(t *testing.T) {
		ev := setup(t)
		require.NoError(t, ev.SetPermission(owner, adminB, PermissionCollaborator))
		assert.Equal(t, PermissionCollaborator, ev.Member(adminB).Permissions)
	})

	t.Run("collaborator cannot change permissions", func(t *testing.T) {
		ev := setup(t)
		assert.ErrorIs(t, ev.SetPermission(collab, pending, PermissionCollaborator), ErrForbidden)
	})

	t.Run("pending cannot change permissions", func(t *testing.T) {
		ev := setup(t)
		assert.ErrorIs(t, ev.SetPermission(pending, collab, PermissionPending), ErrForbidden)
	})

	t.Run("non-member actor is rejected", func(t *testing.T) {
		ev := setup(t)
		assert.ErrorIs(t, ev.SetPermission(primitive.NewObjectID(), collab, PermissionAdmin), ErrNotMember)
	})

	t.Run("unknown target", func(t *testing.T) {
		ev := setup(t)
		assert.ErrorIs(t, ev.SetPermission(owner, primitive.NewObjectID(), PermissionCollaborator), ErrNotFound)
	})

	t.Run("invalid permission value", func(t *testing.T) {
		ev := setup(t)
		var verr *ValidationError
		assert.ErrorAs(t, ev.SetPermission(owner, collab, Permission("superuser")), &verr)
	})
}

func TestRemoveMemberGuards(t *testing.T) {
	owner := primitive.NewObjectID()
	admin := primitive.NewObjectID()
	collab := primitive.NewObjectID()

	setup := func(t *testing.T) *Event {
		t.Helper()
		ev := newTestEvent(t, owner)
		now := time.Now()
		ev.EnsureMember(admin, RoleFamily, now)
		ev.EnsureMember(collab, RoleFriend, now)
		require.NoError(t, ev.SetPermission(owner, admin, PermissionAdmin))
		require.NoError(t, ev.SetPermission(owner, collab, PermissionCollaborator))
		return ev
	}

	t.Run("owner cannot be removed", func(t *testing.T) {
		ev := setup(t)
		assert.ErrorIs(t, ev.RemoveMember(admin, owner), ErrForbidden)
		assert.Equal(t, 1, countOwners(ev))
	})

	t.Run("admin cannot remove peer admin", func(t *testing.T) {
		ev := setup(t)
		other := primitive.NewObjectID()
		ev.EnsureMember(other, RoleFriend, time.Now())
		require.NoError(t, ev.SetPermission(owner, other, PermissionAdmin))
		assert.ErrorIs(t, ev.RemoveMember(admin, other), ErrForbidden)
	})

	t.Run("owner removes admin", func(t *testing.T) {
		ev := setup(t)
		require.NoError(t, ev.RemoveMember(owner, admin))
		assert.Nil(t, ev.Member(admin))
	})

	t.Run("admin removes collaborator", func(t *testing.T) {
		ev := setup(t)
		require.NoError(t, ev.RemoveMember(admin, collab))
		assert.Nil(t, ev.Member(collab))
	})

	t.Run("collaborator cannot remove", func(t *testing.T) {
		ev := setup(t)
		assert.ErrorIs(t, ev.RemoveMember(collab, admin), ErrForbidden)
	})
}

func TestLeave(t *testing.T) {
	owner := primitive.NewObjectID()
	member := primitive.NewObjectID()
	ev := newTestEvent(t, owner)
	ev.EnsureMember(member, RoleGuest, time.Now())

	require.NoError(t, ev.Leave(member))
	assert.Nil(t, ev.Member(member))

	// the owner must delete the event instead of leaving
	assert.ErrorIs(t, ev.Leave(owner), ErrForbidden)
	assert.Equal(t, 1, countOwners(ev))

	assert.ErrorIs(t, ev.Leave(primitive.NewObjectID()), ErrNotMember)
}

// Exercises the full promotion scenario: create, join, promote to
// collaborator, blocked self-promotion, promote to admin, blocked owner
// removal.
func TestMembershipLifecycleScenario(t *testing.T) {
	userA := primitive.NewObjectID()
	userB := primitive.NewObjectID()

	ev := newTestEvent(t, userA)
	require.Len(t, ev.Members, 1)
	require.Equal(t, PermissionOwner, ev.Member(userA).Permissions)

	_, added := ev.EnsureMember(userB, RoleGuest, time.Now())
	require.True(t, added)
	require.Equal(t, PermissionPending, ev.Member(userB).Permissions)

	require.NoError(t, ev.SetPermission(userA, userB, PermissionCollaborator))
	assert.Equal(t, PermissionCollaborator, ev.Member(userB).Permissions)

	assert.ErrorIs(t, ev.SetPermission(userB, userB, PermissionAdmin), ErrForbidden)

	require.NoError(t, ev.SetPermission(userA, userB, PermissionAdmin))
	assert.Equal(t, PermissionAdmin, ev.Member(userB).Permissions)

	assert.ErrorIs(t, ev.RemoveMember(userB, userA), ErrForbidden)

	assert.Equal(t, 1, countOwners(ev))
}

func TestSetRole(t *testing.T) {
	owner := primitive.NewObjectID()
	member := primitive.NewObjectID()
	ev := newTestEvent(t, owner)
	ev.EnsureMember(member, RoleGuest, time.Now())

	require.NoError(t, ev.SetRole(owner, member, RoleFamily))
	assert.Equal(t, RoleFamily, ev.Member(member).Role)

	// members can relabel themselves
	require.NoError(t, ev.SetRole(member, member, RoleFriend))
	assert.Equal(t, RoleFriend, ev.Member(member).Role)

	// but pending members cannot touch others
	assert.ErrorIs(t, ev.SetRole(member, owner, RoleGroom), ErrForbidden)

	var verr *ValidationError
	assert.ErrorAs(t, ev.SetRole(owner, member, Role("plusone")), &verr)
}
