package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccessLevel is the permission level an operation requires.
type AccessLevel int

const (
	// AccessOwner requires the owner permission.
	AccessOwner AccessLevel = iota
	// AccessOwnerOrAdmin requires owner or admin.
	AccessOwnerOrAdmin
	// AccessActiveCollaborator requires any permission except pending_approval.
	AccessActiveCollaborator
)

// Authorize decides whether a membership snapshot satisfies the required
// level. It is the single place the owner/admin/collaborator matrix is
// defined; every membership-scoped operation calls it before mutating.
// A nil membership (not a member) is denied with ErrNotMember.
func Authorize(m *Membership, level AccessLevel) error {
	if m == nil {
		return ErrNotMember
	}
	switch level {
	case AccessOwner:
		if m.Permissions == PermissionOwner {
			return nil
		}
	case AccessOwnerOrAdmin:
		if m.Permissions == PermissionOwner || m.Permissions == PermissionAdmin {
			return nil
		}
	case AccessActiveCollaborator:
		if m.Permissions != PermissionPending {
			return nil
		}
	}
	return ErrForbidden
}

// Member returns the membership for userID, or nil if none exists.
func (e *Event) Member(userID primitive.ObjectID) *Membership {
	for i := range e.Members {
		if e.Members[i].UserID == userID {
			return &e.Members[i]
		}
	}
	return nil
}

// Owner returns the event's owner membership. Every active event has exactly
// one.
func (e *Event) Owner() *Membership {
	for i := range e.Members {
		if e.Members[i].Permissions == PermissionOwner {
			return &e.Members[i]
		}
	}
	return nil
}

// Authorize resolves userID's membership and checks it against level.
func (e *Event) Authorize(userID primitive.ObjectID, level AccessLevel) error {
	return Authorize(e.Member(userID), level)
}

// EnsureMember inserts userID as a pending member with the given role.
// Joining when already a member is a no-op success; the existing membership
// is returned unchanged. This is the only path that inserts a non-owner
// membership, so (event, user) uniqueness is enforced here.
func (e *Event) EnsureMember(userID primitive.ObjectID, role Role, now time.Time) (*Membership, bool) {
	if m := e.Member(userID); m != nil {
		return m, false
	}
	if !role.Valid() {
		role = RoleGuest
	}
	e.Members = append(e.Members, Membership{
		UserID:      userID,
		Role:        role,
		Permissions: PermissionPending,
		JoinedAt:    now,
	})
	return &e.Members[len(e.Members)-1], true
}

// SetPermission transitions target's permission level, subject to the
// state-machine guards:
//   - the actor must be owner or admin;
//   - the owner permission is immutable and non-transferable, so neither
//     target nor newPerm may be owner;
//   - promoting to admin is owner-only;
//   - changing an admin's permission is owner-only (admins cannot touch
//     peer admins).
func (e *Event) SetPermission(actorID, targetID primitive.ObjectID, newPerm Permission) error {
	actor := e.Member(actorID)
	if err := Authorize(actor, AccessOwnerOrAdmin); err != nil {
		return err
	}
	target := e.Member(targetID)
	if target == nil {
		return ErrNotFound
	}
	if !newPerm.Valid() {
		return Invalid("permissions", "unknown permission %q", string(newPerm))
	}
	if target.Permissions == PermissionOwner || newPerm == PermissionOwner {
		return ErrForbidden
	}
	if newPerm == PermissionAdmin && actor.Permissions != PermissionOwner {
		return ErrForbidden
	}
	if target.Permissions == PermissionAdmin && newPerm != target.Permissions && actor.Permissions != PermissionOwner {
		return ErrForbidden
	}
	target.Permissions = newPerm
	return nil
}

// SetRole relabels target's role. Same actor guards as SetPermission except
// the admin-peer rule: roles are labels, not privileges, so owner or admin
// may edit any non-owner member's role, and members may edit their own.
func (e *Event) SetRole(actorID, targetID primitive.ObjectID, role Role) error {
	actor := e.Member(actorID)
	if actorID != targetID {
		if err := Authorize(actor, AccessOwnerOrAdmin); err != nil {
			return err
		}
	} else if actor == nil {
		return ErrNotMember
	}
	target := e.Member(targetID)
	if target == nil {
		return ErrNotFound
	}
	if !role.Valid() {
		return Invalid("role", "unknown role %q", string(role))
	}
	target.Role = role
	return nil
}

// RemoveMember removes target from the event. The owner cannot be removed;
// removing an admin is owner-only. The actor must be owner or admin.
func (e *Event) RemoveMember(actorID, targetID primitive.ObjectID) error {
	actor := e.Member(actorID)
	if err := Authorize(actor, AccessOwnerOrAdmin); err != nil {
		return err
	}
	target := e.Member(targetID)
	if target == nil {
		return ErrNotFound
	}
	if target.Permissions == PermissionOwner {
		return ErrForbidden
	}
	if target.Permissions == PermissionAdmin && actor.Permissions != PermissionOwner {
		return ErrForbidden
	}
	e.removeMembership(targetID)
	return nil
}

// Leave removes the caller's own membership. The owner cannot leave; they
// must soft-delete the event instead.
func (e *Event) Leave(userID primitive.ObjectID) error {
	m := e.Member(userID)
	if m == nil {
		return ErrNotMember
	}
	if m.Permissions == PermissionOwner {
		return ErrForbidden
	}
	e.removeMembership(userID)
	return nil
}

func (e *Event) removeMembership(userID primitive.ObjectID) {
	for i := range e.Members {
		if e.Members[i].UserID == userID {
			e.Members = append(e.Members[:i], e.Members[i+1:]...)
			return
		}
	}
}
