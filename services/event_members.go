package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/funkypants5/wedding-backend/models"
)

// ListMembers returns the event's member list. Any member may read it,
// pending members included.
func (s *EventService) ListMembers(ctx context.Context, eventID, userID primitive.ObjectID) ([]models.Membership, error) {
	ev, err := s.GetEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	return ev.Members, nil
}

// SetPermission transitions a member's permission level. The state-machine
// guards live on the aggregate; this wraps them in the retry loop.
func (s *EventService) SetPermission(ctx context.Context, eventID, actorID, targetID primitive.ObjectID, perm models.Permission) (*models.Membership, error) {
	ev, err := s.mutate(ctx, eventID, func(ev *models.Event) error {
		return ev.SetPermission(actorID, targetID, perm)
	})
	if err != nil {
		return nil, err
	}
	return ev.Member(targetID), nil
}

// SetRole relabels a member's role.
func (s *EventService) SetRole(ctx context.Context, eventID, actorID, targetID primitive.ObjectID, role models.Role) (*models.Membership, error) {
	ev, err := s.mutate(ctx, eventID, func(ev *models.Event) error {
		return ev.SetRole(actorID, targetID, role)
	})
	if err != nil {
		return nil, err
	}
	return ev.Member(targetID), nil
}

// UpdateMember applies a permission and/or role change to a member in a
// single write. Either both changes commit or neither does; a nil field is
// left untouched. The individual guards are the same as SetPermission and
// SetRole.
func (s *EventService) UpdateMember(ctx context.Context, eventID, actorID, targetID primitive.ObjectID, perm *models.Permission, role *models.Role) (*models.Membership, error) {
	ev, err := s.mutate(ctx, eventID, func(ev *models.Event) error {
		if perm != nil {
			if err := ev.SetPermission(actorID, targetID, *perm); err != nil {
				return err
			}
		}
		if role != nil {
			if err := ev.SetRole(actorID, targetID, *role); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ev.Member(targetID), nil
}

// RemoveMember removes another member from the event.
func (s *EventService) RemoveMember(ctx context.Context, eventID, actorID, targetID primitive.ObjectID) error {
	_, err := s.mutate(ctx, eventID, func(ev *models.Event) error {
		return ev.RemoveMember(actorID, targetID)
	})
	return err
}

// Leave removes the caller's own membership. Owners cannot leave; they must
// soft-delete the event instead.
func (s *EventService) Leave(ctx context.Context, eventID, userID primitive.ObjectID) error {
	_, err := s.mutate(ctx, eventID, func(ev *models.Event) error {
		return ev.Leave(userID)
	})
	return err
}
