package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/funkypants5/wedding-backend/models"
)

// maxMutateAttempts bounds the optimistic retry loop. Conflicts on a single
// event document are rare, so a small budget keeps worst-case latency down.
const maxMutateAttempts = 3

// EventService owns every operation on the event aggregate. Each write loads
// the document, authorizes the actor, applies a replayable intent and
// persists with a version check; on conflict the intent is reapplied to a
// fresh copy.
type EventService struct {
	store  EventStore
	codes  *InviteCodeGenerator
	logger *slog.Logger
	now    func() time.Time
}

// NewEventService wires the service to its store.
func NewEventService(store EventStore, logger *slog.Logger) *EventService {
	return &EventService{
		store:  store,
		codes:  NewInviteCodeGenerator(store.InviteCodeExists),
		logger: logger,
		now:    time.Now,
	}
}

// loadActive fetches an event and applies the soft-delete filter: inactive
// documents read as absent.
func (s *EventService) loadActive(ctx context.Context, eventID primitive.ObjectID) (*models.Event, error) {
	ev, err := s.store.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !ev.IsActive {
		return nil, models.ErrNotFound
	}
	return ev, nil
}

// errNoChange is returned by an intent to signal an idempotent no-op: the
// loaded aggregate is returned as-is without a write.
var errNoChange = errors.New("no change")

// mutate runs intent against a freshly loaded aggregate and persists it with
// a version check. When another writer advanced the revision in between, the
// aggregate is reloaded and the same intent reapplied, up to
// maxMutateAttempts times, after which the budget is exhausted and
// models.ErrConcurrency surfaces to the caller.
func (s *EventService) mutate(ctx context.Context, eventID primitive.ObjectID, intent func(*models.Event) error) (*models.Event, error) {
	for attempt := 1; attempt <= maxMutateAttempts; attempt++ {
		ev, err := s.loadActive(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if err := intent(ev); err != nil {
			if errors.Is(err, errNoChange) {
				return ev, nil
			}
			return nil, err
		}
		ev.UpdatedAt = s.now()
		err = s.store.SaveRevision(ctx, ev)
		if err == nil {
			return ev, nil
		}
		if !errors.Is(err, models.ErrVersionConflict) {
			return nil, err
		}
		s.logger.Debug("event revision conflict, retrying",
			"event_id", eventID.Hex(), "attempt", attempt)
	}
	return nil, models.ErrConcurrency
}

// CreateEventParams are the fields a creator supplies for a new event.
type CreateEventParams struct {
	Name        string
	Description string
	EventType   models.EventType
	EventDate   time.Time
	Location    string
	CreatorRole models.Role
}

// CreateEvent builds and persists a new event with the creator as its sole
// owner member and a freshly generated invite code.
func (s *EventService) CreateEvent(ctx context.Context, creatorID primitive.ObjectID, params CreateEventParams) (*models.Event, error) {
	if len(params.Name) < 2 {
		return nil, models.Invalid("name", "must be at least 2 characters")
	}
	if !params.EventType.Valid() {
		return nil, models.Invalid("event_type", "unknown event type %q", string(params.EventType))
	}

	code, err := s.codes.Generate(ctx)
	if err != nil {
		return nil, err
	}

	ev := models.NewEvent(params.Name, params.Description, params.EventType,
		params.EventDate, params.Location, creatorID, params.CreatorRole, code, s.now())
	if err := s.store.Insert(ctx, ev); err != nil {
		return nil, err
	}
	s.logger.Info("event created", "event_id", ev.ID.Hex(), "created_by", creatorID.Hex())
	return ev, nil
}

// ListEvents returns the active events the user is a member of.
func (s *EventService) ListEvents(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error) {
	return s.store.ListForMember(ctx, userID)
}

// GetEvent returns the event detail for a member. Non-members get
// ErrNotFound so responses never reveal whether the event exists. A
// soft-deleted event is readable only by its owner, as an audit view.
func (s *EventService) GetEvent(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Event, error) {
	ev, err := s.store.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	m := ev.Member(userID)
	if m == nil {
		return nil, models.ErrNotFound
	}
	if !ev.IsActive && m.Permissions != models.PermissionOwner {
		return nil, models.ErrNotFound
	}
	return ev, nil
}

// UpdateEvent patches the event's own fields. Owner only. A budget value in
// the patch routes into settings.budget.
func (s *EventService) UpdateEvent(ctx context.Context, eventID, actorID primitive.ObjectID, patch models.EventPatch) (*models.Event, error) {
	return s.mutate(ctx, eventID, func(ev *models.Event) error {
		if err := ev.Authorize(actorID, models.AccessOwner); err != nil {
			return err
		}
		return patch.Apply(ev)
	})
}

// UpdateSettings patches the event settings. Owner only; keys absent from
// the settings schema never reach the patch and are ignored.
func (s *EventService) UpdateSettings(ctx context.Context, eventID, actorID primitive.ObjectID, patch models.SettingsPatch) (*models.Event, error) {
	return s.mutate(ctx, eventID, func(ev *models.Event) error {
		if err := ev.Authorize(actorID, models.AccessOwner); err != nil {
			return err
		}
		patch.Apply(&ev.Settings)
		return nil
	})
}

// SoftDelete deactivates the event. Owner only. Data is retained; the event
// simply drops out of invite lookups and member-scoped queries.
func (s *EventService) SoftDelete(ctx context.Context, eventID, actorID primitive.ObjectID) error {
	_, err := s.mutate(ctx, eventID, func(ev *models.Event) error {
		if err := ev.Authorize(actorID, models.AccessOwner); err != nil {
			return err
		}
		ev.IsActive = false
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("event soft-deleted", "event_id", eventID.Hex(), "by", actorID.Hex())
	return nil
}

// JoinByInviteCode adds the user to the event behind the code as a pending
// member with the guest role. Joining an event the user already belongs to
// is a no-op success. The code is matched case-insensitively among active
// events.
func (s *EventService) JoinByInviteCode(ctx context.Context, userID primitive.ObjectID, code string) (*models.Event, error) {
	found, err := s.store.FindActiveByInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, found.ID, func(ev *models.Event) error {
		if _, added := ev.EnsureMember(userID, models.RoleGuest, s.now()); !added {
			return errNoChange
		}
		return nil
	})
}
