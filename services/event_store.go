package services

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/funkypants5/wedding-backend/models"
)

// EventStore is the persistence surface the event service depends on. The
// backing store must provide atomic single-document writes; SaveRevision is
// the version-checked replace the optimistic retry loop is built on.
type EventStore interface {
	Insert(ctx context.Context, event *models.Event) error
	// FindByID returns the event regardless of its active flag; callers
	// apply the soft-delete policy.
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	// FindActiveByInviteCode matches the code case-insensitively among
	// active events only.
	FindActiveByInviteCode(ctx context.Context, code string) (*models.Event, error)
	// ListForMember returns active events the user is a member of.
	ListForMember(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error)
	// SaveRevision replaces the document if its stored revision still equals
	// event.Revision, bumping the revision on success. Returns
	// models.ErrVersionConflict when another writer got there first.
	SaveRevision(ctx context.Context, event *models.Event) error
	// InviteCodeExists probes all events ever created, soft-deleted included.
	InviteCodeExists(ctx context.Context, code string) (bool, error)
}

// MongoEventStore implements EventStore on a MongoDB collection.
type MongoEventStore struct {
	events *mongo.Collection
}

// NewMongoEventStore wraps the events collection.
func NewMongoEventStore(events *mongo.Collection) *MongoEventStore {
	return &MongoEventStore{events: events}
}

// NormalizeInviteCode canonicalizes a code for storage and lookup. Codes are
// stored uppercase, which makes lookups case-insensitive.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *MongoEventStore) Insert(ctx context.Context, event *models.Event) error {
	_, err := s.events.InsertOne(ctx, event)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrConflict
		}
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (s *MongoEventStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var ev models.Event
	err := s.events.FindOne(ctx, bson.M{"_id": id}).Decode(&ev)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return &ev, nil
}

func (s *MongoEventStore) FindActiveByInviteCode(ctx context.Context, code string) (*models.Event, error) {
	var ev models.Event
	filter := bson.M{"invite_code": NormalizeInviteCode(code), "is_active": true}
	err := s.events.FindOne(ctx, filter).Decode(&ev)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("find event by code: %w", err)
	}
	return &ev, nil
}

func (s *MongoEventStore) ListForMember(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error) {
	filter := bson.M{"members.user_id": userID, "is_active": true}
	cursor, err := s.events.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	for cursor.Next(ctx) {
		var ev models.Event
		if err := cursor.Decode(&ev); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, ev)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *MongoEventStore) SaveRevision(ctx context.Context, event *models.Event) error {
	prev := event.Revision
	event.Revision = prev + 1
	res, err := s.events.ReplaceOne(ctx, bson.M{"_id": event.ID, "revision": prev}, event)
	if err != nil {
		event.Revision = prev
		return fmt.Errorf("save event: %w", err)
	}
	if res.MatchedCount == 0 {
		event.Revision = prev
		return models.ErrVersionConflict
	}
	return nil
}

func (s *MongoEventStore) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	// Deliberately unfiltered by is_active: codes stay reserved for the
	// lifetime of the document, soft-deleted or not.
	count, err := s.events.CountDocuments(ctx, bson.M{"invite_code": NormalizeInviteCode(code)})
	if err != nil {
		return false, fmt.Errorf("count invite codes: %w", err)
	}
	return count > 0, nil
}
