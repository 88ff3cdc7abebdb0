package services

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/funkypants5/wedding-backend/models"
)

// VendorParams are the fields for a new vendor entry.
type VendorParams struct {
	Name     string
	Category string
	Status   models.VendorStatus
	Contact  models.VendorContact
	Pricing  models.VendorPricing
	Notes    string
}

// ListVendors returns the vendor list. Requires a non-pending member.
func (s *EventService) ListVendors(ctx context.Context, eventID, userID primitive.ObjectID) ([]models.Vendor, error) {
	ev, err := s.GetEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if err := ev.Authorize(userID, models.AccessActiveCollaborator); err != nil {
		return nil, err
	}
	return ev.Vendors, nil
}

// GetVendor returns one vendor by its stable id.
func (s *EventService) GetVendor(ctx context.Context, eventID, userID primitive.ObjectID, vendorID string) (*models.Vendor, error) {
	ev, err := s.GetEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if err := ev.Authorize(userID, models.AccessActiveCollaborator); err != nil {
		return nil, err
	}
	v := ev.VendorByID(vendorID)
	if v == nil {
		return nil, models.ErrNotFound
	}
	return v, nil
}

// AddVendor appends a vendor.
func (s *EventService) AddVendor(ctx context.Context, eventID, actorID primitive.ObjectID, params VendorParams) (*models.Vendor, error) {
	if params.Name == "" {
		return nil, models.Invalid("name", "is required")
	}
	vendor := models.NewVendor(params.Name, params.Category, params.Status,
		params.Contact, params.Pricing, params.Notes, actorID, s.now())
	_, err := s.mutate(ctx, eventID, func(ev *models.Event) error {
		if err := ev.Authorize(actorID, models.AccessActiveCollaborator); err != nil {
			return err
		}
		ev.Vendors = append(ev.Vendors, vendor)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// UpdateVendor patches a vendor by id. Vendors are id-addressed so the same
// intent is safe to reapply after a conflict; a vendor deleted in between
// reads as not found.
func (s *EventService) UpdateVendor(ctx context.Context, eventID, actorID primitive.ObjectID, vendorID string, patch models.VendorPatch) (*models.Vendor, error) {
	var updated models.Vendor
	_, err := s.mutate(ctx, eventID, func(ev *models.Event) error {
		if err := ev.Authorize(actorID, models.AccessActiveCollaborator); err != nil {
			return err
		}
		v := ev.VendorByID(vendorID)
		if v == nil {
			return models.ErrNotFound
		}
		if err := patch.Apply(v, s.now()); err != nil {
			return err
		}
		updated = *v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteVendor removes a vendor by id.
func (s *EventService) DeleteVendor(ctx context.Context, eventID, actorID primitive.ObjectID, vendorID string) error {
	_, err := s.mutate(ctx, eventID, func(ev *models.Event) error {
		if err := ev.Authorize(actorID, models.AccessActiveCollaborator); err != nil {
			return err
		}
		if !ev.RemoveVendorByID(vendorID) {
			return models.ErrNotFound
		}
		return nil
	})
	return err
}

// CanAttachVendorDocument checks that the actor may upload a document for
// the vendor, without changing anything. Upload handlers call it before
// writing bytes to the blob store so a rejected request leaves nothing
// behind. Same gate as AttachVendorDocument: owner or admin, vendor must
// exist, non-members read the event as absent.
func (s *EventService) CanAttachVendorDocument(ctx context.Context, eventID, actorID primitive.ObjectID, vendorID string) error {
	ev, err := s.GetEvent(ctx, eventID, actorID)
	if err != nil {
		return err
	}
	if err := ev.Authorize(actorID, models.AccessOwnerOrAdmin); err != nil {
		return err
	}
	if ev.VendorByID(vendorID) == nil {
		return models.ErrNotFound
	}
	return nil
}

// AttachVendorDocument records a blob-store filename handle on the vendor.
// The bytes themselves live in the blob store; the aggregate only tracks the
// handle. Requires owner or admin, matching the upload endpoint.
func (s *EventService) AttachVendorDocument(ctx context.Context, eventID, actorID primitive.ObjectID, vendorID, filename string) (*models.Vendor, error) {
	var updated models.Vendor
	_, err := s.mutate(ctx, eventID, func(ev *models.Event) error {
		if err := ev.Authorize(actorID, models.AccessOwnerOrAdmin); err != nil {
			return err
		}
		v := ev.VendorByID(vendorID)
		if v == nil {
			return models.ErrNotFound
		}
		v.Documents = append(v.Documents, filename)
		v.UpdatedAt = s.now()
		updated = *v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// VendorHasDocument reports whether the vendor references the filename.
// Download handlers use it so document reads stay membership-scoped.
func (s *EventService) VendorHasDocument(ctx context.Context, eventID, userID primitive.ObjectID, vendorID, filename string) error {
	v, err := s.GetVendor(ctx, eventID, userID, vendorID)
	if err != nil {
		return err
	}
	for _, doc := range v.Documents {
		if doc == filename {
			return nil
		}
	}
	return models.ErrNotFound
}

// GetSeating returns the seating snapshot. Requires a non-pending member.
func (s *EventService) GetSeating(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Seating, error) {
	ev, err := s.GetEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if err := ev.Authorize(userID, models.AccessActiveCollaborator); err != nil {
		return nil, err
	}
	return &ev.Seating, nil
}

// ReplaceSeating swaps in a whole new seating snapshot. Owner or admin.
// Tables without an id get one assigned; guest assignments must reference
// existing guests.
func (s *EventService) ReplaceSeating(ctx context.Context, eventID, actorID primitive.ObjectID, tables []models.SeatingTable) (*models.Seating, error) {
	ev, err := s.mutate(ctx, eventID, func(ev *models.Event) error {
		if err := ev.Authorize(actorID, models.AccessOwnerOrAdmin); err != nil {
			return err
		}
		for i := range tables {
			if tables[i].ID == "" {
				tables[i].ID = uuid.NewString()
			}
			for _, gid := range tables[i].GuestIDs {
				if ev.GuestByID(gid) == nil {
					return models.Invalid("tables", "unknown guest id %q", gid)
				}
			}
		}
		ev.Seating = models.Seating{
			Tables:    tables,
			UpdatedAt: s.now(),
			UpdatedBy: actorID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ev.Seating, nil
}
