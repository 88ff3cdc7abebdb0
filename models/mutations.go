package models

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The helpers in this file are the building blocks of replayable mutations:
// each service-level write is expressed as an intent applied to a freshly
// loaded aggregate, so it can be reapplied verbatim after a version-conflict
// reload. Guests and expenses are addressed by index at the API surface but
// carry a generated sub-id; retries re-resolve the target by sub-id and fail
// with ErrStaleIndex if it vanished, never by trusting the index again.

// NewGuest builds a guest list entry with a fresh sub-id.
func NewGuest(name, phone string, rsvp RSVPStatus, plusOnes int, dietaryNotes string, createdBy primitive.ObjectID, now time.Time) Guest {
	if !rsvp.Valid() {
		rsvp = RSVPPending
	}
	return Guest{
		ID:           uuid.NewString(),
		Name:         name,
		Phone:        phone,
		RSVPStatus:   rsvp,
		PlusOnes:     plusOnes,
		DietaryNotes: dietaryNotes,
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewExpense builds an expense entry with a fresh sub-id.
func NewExpense(title, category string, estimated, actual float64, paid bool, notes string, createdBy primitive.ObjectID, now time.Time) Expense {
	return Expense{
		ID:              uuid.NewString(),
		Title:           title,
		Category:        category,
		EstimatedAmount: estimated,
		ActualAmount:    actual,
		Paid:            paid,
		Notes:           notes,
		CreatedBy:       createdBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// NewVendor builds a vendor entry with a fresh sub-id.
func NewVendor(name, category string, status VendorStatus, contact VendorContact, pricing VendorPricing, notes string, createdBy primitive.ObjectID, now time.Time) Vendor {
	if !status.Valid() {
		status = VendorResearching
	}
	return Vendor{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  category,
		Status:    status,
		Contact:   contact,
		Pricing:   pricing,
		Notes:     notes,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GuestAt returns the guest at a display position.
func (e *Event) GuestAt(index int) (*Guest, error) {
	if index < 0 || index >= len(e.Guests) {
		return nil, ErrIndexOutOfRange
	}
	return &e.Guests[index], nil
}

// GuestByID returns the guest with the given sub-id, or nil.
func (e *Event) GuestByID(id string) *Guest {
	for i := range e.Guests {
		if e.Guests[i].ID == id {
			return &e.Guests[i]
		}
	}
	return nil
}

// RemoveGuestByID deletes the guest with the given sub-id and clears any
// seating assignment referring to it. Reports whether a guest was removed.
func (e *Event) RemoveGuestByID(id string) bool {
	for i := range e.Guests {
		if e.Guests[i].ID == id {
			e.Guests = append(e.Guests[:i], e.Guests[i+1:]...)
			e.unseatGuest(id)
			return true
		}
	}
	return false
}

func (e *Event) unseatGuest(guestID string) {
	for t := range e.Seating.Tables {
		ids := e.Seating.Tables[t].GuestIDs
		for i := range ids {
			if ids[i] == guestID {
				e.Seating.Tables[t].GuestIDs = append(ids[:i], ids[i+1:]...)
				break
			}
		}
	}
}

// ExpenseAt returns the expense at a display position.
func (e *Event) ExpenseAt(index int) (*Expense, error) {
	if index < 0 || index >= len(e.Expenses) {
		return nil, ErrIndexOutOfRange
	}
	return &e.Expenses[index], nil
}

// ExpenseByID returns the expense with the given sub-id, or nil.
func (e *Event) ExpenseByID(id string) *Expense {
	for i := range e.Expenses {
		if e.Expenses[i].ID == id {
			return &e.Expenses[i]
		}
	}
	return nil
}

// RemoveExpenseByID deletes the expense with the given sub-id.
func (e *Event) RemoveExpenseByID(id string) bool {
	for i := range e.Expenses {
		if e.Expenses[i].ID == id {
			e.Expenses = append(e.Expenses[:i], e.Expenses[i+1:]...)
			return true
		}
	}
	return false
}

// VendorByID returns the vendor with the given sub-id, or nil. Vendors are
// id-addressed at the API surface, unlike guests and expenses.
func (e *Event) VendorByID(id string) *Vendor {
	for i := range e.Vendors {
		if e.Vendors[i].ID == id {
			return &e.Vendors[i]
		}
	}
	return nil
}

// RemoveVendorByID deletes the vendor with the given sub-id.
func (e *Event) RemoveVendorByID(id string) bool {
	for i := range e.Vendors {
		if e.Vendors[i].ID == id {
			e.Vendors = append(e.Vendors[:i], e.Vendors[i+1:]...)
			return true
		}
	}
	return false
}

// GuestPatch is a partial guest update; nil fields are left untouched.
type GuestPatch struct {
	Name         *string     `json:"name,omitempty"`
	Phone        *string     `json:"phone,omitempty"`
	RSVPStatus   *RSVPStatus `json:"rsvp_status,omitempty"`
	PlusOnes     *int        `json:"plus_ones,omitempty"`
	DietaryNotes *string     `json:"dietary_notes,omitempty"`
	TableID      *string     `json:"table_id,omitempty"`
}

// Apply merges the patch into g.
func (p GuestPatch) Apply(g *Guest, now time.Time) error {
	if p.RSVPStatus != nil && !p.RSVPStatus.Valid() {
		return Invalid("rsvp_status", "unknown status %q", string(*p.RSVPStatus))
	}
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Phone != nil {
		g.Phone = *p.Phone
	}
	if p.RSVPStatus != nil {
		g.RSVPStatus = *p.RSVPStatus
	}
	if p.PlusOnes != nil {
		g.PlusOnes = *p.PlusOnes
	}
	if p.DietaryNotes != nil {
		g.DietaryNotes = *p.DietaryNotes
	}
	if p.TableID != nil {
		g.TableID = *p.TableID
	}
	g.UpdatedAt = now
	return nil
}

// ExpensePatch is a partial expense update; nil fields are left untouched.
type ExpensePatch struct {
	Title           *string  `json:"title,omitempty"`
	Category        *string  `json:"category,omitempty"`
	EstimatedAmount *float64 `json:"estimated_amount,omitempty"`
	ActualAmount    *float64 `json:"actual_amount,omitempty"`
	Paid            *bool    `json:"paid,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

// Apply merges the patch into x.
func (p ExpensePatch) Apply(x *Expense, now time.Time) error {
	if p.Title != nil {
		x.Title = *p.Title
	}
	if p.Category != nil {
		x.Category = *p.Category
	}
	if p.EstimatedAmount != nil {
		x.EstimatedAmount = *p.EstimatedAmount
	}
	if p.ActualAmount != nil {
		x.ActualAmount = *p.ActualAmount
	}
	if p.Paid != nil {
		x.Paid = *p.Paid
	}
	if p.Notes != nil {
		x.Notes = *p.Notes
	}
	x.UpdatedAt = now
	return nil
}

// VendorContactPatch is a partial update of a vendor's contact info.
type VendorContactPatch struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

// VendorPricingPatch is a partial update of a vendor's pricing figures.
type VendorPricingPatch struct {
	Quoted  *float64 `json:"quoted,omitempty"`
	Deposit *float64 `json:"deposit,omitempty"`
	Paid    *float64 `json:"paid,omitempty"`
}

// VendorPatch is a partial vendor update. Nested contact and pricing fields
// merge sub-field by sub-field: only the provided sub-fields change.
type VendorPatch struct {
	Name     *string             `json:"name,omitempty"`
	Category *string             `json:"category,omitempty"`
	Status   *VendorStatus       `json:"status,omitempty"`
	Contact  *VendorContactPatch `json:"contact,omitempty"`
	Pricing  *VendorPricingPatch `json:"pricing,omitempty"`
	Notes    *string             `json:"notes,omitempty"`
}

// Apply merges the patch into v.
func (p VendorPatch) Apply(v *Vendor, now time.Time) error {
	if p.Status != nil && !p.Status.Valid() {
		return Invalid("status", "unknown status %q", string(*p.Status))
	}
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Category != nil {
		v.Category = *p.Category
	}
	if p.Status != nil {
		v.Status = *p.Status
	}
	if p.Contact != nil {
		if p.Contact.Name != nil {
			v.Contact.Name = *p.Contact.Name
		}
		if p.Contact.Phone != nil {
			v.Contact.Phone = *p.Contact.Phone
		}
		if p.Contact.Email != nil {
			v.Contact.Email = *p.Contact.Email
		}
	}
	if p.Pricing != nil {
		if p.Pricing.Quoted != nil {
			v.Pricing.Quoted = *p.Pricing.Quoted
		}
		if p.Pricing.Deposit != nil {
			v.Pricing.Deposit = *p.Pricing.Deposit
		}
		if p.Pricing.Paid != nil {
			v.Pricing.Paid = *p.Pricing.Paid
		}
	}
	if p.Notes != nil {
		v.Notes = *p.Notes
	}
	v.UpdatedAt = now
	return nil
}

// SettingsPatch is a partial settings update. Only keys present in both the
// payload and the settings schema are applied; unknown payload keys never
// reach this struct and are silently ignored.
type SettingsPatch struct {
	Budget                  *float64 `json:"budget,omitempty"`
	GuestListEnabled        *bool    `json:"guest_list_enabled,omitempty"`
	ExpenseTrackingEnabled  *bool    `json:"expense_tracking_enabled,omitempty"`
	SeatingEnabled          *bool    `json:"seating_enabled,omitempty"`
	VendorManagementEnabled *bool    `json:"vendor_management_enabled,omitempty"`
}

// Apply merges the patch into s.
func (p SettingsPatch) Apply(s *Settings) {
	if p.Budget != nil {
		s.Budget = *p.Budget
	}
	if p.GuestListEnabled != nil {
		s.GuestListEnabled = *p.GuestListEnabled
	}
	if p.ExpenseTrackingEnabled != nil {
		s.ExpenseTrackingEnabled = *p.ExpenseTrackingEnabled
	}
	if p.SeatingEnabled != nil {
		s.SeatingEnabled = *p.SeatingEnabled
	}
	if p.VendorManagementEnabled != nil {
		s.VendorManagementEnabled = *p.VendorManagementEnabled
	}
}

// EventPatch is a partial update of the event's own fields. Budget is a
// deliberate alias: setting it routes into Settings.Budget, shorthand for
// the nested settings patch.
type EventPatch struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	EventType   *EventType `json:"event_type,omitempty"`
	EventDate   *string    `json:"event_date,omitempty"` // RFC 3339
	Location    *string    `json:"location,omitempty"`
	Budget      *float64   `json:"budget,omitempty"`
}

// Apply merges the patch into e. EventDate is parsed from RFC 3339.
func (p EventPatch) Apply(e *Event) error {
	if p.Name != nil && len(*p.Name) < 2 {
		return Invalid("name", "must be at least 2 characters")
	}
	if p.EventType != nil && !p.EventType.Valid() {
		return Invalid("event_type", "unknown event type %q", string(*p.EventType))
	}
	var eventDate time.Time
	if p.EventDate != nil {
		parsed, err := time.Parse(time.RFC3339, *p.EventDate)
		if err != nil {
			return Invalid("event_date", "must be an RFC 3339 timestamp")
		}
		eventDate = parsed
	}
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.EventType != nil {
		e.EventType = *p.EventType
	}
	if p.EventDate != nil {
		e.EventDate = eventDate
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Budget != nil {
		e.Settings.Budget = *p.Budget
	}
	return nil
}
