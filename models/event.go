package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventType classifies the occasion being planned.
type EventType string

const (
	EventTypeWedding     EventType = "wedding"
	EventTypeEngagement  EventType = "engagement"
	EventTypeAnniversary EventType = "anniversary"
	EventTypeOther       EventType = "other"
)

// Valid reports whether t is one of the supported event types.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeWedding, EventTypeEngagement, EventTypeAnniversary, EventTypeOther:
		return true
	}
	return false
}

// Permission is a member's permission level within an event.
// owner is set once at creation and is never reachable by transition.
type Permission string

const (
	PermissionOwner        Permission = "owner"
	PermissionAdmin        Permission = "admin"
	PermissionCollaborator Permission = "collaborator"
	PermissionPending      Permission = "pending_approval"
)

// Valid reports whether p is a known permission level.
func (p Permission) Valid() bool {
	switch p {
	case PermissionOwner, PermissionAdmin, PermissionCollaborator, PermissionPending:
		return true
	}
	return false
}

// Role is a member's self-described relationship to the event.
type Role string

const (
	RoleBride  Role = "bride"
	RoleGroom  Role = "groom"
	RoleFamily Role = "family"
	RoleFriend Role = "friend"
	RoleGuest  Role = "guest"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleBride, RoleGroom, RoleFamily, RoleFriend, RoleGuest:
		return true
	}
	return false
}

// RSVPStatus tracks a guest's attendance confirmation.
type RSVPStatus string

const (
	RSVPPending   RSVPStatus = "pending"
	RSVPAttending RSVPStatus = "attending"
	RSVPDeclined  RSVPStatus = "declined"
)

// Valid reports whether s is a known RSVP status.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPPending, RSVPAttending, RSVPDeclined:
		return true
	}
	return false
}

// VendorStatus tracks where a vendor sits in the booking pipeline.
type VendorStatus string

const (
	VendorResearching VendorStatus = "researching"
	VendorContacted   VendorStatus = "contacted"
	VendorBooked      VendorStatus = "booked"
	VendorCancelled   VendorStatus = "cancelled"
)

// Valid reports whether s is a known vendor status.
func (s VendorStatus) Valid() bool {
	switch s {
	case VendorResearching, VendorContacted, VendorBooked, VendorCancelled:
		return true
	}
	return false
}

// Membership joins a user to an event with a role label and a permission
// level. There is exactly one Membership per (event, user) pair, enforced by
// the aggregate, and exactly one member holds the owner permission.
type Membership struct {
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Role        Role               `bson:"role" json:"role"`
	Permissions Permission         `bson:"permissions" json:"permissions"`
	JoinedAt    time.Time          `bson:"joined_at" json:"joined_at"`
}

// Guest is an invitee on the event's guest list. ID is a generated sub-id;
// list position is kept only for display ordering.
type Guest struct {
	ID           string             `bson:"guest_id" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	RSVPStatus   RSVPStatus         `bson:"rsvp_status" json:"rsvp_status"`
	PlusOnes     int                `bson:"plus_ones" json:"plus_ones"`
	DietaryNotes string             `bson:"dietary_notes,omitempty" json:"dietary_notes,omitempty"`
	TableID      string             `bson:"table_id,omitempty" json:"table_id,omitempty"`
	CreatedBy    primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// Expense is a budget line item.
type Expense struct {
	ID              string             `bson:"expense_id" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Category        string             `bson:"category,omitempty" json:"category,omitempty"`
	EstimatedAmount float64            `bson:"estimated_amount" json:"estimated_amount"`
	ActualAmount    float64            `bson:"actual_amount" json:"actual_amount"`
	Paid            bool               `bson:"paid" json:"paid"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedBy       primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// VendorContact holds a vendor's point of contact.
type VendorContact struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
}

// VendorPricing holds quoted and committed amounts for a vendor.
type VendorPricing struct {
	Quoted  float64 `bson:"quoted" json:"quoted"`
	Deposit float64 `bson:"deposit" json:"deposit"`
	Paid    float64 `bson:"paid" json:"paid"`
}

// Vendor is a service provider tracked against the event. Documents holds
// blob-store filename handles for uploaded contracts and quotes.
type Vendor struct {
	ID        string             `bson:"vendor_id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Category  string             `bson:"category,omitempty" json:"category,omitempty"`
	Status    VendorStatus       `bson:"status" json:"status"`
	Contact   VendorContact      `bson:"contact" json:"contact"`
	Pricing   VendorPricing      `bson:"pricing" json:"pricing"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Documents []string           `bson:"documents,omitempty" json:"documents,omitempty"`
	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Settings holds the event budget and feature toggles.
type Settings struct {
	Budget                  float64 `bson:"budget" json:"budget"`
	GuestListEnabled        bool    `bson:"guest_list_enabled" json:"guest_list_enabled"`
	ExpenseTrackingEnabled  bool    `bson:"expense_tracking_enabled" json:"expense_tracking_enabled"`
	SeatingEnabled          bool    `bson:"seating_enabled" json:"seating_enabled"`
	VendorManagementEnabled bool    `bson:"vendor_management_enabled" json:"vendor_management_enabled"`
}

// DefaultSettings returns the settings a new event starts with.
func DefaultSettings() Settings {
	return Settings{
		GuestListEnabled:        true,
		ExpenseTrackingEnabled:  true,
		SeatingEnabled:          true,
		VendorManagementEnabled: true,
	}
}

// SeatingTable is one table in the seating layout.
type SeatingTable struct {
	ID       string   `bson:"table_id" json:"id"`
	Name     string   `bson:"name" json:"name"`
	Capacity int      `bson:"capacity" json:"capacity"`
	GuestIDs []string `bson:"guest_ids,omitempty" json:"guest_ids,omitempty"`
}

// Seating is the event's seating layout snapshot.
type Seating struct {
	Tables    []SeatingTable     `bson:"tables,omitempty" json:"tables"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	UpdatedBy primitive.ObjectID `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
}

// Event is the planning aggregate. It exclusively owns its embedded member,
// guest, expense and vendor collections; the document is the unit of
// persistence and of concurrency control. Revision is bumped on every
// committed write and checked by the store on replace.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	EventType   EventType          `bson:"event_type" json:"event_type"`
	EventDate   time.Time          `bson:"event_date,omitempty" json:"event_date,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"created_by"`
	InviteCode  string             `bson:"invite_code" json:"invite_code"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	Revision    int64              `bson:"revision" json:"-"`
	Settings    Settings           `bson:"settings" json:"settings"`
	Members     []Membership       `bson:"members" json:"members"`
	Guests      []Guest            `bson:"guests" json:"guests"`
	Expenses    []Expense          `bson:"expenses" json:"expenses"`
	Vendors     []Vendor           `bson:"vendors" json:"vendors"`
	Seating     Seating            `bson:"seating" json:"seating"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// NewEvent builds an active event with creator as the sole owner member.
// The invite code is assigned by the caller before first persistence and
// never regenerated afterwards.
func NewEvent(name, description string, eventType EventType, eventDate time.Time, location string, creator primitive.ObjectID, creatorRole Role, inviteCode string, now time.Time) *Event {
	if !creatorRole.Valid() {
		creatorRole = RoleGuest
	}
	return &Event{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: description,
		EventType:   eventType,
		EventDate:   eventDate,
		Location:    location,
		CreatedBy:   creator,
		InviteCode:  inviteCode,
		IsActive:    true,
		Settings:    DefaultSettings(),
		Members: []Membership{{
			UserID:      creator,
			Role:        creatorRole,
			Permissions: PermissionOwner,
			JoinedAt:    now,
		}},
		Guests:    []Guest{},
		Expenses:  []Expense{},
		Vendors:   []Vendor{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
