package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strptr(s string) *string { return &s }

func f64ptr(f float64) *float64 { return &f }

func intptr(i int) *int { return &i }

func boolptr(b bool) *bool { return &b }

func rsvpPtr(s RSVPStatus) *RSVPStatus { return &s }

func TestGuestAddressing(t *testing.T) {
	creator := primitive.NewObjectID()
	ev := newTestEvent(t, creator)
	now := time.Now()

	a := NewGuest("Aunt May", "", RSVPPending, 0, "", creator, now)
	b := NewGuest("Ben", "", RSVPAttending, 1, "", creator, now)
	ev.Guests = append(ev.Guests, a, b)

	got, err := ev.GuestAt(1)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = ev.GuestAt(2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = ev.GuestAt(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	assert.NotNil(t, ev.GuestByID(a.ID))
	assert.Nil(t, ev.GuestByID("missing"))

	// sub-ids are unique per entry
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRemoveGuestClearsSeating(t *testing.T) {
	creator := primitive.NewObjectID()
	ev := newTestEvent(t, creator)
	now := time.Now()

	g := NewGuest("Cium", "", RSVPAttending, 0, "", creator, now)
	other := NewGuest("Dana", "", RSVPAttending, 0, "", creator, now)
	ev.Guests = append(ev.Guests, g, other)
	ev.Seating.Tables = []SeatingTable{
		{ID: "t1", Name: "Head table", Capacity: 8, GuestIDs: []string{g.ID, other.ID}},
	}

	require.True(t, ev.RemoveGuestByID(g.ID))
	assert.Nil(t, ev.GuestByID(g.ID))
	assert.Equal(t, []string{other.ID}, ev.Seating.Tables[0].GuestIDs)

	assert.False(t, ev.RemoveGuestByID(g.ID))
}

func TestGuestPatchApply(t *testing.T) {
	creator := primitive.NewObjectID()
	g := NewGuest("Original", "555-0000", RSVPPending, 0, "", creator, time.Now())

	patch := GuestPatch{
		RSVPStatus: rsvpPtr(RSVPAttending),
		PlusOnes:   intptr(2),
	}
	require.NoError(t, patch.Apply(&g, time.Now()))

	// untouched fields survive a partial patch
	assert.Equal(t, "Original", g.Name)
	assert.Equal(t, "555-0000", g.Phone)
	assert.Equal(t, RSVPAttending, g.RSVPStatus)
	assert.Equal(t, 2, g.PlusOnes)

	bad := GuestPatch{RSVPStatus: rsvpPtr(RSVPStatus("maybe"))}
	var verr *ValidationError
	assert.ErrorAs(t, bad.Apply(&g, time.Now()), &verr)
}

func TestExpensePatchApply(t *testing.T) {
	creator := primitive.NewObjectID()
	x := NewExpense("Catering", "food", 5000, 0, false, "", creator, time.Now())

	patch := ExpensePatch{ActualAmount: f64ptr(5400), Paid: boolptr(true)}
	require.NoError(t, patch.Apply(&x, time.Now()))

	assert.Equal(t, "Catering", x.Title)
	assert.Equal(t, 5000.0, x.EstimatedAmount)
	assert.Equal(t, 5400.0, x.ActualAmount)
	assert.True(t, x.Paid)
}

func TestVendorPatchMergesNestedFields(t *testing.T) {
	creator := primitive.NewObjectID()
	v := NewVendor("Bloom Florist", "flowers", VendorContacted,
		VendorContact{Name: "Rio", Phone: "555-1111", Email: "rio@bloom.test"},
		VendorPricing{Quoted: 1200}, "", creator, time.Now())

	status := VendorBooked
	patch := VendorPatch{
		Status:  &status,
		Contact: &VendorContactPatch{Phone: strptr("555-2222")},
		Pricing: &VendorPricingPatch{Deposit: f64ptr(300)},
	}
	require.NoError(t, patch.Apply(&v, time.Now()))

	assert.Equal(t, VendorBooked, v.Status)
	// only the provided sub-fields change
	assert.Equal(t, "555-2222", v.Contact.Phone)
	assert.Equal(t, "Rio", v.Contact.Name)
	assert.Equal(t, "rio@bloom.test", v.Contact.Email)
	assert.Equal(t, 1200.0, v.Pricing.Quoted)
	assert.Equal(t, 300.0, v.Pricing.Deposit)
	assert.Equal(t, 0.0, v.Pricing.Paid)
}

func TestSettingsPatchApply(t *testing.T) {
	s := DefaultSettings()

	patch := SettingsPatch{
		Budget:           f64ptr(25000),
		GuestListEnabled: boolptr(false),
	}
	patch.Apply(&s)

	assert.Equal(t, 25000.0, s.Budget)
	assert.False(t, s.GuestListEnabled)
	// untouched toggles keep their defaults
	assert.True(t, s.ExpenseTrackingEnabled)
	assert.True(t, s.SeatingEnabled)
}

func TestEventPatchApply(t *testing.T) {
	creator := primitive.NewObjectID()
	ev := newTestEvent(t, creator)

	t.Run("budget routes into settings", func(t *testing.T) {
		patch := EventPatch{Budget: f64ptr(30000)}
		require.NoError(t, patch.Apply(ev))
		assert.Equal(t, 30000.0, ev.Settings.Budget)
	})

	t.Run("event date parses RFC 3339", func(t *testing.T) {
		patch := EventPatch{EventDate: strptr("2027-06-12T15:00:00Z")}
		require.NoError(t, patch.Apply(ev))
		assert.Equal(t, time.Date(2027, 6, 12, 15, 0, 0, 0, time.UTC), ev.EventDate)
	})

	t.Run("bad date is a validation error", func(t *testing.T) {
		before := ev.EventDate
		patch := EventPatch{EventDate: strptr("next summer")}
		var verr *ValidationError
		require.ErrorAs(t, patch.Apply(ev), &verr)
		assert.Equal(t, before, ev.EventDate)
	})

	t.Run("short name rejected", func(t *testing.T) {
		patch := EventPatch{Name: strptr("x")}
		var verr *ValidationError
		assert.ErrorAs(t, patch.Apply(ev), &verr)
	})

	t.Run("nothing applied on invalid patch", func(t *testing.T) {
		patch := EventPatch{
			Location:  strptr("should not stick"),
			EventDate: strptr("garbage"),
		}
		before := ev.Location
		require.Error(t, patch.Apply(ev))
		assert.Equal(t, before, ev.Location)
	})
}
