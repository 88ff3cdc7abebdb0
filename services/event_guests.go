package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/funkypants5/wedding-backend/models"
)

// Guests and expenses are index-addressed at the API surface but every row
// carries a generated sub-id. An index is resolved to its sub-id once, on
// the first load; after a version-conflict reload the target is re-resolved
// by sub-id so a retry can never silently hit whatever row shifted into the
// old position. If the sub-id is gone the operation fails with ErrStaleIndex.

// GuestParams are the fields for a new guest entry.
type GuestParams struct {
	Name         string
	Phone        string
	RSVPStatus   models.RSVPStatus
	PlusOnes     int
	DietaryNotes string
}

// ListGuests returns the guest list. Requires a non-pending member.
func (s *EventService) ListGuests(ctx context.Context, eventID, userID primitive.ObjectID) ([]models.Guest, error) {
	ev, err := s.GetEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if err := ev.Authorize(userID, models.AccessActiveCollaborator); err != nil {
		return nil, err
	}
	return ev.Guests, nil
}

// AddGuest appends a guest to the event's guest list.
func (s *EventService) AddGuest(ctx context.Context, eventID, actorID primitive.ObjectID, params GuestParams) (*models.Guest, error) {
	if params.Name == "" {
		return nil, models.Invalid("name", "is required")
	}
	guest := models.NewGuest(params.Name, params.Phone, params.RSVPStatus,
		params.PlusOnes, params.DietaryNotes, actorID, s.now())
	_, err := s.mutate(ctx, eventID, func(ev *models.Event) error {
		if err := ev.Authorize(actorID, models.AccessActiveCollaborator); err != nil {
			return err
		}
		ev.Guests = append(ev.Guests, guest)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

// UpdateGuest patches the guest at a display position.
func (s *EventService) UpdateGuest(ctx context.Context, eventID, actorID primitive.ObjectID, index int, patch models.GuestPatch) (*models.Guest, error) {
	var targetID string
	var updated models.Guest
	_, err := s.mutate(ctx, eventID, func(ev *models.Event) error {
		if err := ev.Authorize(actorID, models.AccessActiveCollaborator); err != nil {
			return err
		}
		g, err := s.resolveGuest(ev, index, &targetID)
		if err != nil {
			return err
		}
		if err := patch.Apply(g, s.now()); err != nil {
			return err
		}
		updated = *g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteGuest removes the guest at a display position and clears its seating
// assignment.
func (s *EventService) DeleteGuest(ctx context.Context, eventID, actorID primitive.ObjectID, index int) error {
	var targetID string
	_, err := s.mutate(ctx, eventID, func(ev *models.Event) error {
		if err := ev.Authorize(actorID, models.AccessActiveCollaborator); err != nil {
			return err
		}
		if _, err := s.resolveGuest(ev, index, &targetID); err != nil {
			return err
		}
		ev.RemoveGuestByID(targetID)
		return nil
	})
	return err
}

// resolveGuest pins an index to a sub-id on the first call and re-resolves
// by sub-id on retries.
func (s *EventService) resolveGuest(ev *models.Event, index int, targetID *string) (*models.Guest, error) {
	if *targetID == "" {
		g, err := ev.GuestAt(index)
		if err != nil {
			return nil, err
		}
		*targetID = g.ID
		return g, nil
	}
	g := ev.GuestByID(*targetID)
	if g == nil {
		return nil, models.ErrStaleIndex
	}
	return g, nil
}

// ExpenseParams are the fields for a new expense entry.
type ExpenseParams struct {
	Title           string
	Category        string
	EstimatedAmount float64
	ActualAmount    float64
	Paid            bool
	Notes           string
}

// ListExpenses returns the expense list. Requires a non-pending member.
func (s *EventService) ListExpenses(ctx context.Context, eventID, userID primitive.ObjectID) ([]models.Expense, error) {
	ev, err := s.GetEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if err := ev.Authorize(userID, models.AccessActiveCollaborator); err != nil {
		return nil, err
	}
	return ev.Expenses, nil
}

// AddExpense appends an expense.
func (s *EventService) AddExpense(ctx context.Context, eventID, actorID primitive.ObjectID, params ExpenseParams) (*models.Expense, error) {
	if params.Title == "" {
		return nil, models.Invalid("title", "is required")
	}
	expense := models.NewExpense(params.Title, params.Category, params.EstimatedAmount,
		params.ActualAmount, params.Paid, params.Notes, actorID, s.now())
	_, err := s.mutate(ctx, eventID, func(ev *models.Event) error {
		if err := ev.Authorize(actorID, models.AccessActiveCollaborator); err != nil {
			return err
		}
		ev.Expenses = append(ev.Expenses, expense)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// UpdateExpense patches the expense at a display position.
func (s *EventService) UpdateExpense(ctx context.Context, eventID, actorID primitive.ObjectID, index int, patch models.ExpensePatch) (*models.Expense, error) {
	var targetID string
	var updated models.Expense
	_, err := s.mutate(ctx, eventID, func(ev *models.Event) error {
		if err := ev.Authorize(actorID, models.AccessActiveCollaborator); err != nil {
			return err
		}
		x, err := s.resolveExpense(ev, index, &targetID)
		if err != nil {
			return err
		}
		if err := patch.Apply(x, s.now()); err != nil {
			return err
		}
		updated = *x
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteExpense removes the expense at a display position.
func (s *EventService) DeleteExpense(ctx context.Context, eventID, actorID primitive.ObjectID, index int) error {
	var targetID string
	_, err := s.mutate(ctx, eventID, func(ev *models.Event) error {
		if err := ev.Authorize(actorID, models.AccessActiveCollaborator); err != nil {
			return err
		}
		if _, err := s.resolveExpense(ev, index, &targetID); err != nil {
			return err
		}
		ev.RemoveExpenseByID(targetID)
		return nil
	})
	return err
}

func (s *EventService) resolveExpense(ev *models.Event, index int, targetID *string) (*models.Expense, error) {
	if *targetID == "" {
		x, err := ev.ExpenseAt(index)
		if err != nil {
			return nil, err
		}
		*targetID = x.ID
		return x, nil
	}
	x := ev.ExpenseByID(*targetID)
	if x == nil {
		return nil, models.ErrStaleIndex
	}
	return x, nil
}
