package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/funkypants5/wedding-backend/models"
	"github.com/funkypants5/wedding-backend/services"
	"github.com/funkypants5/wedding-backend/utils"
)

// CreateEventInput is the request body for creating an event.
type CreateEventInput struct {
	Name        string    `json:"name" binding:"required,min=2"`
	Description string    `json:"description,omitempty"`
	EventType   string    `json:"event_type" binding:"required,eventtype"`
	EventDate   time.Time `json:"event_date,omitempty"`
	Location    string    `json:"location,omitempty"`
	Role        string    `json:"role,omitempty" binding:"omitempty,memberrole"`
}

// CreateEvent creates a new event with the caller as its owner.
func CreateEvent(c *gin.Context) {
	var input CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	event, err := events.CreateEvent(ctx, userID, services.CreateEventParams{
		Name:        input.Name,
		Description: input.Description,
		EventType:   models.EventType(input.EventType),
		EventDate:   input.EventDate,
		Location:    input.Location,
		CreatorRole: models.Role(input.Role),
	})
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusCreated, "event created", event)
}

// ListEvents returns the active events the caller is a member of.
func ListEvents(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := listCtx()
	defer cancel()

	list, err := events.ListEvents(ctx, userID)
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "events", list)
}

// GetEvent returns the event detail for a member. Soft-deleted events are
// visible to their owner only.
func GetEvent(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	event, err := events.GetEvent(ctx, eventID, userID)
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "event", event)
}

// UpdateEvent patches event fields. Owner only. A top-level budget value is
// shorthand for settings.budget.
func UpdateEvent(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var patch models.EventPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx, cancel := listCtx()
	defer cancel()

	event, err := events.UpdateEvent(ctx, eventID, userID, patch)
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "event updated", event)
}

// UpdateSettings patches the event settings. Owner only; unknown payload
// keys are ignored.
func UpdateSettings(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var patch models.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx, cancel := listCtx()
	defer cancel()

	event, err := events.UpdateSettings(ctx, eventID, userID, patch)
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "settings updated", event.Settings)
}

// DeleteEvent soft-deletes the event. Owner only. Data is retained for
// audit; the event disappears from lookups and listings.
func DeleteEvent(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := listCtx()
	defer cancel()

	if err := events.SoftDelete(ctx, eventID, userID); err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "event deleted", nil)
}

// JoinByInviteCode joins the caller to the event behind the :code route
// parameter as a pending member. Joining twice is a no-op success.
func JoinByInviteCode(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := listCtx()
	defer cancel()

	event, err := events.JoinByInviteCode(ctx, userID, c.Param("code"))
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "joined event", event)
}
