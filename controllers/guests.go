package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/funkypants5/wedding-backend/models"
	"github.com/funkypants5/wedding-backend/services"
	"github.com/funkypants5/wedding-backend/utils"
)

// AddGuestInput is the request body for adding a guest.
type AddGuestInput struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone,omitempty"`
	RSVPStatus   string `json:"rsvp_status,omitempty" binding:"omitempty,rsvpstatus"`
	PlusOnes     int    `json:"plus_ones,omitempty" binding:"omitempty,min=0"`
	DietaryNotes string `json:"dietary_notes,omitempty"`
}

// indexParam parses the :index route parameter. Indices address display
// positions; they are not stable across concurrent deletes, which the
// service guards against by pinning the row's sub-id.
func indexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		utils.Fail(c, http.StatusBadRequest, "invalid index")
		return 0, false
	}
	return index, true
}

// ListGuests returns the guest list.
func ListGuests(c *gin.Context) {
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

	guests, err := events.ListGuests(ctx, eventID, userID)
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "guests", guests)
}

// AddGuest appends a guest to the guest list.
func AddGuest(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input AddGuestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx, cancel := listCtx()
	defer cancel()

	guest, err := events.AddGuest(ctx, eventID, userID, services.GuestParams{
		Name:         input.Name,
		Phone:        input.Phone,
		RSVPStatus:   models.RSVPStatus(input.RSVPStatus),
		PlusOnes:     input.PlusOnes,
		DietaryNotes: input.DietaryNotes,
	})
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusCreated, "guest added", guest)
}

// UpdateGuest patches the guest at a display position.
func UpdateGuest(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	index, ok := indexParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var patch models.GuestPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx, cancel := listCtx()
	defer cancel()

	guest, err := events.UpdateGuest(ctx, eventID, userID, index, patch)
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "guest updated", guest)
}

// DeleteGuest removes the guest at a display position.
func DeleteGuest(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	index, ok := indexParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := listCtx()
	defer cancel()

	if err := events.DeleteGuest(ctx, eventID, userID, index); err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "guest removed", nil)
}
