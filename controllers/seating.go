package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/funkypants5/wedding-backend/models"
	"github.com/funkypants5/wedding-backend/utils"
)

// ReplaceSeatingInput is the request body for replacing the seating layout.
type ReplaceSeatingInput struct {
	Tables []models.SeatingTable `json:"tables" binding:"required"`
}

// GetSeating returns the seating layout snapshot.
func GetSeating(c *gin.Context) {
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

	seating, err := events.GetSeating(ctx, eventID, userID)
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "seating", seating)
}

// ReplaceSeating swaps in a new seating layout snapshot. Owner or admin.
func ReplaceSeating(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input ReplaceSeatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx, cancel := listCtx()
	defer cancel()

	seating, err := events.ReplaceSeating(ctx, eventID, userID, input.Tables)
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "seating updated", seating)
}
