package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/funkypants5/wedding-backend/models"
	"github.com/funkypants5/wedding-backend/services"
	"github.com/funkypants5/wedding-backend/utils"
)

// AddExpenseInput is the request body for adding an expense.
type AddExpenseInput struct {
	Title           string  `json:"title" binding:"required"`
	Category        string  `json:"category,omitempty"`
	EstimatedAmount float64 `json:"estimated_amount,omitempty" binding:"omitempty,min=0"`
	ActualAmount    float64 `json:"actual_amount,omitempty" binding:"omitempty,min=0"`
	Paid            bool    `json:"paid,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

// ListExpenses returns the expense list.
func ListExpenses(c *gin.Context) {
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

	expenses, err := events.ListExpenses(ctx, eventID, userID)
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "expenses", expenses)
}

// AddExpense appends an expense.
func AddExpense(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input AddExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx, cancel := listCtx()
	defer cancel()

	expense, err := events.AddExpense(ctx, eventID, userID, services.ExpenseParams{
		Title:           input.Title,
		Category:        input.Category,
		EstimatedAmount: input.EstimatedAmount,
		ActualAmount:    input.ActualAmount,
		Paid:            input.Paid,
		Notes:           input.Notes,
	})
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusCreated, "expense added", expense)
}

// UpdateExpense patches the expense at a display position.
func UpdateExpense(c *gin.Context) {
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

	var patch models.ExpensePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx, cancel := listCtx()
	defer cancel()

	expense, err := events.UpdateExpense(ctx, eventID, userID, index, patch)
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "expense updated", expense)
}

// DeleteExpense removes the expense at a display position.
func DeleteExpense(c *gin.Context) {
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

	if err := events.DeleteExpense(ctx, eventID, userID, index); err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "expense removed", nil)
}
