package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/funkypants5/wedding-backend/services"
	"github.com/funkypants5/wedding-backend/storage"
	"github.com/funkypants5/wedding-backend/utils"
)

var (
	events    *services.EventService
	documents *storage.DocumentStore
)

// Init wires the handlers to their services. Called once from main after
// the database connection is up.
func Init(eventService *services.EventService, documentStore *storage.DocumentStore) {
	events = eventService
	documents = documentStore
}

// opCtx is the per-operation deadline for single-document work.
func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// listCtx is the per-operation deadline for listings and multi-attempt
// mutations.
func listCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// currentUserID pulls the authenticated user's id set by the Auth middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	uidIf, exists := c.Get("userID")
	if !exists {
		utils.Fail(c, http.StatusUnauthorized, "unauthorized")
		return primitive.NilObjectID, false
	}
	hex, _ := uidIf.(string)
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid user id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// eventIDParam parses the :id route parameter.
func eventIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid event id")
		return primitive.NilObjectID, false
	}
	return id, true
}
