package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/funkypants5/wedding-backend/models"
	"github.com/funkypants5/wedding-backend/utils"
)

// UpdateMemberInput carries a permission and/or role change for a member.
type UpdateMemberInput struct {
	Permissions string `json:"permissions,omitempty" binding:"omitempty,permission"`
	Role        string `json:"role,omitempty" binding:"omitempty,memberrole"`
}

func memberIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid member id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// ListMembers returns the event's members.
func ListMembers(c *gin.Context) {
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

	members, err := events.ListMembers(ctx, eventID, userID)
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "members", members)
}

// UpdateMember changes a member's permission level and/or role, subject to
// the membership state-machine guards.
func UpdateMember(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	targetID, ok := memberIDParam(c)
	if !ok {
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input UpdateMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if input.Permissions == "" && input.Role == "" {
		utils.Fail(c, http.StatusBadRequest, "no fields to update")
		return
	}

	ctx, cancel := listCtx()
	defer cancel()

	var perm *models.Permission
	if input.Permissions != "" {
		p := models.Permission(input.Permissions)
		perm = &p
	}
	var role *models.Role
	if input.Role != "" {
		r := models.Role(input.Role)
		role = &r
	}

	// one write: a combined change commits fully or not at all
	member, err := events.UpdateMember(ctx, eventID, actorID, targetID, perm, role)
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "member updated", member)
}

// RemoveMember removes a member from the event.
func RemoveMember(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	targetID, ok := memberIDParam(c)
	if !ok {
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := listCtx()
	defer cancel()

	if err := events.RemoveMember(ctx, eventID, actorID, targetID); err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "member removed", nil)
}

// LeaveEvent removes the caller's own membership. Owners must delete the
// event instead.
func LeaveEvent(c *gin.Context) {
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

	if err := events.Leave(ctx, eventID, userID); err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "left event", nil)
}
