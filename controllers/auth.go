package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/funkypants5/wedding-backend/config"
	"github.com/funkypants5/wedding-backend/models"
	"github.com/funkypants5/wedding-backend/utils"
)

// RegisterInput is the request body for registration.
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Gender   string `json:"gender,omitempty" binding:"omitempty,gender"`
}

// LoginInput is the request body for login.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	usersCol := config.DB.Collection("users")

	// precheck for a friendlier error; the unique index on email is the
	// real guarantee under races
	var existing models.User
	err := usersCol.FindOne(ctx, bson.M{"email": input.Email}).Decode(&existing)
	if err == nil {
		utils.FailErr(c, models.ErrDuplicateEmail)
		return
	}
	if err != mongo.ErrNoDocuments {
		slog.Error("register: lookup failed", "err", err)
		utils.Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		slog.Error("register: hash failed", "err", err)
		utils.Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	gender := models.Gender(input.Gender)
	if gender == "" {
		gender = models.GenderUnspecified
	}

	now := time.Now().UTC()
	newUser := models.User{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  hash,
		Gender:    gender,
		CreatedAt: now,
	}

	if _, err := usersCol.InsertOne(ctx, newUser); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.FailErr(c, models.ErrDuplicateEmail)
			return
		}
		slog.Error("register: insert failed", "err", err)
		utils.Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	utils.OK(c, http.StatusCreated, "user registered", gin.H{
		"id":    newUser.ID.Hex(),
		"name":  newUser.Name,
		"email": newUser.Email,
	})
}

// Login authenticates and returns a bearer token.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	usersCol := config.DB.Collection("users")

	var user models.User
	if err := usersCol.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		utils.Fail(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := utils.CheckPassword(user.Password, input.Password); err != nil {
		utils.Fail(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex())
	if err != nil {
		slog.Error("login: token generation failed", "err", err)
		utils.Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	utils.OK(c, http.StatusOK, "logged in", gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// Me returns the authenticated user's profile.
func Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	var user models.User
	err := config.DB.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		utils.FailErr(c, models.ErrNotFound)
		return
	}

	utils.OK(c, http.StatusOK, "profile", user)
}
