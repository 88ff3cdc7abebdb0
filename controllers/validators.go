package controllers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/funkypants5/wedding-backend/models"
)

// RegisterValidators installs the domain enum checks on gin's validator
// engine so binding structs can declare them as tags.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("eventtype", func(fl validator.FieldLevel) bool {
		return models.EventType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		return models.Gender(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("memberrole", func(fl validator.FieldLevel) bool {
		return models.Role(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("permission", func(fl validator.FieldLevel) bool {
		return models.Permission(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("rsvpstatus", func(fl validator.FieldLevel) bool {
		return models.RSVPStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("vendorstatus", func(fl validator.FieldLevel) bool {
		return models.VendorStatus(fl.Field().String()).Valid()
	})
}
