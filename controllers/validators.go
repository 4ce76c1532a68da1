package controllers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	guestNameRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phoneRe     = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)
)

// RegisterValidators installs the custom binding rules used by the booking
// DTOs. Call once before routes are served.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("guestname", func(fl validator.FieldLevel) bool {
		return guestNameRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
}
