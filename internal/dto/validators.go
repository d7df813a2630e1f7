package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// beatCodeRegexp matches short uppercase post codes like "B-01" or "GATE2".
var beatCodeRegexp = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{0,15}$`)

func validBeatCode(fl validator.FieldLevel) bool {
	return beatCodeRegexp.MatchString(fl.Field().String())
}

// RegisterCustomValidators attaches domain-specific validations to gin's
// binding validator. Call once at startup, before routes are served.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("beat_code", validBeatCode)
	}
}
