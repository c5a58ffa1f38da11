package http

import (
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// passwordComplexity requires at least one letter and one digit. Length is
// enforced separately by the min tag.
func passwordComplexity(fl validator.FieldLevel) bool {
	var hasLetter, hasDigit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// registerCustomValidators installs custom binding rules on gin's
// validator engine. Called once during router setup.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("passwordcomplexity", passwordComplexity)
	}
}
