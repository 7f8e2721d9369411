package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// IsEmail does the basic format check services re-run on top of the HTTP
// layer's binding tags.
func IsEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}
