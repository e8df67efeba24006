package api

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	mobileRe  = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	sessionRe = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}$`)
)

// registerValidators installs the custom binding validators on gin's
// validator engine. Safe to call more than once.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Institutional mailbox only.
	v.RegisterValidation("campusmail", func(fl validator.FieldLevel) bool {
		return strings.HasSuffix(strings.ToLower(fl.Field().String()), "@bitmesra.ac.in")
	})

	// Indian mobile number, ten digits starting 6-9.
	v.RegisterValidation("inmobile", func(fl validator.FieldLevel) bool {
		return mobileRe.MatchString(fl.Field().String())
	})

	// Academic session of the form 2021-25.
	v.RegisterValidation("acadsession", func(fl validator.FieldLevel) bool {
		return sessionRe.MatchString(fl.Field().String())
	})
}
