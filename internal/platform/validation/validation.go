// Package validation wires custom request-binding rules into gin's
// validator engine.
package validation

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var codePattern = regexp.MustCompile(`^QR-[0-9A-F]{8}$`)

var registerOnce sync.Once

// RegisterCustomValidators installs the custom binding rules. Safe to call
// more than once.
func RegisterCustomValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("qrcode", func(fl validator.FieldLevel) bool {
			return codePattern.MatchString(fl.Field().String())
		})
	})
}
