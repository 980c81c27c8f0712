package helpers

import (
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// NoControlTag rejects strings carrying control characters (line breaks, tabs, NUL).
// Names end up in mail headers and log lines.
const NoControlTag = "nocontrol"

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags on gin's validator engine
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation(NoControlTag, noControl)
		}
	})
}

func noControl(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsControl)
}
