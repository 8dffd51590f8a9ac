package validators

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// IsDateOnly accepts calendar day keys in YYYY-MM-DD form.
func IsDateOnly(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}
