package utils

import (
	"errors"
	"reflect"
	"strings"
	"time"
)

// Sanitize trims whitespace from every string field of the struct o
// points to.
func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if field.Kind() == reflect.String && field.CanSet() {
			field.SetString(strings.TrimSpace(field.String()))
		}
	}
}

// ParseMonth takes "YYYY-MM" (e.g., "2025-08") and returns an anchor
// inside that month.
func ParseMonth(monthString string) (time.Time, error) {
	t, err := time.Parse("2006-01", monthString)
	if err != nil {
		return time.Time{}, errors.New("invalid month format, expected YYYY-MM")
	}
	return t.UTC(), nil
}
