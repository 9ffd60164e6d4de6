package api

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/japb1998/wacrm/internal/mapping"
)

// stringValue reads a string or *string field. ok is false for a nil pointer
// or an empty string, which every custom tag accepts.
func stringValue(fl validator.FieldLevel) (string, bool) {
	f := fl.Field()
	if f.Kind() == reflect.Pointer {
		if f.IsNil() {
			return "", false
		}
		f = f.Elem()
	}
	if f.Kind() != reflect.String || f.String() == "" {
		return "", false
	}
	return f.String(), true
}

// RegisterValidators adds the custom tags the dtos use.
func RegisterValidators(v *validator.Validate) {
	// mappings validate as their entries so "dive" reaches every field reference.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if m, ok := field.Interface().(mapping.Mapping); ok {
			return m.Entries()
		}
		return nil
	}, mapping.Mapping{})

	// nil pointers are let through, the field is optional.
	v.RegisterValidation("rfc3339", func(fl validator.FieldLevel) bool {
		field, ok := stringValue(fl)
		if !ok {
			return true
		}

		_, err := time.Parse(time.RFC3339, field)

		return err == nil
	}, true)

	v.RegisterValidation("noSpaces", func(fl validator.FieldLevel) bool {
		field, ok := stringValue(fl)
		if !ok {
			return true
		}

		return !strings.Contains(field, " ")
	}, true)

	v.RegisterValidation("fieldref", func(fl validator.FieldLevel) bool {
		field, ok := stringValue(fl)
		if !ok {
			return false
		}

		_, err := mapping.ParseFieldRef(field)

		return err == nil
	})
}
