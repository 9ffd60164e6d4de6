package mapping

import (
	"errors"
	"fmt"
	"strings"
)

const CustomPrefix = "custom_data."

var (
	ErrInvalidMapping  = errors.New("invalid variable mapping")
	ErrInvalidFieldRef = errors.New("invalid field reference")
)

// StandardFields are the built-in contact attributes a variable can bind to.
var StandardFields = []string{"name", "phone_number"}

var standardLabels = map[string]string{
	"name":         "Name",
	"phone_number": "Phone number",
}

// FieldRef points at a contact attribute, either standard or custom_data.<key>.
type FieldRef struct {
	Key    string
	Custom bool
}

func StandardField(name string) FieldRef {
	return FieldRef{Key: name}
}

func CustomField(key string) FieldRef {
	return FieldRef{Key: key, Custom: true}
}

// ParseFieldRef parses a stored field identifier. Custom keys are opaque and are
// not checked against any contact schema.
func ParseFieldRef(s string) (FieldRef, error) {
	if strings.HasPrefix(s, CustomPrefix) {
		key := strings.TrimPrefix(s, CustomPrefix)
		if key == "" {
			return FieldRef{}, fmt.Errorf("%w: empty custom key", ErrInvalidFieldRef)
		}
		return CustomField(key), nil
	}
	if _, ok := standardLabels[s]; ok {
		return StandardField(s), nil
	}
	return FieldRef{}, fmt.Errorf("%w: '%s'", ErrInvalidFieldRef, s)
}

func (f FieldRef) String() string {
	if f.Custom {
		return CustomPrefix + f.Key
	}
	return f.Key
}

// Label is the human readable name shown next to a mapped variable.
func (f FieldRef) Label() string {
	if f.Custom {
		return f.Key + " (custom)"
	}
	if l, ok := standardLabels[f.Key]; ok {
		return l
	}
	return f.Key
}

// Label resolves a stored identifier to its label, falling back to the raw value.
func Label(field string) string {
	ref, err := ParseFieldRef(field)
	if err != nil {
		return field
	}
	return ref.Label()
}
