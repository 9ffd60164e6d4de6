package mapping

import (
	"fmt"
	"strings"
)

// EmptyValue replaces missing contact values; WhatsApp rejects empty parameters.
const EmptyValue = "-"

// Param is a body parameter in the shape the WhatsApp APIs expect.
type Param struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Render resolves every mapped variable against a contact's fields, in numeric
// index order. An absent mapping renders no parameters.
func Render(m Mapping, fields map[string]any) []Param {
	if !m.IsPresent() {
		return []Param{}
	}
	params := make([]Param, 0, m.Len())
	for _, idx := range m.Indices() {
		field, _ := m.Get(idx)
		v, ok := Lookup(fields, field)
		if !ok || v == "" {
			v = EmptyValue
		}
		params = append(params, Param{Type: "text", Text: v})
	}
	return params
}

// Variables is Render keyed by numeric index, the shape Twilio content variables use.
func Variables(m Mapping, fields map[string]any) map[string]string {
	out := make(map[string]string, m.Len())
	for _, idx := range m.Indices() {
		field, _ := m.Get(idx)
		v, ok := Lookup(fields, field)
		if !ok || v == "" {
			v = EmptyValue
		}
		out[idx] = v
	}
	return out
}

// Lookup walks a dot separated path ("custom_data.city") through nested maps.
func Lookup(fields map[string]any, path string) (string, bool) {
	var cur any = fields
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		cur, ok = m[key]
		if !ok || cur == nil {
			return "", false
		}
	}
	switch v := cur.(type) {
	case string:
		return v, true
	case map[string]any, []any:
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}
