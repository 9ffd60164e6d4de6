package placeholder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/japb1998/wacrm/internal/model"
	"github.com/japb1998/wacrm/internal/placeholder"
)

func body(text string) []model.Component {
	return []model.Component{
		{Type: "HEADER", Format: "TEXT", Text: "Hi {{9}}"},
		{Type: "BODY", Text: text},
		{Type: "FOOTER", Text: "{{8}}"},
	}
}

func TestExtractDeduplicatesAndSorts(t *testing.T) {
	bodies := []string{
		"{{3}} {{1}} {{1}} {{2}}",
		"{{1}}{{2}}{{3}}{{1}}",
		"Dear {{2}}, order {{3}} for {{1}} is ready. Thanks {{1}}!",
	}
	for _, b := range bodies {
		assert.Equal(t, []string{"1", "2", "3"}, placeholder.Extract(body(b)), b)
	}
}

func TestExtractNumericOrder(t *testing.T) {
	got := placeholder.Extract(body("{{10}} {{9}} {{2}}"))
	assert.Equal(t, []string{"2", "9", "10"}, got)
}

func TestExtractEdgeCases(t *testing.T) {
	tests := []struct {
		name       string
		components []model.Component
		want       []string
	}{
		{name: "no components", components: nil, want: []string{}},
		{name: "no body", components: []model.Component{{Type: "HEADER", Text: "{{1}}"}}, want: []string{}},
		{name: "no placeholders", components: body("Hello there"), want: []string{}},
		{name: "malformed braces", components: body("{{}} {{a}} {{1} {1}} {{ 2 }} {{3"), want: []string{}},
		{name: "nested braces", components: body("{{{4}}}"), want: []string{"4"}},
		{name: "leading zeros kept", components: body("{{01}} {{1}} {{2}}"), want: []string{"01", "1", "2"}},
		{name: "lowercase type ignored", components: []model.Component{{Type: "body", Text: "{{1}}"}}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, placeholder.Extract(tt.components))
		})
	}
}

func TestExtractUsesFirstBody(t *testing.T) {
	components := []model.Component{
		{Type: "BODY", Text: "{{1}}"},
		{Type: "BODY", Text: "{{2}}"},
	}
	assert.Equal(t, []string{"1"}, placeholder.Extract(components))
}

func TestCount(t *testing.T) {
	assert.Equal(t, 0, placeholder.Count(nil))
	assert.Equal(t, 3, placeholder.Count(body("{{1}} {{3}}")))
}
