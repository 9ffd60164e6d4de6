// Package placeholder finds the positional {{n}} variables of a template body.
package placeholder

import (
	"regexp"
	"strconv"

	"github.com/japb1998/wacrm/internal/mapping"
	"github.com/japb1998/wacrm/internal/model"
)

// BodyComponent is the component type whose text carries the variables.
const BodyComponent = "BODY"

var placeholderRe = regexp.MustCompile(`\{\{(\d+)\}\}`)

// Extract returns the distinct variable indices referenced by the BODY
// component, in numeric order. Indices keep their original digits, so
// {{01}} and {{1}} are two different variables.
func Extract(components []model.Component) []string {
	body, ok := Body(components)
	if !ok {
		return []string{}
	}
	return ExtractText(body)
}

// ExtractText scans raw body text. Unterminated or non-numeric braces are ignored.
func ExtractText(text string) []string {
	seen := make(map[string]struct{})
	indices := make([]string, 0)
	for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		indices = append(indices, m[1])
	}
	return mapping.SortIndices(indices)
}

// Body returns the text of the first BODY component.
func Body(components []model.Component) (string, bool) {
	for _, c := range components {
		if c.Type == BodyComponent {
			return c.Text, true
		}
	}
	return "", false
}

// Count is the highest index referenced, the number of parameters the
// template expects when sent.
func Count(components []model.Component) int {
	max := 0
	for _, idx := range Extract(components) {
		if n, err := strconv.Atoi(idx); err == nil && n > max {
			max = n
		}
	}
	return max
}
