// Package ui renders the wacrm CLI: coloured text, prompts and spinners.
package ui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/japb1998/wacrm/internal/dto"
	"github.com/japb1998/wacrm/internal/mapping"
	"github.com/logrusorgru/aurora"
)

// Color is disabled when NO_COLOR is set.
var Color = aurora.NewAurora(os.Getenv("NO_COLOR") == "")

func Bold(text string) string {
	return Color.Bold(text).String()
}

func GreenText(text string) string {
	return Color.Green(text).String()
}

func RedText(text string) string {
	return Color.Red(text).String()
}

func YellowText(text string) string {
	return Color.Yellow(text).String()
}

func CyanText(text string) string {
	return Color.Cyan(text).String()
}

func MagentaText(text string) string {
	return Color.Magenta(text).String()
}

// MappingTable prints one line per template variable with the field it is bound to.
func MappingTable(rows []mapping.Row) string {
	if len(rows) == 0 {
		return "No variables to map\n"
	}
	var b strings.Builder
	for _, r := range rows {
		label := r.Label
		if r.Field == "" {
			label = YellowText(label)
		} else {
			label = GreenText(label)
		}
		fmt.Fprintf(&b, "  %s  %s\n", Bold(fmt.Sprintf("{{%s}}", r.Index)), label)
	}
	return b.String()
}

// TemplateLine is the one line summary used by listings.
func TemplateLine(t dto.TemplateListDto) string {
	return fmt.Sprintf("%s  %s  %s  %s", MagentaText(t.Name), t.Language, t.Category, CyanText(t.Id))
}

// KeyValues prints key: value pairs in alphabetical order.
func KeyValues(items map[string]string) string {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", MagentaText(k), items[k])
	}
	return b.String()
}

// EventLine formats a pushed message. Relevant events are shown as a toast.
func EventLine(e dto.NewMessageEvent, notify bool) string {
	from := e.SenderName
	if from == "" {
		from = e.PhoneNumber
	}
	if notify {
		return fmt.Sprintf("%s %s: %s (%d unread)", YellowText("●"), Bold(from), e.Preview, e.UnreadCount)
	}
	return fmt.Sprintf("  %s: %s", from, e.Preview)
}
