package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/japb1998/wacrm/internal/mapping"
)

// TemplateItem is a WhatsApp message template as stored in dynamo.
type TemplateItem struct {
	CreatedBy       string          `json:"createdBy"`
	Id              string          `json:"id"`
	Name            string          `json:"name"`
	Language        string          `json:"language"`
	Status          string          `json:"status"`
	Category        string          `json:"category"`
	ContentSid      string          `json:"contentSid,omitempty"`
	Components      []Component     `json:"components"`
	VariableMapping mapping.Mapping `json:"variableMapping"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Component is one block of a template (HEADER, BODY, FOOTER, BUTTONS).
type Component struct {
	Type   string `json:"type"`
	Format string `json:"format,omitempty"`
	Text   string `json:"text,omitempty"`
}

func NewTemplateItem(creator, name, language, category string, components []Component) *TemplateItem {
	now := time.Now().UTC()
	return &TemplateItem{
		CreatedBy:  creator,
		Id:         uuid.New().String(),
		Name:       name,
		Language:   language,
		Status:     "PENDING",
		Category:   category,
		Components: components,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
