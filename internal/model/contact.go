package model

import (
	"time"

	"github.com/google/uuid"
)

type ContactItem struct {
	CreatedBy     string            `json:"createdBy"`
	Id            string            `json:"id"`
	PhoneNumber   string            `json:"phoneNumber"`
	Name          string            `json:"name"`
	Tags          []string          `json:"tags"`
	CustomData    map[string]string `json:"customData"`
	UnreadCount   int               `json:"unreadCount"`
	LastMessageAt *time.Time        `json:"lastMessageAt"`
	LastMessageId string            `json:"lastMessageId,omitempty"`
	Source        string            `json:"source"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func NewContactItem(creator, phone, name, source string, tags []string, customData map[string]string) *ContactItem {
	now := time.Now().UTC()
	if tags == nil {
		tags = []string{}
	}
	if customData == nil {
		customData = map[string]string{}
	}
	return &ContactItem{
		CreatedBy:   creator,
		Id:          uuid.New().String(),
		PhoneNumber: phone,
		Name:        name,
		Tags:        tags,
		CustomData:  customData,
		Source:      source,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Fields flattens the contact into the shape template mappings resolve against.
func (c ContactItem) Fields() map[string]any {
	custom := make(map[string]any, len(c.CustomData))
	for k, v := range c.CustomData {
		custom[k] = v
	}
	return map[string]any{
		"name":         c.Name,
		"phone_number": c.PhoneNumber,
		"custom_data":  custom,
	}
}
