package dto

type ContactDto struct {
	Id            string            `json:"id"`
	CreatedBy     string            `json:"createdBy"`
	PhoneNumber   string            `json:"phoneNumber"`
	Name          string            `json:"name"`
	Tags          []string          `json:"tags"`
	CustomData    map[string]string `json:"customData"`
	UnreadCount   int               `json:"unreadCount"`
	LastMessageAt *string           `json:"lastMessageAt"`
	Source        string            `json:"source"`
	CreatedAt     string            `json:"createdAt"`
	UpdatedAt     string            `json:"updatedAt"`
}

type CreateContactDto struct {
	PhoneNumber string            `json:"phoneNumber" binding:"required,min=10,max=20"`
	Name        string            `json:"name" binding:"omitempty,max=255"`
	Tags        []string          `json:"tags" binding:"omitempty,dive,min=1"`
	CustomData  map[string]string `json:"customData" binding:"omitempty,dive,keys,min=1,noSpaces,endkeys"`
}

type PatchContactDto struct {
	Name       *string           `json:"name" binding:"omitempty,max=255"`
	Tags       []string          `json:"tags" binding:"omitempty,dive,min=1"`
	CustomData map[string]string `json:"customData" binding:"omitempty,dive,keys,min=1,noSpaces,endkeys"`
}

// SeedContactDto is one row of a contact export.
type SeedContactDto struct {
	PhoneNumber string            `json:"phone_number" validate:"required,min=10"`
	Name        string            `json:"name,omitempty" validate:"omitempty,max=255"`
	Tags        []string          `json:"tags,omitempty"`
	CustomData  map[string]string `json:"custom_data,omitempty"`
}

// FieldCatalog lists what a template variable can be mapped to.
type FieldCatalog struct {
	Standard []string `json:"standard"`
	Custom   []string `json:"custom"`
}
