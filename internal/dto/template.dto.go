package dto

import "github.com/japb1998/wacrm/internal/mapping"

type ComponentDto struct {
	Type   string `json:"type" binding:"required,oneof=HEADER BODY FOOTER BUTTONS"`
	Format string `json:"format,omitempty"`
	Text   string `json:"text,omitempty"`
}

type CreateTemplateDto struct {
	Name            string          `json:"name" binding:"required,noSpaces,min=2"`
	Language        string          `json:"language" binding:"required,min=2"`
	Category        string          `json:"category" binding:"required,oneof=MARKETING UTILITY AUTHENTICATION"`
	ContentSid      string          `json:"contentSid" binding:"omitempty,startswith=HX"`
	Components      []ComponentDto  `json:"components" binding:"required,min=1,dive"`
	VariableMapping mapping.Mapping `json:"variableMapping" binding:"omitempty,dive,fieldref" swaggertype:"object,string"`
}

type TemplateDto struct {
	Id              string          `json:"id"`
	Name            string          `json:"name"`
	Language        string          `json:"language"`
	Status          string          `json:"status"`
	Category        string          `json:"category"`
	ContentSid      string          `json:"contentSid,omitempty"`
	Components      []ComponentDto  `json:"components"`
	VariableMapping mapping.Mapping `json:"variableMapping" swaggertype:"object,string"`
	CreatedBy       string          `json:"createdBy"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}

// TemplateListDto is the short form returned by listings.
type TemplateListDto struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
	Status   string `json:"status"`
	Category string `json:"category"`
}

// UpdateMappingDto replaces a template's mapping. null clears it.
type UpdateMappingDto struct {
	VariableMapping mapping.Mapping `json:"variableMapping" binding:"omitempty,dive,fieldref" swaggertype:"object,string"`
}

type VariablesDto struct {
	Variables []string `json:"variables"`
}

type PrefillDto struct {
	TemplateId string            `json:"templateId"`
	ContactId  string            `json:"contactId"`
	Params     []mapping.Param   `json:"params"`
	Variables  map[string]string `json:"variables"`
}

type SendTemplateDto struct {
	ContactId string `json:"contactId" binding:"required,uuid"`
}
