package mapper

import (
	"context"
	"time"

	"github.com/japb1998/wacrm/internal/dto"
	"github.com/japb1998/wacrm/internal/model"
)

func ComponentModelToDto(ctx context.Context, m model.Component) dto.ComponentDto {
	return dto.ComponentDto{
		Type:   m.Type,
		Format: m.Format,
		Text:   m.Text,
	}
}

func MapComponentsToDto(ctx context.Context, m []model.Component) []dto.ComponentDto {
	slc := make([]dto.ComponentDto, 0, len(m))

	for _, c := range m {
		slc = append(slc, ComponentModelToDto(ctx, c))
	}

	return slc
}

func ComponentDtoToModel(ctx context.Context, d dto.ComponentDto) model.Component {
	return model.Component{
		Type:   d.Type,
		Format: d.Format,
		Text:   d.Text,
	}
}

func MapComponentsToModel(ctx context.Context, ds []dto.ComponentDto) []model.Component {
	slc := make([]model.Component, 0, len(ds))

	for _, c := range ds {
		slc = append(slc, ComponentDtoToModel(ctx, c))
	}

	return slc
}

// maps a stored template to its full dto.
func MapTemplateModelToDto(ctx context.Context, m model.TemplateItem) dto.TemplateDto {
	return dto.TemplateDto{
		Id:              m.Id,
		Name:            m.Name,
		Language:        m.Language,
		Status:          m.Status,
		Category:        m.Category,
		ContentSid:      m.ContentSid,
		Components:      MapComponentsToDto(ctx, m.Components),
		VariableMapping: m.VariableMapping,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       m.UpdatedAt.Format(time.RFC3339),
	}
}

func MapTemplateModelToListDto(ctx context.Context, m model.TemplateItem) dto.TemplateListDto {
	return dto.TemplateListDto{
		Id:       m.Id,
		Name:     m.Name,
		Language: m.Language,
		Status:   m.Status,
		Category: m.Category,
	}
}

// maps createTemplateDto to templateItem
func MapCreateTemplateDtoToModel(ctx context.Context, creator string, d dto.CreateTemplateDto) model.TemplateItem {
	t := model.NewTemplateItem(creator, d.Name, d.Language, d.Category, MapComponentsToModel(ctx, d.Components))
	t.ContentSid = d.ContentSid
	t.VariableMapping = d.VariableMapping
	return *t
}
