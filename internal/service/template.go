package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/japb1998/wacrm/internal/database"
	"github.com/japb1998/wacrm/internal/dto"
	"github.com/japb1998/wacrm/internal/mapper"
	"github.com/japb1998/wacrm/internal/mapping"
	"github.com/japb1998/wacrm/internal/model"
	"github.com/japb1998/wacrm/internal/placeholder"
	"github.com/japb1998/wacrm/pkg/sms"
)

type TemplateRepository interface {
	Create(ctx context.Context, t *model.TemplateItem) error
	SetVariableMapping(ctx context.Context, creator, id string, m mapping.Mapping) (*model.TemplateItem, error)
	GetByKey(ctx context.Context, creator, id string) (*model.TemplateItem, error)
	GetByCreator(ctx context.Context, creator string, p *database.PaginationOps) ([]*model.TemplateItem, error)
	Delete(ctx context.Context, creator, id string) error
	GetTotalCount(ctx context.Context, creator string) (int64, error)
}

// ContactReader is what templates need from the contact store to render.
type ContactReader interface {
	GetContactById(ctx context.Context, creator, id string) (*model.ContactItem, error)
}

type MessageSender interface {
	SendMessage(msg *sms.Msg) error
}

type TemplateSvc struct {
	store    TemplateRepository
	contacts ContactReader
	sender   MessageSender
}

func NewTemplateSvc(store TemplateRepository, contacts ContactReader, sender MessageSender) *TemplateSvc {
	return &TemplateSvc{
		store,
		contacts,
		sender,
	}
}

// normalizeMapping validates m and collapses an empty mapping to absent.
func normalizeMapping(m mapping.Mapping) (mapping.Mapping, error) {
	if !m.IsPresent() {
		return mapping.Absent(), nil
	}
	if err := m.Validate(); err != nil {
		return mapping.Mapping{}, err
	}
	return mapping.FromEntries(m.Entries()), nil
}

func (ts *TemplateSvc) CreateTemplate(ctx context.Context, creator string, template dto.CreateTemplateDto) (*dto.TemplateDto, error) {
	m, err := normalizeMapping(template.VariableMapping)

	if err != nil {
		return nil, err
	}

	t := mapper.MapCreateTemplateDtoToModel(ctx, creator, template)
	t.VariableMapping = m

	err = ts.store.Create(ctx, &t)

	if err != nil {
		if errors.Is(err, database.ErrItemExists) {
			return nil, ErrTemplateExists
		}
		templateLogger.Error("failed to create template", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create template")
	}

	templateLogger.Info("template created", slog.String("id", t.Id), slog.Int("variables", len(placeholder.Extract(t.Components))))

	d := mapper.MapTemplateModelToDto(ctx, t)
	return &d, nil
}

// GetPaginatedTemplates - retrieves templates for a specific creator/client with pagination options.
func (ts *TemplateSvc) GetPaginatedTemplates(ctx context.Context, creator string, ops *dto.PaginationOps) (dto.PaginatedResponse[dto.TemplateListDto], error) {
	templateLogger.Info("getting templates by creator", slog.String("creator", creator))
	itemChan := make(chan []dto.TemplateListDto, 1)
	countChan := make(chan int64, 1)
	errChan := make(chan error, 2)

	// get items
	pg := database.PaginationOps{
		Limit: *ops.Limit,
		Skip:  *ops.Limit * ops.Page,
	}
	go func() {
		items, err := ts.store.GetByCreator(ctx, creator, &pg)

		if err != nil {
			errChan <- err
			return
		}

		templates := make([]dto.TemplateListDto, 0, len(items))

		for _, i := range items {
			templates = append(templates, mapper.MapTemplateModelToListDto(ctx, *i))
		}
		itemChan <- templates
	}()

	go func() {
		count, err := ts.store.GetTotalCount(ctx, creator)

		if err != nil {
			errChan <- err
			return
		}

		countChan <- count
	}()

	var templates []dto.TemplateListDto
	var count int64

	for i := 0; i < 2; i++ {
		select {
		case i := <-itemChan:
			templates = i
		case c := <-countChan:
			count = c
		case err := <-errChan:
			templateLogger.Error("failed to retrieve template for client", slog.String("client", creator), slog.String("error", err.Error()))
			return dto.PaginatedResponse[dto.TemplateListDto]{}, fmt.Errorf("failed to retrieve template for client=%s", creator)
		}
	}

	return dto.PaginatedResponse[dto.TemplateListDto]{
		Page:  ops.Page,
		Limit: *ops.Limit,
		Data:  templates,
		Total: count,
	}, nil
}

func (ts *TemplateSvc) getTemplate(ctx context.Context, creator, id string) (*model.TemplateItem, error) {
	i, err := ts.store.GetByKey(ctx, creator, id)

	if err != nil {
		templateLogger.Error("failed to get template", slog.String("error", err.Error()), slog.String("creator", creator), slog.String("id", id))

		return nil, fmt.Errorf("failed to get template by key creator=%s id=%s", creator, id)
	}

	if i == nil {
		return nil, ErrTemplateNotFound
	}

	return i, nil
}

// Get template
func (ts *TemplateSvc) GetTemplate(ctx context.Context, creator, id string) (*dto.TemplateDto, error) {
	templateLogger.Info("getting template", slog.String("creator", creator), slog.String("id", id))
	i, err := ts.getTemplate(ctx, creator, id)

	if err != nil {
		return nil, err
	}

	d := mapper.MapTemplateModelToDto(ctx, *i)
	return &d, nil
}

// DeleteTemplate
func (ts *TemplateSvc) DeleteTemplate(ctx context.Context, creator string, id string) error {

	err := ts.store.Delete(ctx, creator, id)

	if err != nil {
		templateLogger.Error("failed to delete template", slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete template creator='%s', id='%s'", creator, id)
	}
	templateLogger.Info("successfully delete template", slog.String("id", id), slog.String("creator", creator))
	return nil
}

// GetVariables returns the distinct placeholder indices of the template body in numeric order.
func (ts *TemplateSvc) GetVariables(ctx context.Context, creator, id string) (dto.VariablesDto, error) {
	t, err := ts.getTemplate(ctx, creator, id)

	if err != nil {
		return dto.VariablesDto{}, err
	}

	return dto.VariablesDto{Variables: placeholder.Extract(t.Components)}, nil
}

// SaveMapping replaces the template's variable mapping. Keys outside the body's
// placeholders are kept; an empty mapping is stored as absent.
func (ts *TemplateSvc) SaveMapping(ctx context.Context, creator, id string, m mapping.Mapping) (*dto.TemplateDto, error) {
	m, err := normalizeMapping(m)

	if err != nil {
		templateLogger.Info("rejected mapping", slog.String("id", id), slog.String("error", err.Error()))
		return nil, err
	}

	t, err := ts.store.SetVariableMapping(ctx, creator, id, m)

	if err != nil {
		if errors.Is(err, database.ErrItemNotFound) {
			return nil, ErrTemplateNotFound
		}
		templateLogger.Error("failed to save mapping", slog.String("id", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save mapping for template id=%s", id)
	}

	templateLogger.Info("mapping saved", slog.String("id", id), slog.Bool("present", m.IsPresent()), slog.Int("entries", m.Len()))

	d := mapper.MapTemplateModelToDto(ctx, *t)
	return &d, nil
}

func (ts *TemplateSvc) load(ctx context.Context, creator, templateId, contactId string) (*model.TemplateItem, *model.ContactItem, error) {
	t, err := ts.getTemplate(ctx, creator, templateId)

	if err != nil {
		return nil, nil, err
	}

	c, err := ts.contacts.GetContactById(ctx, creator, contactId)

	if err != nil {
		templateLogger.Error("failed to get contact", slog.String("contactId", contactId), slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to get contact id=%s", contactId)
	}

	if c == nil {
		return nil, nil, ErrContactNotFound
	}

	return t, c, nil
}

// Prefill renders the template's mapping against one contact.
func (ts *TemplateSvc) Prefill(ctx context.Context, creator, templateId, contactId string) (dto.PrefillDto, error) {
	t, c, err := ts.load(ctx, creator, templateId, contactId)

	if err != nil {
		return dto.PrefillDto{}, err
	}

	fields := c.Fields()

	return dto.PrefillDto{
		TemplateId: t.Id,
		ContactId:  c.Id,
		Params:     mapping.Render(t.VariableMapping, fields),
		Variables:  mapping.Variables(t.VariableMapping, fields),
	}, nil
}

// sendVariables renders the mapping and fills every index up to the highest
// placeholder so the content template never receives a missing parameter.
func sendVariables(t *model.TemplateItem, c *model.ContactItem) map[string]string {
	vars := mapping.Variables(t.VariableMapping, c.Fields())

	for i := 1; i <= placeholder.Count(t.Components); i++ {
		if _, ok := vars[strconv.Itoa(i)]; !ok {
			vars[strconv.Itoa(i)] = mapping.EmptyValue
		}
	}

	return vars
}

// Send delivers the template to the contact over WhatsApp.
func (ts *TemplateSvc) Send(ctx context.Context, creator, templateId, contactId string) error {
	t, c, err := ts.load(ctx, creator, templateId, contactId)

	if err != nil {
		return err
	}

	if t.ContentSid == "" {
		return ErrTemplateNotSendable
	}

	msg, err := sms.NewMsg("+"+c.PhoneNumber, t.ContentSid, sendVariables(t, c))

	if err != nil {
		return err
	}

	if err = ts.sender.SendMessage(msg); err != nil {
		templateLogger.Error("failed to send template", slog.String("templateId", templateId), slog.String("contactId", contactId), slog.String("error", err.Error()))
		return fmt.Errorf("failed to send template id=%s", templateId)
	}

	templateLogger.Info("template sent", slog.String("templateId", templateId), slog.String("contactId", contactId))

	return nil
}
