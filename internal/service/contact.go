package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/japb1998/wacrm/internal/database"
	"github.com/japb1998/wacrm/internal/dto"
	"github.com/japb1998/wacrm/internal/mapper"
	"github.com/japb1998/wacrm/internal/mapping"
	"github.com/japb1998/wacrm/internal/model"
)

type ContactRepository interface {
	CreateContact(ctx context.Context, contact model.ContactItem) (model.ContactItem, error)
	GetContactById(ctx context.Context, creator, id string) (*model.ContactItem, error)
	GetContactByPhone(ctx context.Context, creator, phone string) (*model.ContactItem, error)
	GetContacts(ctx context.Context, creator string, p *database.PaginationOps) ([]model.ContactItem, error)
	ContactCount(ctx context.Context, creator string) (int64, error)
	CustomFieldKeys(ctx context.Context, creator string) ([]string, error)
	UpdateContact(ctx context.Context, creator, id string, patch database.PatchContactItem) (*model.ContactItem, error)
	RecordInbound(ctx context.Context, creator, id, messageId string, at time.Time) (*model.ContactItem, error)
	DeleteContact(ctx context.Context, creator, id string) error
}

type ContactService struct {
	Store ContactRepository
}

func NewContactSvc(s ContactRepository) *ContactService {
	return &ContactService{
		Store: s,
	}
}

// CreateContact stores a contact created by hand. Phone numbers are unique per creator.
func (c *ContactService) CreateContact(ctx context.Context, createdBy string, contact dto.CreateContactDto) (dto.ContactDto, error) {
	return c.create(ctx, createdBy, "manual", contact)
}

// ImportContact stores one row of a contact export.
func (c *ContactService) ImportContact(ctx context.Context, createdBy string, row dto.SeedContactDto) (dto.ContactDto, error) {
	return c.create(ctx, createdBy, "import_json", dto.CreateContactDto{
		PhoneNumber: row.PhoneNumber,
		Name:        row.Name,
		Tags:        row.Tags,
		CustomData:  row.CustomData,
	})
}

func (c *ContactService) create(ctx context.Context, createdBy, source string, contact dto.CreateContactDto) (dto.ContactDto, error) {
	item, err := mapper.MapCreateContactDtoToModel(ctx, createdBy, source, contact)

	if err != nil {
		return dto.ContactDto{}, err
	}

	existing, err := c.Store.GetContactByPhone(ctx, createdBy, item.PhoneNumber)

	if err != nil {
		contactLogger.Error("failed to check phone number", slog.String("error", err.Error()))
		return dto.ContactDto{}, fmt.Errorf("error creating contact")
	}

	if existing != nil {
		return dto.ContactDto{}, ErrContactExists
	}

	if _, err = c.Store.CreateContact(ctx, item); err != nil {
		contactLogger.Error("failed to create contact", slog.String("error", err.Error()))
		return dto.ContactDto{}, fmt.Errorf("error creating contact")
	}

	contactLogger.Info("contact created", slog.String("id", item.Id), slog.String("source", source))

	return mapper.MapContactModelToDto(ctx, item), nil
}

func (c *ContactService) GetContactById(ctx context.Context, createdBy, id string) (*dto.ContactDto, error) {
	item, err := c.Store.GetContactById(ctx, createdBy, id)

	if err != nil {
		contactLogger.Error("failed to get contact", slog.String("id", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get contact id=%s", id)
	}

	if item == nil {
		return nil, ErrContactNotFound
	}

	d := mapper.MapContactModelToDto(ctx, *item)
	return &d, nil
}

// GetPaginatedContacts pages through contacts. Zero indexed.
func (c *ContactService) GetPaginatedContacts(ctx context.Context, createdBy string, ops *dto.PaginationOps) (dto.PaginatedResponse[dto.ContactDto], error) {
	paginationOps := database.PaginationOps{
		Limit: *ops.Limit,
		Skip:  *ops.Limit * ops.Page,
	}
	errChan := make(chan error, 2)
	itemCountChan := make(chan int64, 1)
	itemsListChan := make(chan []dto.ContactDto, 1)
	var itemCount int64
	var contactList []dto.ContactDto

	// total count
	go func() {
		if count, err := c.Store.ContactCount(ctx, createdBy); err != nil {
			errChan <- err
		} else {
			itemCountChan <- count
		}
	}()

	go func() {
		items, err := c.Store.GetContacts(ctx, createdBy, &paginationOps)
		if err != nil {
			errChan <- err
			return
		}
		dtos := make([]dto.ContactDto, 0, len(items))
		for _, i := range items {
			dtos = append(dtos, mapper.MapContactModelToDto(ctx, i))
		}
		itemsListChan <- dtos
	}()

	for i := 0; i < 2; i++ {
		select {
		case count := <-itemCountChan:
			itemCount = count
		case list := <-itemsListChan:
			contactList = list
		case err := <-errChan:
			contactLogger.Error("failed to list contacts", slog.String("error", err.Error()))
			return dto.PaginatedResponse[dto.ContactDto]{}, fmt.Errorf("failed to retrieve contacts for creator=%s", createdBy)
		}
	}

	return dto.PaginatedResponse[dto.ContactDto]{
		Data:  contactList,
		Limit: *ops.Limit,
		Page:  ops.Page,
		Total: itemCount,
	}, nil
}

func (c *ContactService) UpdateContact(ctx context.Context, createdBy, id string, patch dto.PatchContactDto) (*dto.ContactDto, error) {
	item, err := c.Store.UpdateContact(ctx, createdBy, id, database.PatchContactItem{
		Name:       patch.Name,
		Tags:       patch.Tags,
		CustomData: patch.CustomData,
	})

	if err != nil {
		if errors.Is(err, database.ErrItemNotFound) {
			return nil, ErrContactNotFound
		}
		contactLogger.Error("failed to update contact", slog.String("id", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update contact id=%s", id)
	}

	d := mapper.MapContactModelToDto(ctx, *item)
	return &d, nil
}

func (c *ContactService) DeleteContact(ctx context.Context, createdBy, id string) error {
	if err := c.Store.DeleteContact(ctx, createdBy, id); err != nil {
		contactLogger.Error("failed to delete contact", slog.String("id", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete contact id=%s", id)
	}

	return nil
}

// FieldCatalog lists the fields a template variable can be bound to. The
// custom part is derived from the creator's contacts on every call.
func (c *ContactService) FieldCatalog(ctx context.Context, createdBy string) (dto.FieldCatalog, error) {
	standard := make([]string, len(mapping.StandardFields))
	copy(standard, mapping.StandardFields)

	keys, err := c.Store.CustomFieldKeys(ctx, createdBy)

	if err != nil {
		contactLogger.Error("failed to collect custom fields", slog.String("error", err.Error()))
		return dto.FieldCatalog{Standard: standard, Custom: []string{}}, fmt.Errorf("failed to collect custom fields")
	}

	return dto.FieldCatalog{
		Standard: standard,
		Custom:   keys,
	}, nil
}
