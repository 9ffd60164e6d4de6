package mapper

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/japb1998/wacrm/internal/dto"
	"github.com/japb1998/wacrm/internal/model"
)

var (
	ErrInvalidPhone = errors.New("phone must be 10-15 digits")
	digitsRe        = regexp.MustCompile(`[0-9]+`)
)

// ParsePhoneNumber strips everything but digits, the form WhatsApp ids use.
func ParsePhoneNumber(n string) (string, error) {
	p := strings.Join(digitsRe.FindAllString(n, -1), "")

	if len(p) < 10 || len(p) > 15 {
		return "", ErrInvalidPhone
	}

	return p, nil
}

func MapContactModelToDto(ctx context.Context, m model.ContactItem) dto.ContactDto {
	d := dto.ContactDto{
		Id:          m.Id,
		CreatedBy:   m.CreatedBy,
		PhoneNumber: m.PhoneNumber,
		Name:        m.Name,
		Tags:        m.Tags,
		CustomData:  m.CustomData,
		UnreadCount: m.UnreadCount,
		Source:      m.Source,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   m.UpdatedAt.Format(time.RFC3339),
	}
	if m.LastMessageAt != nil {
		s := m.LastMessageAt.Format(time.RFC3339)
		d.LastMessageAt = &s
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if d.CustomData == nil {
		d.CustomData = map[string]string{}
	}
	return d
}

func MapCreateContactDtoToModel(ctx context.Context, creator, source string, d dto.CreateContactDto) (model.ContactItem, error) {
	phone, err := ParsePhoneNumber(d.PhoneNumber)

	if err != nil {
		return model.ContactItem{}, err
	}

	return *model.NewContactItem(creator, phone, strings.TrimSpace(d.Name), source, d.Tags, d.CustomData), nil
}

func MapSeedContactToModel(ctx context.Context, creator string, d dto.SeedContactDto) (model.ContactItem, error) {
	return MapCreateContactDtoToModel(ctx, creator, "import_json", dto.CreateContactDto{
		PhoneNumber: d.PhoneNumber,
		Name:        d.Name,
		Tags:        d.Tags,
		CustomData:  d.CustomData,
	})
}
