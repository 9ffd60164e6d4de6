package service

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/japb1998/wacrm/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContactRejectsDuplicatePhone(t *testing.T) {
	svc := NewContactSvc(newContactStore(anaContact()))

	_, err := svc.CreateContact(context.Background(), owner, dto.CreateContactDto{PhoneNumber: "+1 786 555 0100"})

	assert.ErrorIs(t, err, ErrContactExists)
}

func TestCreateContact(t *testing.T) {
	store := newContactStore()
	svc := NewContactSvc(store)

	got, err := svc.CreateContact(context.Background(), owner, dto.CreateContactDto{
		PhoneNumber: "+1 786 555 0100",
		Name:        " Ana ",
		CustomData:  map[string]string{"city": "Miami"},
	})

	require.NoError(t, err)
	assert.Equal(t, "17865550100", got.PhoneNumber)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "manual", got.Source)
	assert.Equal(t, []string{}, got.Tags)
	assert.Equal(t, 1, store.created)
}

func TestImportContact(t *testing.T) {
	svc := NewContactSvc(newContactStore())

	got, err := svc.ImportContact(context.Background(), owner, dto.SeedContactDto{PhoneNumber: "17865550123", CustomData: map[string]string{"plan": "gold"}})

	require.NoError(t, err)
	assert.Equal(t, "import_json", got.Source)
	assert.Equal(t, "gold", got.CustomData["plan"])
}

func TestGetContactNotFound(t *testing.T) {
	svc := NewContactSvc(newContactStore())

	_, err := svc.GetContactById(context.Background(), owner, "missing")

	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestUpdateContactNotFound(t *testing.T) {
	svc := NewContactSvc(newContactStore())
	name := "Bea"

	_, err := svc.UpdateContact(context.Background(), owner, "missing", dto.PatchContactDto{Name: &name})

	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestGetPaginatedContacts(t *testing.T) {
	svc := NewContactSvc(newContactStore(anaContact()))

	res, err := svc.GetPaginatedContacts(context.Background(), owner, &dto.PaginationOps{Limit: aws.Int(10)})

	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
	assert.Len(t, res.Data, 1)
	assert.Equal(t, 10, res.Limit)
}

func TestFieldCatalog(t *testing.T) {
	store := newContactStore()
	store.keys = []string{"city", "plan"}
	svc := NewContactSvc(store)

	got, err := svc.FieldCatalog(context.Background(), owner)

	require.NoError(t, err)
	assert.Equal(t, []string{"name", "phone_number"}, got.Standard)
	assert.Equal(t, []string{"city", "plan"}, got.Custom)
}

func TestFieldCatalogDegradesOnError(t *testing.T) {
	store := newContactStore()
	store.err = errStore
	svc := NewContactSvc(store)

	got, err := svc.FieldCatalog(context.Background(), owner)

	assert.Error(t, err)
	assert.Equal(t, []string{"name", "phone_number"}, got.Standard)
	assert.Empty(t, got.Custom)
}
