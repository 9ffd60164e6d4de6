package service

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/japb1998/wacrm/internal/dto"
	"github.com/japb1998/wacrm/internal/mapping"
	"github.com/japb1998/wacrm/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderTemplate() *model.TemplateItem {
	t := model.NewTemplateItem(owner, "order_ready", "en_US", "UTILITY", []model.Component{
		{Type: "HEADER", Text: "Order {{9}}"},
		{Type: "BODY", Text: "Hi {{1}}, your order {{3}} ships to {{2}}. Ref {{1}}"},
	})
	t.ContentSid = "HX123"
	return t
}

func anaContact() model.ContactItem {
	c := model.NewContactItem(owner, "17865550100", "Ana", "manual", nil, map[string]string{"city": "Miami"})
	return *c
}

func TestGetVariables(t *testing.T) {
	tpl := orderTemplate()
	svc := NewTemplateSvc(newTemplateStore(tpl), newContactStore(), &fakeSender{})

	got, err := svc.GetVariables(context.Background(), owner, tpl.Id)

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, got.Variables)
}

func TestGetVariablesNotFound(t *testing.T) {
	svc := NewTemplateSvc(newTemplateStore(), newContactStore(), &fakeSender{})

	_, err := svc.GetVariables(context.Background(), owner, "missing")

	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestSaveMappingRoundTrip(t *testing.T) {
	tpl := orderTemplate()
	svc := NewTemplateSvc(newTemplateStore(tpl), newContactStore(), &fakeSender{})
	want := mapping.Present(map[string]string{"1": "name", "2": "custom_data.city", "3": "custom_data.order"})

	saved, err := svc.SaveMapping(context.Background(), owner, tpl.Id, want)
	require.NoError(t, err)
	assert.True(t, saved.VariableMapping.Equal(want))

	reloaded, err := svc.GetTemplate(context.Background(), owner, tpl.Id)
	require.NoError(t, err)
	assert.True(t, reloaded.VariableMapping.Equal(want))
}

func TestSaveMappingEmptyIsAbsent(t *testing.T) {
	tpl := orderTemplate()
	tpl.VariableMapping = mapping.Present(map[string]string{"1": "name"})
	svc := NewTemplateSvc(newTemplateStore(tpl), newContactStore(), &fakeSender{})

	saved, err := svc.SaveMapping(context.Background(), owner, tpl.Id, mapping.Present(map[string]string{}))

	require.NoError(t, err)
	assert.False(t, saved.VariableMapping.IsPresent())
}

func TestSaveMappingRejectsInvalid(t *testing.T) {
	tpl := orderTemplate()
	svc := NewTemplateSvc(newTemplateStore(tpl), newContactStore(), &fakeSender{})

	for _, m := range []map[string]string{
		{"1": "email"},
		{"x": "name"},
		{"1": "custom_data."},
	} {
		_, err := svc.SaveMapping(context.Background(), owner, tpl.Id, mapping.Present(m))
		assert.ErrorIs(t, err, ErrInvalidMapping, m)
	}
}

func TestSaveMappingKeepsUnusedKeys(t *testing.T) {
	tpl := orderTemplate()
	svc := NewTemplateSvc(newTemplateStore(tpl), newContactStore(), &fakeSender{})

	saved, err := svc.SaveMapping(context.Background(), owner, tpl.Id, mapping.Present(map[string]string{"1": "name", "7": "phone_number"}))

	require.NoError(t, err)
	got, ok := saved.VariableMapping.Get("7")
	assert.True(t, ok)
	assert.Equal(t, "phone_number", got)
}

func TestSaveMappingTemplateNotFound(t *testing.T) {
	svc := NewTemplateSvc(newTemplateStore(), newContactStore(), &fakeSender{})

	_, err := svc.SaveMapping(context.Background(), owner, "missing", mapping.Absent())

	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestCreateTemplateNormalizesMapping(t *testing.T) {
	store := newTemplateStore()
	svc := NewTemplateSvc(store, newContactStore(), &fakeSender{})

	created, err := svc.CreateTemplate(context.Background(), owner, dto.CreateTemplateDto{
		Name:            "welcome",
		Language:        "en_US",
		Category:        "MARKETING",
		Components:      []dto.ComponentDto{{Type: "BODY", Text: "Hello {{1}}"}},
		VariableMapping: mapping.Present(map[string]string{}),
	})

	require.NoError(t, err)
	assert.False(t, created.VariableMapping.IsPresent())
	assert.Equal(t, "PENDING", created.Status)
	assert.Len(t, store.items, 1)
}

func TestPrefill(t *testing.T) {
	tpl := orderTemplate()
	tpl.VariableMapping = mapping.Present(map[string]string{"2": "custom_data.city", "1": "name", "3": "custom_data.order"})
	contact := anaContact()
	svc := NewTemplateSvc(newTemplateStore(tpl), newContactStore(contact), &fakeSender{})

	got, err := svc.Prefill(context.Background(), owner, tpl.Id, contact.Id)

	require.NoError(t, err)
	assert.Equal(t, []mapping.Param{
		{Type: "text", Text: "Ana"},
		{Type: "text", Text: "Miami"},
		{Type: "text", Text: "-"},
	}, got.Params)
	assert.Equal(t, map[string]string{"1": "Ana", "2": "Miami", "3": "-"}, got.Variables)
}

func TestPrefillContactNotFound(t *testing.T) {
	tpl := orderTemplate()
	svc := NewTemplateSvc(newTemplateStore(tpl), newContactStore(), &fakeSender{})

	_, err := svc.Prefill(context.Background(), owner, tpl.Id, "missing")

	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestSendPadsUnmappedVariables(t *testing.T) {
	tpl := orderTemplate()
	tpl.VariableMapping = mapping.Present(map[string]string{"1": "name"})
	contact := anaContact()
	sender := &fakeSender{}
	svc := NewTemplateSvc(newTemplateStore(tpl), newContactStore(contact), sender)

	require.NoError(t, svc.Send(context.Background(), owner, tpl.Id, contact.Id))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "+17865550100", sender.sent[0].To)
	assert.Equal(t, "HX123", sender.sent[0].TemplateId)
	assert.JSONEq(t, `{"1":"Ana","2":"-","3":"-"}`, string(sender.sent[0].TemplateVariables))
}

func TestSendWithoutContentSid(t *testing.T) {
	tpl := orderTemplate()
	tpl.ContentSid = ""
	contact := anaContact()
	svc := NewTemplateSvc(newTemplateStore(tpl), newContactStore(contact), &fakeSender{})

	err := svc.Send(context.Background(), owner, tpl.Id, contact.Id)

	assert.ErrorIs(t, err, ErrTemplateNotSendable)
}

func TestGetPaginatedTemplates(t *testing.T) {
	a, b, c := orderTemplate(), orderTemplate(), orderTemplate()
	a.Name, b.Name, c.Name = "a", "b", "c"
	svc := NewTemplateSvc(newTemplateStore(a, b, c), newContactStore(), &fakeSender{})

	res, err := svc.GetPaginatedTemplates(context.Background(), owner, &dto.PaginationOps{Page: 1, Limit: aws.Int(2)})

	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "c", res.Data[0].Name)
}

func TestGetPaginatedTemplatesStoreError(t *testing.T) {
	store := newTemplateStore()
	store.err = errStore
	svc := NewTemplateSvc(store, newContactStore(), &fakeSender{})

	_, err := svc.GetPaginatedTemplates(context.Background(), owner, &dto.PaginationOps{Limit: aws.Int(10)})

	assert.Error(t, err)
}
