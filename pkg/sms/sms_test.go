package sms_test

import (
	"errors"
	"testing"

	"github.com/japb1998/wacrm/pkg/sms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeCreator struct {
	params *openapi.CreateMessageParams
	err    error
}

func (f *fakeCreator) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &openapi.ApiV2010Message{Sid: &sid}, nil
}

func TestNewMsg(t *testing.T) {
	msg, err := sms.NewMsg("+17865550100", "HX123", map[string]string{"1": "Ana", "2": "-"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"1":"Ana","2":"-"}`, string(msg.TemplateVariables))
}

func TestNewMsgWithoutVariables(t *testing.T) {
	msg, err := sms.NewMsg("+17865550100", "HX123", nil)

	require.NoError(t, err)
	assert.Nil(t, msg.TemplateVariables)
}

func TestNewMsgRejectsBadPhone(t *testing.T) {
	_, err := sms.NewMsg("7865550100", "HX123", nil)

	assert.ErrorIs(t, err, sms.ErrInvalidMsg)
}

func TestNewMsgRequiresContent(t *testing.T) {
	_, err := sms.NewMsg("+17865550100", "", nil)

	assert.ErrorIs(t, err, sms.ErrInvalidMsg)
}

func TestSendMessage(t *testing.T) {
	creator := &fakeCreator{}
	svc := &sms.MsgSvc{Client: creator, MessagingServiceId: "MG1"}
	msg, err := sms.NewMsg("+17865550100", "HX123", map[string]string{"1": "Ana"})
	require.NoError(t, err)

	require.NoError(t, svc.SendMessage(msg))

	require.NotNil(t, creator.params)
	assert.Equal(t, "whatsapp:+17865550100", *creator.params.To)
	assert.Equal(t, "MG1", *creator.params.From)
	assert.Equal(t, "HX123", *creator.params.ContentSid)
	assert.JSONEq(t, `{"1":"Ana"}`, *creator.params.ContentVariables)
}

func TestSendMessageError(t *testing.T) {
	creator := &fakeCreator{err: errors.New("boom")}
	svc := &sms.MsgSvc{Client: creator, MessagingServiceId: "MG1"}

	err := svc.SendMessage(&sms.Msg{To: "+17865550100", TemplateId: "HX123"})

	assert.ErrorContains(t, err, "boom")
}
