package sms

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	twilio "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

var (
	ErrInvalidMsg = errors.New("invalid whatsapp message")
	validate      = validator.New(validator.WithRequiredStructEnabled())
	smsLogger     = slog.New(slog.NewTextHandler(os.Stdout, nil).WithAttrs([]slog.Attr{slog.String("name", "sms")}))
)

// MessageCreator is the part of the twilio api the service needs.
type MessageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

type MsgSvc struct {
	Client             MessageCreator
	MessagingServiceId string `validate:"required"` //twilio service id
}

// Msg. TemplateVariables is the json containing the variables to be replaced in the content template.
type Msg struct {
	TemplateId        string `validate:"required"` // twilio content sid
	TemplateVariables []byte // json
	To                string `validate:"e164"`
}

// NewMsg builds a message for a content template. Variables are keyed by
// placeholder index ("1", "2", ...).
func NewMsg(to, contentSid string, variables map[string]string) (*Msg, error) {
	msg := &Msg{
		To:         to,
		TemplateId: contentSid,
	}

	if len(variables) > 0 {
		b, err := json.Marshal(variables)
		if err != nil {
			return nil, fmt.Errorf("%w: variables error=%w", ErrInvalidMsg, err)
		}
		msg.TemplateVariables = b
	}

	if err := validate.Struct(msg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMsg, err)
	}

	return msg, nil
}

func (svc *MsgSvc) SendMessage(msg *Msg) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(fmt.Sprintf("whatsapp:%s", msg.To))
	params.SetFrom(svc.MessagingServiceId)
	params.SetContentSid(msg.TemplateId)

	if msg.TemplateVariables != nil {
		params.SetContentVariables(string(msg.TemplateVariables))
	}

	out, err := svc.Client.CreateMessage(params)
	if err != nil {
		smsLogger.Error("failed to send whatsapp message", slog.String("error", err.Error()))
		return fmt.Errorf("failed to send Whatsapp message! error: %w", err)
	}

	if out != nil && out.Sid != nil {
		smsLogger.Info("whatsapp message queued", slog.String("sid", *out.Sid))
	}
	return nil
}

// MustInitMsgSvc returns a MsgSvc or panics if error. An empty accountSid
// falls back to the TWILIO_ACCOUNT_SID / TWILIO_AUTH_TOKEN environment.
func MustInitMsgSvc(serviceId, accountSid, authToken string) *MsgSvc {
	var client *twilio.RestClient
	if accountSid == "" {
		client = twilio.NewRestClient()
	} else {
		client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		})
	}

	svc := &MsgSvc{
		Client:             client.Api,
		MessagingServiceId: serviceId,
	}

	err := validate.Struct(svc)

	if err != nil {
		for _, ve := range err.(validator.ValidationErrors) {
			smsLogger.Error("validation failed", slog.String("field", ve.Namespace()), slog.String("tag", ve.Tag()), slog.String("param", ve.Param()))
		}
		panic("failed to setup messaging service")
	}

	return svc
}
