package controller

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/japb1998/wacrm/internal/database"
	"github.com/japb1998/wacrm/internal/dto"
	"github.com/japb1998/wacrm/internal/mapping"
	"github.com/japb1998/wacrm/internal/service"
	"github.com/japb1998/wacrm/pkg/credentials"
	"github.com/japb1998/wacrm/pkg/sms"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type TemplateService interface {
	CreateTemplate(ctx context.Context, creator string, template dto.CreateTemplateDto) (*dto.TemplateDto, error)
	GetPaginatedTemplates(ctx context.Context, creator string, ops *dto.PaginationOps) (dto.PaginatedResponse[dto.TemplateListDto], error)
	GetTemplate(ctx context.Context, creator, id string) (*dto.TemplateDto, error)
	DeleteTemplate(ctx context.Context, creator, id string) error
	GetVariables(ctx context.Context, creator, id string) (dto.VariablesDto, error)
	SaveMapping(ctx context.Context, creator, id string, m mapping.Mapping) (*dto.TemplateDto, error)
	Prefill(ctx context.Context, creator, templateId, contactId string) (dto.PrefillDto, error)
	Send(ctx context.Context, creator, templateId, contactId string) error
}

type ContactService interface {
	CreateContact(ctx context.Context, createdBy string, contact dto.CreateContactDto) (dto.ContactDto, error)
	GetContactById(ctx context.Context, createdBy, id string) (*dto.ContactDto, error)
	GetPaginatedContacts(ctx context.Context, createdBy string, ops *dto.PaginationOps) (dto.PaginatedResponse[dto.ContactDto], error)
	UpdateContact(ctx context.Context, createdBy, id string, patch dto.PatchContactDto) (*dto.ContactDto, error)
	DeleteContact(ctx context.Context, createdBy, id string) error
	FieldCatalog(ctx context.Context, createdBy string) (dto.FieldCatalog, error)
}

var (
	templateSvc TemplateService
	contactSvc  ContactService
	tracer      trace.Tracer
)

// twilioSecret is the secrets manager payload holding the twilio account.
type twilioSecret struct {
	AccountSid string `json:"accountSid"`
	AuthToken  string `json:"authToken"`
}

func init() {
	// initialize tracer
	tracer = otel.Tracer("github.com/japb1998/wacrm/internal/controller")
}

// Setup wires the controllers to the dynamo backed services.
func Setup(sess *session.Session) {
	var secret twilioSecret

	if secretId := os.Getenv("TWILIO_SECRET_ID"); secretId != "" {
		if err := credentials.NewCredentialsManager(sess).GetJSONSecret(secretId, &secret); err != nil {
			panic("failed to load twilio credentials: " + err.Error())
		}
	}

	msgSvc := sms.MustInitMsgSvc(os.Getenv("TWILIO_SERVICE_ID"), secret.AccountSid, secret.AuthToken)

	contactStore := database.NewContactRepo(sess)
	templateStore := database.NewTemplateRepository(sess)

	Use(service.NewTemplateSvc(templateStore, contactStore, msgSvc), service.NewContactSvc(contactStore))

	templateLogger.Info("Controllers Initialized", slog.String("stage", os.Getenv("STAGE")))
}

// Use replaces the services the controllers call.
func Use(templates TemplateService, contacts ContactService) {
	templateSvc = templates
	contactSvc = contacts
}
