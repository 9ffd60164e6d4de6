package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-playground/validator/v10"
	"github.com/japb1998/wacrm/internal/dto"
	"github.com/japb1998/wacrm/internal/service"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type inboundHandler interface {
	HandleInbound(ctx context.Context, ev dto.InboundMessageEvent) (dto.NewMessageEvent, error)
}

type messageHandler struct {
	svc      inboundHandler
	validate *validator.Validate
}

func newMessageHandler(svc inboundHandler, v *validator.Validate) *messageHandler {
	return &messageHandler{svc: svc, validate: v}
}

// errDrop marks records that can never succeed. They are logged and not retried.
var errDrop = errors.New("dropped record")

// handle processes a queue batch. Failed records are reported back to SQS so
// only they are redelivered.
func (h *messageHandler) handle(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	var res events.SQSEventResponse

	for _, record := range event.Records {
		c, span := tracer.Start(ctx, "inbound-message", trace.WithAttributes(attribute.String("sqs.messageId", record.MessageId)))

		err := h.process(c, record)

		switch {
		case err == nil:
		case errors.Is(err, errDrop):
			span.SetStatus(codes.Error, err.Error())
		default:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			res.BatchItemFailures = append(res.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
		span.End()
	}

	return res, nil
}

func (h *messageHandler) process(ctx context.Context, record events.SQSMessage) error {
	var ev dto.InboundMessageEvent

	if err := json.Unmarshal([]byte(record.Body), &ev); err != nil {
		logger.Error("invalid message body", slog.String("messageId", record.MessageId), slog.String("error", err.Error()))
		return errDrop
	}

	if err := h.validate.Struct(ev); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				logger.Info("validation failed", slog.String("field", fe.Namespace()), slog.String("tag", fe.Tag()), slog.String("param", fe.Param()))
			}
		}
		return errDrop
	}

	sent, err := h.svc.HandleInbound(ctx, ev)

	if err != nil {
		if errors.Is(err, service.ErrInvalidPhone) {
			logger.Info("invalid sender phone", slog.String("messageId", ev.MessageId))
			return errDrop
		}
		logger.Error("failed to handle inbound message", slog.String("messageId", ev.MessageId), slog.String("error", err.Error()))
		return err
	}

	logger.Info("inbound message handled", slog.String("messageId", ev.MessageId), slog.String("contactId", sent.ContactId))
	return nil
}
