package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/go-playground/validator/v10"
	"github.com/japb1998/wacrm/internal/apigateway"
	"github.com/japb1998/wacrm/internal/database"
	"github.com/japb1998/wacrm/internal/service"
	"github.com/japb1998/wacrm/pkg/awssess"
	"github.com/japb1998/wacrm/pkg/tracing"
	"go.opentelemetry.io/otel"
)

var (
	logHandler = slog.NewTextHandler(os.Stdout, nil).WithAttrs([]slog.Attr{slog.String("name", "message-handler")})
	logger     = slog.New(logHandler)
)

var tracer = otel.Tracer("message-handler")

var h *messageHandler

func main() {
	ctx := context.Background()
	handler, shutdown, err := tracing.Lambda(ctx, h.handle)
	if err != nil {
		logger.Error("error creating tracer provider", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func(ctx context.Context) {
		if err := shutdown(ctx); err != nil {
			logger.Error("error shutting down tracer provider", slog.String("error", err.Error()))
		}
	}(ctx)

	lambda.Start(handler)
}

func init() {
	sess := awssess.MustGetSession()

	connections := service.NewConnectionSvc(
		database.NewConnectionRepo(sess),
		apigateway.NewApiGatewayClient(sess, os.Getenv("WS_HTTPS_URL")),
	)

	msgSvc := service.NewMessageSvc(database.NewContactRepo(sess), connections)

	h = newMessageHandler(msgSvc, validator.New(validator.WithRequiredStructEnabled()))
}
