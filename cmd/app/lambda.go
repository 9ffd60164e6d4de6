//go:build !local
// +build !local

package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/japb1998/wacrm/internal/api"
	"github.com/japb1998/wacrm/pkg/tracing"
)

func initApp() {
	ctx := context.Background()
	r := api.InitRoutes()

	handler, shutdown, err := tracing.Lambda(ctx, api.HandlerFunc(r))
	if err != nil {
		log.Fatal(err)
	}
	defer func(ctx context.Context) {
		if err := shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}(ctx)

	lambda.Start(handler)
}
