//go:build local
// +build local

package main

import (
	"context"
	"log"
	"os"

	"github.com/japb1998/wacrm/internal/api"
	"github.com/japb1998/wacrm/pkg/tracing"
	"github.com/joho/godotenv"
)

func initApp() {
	ctx := context.Background()
	shutdown, err := tracing.Local(ctx, "wacrm-api")
	if err != nil {
		log.Fatal(err)
	}
	defer shutdown(ctx)

	r := api.InitRoutes()

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func init() {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading env vars: %s", err)
	}
}
