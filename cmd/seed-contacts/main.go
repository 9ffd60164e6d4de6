package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/japb1998/wacrm/internal/database"
	"github.com/japb1998/wacrm/internal/dto"
	"github.com/japb1998/wacrm/internal/service"
	"github.com/japb1998/wacrm/pkg/awssess"
	"github.com/joho/godotenv"
)

var logHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelDebug,
}).WithAttrs([]slog.Attr{slog.String("app", "seed-contacts")})
var logger = slog.New(logHandler)

func main() {
	var f, creator string
	var workers int
	flag.StringVar(&f, "file", "", "[required] json file with the contacts to import")
	flag.StringVar(&creator, "creator", "", "[required] email of the account that owns the contacts")
	flag.IntVar(&workers, "workers", 4, "concurrent writes")
	flag.Parse()

	if f == "" || creator == "" {
		flag.PrintDefaults()
		os.Exit(2)
	}

	if os.Getenv("STAGE") == "local" {
		if err := godotenv.Load(".env"); err != nil {
			log.Fatalf("Error loading env vars: %s", err)
		}
	}

	d, err := os.Open(f)
	if err != nil {
		log.Fatalf("failed to open file error='%s'", err.Error())
	}
	defer d.Close()

	var rows []dto.SeedContactDto

	if err := json.NewDecoder(d).Decode(&rows); err != nil {
		log.Fatalf("failed unmarshall error='%s'", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess := awssess.MustGetSession()
	svc := service.NewContactSvc(database.NewContactRepo(sess))

	s := importContacts(ctx, svc, validator.New(validator.WithRequiredStructEnabled()), creator, rows, workers)

	fmt.Printf("created=%d skipped=%d failed=%d\n", s.Created, s.Skipped, s.Failed)
	if s.Failed > 0 || ctx.Err() != nil {
		os.Exit(1)
	}
}
