package main

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/japb1998/wacrm/internal/dto"
	"github.com/japb1998/wacrm/internal/service"
)

type contactImporter interface {
	ImportContact(ctx context.Context, createdBy string, row dto.SeedContactDto) (dto.ContactDto, error)
}

type summary struct {
	Created int
	Skipped int
	Failed  int
}

type result int

const (
	created result = iota
	skipped
	failed
)

// importContacts writes rows with a fixed number of workers. Rows whose phone
// number already exists are skipped. Cancelling ctx stops handing out rows.
func importContacts(ctx context.Context, svc contactImporter, validate *validator.Validate, creator string, rows []dto.SeedContactDto, workers int) summary {
	if workers < 1 {
		workers = 1
	}

	queue := make(chan int)
	results := make(chan result, len(rows))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				results <- importRow(ctx, svc, validate, creator, i, rows[i])
			}
		}()
	}

	go func() {
		defer close(queue)
		for i := range rows {
			select {
			case queue <- i:
			case <-ctx.Done():
				logger.Info("import cancelled", slog.Int("remaining", len(rows)-i))
				return
			}
		}
	}()

	wg.Wait()
	close(results)

	var s summary
	for r := range results {
		switch r {
		case created:
			s.Created++
		case skipped:
			s.Skipped++
		default:
			s.Failed++
		}
	}
	return s
}

func importRow(ctx context.Context, svc contactImporter, validate *validator.Validate, creator string, i int, row dto.SeedContactDto) result {
	if err := validate.Struct(row); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				logger.Info("invalid row", slog.Int("row", i), slog.String("field", fe.Namespace()), slog.String("tag", fe.Tag()))
			}
		}
		return failed
	}

	c, err := svc.ImportContact(ctx, creator, row)

	switch {
	case err == nil:
		logger.Debug("contact created", slog.Int("row", i), slog.String("id", c.Id))
		return created
	case errors.Is(err, service.ErrContactExists):
		logger.Debug("contact already exists", slog.Int("row", i), slog.String("phone", row.PhoneNumber))
		return skipped
	}

	logger.Error("failed to import contact", slog.Int("row", i), slog.String("error", err.Error()))
	return failed
}
