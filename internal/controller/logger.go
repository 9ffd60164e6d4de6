package controller

import (
	"log/slog"
	"os"
)

// handlers
var (
	templateHandler = slog.NewTextHandler(os.Stdout, nil).WithAttrs([]slog.Attr{slog.String("name", "templateController")})
	contactHandler  = slog.NewTextHandler(os.Stdout, nil).WithAttrs([]slog.Attr{slog.String("name", "contactController")})
)

// loggers
var (
	templateLogger = slog.New(templateHandler)
	contactLogger  = slog.New(contactHandler)
)
