package service

import (
	"os"

	"log/slog"
)

// Template Logger
var (
	templateHandler = slog.NewTextHandler(os.Stdout, nil).WithAttrs([]slog.Attr{slog.String("name", "Template Service")})
	templateLogger  = slog.New(templateHandler)
)

// Contact Logger
var (
	contactHandler = slog.NewTextHandler(os.Stdout, nil).WithAttrs([]slog.Attr{slog.String("name", "Contact Service")})
	contactLogger  = slog.New(contactHandler)
)

// Message Logger
var (
	messageHandler = slog.NewTextHandler(os.Stdout, nil).WithAttrs([]slog.Attr{slog.String("name", "Message Service")})
	messageLogger  = slog.New(messageHandler)
)

// Connection Logger
var (
	connectionHandler = slog.NewTextHandler(os.Stdout, nil).WithAttrs([]slog.Attr{slog.String("name", "Connection Service")})
	connectionLogger  = slog.New(connectionHandler)
)
