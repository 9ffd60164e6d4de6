package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/japb1998/wacrm/internal/database"
	"github.com/japb1998/wacrm/internal/dto"
	"github.com/japb1998/wacrm/internal/mapper"
	"github.com/japb1998/wacrm/internal/model"
)

const previewLength = 80

type Broadcaster interface {
	BroadcastNewMessage(ctx context.Context, email string, event dto.NewMessageEvent) (int, error)
}

// MessageSvc turns inbound whatsapp messages into contact updates and websocket pushes.
type MessageSvc struct {
	contacts    ContactRepository
	broadcaster Broadcaster
	now         func() time.Time
}

func NewMessageSvc(contacts ContactRepository, broadcaster Broadcaster) *MessageSvc {
	return &MessageSvc{
		contacts:    contacts,
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

// preview shortens the message body for the toast. Media messages have no body.
func preview(ev dto.InboundMessageEvent) string {
	if ev.Type != "" && ev.Type != "text" {
		return "[" + ev.Type + "]"
	}
	body := strings.TrimSpace(ev.Body)
	if utf8.RuneCountInString(body) <= previewLength {
		return body
	}
	r := []rune(body)
	return string(r[:previewLength-3]) + "..."
}

// HandleInbound records the message on its contact, creating the contact the
// first time a number writes in, and broadcasts a new_message event.
func (m *MessageSvc) HandleInbound(ctx context.Context, ev dto.InboundMessageEvent) (dto.NewMessageEvent, error) {
	phone, err := mapper.ParsePhoneNumber(ev.PhoneNumber)

	if err != nil {
		return dto.NewMessageEvent{}, err
	}

	contact, err := m.contacts.GetContactByPhone(ctx, ev.CreatedBy, phone)

	if err != nil {
		messageLogger.Error("failed to look up contact", slog.String("error", err.Error()))
		return dto.NewMessageEvent{}, fmt.Errorf("failed to look up contact for inbound message id=%s", ev.MessageId)
	}

	if contact == nil {
		item := model.NewContactItem(ev.CreatedBy, phone, strings.TrimSpace(ev.ProfileName), "whatsapp", nil, nil)
		created, err := m.contacts.CreateContact(ctx, *item)

		if err != nil {
			messageLogger.Error("failed to create contact", slog.String("error", err.Error()))
			return dto.NewMessageEvent{}, fmt.Errorf("failed to create contact for inbound message id=%s", ev.MessageId)
		}
		messageLogger.Info("contact created from inbound message", slog.String("contactId", created.Id))
		contact = &created
	}

	receivedAt := m.now().UTC()
	updated, err := m.contacts.RecordInbound(ctx, ev.CreatedBy, contact.Id, ev.MessageId, receivedAt)

	if errors.Is(err, database.ErrAlreadyRecorded) && updated != nil {
		// redelivery: the counter already moved, only the push is retried.
		messageLogger.Info("inbound message redelivered", slog.String("messageId", ev.MessageId))
		err = nil
	}

	if err != nil {
		messageLogger.Error("failed to record inbound message", slog.String("contactId", contact.Id), slog.String("error", err.Error()))
		return dto.NewMessageEvent{}, fmt.Errorf("failed to record inbound message id=%s", ev.MessageId)
	}

	sender := updated.Name
	if sender == "" {
		sender = updated.PhoneNumber
	}

	event := dto.NewMessageEvent{
		ContactId:   updated.Id,
		PhoneNumber: updated.PhoneNumber,
		SenderName:  sender,
		Preview:     preview(ev),
		MessageId:   ev.MessageId,
		UnreadCount: updated.UnreadCount,
		ReceivedAt:  receivedAt.Format(time.RFC3339),
	}

	n, err := m.broadcaster.BroadcastNewMessage(ctx, ev.CreatedBy, event)

	if err != nil {
		return event, err
	}

	messageLogger.Info("new message broadcast", slog.String("messageId", ev.MessageId), slog.Int("connections", n))

	return event, nil
}
