package dto

// InboundMessageEvent is queued by the WhatsApp webhook for every received message.
type InboundMessageEvent struct {
	CreatedBy   string `json:"createdBy" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Body        string `json:"body"`
	Type        string `json:"type" validate:"required"`
	ProfileName string `json:"profileName"`
	MessageId   string `json:"messageId" validate:"required"`
}

// NewMessageEvent is pushed to websocket clients.
type NewMessageEvent struct {
	ContactId   string `json:"contactId"`
	PhoneNumber string `json:"phoneNumber"`
	SenderName  string `json:"senderName"`
	Preview     string `json:"preview"`
	MessageId   string `json:"messageId"`
	UnreadCount int    `json:"unreadCount"`
	ReceivedAt  string `json:"receivedAt"`
}

// SubjectID is the contact the message belongs to. A nil event has none.
func (e *NewMessageEvent) SubjectID() string {
	if e == nil {
		return ""
	}
	return e.ContactId
}
