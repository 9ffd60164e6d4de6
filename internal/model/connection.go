package model

// Connection is an open websocket connection and the last view its client reported.
type Connection struct {
	Email           string `json:"email"`
	ConnectionId    string `json:"connectionId"`
	ViewPath        string `json:"viewPath,omitempty"`
	ActiveContactId string `json:"activeContactId,omitempty"`
}
