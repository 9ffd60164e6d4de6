package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/japb1998/wacrm/internal/notify"
)

// Request is a client frame. Action picks the route on API Gateway.
type Request struct {
	Action          string `json:"action"`
	Path            string `json:"path,omitempty"`
	ActiveContactId string `json:"activeContactId,omitempty"`
}

// navigation parses a navigate frame. An empty path means the client left every view.
func navigation(body string) (notify.Navigation, error) {
	var req Request

	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return notify.Navigation{}, fmt.Errorf("invalid navigate message error=%w", err)
	}

	return notify.NavigationFromPath(req.Path, req.ActiveContactId), nil
}
