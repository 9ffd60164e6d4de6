package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/japb1998/wacrm/internal/dto"
	"github.com/japb1998/wacrm/internal/ui"
)

// API Gateway drops idle sockets after 10 minutes.
const defaultPingInterval = 9 * time.Minute

type clientFrame struct {
	Action          string `json:"action"`
	Path            string `json:"path,omitempty"`
	ActiveContactId string `json:"activeContactId,omitempty"`
}

type pushFrame struct {
	Action string              `json:"action"`
	Notify bool                `json:"notify"`
	Data   dto.NewMessageEvent `json:"data"`
}

// watcher prints new_message pushes for the view it reports to the server.
type watcher struct {
	wsURL         string
	token         string
	view          string
	activeContact string
	out           io.Writer
	ping          time.Duration
	dialer        *websocket.Dialer
}

func (w *watcher) endpoint() (string, error) {
	u, err := url.Parse(w.wsURL)
	if err != nil {
		return "", fmt.Errorf("invalid wsUrl error=%w", err)
	}
	q := u.Query()
	q.Set("Auth", w.token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (w *watcher) run(ctx context.Context) error {
	endpoint, err := w.endpoint()
	if err != nil {
		return err
	}

	dialer := w.dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	conn, _, err := dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to connect error=%w", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(clientFrame{Action: "navigate", Path: w.view, ActiveContactId: w.activeContact}); err != nil {
		return err
	}
	fmt.Fprintf(w.out, "Watching as %s\n", ui.CyanText(w.view))

	frames := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		for {
			_, b, err := conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case frames <- b:
			case <-ctx.Done():
				return
			}
		}
	}()

	interval := w.ping
	if interval <= 0 {
		interval = defaultPingInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return nil
		case <-ticker.C:
			if err := conn.WriteJSON(clientFrame{Action: "health"}); err != nil {
				return err
			}
		case err := <-readErr:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		case b := <-frames:
			w.print(b)
		}
	}
}

func (w *watcher) print(b []byte) {
	var f pushFrame
	if err := json.Unmarshal(b, &f); err != nil {
		fmt.Fprintln(w.out, ui.RedText("unreadable event: "+err.Error()))
		return
	}
	if f.Action != "new_message" {
		return
	}
	fmt.Fprintln(w.out, ui.EventLine(f.Data, f.Notify))
}

var errNoWsURL = errors.New("wsUrl is not configured, run 'wacrm config set --ws-url <url>'")
