package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/apigatewaymanagementapi"
	"github.com/japb1998/wacrm/internal/database"
	"github.com/japb1998/wacrm/internal/dto"
	"github.com/japb1998/wacrm/internal/model"
	"github.com/japb1998/wacrm/internal/notify"
)

// ws-actions
const (
	NewMessageAction   = "new_message" // an inbound whatsapp message arrived.
	NavigateAction     = "navigate"    // client reports the view it is on.
	PingResponseAction = "health-response"
	PingAction         = "health" // ping action to keep the connection alive for longer than 10mins.
)

var ErrConnectionNotFound = errors.New("connection not found")

type ConnectionSvc struct {
	store           ConnectionRepo
	broadCastClient BroadcastClient
}

type ConnectionRepo interface {
	GetConnectionIds(ctx context.Context, email string) ([]model.Connection, error)
	DeleteConnection(ctx context.Context, conn model.Connection) error
	SaveConnection(ctx context.Context, conn model.Connection) error
	UpdateNavigation(ctx context.Context, conn model.Connection) error
}

type BroadcastClient interface {
	PostToConnectionWithContext(ctx context.Context, input *apigatewaymanagementapi.PostToConnectionInput, opts ...request.Option) (*apigatewaymanagementapi.PostToConnectionOutput, error)
}

// webSocketMsg
type webSocketMsg struct {
	Action string `json:"action"`
}

// NewMessageMsg is the push a connection receives for an inbound message.
// Notify is false when the connection is already looking at the contact.
type NewMessageMsg struct {
	webSocketMsg
	Notify bool                `json:"notify"`
	Data   dto.NewMessageEvent `json:"data"`
}

func NewNewMessageMsg(event dto.NewMessageEvent, nav notify.Navigation) NewMessageMsg {
	return NewMessageMsg{
		webSocketMsg: webSocketMsg{Action: NewMessageAction},
		Notify:       notify.ShouldNotify(&event, nav),
		Data:         event,
	}
}

type Connection struct {
	Email        string `json:"email"`
	ConnectionId string `json:"connectionId"`
}

func NewConnectionSvc(store ConnectionRepo, bClient BroadcastClient) *ConnectionSvc {
	return &ConnectionSvc{
		store:           store,
		broadCastClient: bClient,
	}
}

func isGone(err error) bool {
	var aerr awserr.Error
	return errors.As(err, &aerr) && aerr.Code() == apigatewaymanagementapi.ErrCodeGoneException
}

// BroadcastNewMessage pushes the event to every connection of the user. Each
// connection decides its own notify flag from the view it last reported.
// Connections API Gateway reports as gone are removed. It returns how many
// connections received the message.
func (c *ConnectionSvc) BroadcastNewMessage(ctx context.Context, email string, event dto.NewMessageEvent) (int, error) {
	var wg sync.WaitGroup
	var delivered atomic.Int32

	conns, err := c.store.GetConnectionIds(ctx, email)

	if err != nil {
		connectionLogger.Error(err.Error())
		return 0, fmt.Errorf("error getting all active connections for email='%s'", email)
	}

	for _, conn := range conns {
		nav := notify.Navigation{Path: conn.ViewPath, ActiveSubject: conn.ActiveContactId}
		d, err := json.Marshal(NewNewMessageMsg(event, nav))

		if err != nil {
			connectionLogger.Error(err.Error())
			return 0, fmt.Errorf("invalid new message event")
		}

		wg.Add(1)

		go func(conn model.Connection, d []byte) {
			defer wg.Done()

			if _, err := c.broadCastClient.PostToConnectionWithContext(ctx, &apigatewaymanagementapi.PostToConnectionInput{
				ConnectionId: &conn.ConnectionId,
				Data:         d,
			}); err != nil {
				if isGone(err) {
					connectionLogger.Info("pruning stale connection", slog.String("connectionID", conn.ConnectionId))
					if err := c.store.DeleteConnection(ctx, conn); err != nil {
						connectionLogger.Error("failed to prune connection", slog.String("connectionID", conn.ConnectionId), slog.String("error", err.Error()))
					}
					return
				}
				connectionLogger.Error("failed to send message,", slog.String("connectionID", conn.ConnectionId), slog.String("email", conn.Email), slog.String("error", err.Error()))
				return
			}
			delivered.Add(1)

		}(conn, d)
	}
	wg.Wait()
	return int(delivered.Load()), nil
}

// Connect
func (c *ConnectionSvc) Connect(ctx context.Context, conn *Connection) error {
	connection := model.Connection{
		ConnectionId: conn.ConnectionId,
		Email:        conn.Email,
	}
	err := c.store.SaveConnection(ctx, connection)

	if err != nil {
		connectionLogger.Error(err.Error())
		return fmt.Errorf("failed to connect connectionId='%s', client='%s'", conn.ConnectionId, conn.Email)
	}

	connectionLogger.Info("Successfully connected!.", slog.String("connectionId", conn.ConnectionId), slog.String("client", conn.Email))
	return nil
}

// Disconnect
func (c *ConnectionSvc) Disconnect(ctx context.Context, conn *Connection) (err error) {
	connection := model.Connection{
		Email:        conn.Email,
		ConnectionId: conn.ConnectionId,
	}

	err = c.store.DeleteConnection(ctx, connection)

	return err
}

// Navigate stores the view the connection's client is on.
func (c *ConnectionSvc) Navigate(ctx context.Context, conn *Connection, nav notify.Navigation) error {
	err := c.store.UpdateNavigation(ctx, model.Connection{
		Email:           conn.Email,
		ConnectionId:    conn.ConnectionId,
		ViewPath:        nav.Path,
		ActiveContactId: nav.ActiveSubject,
	})

	if err != nil {
		if errors.Is(err, database.ErrItemNotFound) {
			return ErrConnectionNotFound
		}
		connectionLogger.Error("failed to update navigation", slog.String("connectionId", conn.ConnectionId), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update navigation connectionId='%s'", conn.ConnectionId)
	}

	connectionLogger.Info("navigation updated", slog.String("connectionId", conn.ConnectionId), slog.String("path", nav.Path))
	return nil
}

// Ping - response to health action
func (c *ConnectionSvc) Ping(ctx context.Context, conn *Connection) error {

	d, err := json.Marshal(webSocketMsg{
		Action: PingResponseAction,
	})

	if err != nil {
		connectionLogger.Error(err.Error())
		return err
	}
	if _, err := c.broadCastClient.PostToConnectionWithContext(ctx, &apigatewaymanagementapi.PostToConnectionInput{
		ConnectionId: &conn.ConnectionId,
		Data:         d,
	}); err != nil {
		connectionLogger.Error("failed to send message,", slog.String("connectionID", conn.ConnectionId), slog.String("email", conn.Email))
	}
	return nil
}
