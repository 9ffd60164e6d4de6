package websocket

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/japb1998/wacrm/internal/notify"
	"github.com/japb1998/wacrm/internal/service"
)

var (
	wsHandler = slog.NewTextHandler(os.Stdout, nil).WithAttrs([]slog.Attr{slog.String("name", "WebSocket Controller")})
	wsLogger  = slog.New(wsHandler)
)

// route keys configured on the websocket api.
const (
	ConnectRoute    = "$connect"
	DisconnectRoute = "$disconnect"
	NavigateRoute   = service.NavigateAction
	PingRoute       = service.PingAction
)

// ConnectionSvc
type ConnectionSvc interface {
	Ping(ctx context.Context, conn *service.Connection) error
	Connect(ctx context.Context, conn *service.Connection) error
	Disconnect(ctx context.Context, conn *service.Connection) (err error)
	Navigate(ctx context.Context, conn *service.Connection, nav notify.Navigation) error
}

// WebSocketController
type WebSocketController struct {
	svc ConnectionSvc
}

// NewWSController returns a pointer to a ws controller
func NewWSController(svc ConnectionSvc) *WebSocketController {
	return &WebSocketController{
		svc,
	}
}

func response(status int) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      status,
		Headers:         nil,
		IsBase64Encoded: false,
	}
}

// HandleRequest routes every websocket event by its route key.
func (c *WebSocketController) HandleRequest(ctx context.Context, event events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch event.RequestContext.RouteKey {
	case ConnectRoute, DisconnectRoute:
		return c.HandleConnection(ctx, event)
	case NavigateRoute:
		return c.HandleNavigate(ctx, event)
	case PingRoute:
		return c.HandlePing(ctx, event)
	}

	wsLogger.Info("unknown route", slog.String("route", event.RequestContext.RouteKey), slog.String("body", event.Body))
	return response(http.StatusNotFound), nil
}

// HandleConnection -  handles connection routes for AWS apigateway websocket API
func (c *WebSocketController) HandleConnection(ctx context.Context, event events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	from, err := getEmailFromContext(event.RequestContext.Authorizer)

	if err != nil {
		wsLogger.Error("unauthorized connection", slog.String("error", err.Error()))
		return response(http.StatusUnauthorized), nil
	}

	conn := &service.Connection{
		Email:        from,
		ConnectionId: event.RequestContext.ConnectionID,
	}

	switch event.RequestContext.RouteKey {
	case ConnectRoute:
		if err := c.svc.Connect(ctx, conn); err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		wsLogger.Info("Successfully connected!", slog.String("from", from), slog.String("cId", conn.ConnectionId))
	case DisconnectRoute:
		if err := c.svc.Disconnect(ctx, conn); err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		wsLogger.Info("Successfully disconnected!", slog.String("from", from), slog.String("cId", conn.ConnectionId))
	default:
		return response(http.StatusNotFound), nil
	}

	return response(http.StatusOK), nil
}

// HandleNavigate stores the view the client reports so new message pushes can
// decide whether to raise a toast.
func (c *WebSocketController) HandleNavigate(ctx context.Context, event events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	from, err := getEmailFromContext(event.RequestContext.Authorizer)

	if err != nil {
		wsLogger.Error("unauthorized navigate", slog.String("error", err.Error()))
		return response(http.StatusUnauthorized), nil
	}

	nav, err := navigation(event.Body)

	if err != nil {
		wsLogger.Info("rejected navigate", slog.String("error", err.Error()))
		return response(http.StatusBadRequest), nil
	}

	conn := &service.Connection{
		Email:        from,
		ConnectionId: event.RequestContext.ConnectionID,
	}

	if err := c.svc.Navigate(ctx, conn, nav); err != nil {
		if errors.Is(err, service.ErrConnectionNotFound) {
			return response(http.StatusGone), nil
		}
		return events.APIGatewayProxyResponse{}, err
	}

	return response(http.StatusOK), nil
}

// HandlePing
func (c *WebSocketController) HandlePing(ctx context.Context, event events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	cId := event.RequestContext.ConnectionID

	conn := &service.Connection{
		ConnectionId: cId,
	}
	conn.Email, _ = getEmailFromContext(event.RequestContext.Authorizer)

	err := c.svc.Ping(ctx, conn)

	if err != nil {
		wsLogger.Error("failed to ping", slog.String("cId", cId), slog.String("error", err.Error()))
		return events.APIGatewayProxyResponse{}, errors.New("failed to ping WS server!")
	}
	return response(http.StatusOK), nil
}
