package websocket

import (
	"context"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/japb1998/wacrm/internal/notify"
	"github.com/japb1998/wacrm/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConnections struct {
	connected    []service.Connection
	disconnected []service.Connection
	pinged       []service.Connection
	navigations  []notify.Navigation
	navigateErr  error
}

func (f *fakeConnections) Ping(ctx context.Context, conn *service.Connection) error {
	f.pinged = append(f.pinged, *conn)
	return nil
}

func (f *fakeConnections) Connect(ctx context.Context, conn *service.Connection) error {
	f.connected = append(f.connected, *conn)
	return nil
}

func (f *fakeConnections) Disconnect(ctx context.Context, conn *service.Connection) error {
	f.disconnected = append(f.disconnected, *conn)
	return nil
}

func (f *fakeConnections) Navigate(ctx context.Context, conn *service.Connection, nav notify.Navigation) error {
	if f.navigateErr != nil {
		return f.navigateErr
	}
	f.navigations = append(f.navigations, nav)
	return nil
}

func wsEvent(route, body string, authorizer interface{}) events.APIGatewayWebsocketProxyRequest {
	return events.APIGatewayWebsocketProxyRequest{
		Body: body,
		RequestContext: events.APIGatewayWebsocketProxyRequestContext{
			RouteKey:     route,
			ConnectionID: "conn-1",
			Authorizer:   authorizer,
		},
	}
}

var authorized = map[string]interface{}{"email": "owner@example.com"}

func TestConnectAndDisconnect(t *testing.T) {
	svc := &fakeConnections{}
	c := NewWSController(svc)

	res, err := c.HandleRequest(context.Background(), wsEvent(ConnectRoute, "", authorized))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, err = c.HandleRequest(context.Background(), wsEvent(DisconnectRoute, "", authorized))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	require.Len(t, svc.connected, 1)
	assert.Equal(t, service.Connection{Email: "owner@example.com", ConnectionId: "conn-1"}, svc.connected[0])
	assert.Len(t, svc.disconnected, 1)
}

func TestConnectWithoutEmail(t *testing.T) {
	svc := &fakeConnections{}
	c := NewWSController(svc)

	res, err := c.HandleRequest(context.Background(), wsEvent(ConnectRoute, "", map[string]interface{}{}))

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Empty(t, svc.connected)
}

func TestNavigateReadsContactFromPath(t *testing.T) {
	svc := &fakeConnections{}
	c := NewWSController(svc)

	res, err := c.HandleRequest(context.Background(), wsEvent(NavigateRoute, `{"action":"navigate","path":"/contacts?id=42"}`, authorized))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, []notify.Navigation{{Path: "/contacts?id=42", ActiveSubject: "42"}}, svc.navigations)
}

func TestNavigateExplicitContact(t *testing.T) {
	svc := &fakeConnections{}
	c := NewWSController(svc)

	_, err := c.HandleRequest(context.Background(), wsEvent(NavigateRoute, `{"action":"navigate","path":"/contacts","activeContactId":"7"}`, authorized))

	require.NoError(t, err)
	assert.Equal(t, "7", svc.navigations[0].ActiveSubject)
}

func TestNavigateMalformed(t *testing.T) {
	svc := &fakeConnections{}
	c := NewWSController(svc)

	res, err := c.HandleRequest(context.Background(), wsEvent(NavigateRoute, `{"path":`, authorized))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Empty(t, svc.navigations)
}

func TestNavigateUnknownConnection(t *testing.T) {
	svc := &fakeConnections{navigateErr: service.ErrConnectionNotFound}
	c := NewWSController(svc)

	res, err := c.HandleRequest(context.Background(), wsEvent(NavigateRoute, `{"action":"navigate","path":"/dashboard"}`, authorized))

	require.NoError(t, err)
	assert.Equal(t, http.StatusGone, res.StatusCode)
}

func TestPingAndUnknownRoute(t *testing.T) {
	svc := &fakeConnections{}
	c := NewWSController(svc)

	res, err := c.HandleRequest(context.Background(), wsEvent(PingRoute, `{"action":"health"}`, authorized))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, svc.pinged, 1)

	res, err = c.HandleRequest(context.Background(), wsEvent("$default", `{}`, authorized))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
