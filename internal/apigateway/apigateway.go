// Package apigateway builds the management client that posts to websocket connections.
package apigateway

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/apigatewaymanagementapi"
)

// Endpoint turns the websocket url clients dial into the https callback url of
// the management api. Urls that already use https are returned unchanged.
func Endpoint(wsURL string) string {
	u := strings.TrimRight(strings.TrimSpace(wsURL), "/")
	switch {
	case strings.HasPrefix(u, "wss://"):
		return "https://" + strings.TrimPrefix(u, "wss://")
	case strings.HasPrefix(u, "ws://"):
		return "http://" + strings.TrimPrefix(u, "ws://")
	case u == "" || strings.Contains(u, "://"):
		return u
	}
	return "https://" + u
}

// EndpointFromRequest builds the callback url from the domain and stage of a websocket event.
func EndpointFromRequest(domainName, stage string) string {
	return Endpoint(fmt.Sprintf("%s/%s", domainName, stage))
}

func NewApiGatewayClient(sess *session.Session, domain string) *apigatewaymanagementapi.ApiGatewayManagementApi {

	client := apigatewaymanagementapi.New(sess, &aws.Config{
		Endpoint: aws.String(Endpoint(domain)),
	})

	return client
}
