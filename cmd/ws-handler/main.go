package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/japb1998/wacrm/internal/apigateway"
	"github.com/japb1998/wacrm/internal/database"
	"github.com/japb1998/wacrm/internal/service"
	"github.com/japb1998/wacrm/internal/websocket"
	"github.com/japb1998/wacrm/pkg/awssess"
)

var wsController *websocket.WebSocketController

// main handles every route of the websocket api: $connect, $disconnect, navigate and health.
func main() {

	lambda.Start(wsController.HandleRequest)
}

func init() {

	sess := awssess.MustGetSession()

	store := database.NewConnectionRepo(sess)

	apigw := apigateway.NewApiGatewayClient(sess, os.Getenv("WS_HTTPS_URL"))

	service := service.NewConnectionSvc(store, apigw)

	wsController = websocket.NewWSController(service)
}
