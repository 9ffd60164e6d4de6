package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/aws/aws-lambda-go/events"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("Invalid token")
	ErrUnauthorized = errors.New("Unauthorized")
	regionID        = os.Getenv("AWS_REGION")
	userPoolID      = os.Getenv("USER_POOL")
)

var (
	logHandler = slog.NewTextHandler(os.Stdout, nil).WithAttrs([]slog.Attr{slog.String("name", "authorizer")})
	logger     = slog.New(logHandler)
)

var (
	jwksOnce sync.Once
	jwksErr  error
	// keyFunc resolves the signing key of a token. Loaded from the user pool jwks on first use.
	keyFunc jwt.Keyfunc
)

// loadKeyFunc fetches the JWK Set of the cognito user pool.
//
// See the AWS docs here:
// https://docs.aws.amazon.com/cognito/latest/developerguide/amazon-cognito-user-pools-using-tokens-verifying-a-jwt.html
func loadKeyFunc() (jwt.Keyfunc, error) {
	jwksOnce.Do(func() {
		if keyFunc != nil {
			return
		}
		jwksURL := fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s/.well-known/jwks.json", regionID, userPoolID)

		jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{})
		if err != nil {
			jwksErr = fmt.Errorf("failed to create JWK Set from url=%s error=%w", jwksURL, err)
			return
		}
		keyFunc = jwks.Keyfunc
	})
	return keyFunc, jwksErr
}

// isValid verifies if the JWT token is valid
func isValid(t string) (jwt.MapClaims, error) {
	kf, err := loadKeyFunc()
	if err != nil {
		return nil, err
	}

	// payload contain within the token
	claims := jwt.MapClaims{}

	// Parse the JWT.
	token, err := jwt.ParseWithClaims(t, claims, kf)
	if err != nil {
		return nil, fmt.Errorf("could not parse token error='%w'", err)
	}

	// Check if the token is valid.
	if !token.Valid {
		logger.Info("token not valid")
		return nil, ErrInvalidToken
	}

	if email, _ := claims["email"].(string); email == "" {
		return nil, fmt.Errorf("%w: missing email claim", ErrInvalidToken)
	}

	return claims, nil
}

// tokenFromRequest reads the token from the Auth query parameter browsers use
// when opening a socket, falling back to the Authorization header.
func tokenFromRequest(event events.APIGatewayWebsocketProxyRequest) string {
	if token := event.QueryStringParameters["Auth"]; token != "" {
		return token
	}
	for k, v := range event.Headers {
		if strings.EqualFold(k, "Authorization") {
			return strings.TrimSpace(strings.TrimPrefix(v, "Bearer "))
		}
	}
	return ""
}

func handler(ctx context.Context, event events.APIGatewayWebsocketProxyRequest) (events.APIGatewayCustomAuthorizerResponse, error) {
	token := tokenFromRequest(event)

	if token == "" {
		return events.APIGatewayCustomAuthorizerResponse{}, ErrUnauthorized
	}

	claims, err := isValid(token)

	if err != nil {
		logger.Error("rejected connection", slog.String("error", err.Error()))
		return events.APIGatewayCustomAuthorizerResponse{}, ErrUnauthorized
	}

	return generatePolicy("user", "Allow", "*", claims), nil
}

func generatePolicy(principalId, effect, resource string, claims jwt.MapClaims) events.APIGatewayCustomAuthorizerResponse {
	authResponse := events.APIGatewayCustomAuthorizerResponse{PrincipalID: principalId}
	if effect != "" && resource != "" {
		authResponse.PolicyDocument = events.APIGatewayCustomAuthorizerPolicy{
			Version: "2012-10-17",
			Statement: []events.IAMPolicyStatement{
				{
					Action:   []string{"execute-api:Invoke"},
					Effect:   effect,
					Resource: []string{resource},
				},
			},
		}
	}

	authResponse.Context = map[string]interface{}{
		"email": claims["email"],
	}

	return authResponse
}
