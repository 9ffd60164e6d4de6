package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// getUserEmailFromToken reads the email claim. The signature is verified by the
// API Gateway authorizer before the request reaches us.
func getUserEmailFromToken(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	tokenSlice := strings.Split(tokenString, " ")
	if len(tokenSlice) < 2 {
		return "", fmt.Errorf("Bearer token has incorrect format")
	}

	if _, _, err := new(jwt.Parser).ParseUnverified(tokenSlice[1], claims); err != nil {
		return "", fmt.Errorf("malformed token error=%w", err)
	}

	if email, ok := claims["email"]; !ok {

		return "", errors.New("error while getting user email from token")

	} else if emailString, ok := email.(string); !ok || emailString == "" {

		return "", errors.New("email is not a string")
	} else {
		return emailString, nil
	}
}

func currentUserMiddleWare() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			c.Abort()
			return
		}
		email, err := getUserEmailFromToken(token)

		if err != nil {
			routerLogger.Info("rejected request", slog.String("error", err.Error()))
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			c.Abort()
			return
		}
		c.Set("email", email)

		c.Next()
	}
}
