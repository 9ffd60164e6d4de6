package websocket

import "fmt"

// getEmailFromContext reads the email the authorizer put in the request context.
func getEmailFromContext(authorizerCtx interface{}) (string, error) {
	switch v := authorizerCtx.(type) {
	case map[string]interface{}:
		if email, ok := v["email"].(string); ok && email != "" {
			return email, nil
		}
		return "", fmt.Errorf("email not present in context")
	default:
		return "", fmt.Errorf("invalid authorizer context type=%T", authorizerCtx)
	}
}
