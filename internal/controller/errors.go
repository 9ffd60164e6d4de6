package controller

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/japb1998/wacrm/internal/mapping"
)

// Error Message for Validation Errors
type ErrMsg struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func getErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "lte":
		return "Should be less than " + fe.Param()
	case "gte":
		return "Should be greater than " + fe.Param()
	case "min":
		return "should have min value of " + fe.Param()
	case "max":
		return "should have max value of " + fe.Param()
	case "oneof":
		return "should be one of " + fe.Param()
	case "uuid":
		return "should be a uuid"
	case "startswith":
		return "should start with " + fe.Param()
	case "noSpaces":
		return "should not contain spaces"
	case "fieldref":
		return "should be name, phone_number or custom_data.<key>"
	case "e164":
		return "should meet e164 format"
	case "rfc3339":
		return "field should be date" + fe.Param()
	}

	return "Unknown error"
}

// abortWithBindError answers a failed bind: validation errors list every field,
// malformed payloads are a bad request, anything else is ours.
func abortWithBindError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	logger.Error("validation error", slog.String("error", err.Error()))

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make([]ErrMsg, len(ve))

		for i, fe := range ve {
			out[i] = ErrMsg{
				Message: getErrorMsg(fe),
				Field:   fe.Field(),
			}
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"errors": out,
		})
		return
	}

	var se *json.SyntaxError
	var te *json.UnmarshalTypeError
	if errors.Is(err, mapping.ErrInvalidMapping) || errors.Is(err, io.EOF) || errors.As(err, &se) || errors.As(err, &te) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": fallback,
	})
}
