package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/lumilearn/lumilearn-backend/internal/pkg/errors"
)

type APIError struct {
	Message string                 `json:"message"`
	Code    string                 `json:"code,omitempty"`
	Fields  []pkgerrors.FieldError `json:"fields,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondTaxonomy maps the core error taxonomy onto HTTP statuses so
// callers can render feedback without string-parsing.
func RespondTaxonomy(c *gin.Context, err error) {
	switch {
	case pkgerrors.IsNotFound(err):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case pkgerrors.IsActivationLimit(err):
		RespondError(c, http.StatusConflict, "activation_limit", err)
	case pkgerrors.IsValidation(err):
		ve, _ := pkgerrors.AsValidation(err)
		payload := APIError{Message: err.Error(), Code: "validation_failed"}
		if ve != nil {
			payload.Fields = ve.Fields
		}
		c.JSON(http.StatusUnprocessableEntity, ErrorEnvelope{Error: payload})
	case pkgerrors.IsStorage(err):
		RespondError(c, http.StatusBadGateway, "storage_failure", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
