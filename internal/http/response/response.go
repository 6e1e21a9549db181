package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrypal/pantrypal-backend/internal/platform/apierr"
	"github.com/pantrypal/pantrypal-backend/internal/platform/errs"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
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

// RespondServiceError maps the service sentinel errors onto HTTP statuses.
// An *apierr.Error anywhere in the chain carries its own status and code.
func RespondServiceError(c *gin.Context, code string, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) && ae.Status != 0 {
		if ae.Code != "" {
			code = ae.Code
		}
		RespondError(c, ae.Status, code, err)
		return
	}
	switch {
	case errors.Is(err, errs.ErrNotFound):
		RespondError(c, http.StatusNotFound, code, err)
	case errors.Is(err, errs.ErrProviderUnavailable):
		RespondError(c, http.StatusBadGateway, code, err)
	default:
		RespondError(c, http.StatusInternalServerError, code, err)
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
