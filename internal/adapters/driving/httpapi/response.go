package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/logger"
)

// APIError is the body of a failed request.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps APIError.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Error codes carried in APIError.Code.
const (
	CodeInvalidInput       = "invalid_input"
	CodeNotFound           = "not_found"
	CodeTooManyRequests    = "too_many_requests"
	CodeBadGateway         = "bad_gateway"
	CodeServiceUnavailable = "service_unavailable"
	CodeInternal           = "internal"
)

// statusFor maps err onto an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch domain.Classify(err) {
	case domain.ClassClient:
		if errors.Is(err, domain.ErrNotFound) {
			return http.StatusNotFound, CodeNotFound
		}
		return http.StatusBadRequest, CodeInvalidInput
	case domain.ClassGateway:
		switch {
		case errors.Is(err, domain.ErrServiceUnavailable):
			return http.StatusServiceUnavailable, CodeServiceUnavailable
		case errors.Is(err, domain.ErrRateLimited):
			return http.StatusTooManyRequests, CodeTooManyRequests
		}
		return http.StatusBadGateway, CodeBadGateway
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// RespondError writes err as an ErrorEnvelope. Client errors echo their
// message; everything else is logged and replaced by the status text.
func RespondError(c *gin.Context, err error) {
	status, code := statusFor(err)
	msg := http.StatusText(status)
	if status < http.StatusInternalServerError && status != http.StatusTooManyRequests {
		msg = err.Error()
	} else {
		logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

// RespondOK writes payload as JSON with status 200.
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
