package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"weather-lookup/apperrors"
)

// HTTPError ошибка с HTTP статусом для единообразного ответа
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromAppError переводит коды apperrors в HTTP статусы
func fromAppError(err error) *HTTPError {
	status := http.StatusInternalServerError
	switch apperrors.CodeOf(err) {
	case apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeUpstreamFailure:
		status = http.StatusBadGateway
	}

	code := apperrors.CodeOf(err)
	if code == "" {
		code = "internal_error"
	}
	return NewHTTPError(status, code, err.Error(), err)
}

func asHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return fromAppError(err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	_ = c.Error(err)
	c.Abort()
}
