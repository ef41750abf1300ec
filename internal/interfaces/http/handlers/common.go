// Package handlers adapts the analysis application service to gin.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/AstroAspect-Intelligence/pkg/errors"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps application errors to HTTP status codes. Server-side
// failures are masked behind the code's default message.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	code := errors.GetCode(err)
	if code == errors.CodeUnknown || code == errors.CodeOK {
		code = errors.ErrCodeInternal
	}
	status := errors.HTTPStatusForCode(code)

	msg := errors.DefaultMessageForCode(code)
	var ae *errors.AppError
	if status < http.StatusInternalServerError && errors.As(err, &ae) {
		msg = ae.Message
		if ae.Detail != "" {
			msg += ": " + ae.Detail
		}
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Code: code.String(), Message: msg})
}

// bindError classifies a request decoding failure.
func bindError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errors.Newf(errors.ErrCodeBatchTooLarge, "request body exceeds %d bytes", tooLarge.Limit)
	}
	return errors.Wrap(err, errors.CodeInvalidParam, "malformed request body")
}

//Personal.AI order the ending
