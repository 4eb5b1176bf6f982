package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/careops/clinic-api/pkg/errors"
)

// ErrorResponse is the single error shape the API returns: a message,
// nothing else. The status code carries the error class.
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse is returned by deletes, which have no entity to echo.
type MessageResponse struct {
	Message string `json:"message"`
}

// Error serializes err using the application error taxonomy. Anything
// that is not an AppError is treated as an internal failure and its
// detail is kept out of the response.
func Error(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Code == apperrors.ErrInternal {
			log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		}
		c.JSON(appErr.StatusCode(), ErrorResponse{Message: appErr.Message})
		return
	}

	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
}

// BindError reports a malformed or invalid request body.
func BindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
}
