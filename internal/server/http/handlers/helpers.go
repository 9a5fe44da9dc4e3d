package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/freightdesk/internal/domain/errors"
	"github.com/polkiloo/freightdesk/internal/server/http/dto"
	"github.com/polkiloo/freightdesk/internal/server/http/middleware"
	"github.com/polkiloo/freightdesk/internal/usecase"
)

// CurrentActor extracts the authenticated caller from context.
func CurrentActor(c *gin.Context) usecase.Actor {
	actor, _ := middleware.ActorFrom(c)
	return actor
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, http.StatusBadRequest, fmt.Errorf("%w: bad %s", domainErrors.ErrInvalidInput, name))
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Errorf("%w: %v", domainErrors.ErrInvalidInput, err))
		return false
	}
	return true
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrInvalidAmount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrIllegalTransition),
		errors.Is(err, domainErrors.ErrConflict),
		errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrSaveFailed), errors.Is(err, domainErrors.ErrSendFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	abortWithError(c, statusFor(err), err)
}

// abortWithError hides internal error details from clients; they are kept on the context for the request log.
func abortWithError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	msg := err.Error()
	switch {
	case status == http.StatusBadGateway && errors.Is(err, domainErrors.ErrSendFailed):
		msg = domainErrors.ErrSendFailed.Error()
	case status == http.StatusBadGateway:
		msg = domainErrors.ErrSaveFailed.Error()
	case status >= http.StatusInternalServerError:
		msg = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: msg})
}
