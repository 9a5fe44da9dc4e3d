package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/freightdesk/internal/domain/errors"
	"github.com/polkiloo/freightdesk/internal/domain/model"
	"github.com/polkiloo/freightdesk/internal/server/http/dto"
	"github.com/polkiloo/freightdesk/internal/server/http/middleware"
)

// AuthHandler processes registration and login.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/user/register. The role defaults to shipper.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.AuthRequest
	if !bindJSON(c, &req) {
		return
	}

	role := model.RoleShipper
	if req.Role != "" {
		parsed, ok := model.ParseRole(req.Role)
		if !ok {
			abortWithError(c, http.StatusBadRequest, fmt.Errorf("%w: unknown role %q", domainErrors.ErrInvalidInput, req.Role))
			return
		}
		role = parsed
	}

	usr, token, err := h.facade.Register(c.Request.Context(), req.Login, req.Password, role)
	if err != nil {
		// empty login or password is a malformed request here, not a failed login
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			abortWithError(c, http.StatusBadRequest, err)
			return
		}
		respondError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.AuthResponse{Token: token, User: toUserResponse(usr)})
}

// Login handles POST /api/user/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if !bindJSON(c, &req) {
		return
	}

	usr, token, err := h.facade.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.AuthResponse{Token: token, User: toUserResponse(usr)})
}
