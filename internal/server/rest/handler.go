package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/gin-gonic/gin"
)

// UserService is what the handlers need from the service layer.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	ListEmails(ctx context.Context) ([]string, error)
}

type Handler struct {
	users  UserService
	logger logging.Logger
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type userView struct {
	Email string `json:"email"`
}

const msgBadRequest = "invalid request body"

func (h *Handler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, messageResponse{Message: msgBadRequest})
		return
	}

	if _, err := h.users.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, messageResponse{Message: common.MessageRegistered})
}

func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, messageResponse{Message: msgBadRequest})
		return
	}

	token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Message: common.MessageLoggedIn, Token: token})
}

func (h *Handler) ListUsers(c *gin.Context) {
	emails, err := h.users.ListEmails(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]userView, 0, len(emails))
	for _, e := range emails {
		out = append(out, userView{Email: e})
	}
	c.JSON(http.StatusOK, out)
}

// respondError maps service errors to status codes. Anything unexpected
// becomes a bare 500 and the detail stays in the log.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, messageResponse{Message: common.MessageEmailTaken})
	case errors.Is(err, common.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	case errors.Is(err, common.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, messageResponse{Message: common.MessageInvalidCredentials})
	case errors.Is(err, common.ErrUnauthenticated):
		c.AbortWithStatus(http.StatusUnauthorized)
	case common.IsForbidden(err):
		c.AbortWithStatus(http.StatusForbidden)
	default:
		h.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
