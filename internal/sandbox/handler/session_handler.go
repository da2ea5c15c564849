package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/cqrs"
	"github.com/temboplus/afloat-go/models"
)

// SessionQuerier defines the login and session lookups used by SessionHandler.
type SessionQuerier interface {
	Login(cqrs.LoginCommand) (api.LoginResponse, error)
	AccessList(identity string) ([]string, error)
	Profile(profileID string) (models.Profile, error)
	Identity(identity string) (api.IdentityResponse, error)
}

// PasswordChanger defines the credential update used by SessionHandler.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, identity string, cmd cqrs.ResetPasswordCommand) error
}

type SessionHandler struct {
	queries   SessionQuerier
	passwords PasswordChanger
}

func NewSessionHandler(queries SessionQuerier, passwords PasswordChanger) *SessionHandler {
	return &SessionHandler{queries: queries, passwords: passwords}
}

func (h *SessionHandler) Login(c *gin.Context) {
	var req cqrs.LoginCommand
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.queries.Login(req)
	if err != nil {
		respondError(c, err, "Account", "Failed to log in")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SessionHandler) AccessList(c *gin.Context) {
	access, err := h.queries.AccessList(identity(c))
	if err != nil {
		respondError(c, err, "Account", "Failed to get access list")
		return
	}
	c.JSON(http.StatusOK, access)
}

func (h *SessionHandler) Profile(c *gin.Context) {
	profile, err := h.queries.Profile(profileID(c))
	if err != nil {
		respondError(c, err, "Profile", "Failed to get profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *SessionHandler) Identity(c *gin.Context) {
	resp, err := h.queries.Identity(identity(c))
	if err != nil {
		respondError(c, err, "Account", "Failed to get identity")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SessionHandler) ChangePassword(c *gin.Context) {
	var req cqrs.ResetPasswordCommand
	if !bindJSON(c, &req) {
		return
	}
	if err := h.passwords.ChangePassword(c.Request.Context(), identity(c), req); err != nil {
		respondError(c, err, "Account", "Failed to change password")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Password changed"})
}
