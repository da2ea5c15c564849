package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/temboplus/afloat-go/cqrs"
	"github.com/temboplus/afloat-go/models"
)

// AdminQuerier defines the read-side operations used by AdminHandler.
type AdminQuerier interface {
	ListRoles() []models.Role
	GetRole(id string) (models.Role, error)
	ListUsers(profileID string) []models.ManagedUser
	GetUser(profileID, id string) (models.ManagedUser, error)
}

// UserCommander defines the write-side operations used by AdminHandler.
type UserCommander interface {
	CreateUser(profileID string, cmd cqrs.CreateManagedUserCommand) (models.ManagedUser, error)
}

type AdminHandler struct {
	queries  AdminQuerier
	commands UserCommander
}

func NewAdminHandler(queries AdminQuerier, commands UserCommander) *AdminHandler {
	return &AdminHandler{queries: queries, commands: commands}
}

func (h *AdminHandler) ListRoles(c *gin.Context) {
	c.JSON(http.StatusOK, h.queries.ListRoles())
}

func (h *AdminHandler) GetRole(c *gin.Context) {
	role, err := h.queries.GetRole(c.Param("id"))
	if err != nil {
		respondError(c, err, "Role", "Failed to get role")
		return
	}
	c.JSON(http.StatusOK, role)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, h.queries.ListUsers(profileID(c)))
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.queries.GetUser(profileID(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "User", "Failed to get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req cqrs.CreateManagedUserCommand
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.commands.CreateUser(profileID(c), req)
	if err != nil {
		respondError(c, err, "User", "Failed to create user")
		return
	}
	c.JSON(http.StatusCreated, user)
}
