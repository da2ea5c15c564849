package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/middleware"
	"github.com/temboplus/afloat-go/models"
)

// ContactCommander defines the write-side operations used by ContactHandler.
type ContactCommander interface {
	CreateContact(profileID string, req api.ContactRequest) (models.Contact, error)
	UpdateContact(profileID, id string, req api.ContactRequest) (models.Contact, error)
	DeleteContact(profileID, id string) error
}

// ContactQuerier defines the read-side operations used by ContactHandler.
type ContactQuerier interface {
	GetContact(profileID, id string) (models.Contact, error)
	ListContacts(profileID string, contactType models.ContactType) []models.Contact
}

type ContactHandler struct {
	commands ContactCommander
	queries  ContactQuerier
}

func NewContactHandler(commands ContactCommander, queries ContactQuerier) *ContactHandler {
	return &ContactHandler{commands: commands, queries: queries}
}

func (h *ContactHandler) ListContacts(c *gin.Context) {
	contactType := models.ContactType(c.Query("type"))
	switch contactType {
	case "", models.ContactTypeBank, models.ContactTypeMobile:
	default:
		middleware.RespondWithError(c, http.StatusBadRequest, "type must be one of Bank, Mobile")
		return
	}
	c.JSON(http.StatusOK, h.queries.ListContacts(profileID(c), contactType))
}

func (h *ContactHandler) GetContact(c *gin.Context) {
	contact, err := h.queries.GetContact(profileID(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Contact", "Failed to get contact")
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req api.ContactRequest
	if !bindJSON(c, &req) {
		return
	}
	contact, err := h.commands.CreateContact(profileID(c), req)
	if err != nil {
		respondError(c, err, "Contact", "Failed to create contact")
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) UpdateContact(c *gin.Context) {
	var req api.ContactRequest
	if !bindJSON(c, &req) {
		return
	}
	contact, err := h.commands.UpdateContact(profileID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Contact", "Failed to update contact")
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) DeleteContact(c *gin.Context) {
	if err := h.commands.DeleteContact(profileID(c), c.Param("id")); err != nil {
		respondError(c, err, "Contact", "Failed to delete contact")
		return
	}
	c.Status(http.StatusNoContent)
}
