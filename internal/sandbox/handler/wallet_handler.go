package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/temboplus/afloat-go/cqrs"
	"github.com/temboplus/afloat-go/middleware"
	"github.com/temboplus/afloat-go/models"
	"github.com/temboplus/afloat-go/schema"
)

// WalletQuerier defines the read-side operations used by WalletHandler.
type WalletQuerier interface {
	GetWallet(profileID string) (models.Wallet, error)
	GetBalance(profileID string) (models.WalletBalance, error)
	GetStatement(profileID string, from, to time.Time) ([]models.StatementEntry, error)
}

type WalletHandler struct {
	queries WalletQuerier
}

func NewWalletHandler(queries WalletQuerier) *WalletHandler {
	return &WalletHandler{queries: queries}
}

func (h *WalletHandler) GetWallet(c *gin.Context) {
	wallet, err := h.queries.GetWallet(profileID(c))
	if err != nil {
		respondError(c, err, "Wallet", "Failed to get wallet")
		return
	}
	c.JSON(http.StatusOK, wallet)
}

func (h *WalletHandler) GetBalance(c *gin.Context) {
	balance, err := h.queries.GetBalance(profileID(c))
	if err != nil {
		respondError(c, err, "Wallet", "Failed to get balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}

func (h *WalletHandler) GetStatement(c *gin.Context) {
	var q cqrs.StatementQuery
	var fieldErrors []schema.FieldError
	bounds := []struct {
		key string
		dst *time.Time
	}{{"startDate", &q.From}, {"endDate", &q.To}}
	for _, b := range bounds {
		key, dst := b.key, b.dst
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			fieldErrors = append(fieldErrors, schema.FieldError{Field: key, Message: key + " must be an RFC3339 timestamp", Type: "datetime"})
			continue
		}
		*dst = t
	}
	if len(fieldErrors) > 0 {
		middleware.RespondWithValidationError(c, fieldErrors)
		return
	}
	if err := q.Validate(); err != nil {
		middleware.RespondWithAPIError(c, err)
		return
	}

	entries, err := h.queries.GetStatement(profileID(c), q.From, q.To)
	if err != nil {
		respondError(c, err, "Wallet", "Failed to get statement")
		return
	}
	c.JSON(http.StatusOK, entries)
}
