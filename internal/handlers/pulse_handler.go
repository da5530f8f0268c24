package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finvue/internal/errors"
	"finvue/internal/models"
	"finvue/internal/services"
)

// PulseHandler handles recurring pulse requests.
type PulseHandler struct {
	settingsService services.SettingsServicer
	syncService     services.SyncServicer
}

// NewPulseHandler creates a new PulseHandler.
func NewPulseHandler(settingsService services.SettingsServicer, syncService services.SyncServicer) *PulseHandler {
	return &PulseHandler{settingsService: settingsService, syncService: syncService}
}

// PulseRequest represents the payload for creating or replacing a pulse.
type PulseRequest struct {
	Description   string                 `json:"description" binding:"required,min=1,max=200"`
	Amount        float64                `json:"amount" binding:"required,gt=0"`
	Category      string                 `json:"category" binding:"required"`
	Type          models.TransactionType `json:"type" binding:"required,transaction_type"`
	CurrencyCode  string                 `json:"currency_code" binding:"required,supported_currency"`
	Frequency     models.PulseFrequency  `json:"frequency" binding:"required,pulse_frequency"`
	NextPulseDate models.Date            `json:"next_pulse_date" binding:"required,ledger_date"`
}

// CreatePulse handles registering a recurring pulse.
func (h *PulseHandler) CreatePulse(c *gin.Context) {
	var req PulseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	p, err := h.settingsService.CreatePulse(
		req.Description, req.Amount, req.Category, req.Type, req.CurrencyCode, req.Frequency, req.NextPulseDate,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"pulse": p})
}

// UpdatePulse handles full replacement of a pulse definition.
func (h *PulseHandler) UpdatePulse(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PulseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	p, err := h.settingsService.UpdatePulse(
		id, req.Description, req.Amount, req.Category, req.Type, req.CurrencyCode, req.Frequency, req.NextPulseDate,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pulse": p})
}

// DeletePulse handles removing a pulse. Transactions it already
// materialized stay in the ledger.
func (h *PulseHandler) DeletePulse(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.settingsService.DeletePulse(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pulse deleted successfully"})
}

// GetPulses handles listing all recurring pulses.
func (h *PulseHandler) GetPulses(c *gin.Context) {
	pulses, err := h.settingsService.ListPulses()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pulses": pulses})
}

// SynchronizePulses handles an on-demand scheduler pass. The same pass
// also runs at startup; calling it twice in one day is harmless.
func (h *PulseHandler) SynchronizePulses(c *gin.Context) {
	count, err := h.syncService.SynchronizePulses(models.DateOf(time.Now()))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"materialized": count})
}
