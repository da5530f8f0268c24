package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finvue/internal/errors"
	"finvue/internal/models"
	"finvue/internal/services"
)

// SettingsHandler handles configuration requests: preferred currency,
// category lists, budgets, and recurring pulses.
type SettingsHandler struct {
	settingsService services.SettingsServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService services.SettingsServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetConfig handles fetching the full user configuration.
func (h *SettingsHandler) GetConfig(c *gin.Context) {
	config, err := h.settingsService.GetConfig()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": config})
}

// UpdateCurrencyRequest represents the payload for changing the preferred currency.
type UpdateCurrencyRequest struct {
	CurrencyCode string `json:"currency_code" binding:"required,supported_currency"`
}

// UpdateCurrency handles changing the preferred currency.
func (h *SettingsHandler) UpdateCurrency(c *gin.Context) {
	var req UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.settingsService.UpdateCurrency(req.CurrencyCode); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Currency updated successfully"})
}

// CategoryRequest represents the payload for adding or removing a category.
type CategoryRequest struct {
	Type models.CategoryType `json:"type" binding:"required,category_type"`
	Name string              `json:"name" binding:"required,min=1,max=50"`
}

// AddCategory handles appending a category to a type's list.
func (h *SettingsHandler) AddCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.settingsService.AddCategory(req.Type, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// RemoveCategory handles removing a category from a type's list.
func (h *SettingsHandler) RemoveCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.settingsService.RemoveCategory(req.Type, req.Name); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category removed successfully"})
}

// SetBudgetRequest represents the payload for creating or replacing a budget.
type SetBudgetRequest struct {
	Category string  `json:"category" binding:"required"`
	Limit    float64 `json:"limit" binding:"gte=0"`
}

// SetBudget handles upserting the budget for an expense category.
func (h *SettingsHandler) SetBudget(c *gin.Context) {
	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.settingsService.SetBudget(req.Category, req.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget handles removing the budget for a category.
func (h *SettingsHandler) DeleteBudget(c *gin.Context) {
	category := c.Param("category")
	if category == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid category"))
		return
	}

	if err := h.settingsService.DeleteBudget(category); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}
