package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finvue/internal/errors"
	"finvue/internal/models"
	"finvue/internal/pagination"
	"finvue/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest represents the payload for creating or replacing a transaction.
type TransactionRequest struct {
	Date         models.Date            `json:"date" binding:"required,ledger_date"`
	Description  string                 `json:"description" binding:"omitempty,max=200"`
	Amount       float64                `json:"amount" binding:"required,gt=0"`
	Category     string                 `json:"category" binding:"required"`
	Type         models.TransactionType `json:"type" binding:"required,transaction_type"`
	CurrencyCode string                 `json:"currency_code" binding:"required,supported_currency"`
}

// CreateTransaction handles the creation of a new transaction.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tx, err := h.transactionService.CreateTransaction(
		req.Date, req.Description, req.Amount, req.Category, req.Type, req.CurrencyCode,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

// UpdateTransaction handles full replacement of a transaction.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tx, err := h.transactionService.UpdateTransaction(
		id, req.Date, req.Description, req.Amount, req.Category, req.Type, req.CurrencyCode,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// GetTransaction handles fetching a single transaction by ID.
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactionService.GetTransactionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// parseTransactionFilter reads the optional list/export filters from the query string.
func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if v := c.Query("start_date"); v != "" {
		d := models.Date(v)
		if !d.Valid() {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date must be YYYY-MM-DD")
		}
		filter.StartDate = &d
	}
	if v := c.Query("end_date"); v != "" {
		d := models.Date(v)
		if !d.Valid() {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must be YYYY-MM-DD")
		}
		filter.EndDate = &d
	}
	if v := c.Query("type"); v != "" {
		txType := models.TransactionType(v)
		if txType != models.TransactionTypeIncome && txType != models.TransactionTypeExpense {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
		}
		filter.Type = &txType
	}
	if v := c.Query("category"); v != "" {
		category := v
		filter.Category = &category
	}

	return filter, nil
}

// GetTransactions handles listing transactions with pagination and filters.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.ListTransactions(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteTransaction handles deleting a transaction.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// ExportTransactions streams the filtered transactions as a CSV download.
func (h *TransactionHandler) ExportTransactions(c *gin.Context) {
	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	csv, err := h.transactionService.ExportCSV(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := "finvue-export-" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}
