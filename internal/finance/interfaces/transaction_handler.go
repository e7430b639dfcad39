package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/sebuszqo/FinanceTracker/internal/auth"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/sirupsen/logrus"
)

type TransactionServiceInterface interface {
	ListPage(ctx context.Context, params domain.ListParams) (*domain.TransactionPage, error)
	GetTransaction(ctx context.Context, transactionID, userID string) (*domain.Transaction, error)
	CreateTransaction(ctx context.Context, userID string, input domain.TransactionInput) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, transactionID, userID string, input domain.TransactionInput) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID, userID string) (*domain.Transaction, error)
}

type PersonalTransactionHandler struct {
	service      TransactionServiceInterface
	respondJSON  RespondJSONFunc
	respondError RespondErrorFunc
	log          logrus.FieldLogger
}

func NewPersonalTransactionHandler(
	service TransactionServiceInterface,
	respondJSON RespondJSONFunc,
	respondError RespondErrorFunc,
	log logrus.FieldLogger,
) *PersonalTransactionHandler {
	if service == nil || respondJSON == nil || respondError == nil || log == nil {
		panic("Service, logger and response functions must not be nil")
	}
	return &PersonalTransactionHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
		log:          log,
	}
}

func (h *PersonalTransactionHandler) GetUserTransactions(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	q := r.URL.Query()
	transactionType := q.Get("type")
	if !domain.IsValidTransactionType(transactionType) {
		h.respondError(w, http.StatusBadRequest, "Invalid transaction type")
		return
	}

	pageSize := 0
	if raw := q.Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			h.respondError(w, http.StatusBadRequest, "Invalid page size")
			return
		}
		pageSize = size
	}

	page, err := h.service.ListPage(r.Context(), domain.ListParams{
		UserID:   userID,
		Type:     transactionType,
		Query:    q.Get("query"),
		Page:     domain.ParsePage(q.Get("page")),
		PageSize: pageSize,
	})
	if err != nil {
		respondServiceError(w, r, h.respondError, h.log, err, "Failed to retrieve transactions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transactions retrieved successfully.",
		"data":    page,
	})
}

func (h *PersonalTransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	transaction, err := h.service.GetTransaction(r.Context(), r.PathValue("transactionID"), userID)
	if err != nil {
		respondServiceError(w, r, h.respondError, h.log, err, "Failed to retrieve transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction retrieved successfully.",
		"data":    transaction,
	})
}

func (h *PersonalTransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	transaction, err := h.service.CreateTransaction(r.Context(), userID, input)
	if err != nil {
		respondServiceError(w, r, h.respondError, h.log, err, "Failed to create transaction")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully created.",
		"data":    transaction,
	})
}

func (h *PersonalTransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	transaction, err := h.service.UpdateTransaction(r.Context(), r.PathValue("transactionID"), userID, input)
	if err != nil {
		respondServiceError(w, r, h.respondError, h.log, err, "Failed to update transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully updated.",
		"data":    transaction,
	})
}

func (h *PersonalTransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if _, err := h.service.DeleteTransaction(r.Context(), r.PathValue("transactionID"), userID); err != nil {
		respondServiceError(w, r, h.respondError, h.log, err, "Failed to delete transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully deleted.",
	})
}

// DeleteTransactionByBody serves the body-addressed delete endpoint, which
// answers with a flat {message} or {error} object.
func (h *PersonalTransactionHandler) DeleteTransactionByBody(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	var req struct {
		TransactionID string `json:"transactionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.TransactionID) == "" {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": financeErrors.ErrMissingTransactionID.Error()})
		return
	}

	_, err := h.service.DeleteTransaction(r.Context(), strings.TrimSpace(req.TransactionID), userID)
	switch {
	case err == nil:
		h.respondJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
	case errors.Is(err, financeErrors.ErrNotFoundOrUnauthorized):
		h.respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case financeErrors.IsValidationError(err):
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		h.log.WithError(err).WithField("user_id", userID).Error("Failed to delete transaction")
		h.respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete transaction"})
	}
}

func (h *PersonalTransactionHandler) decodeInput(w http.ResponseWriter, r *http.Request) (domain.TransactionInput, bool) {
	var input domain.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return input, false
	}
	return input, true
}
