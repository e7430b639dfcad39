package interfaces

import (
	"context"
	"net/http"

	"github.com/sebuszqo/FinanceTracker/internal/auth"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sirupsen/logrus"
)

type CategoryServiceInterface interface {
	GetVisibleCategories(ctx context.Context, categoryType, userID string) ([]domain.Category, error)
}

type CategoryHandler struct {
	service      CategoryServiceInterface
	respondJSON  RespondJSONFunc
	respondError RespondErrorFunc
	log          logrus.FieldLogger
}

func NewCategoryHandler(
	service CategoryServiceInterface,
	respondJSON RespondJSONFunc,
	respondError RespondErrorFunc,
	log logrus.FieldLogger,
) *CategoryHandler {
	if service == nil || respondJSON == nil || respondError == nil || log == nil {
		panic("Service, logger and response functions must not be nil")
	}
	return &CategoryHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
		log:          log,
	}
}

func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	categoryType := r.URL.Query().Get("type")
	if !domain.IsValidTransactionType(categoryType) {
		h.respondError(w, http.StatusBadRequest, "Invalid category type")
		return
	}

	categories, err := h.service.GetVisibleCategories(r.Context(), categoryType, userID)
	if err != nil {
		respondServiceError(w, r, h.respondError, h.log, err, "Failed to retrieve categories")
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"message":    "Categories retrieved successfully.",
		"categories": categories,
	})
}
