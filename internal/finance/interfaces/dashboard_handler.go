package interfaces

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sebuszqo/FinanceTracker/internal/auth"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sirupsen/logrus"
)

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error)
	GetSummary(ctx context.Context, userID string) (domain.Summary, error)
	GetCategoryTotals(ctx context.Context, userID, transactionType string) ([]domain.CategoryTotal, error)
	GetLatestTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)
	GetMonthlyTotals(ctx context.Context, userID string) ([]domain.MonthlyTotal, error)
}

type DashboardHandler struct {
	service      DashboardServiceInterface
	respondJSON  RespondJSONFunc
	respondError RespondErrorFunc
	log          logrus.FieldLogger
}

func NewDashboardHandler(
	service DashboardServiceInterface,
	respondJSON RespondJSONFunc,
	respondError RespondErrorFunc,
	log logrus.FieldLogger,
) *DashboardHandler {
	if service == nil || respondJSON == nil || respondError == nil || log == nil {
		panic("Service, logger and response functions must not be nil")
	}
	return &DashboardHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
		log:          log,
	}
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	dashboard, err := h.service.GetDashboard(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, h.respondError, h.log, err, "Failed to retrieve dashboard")
		return
	}
	h.success(w, "Dashboard retrieved successfully.", dashboard)
}

func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summary, err := h.service.GetSummary(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, h.respondError, h.log, err, "Failed to retrieve summary")
		return
	}
	h.success(w, "Summary retrieved successfully.", summary)
}

// GetCategoryTotals optionally folds everything after the top n categories
// into a single bucket when top is given and there are more than top of them.
func (h *DashboardHandler) GetCategoryTotals(w http.ResponseWriter, r *http.Request) {
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

	top := 0
	if raw := q.Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.respondError(w, http.StatusBadRequest, "Invalid top value")
			return
		}
		top = n
	}

	totals, err := h.service.GetCategoryTotals(r.Context(), userID, transactionType)
	if err != nil {
		respondServiceError(w, r, h.respondError, h.log, err, "Failed to retrieve category totals")
		return
	}
	if top > 0 {
		totals = domain.RollupCategories(totals, top, domain.MiscellaneousBucket)
	}
	h.success(w, "Category totals retrieved successfully.", totals)
}

func (h *DashboardHandler) GetLatestTransactions(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	transactions, err := h.service.GetLatestTransactions(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, r, h.respondError, h.log, err, "Failed to retrieve latest transactions")
		return
	}
	h.success(w, "Latest transactions retrieved successfully.", transactions)
}

// GetMonthlyTotals answers with a bare JSON array, oldest month last.
func (h *DashboardHandler) GetMonthlyTotals(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	months, err := h.service.GetMonthlyTotals(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, h.respondError, h.log, err, "Failed to retrieve monthly totals")
		return
	}
	if months == nil {
		months = []domain.MonthlyTotal{}
	}
	h.respondJSON(w, http.StatusOK, months)
}

func (h *DashboardHandler) success(w http.ResponseWriter, message string, data interface{}) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}
