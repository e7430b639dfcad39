package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sebuszqo/FinanceTracker/internal/auth"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	userService Service
	log         logrus.FieldLogger
}

func NewHandler(userService Service, log logrus.FieldLogger) *Handler {
	return &Handler{
		userService: userService,
		log:         log,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func respondError(w http.ResponseWriter, status int, message string, errs ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errs) > 0 && len(errs[0]) > 0 {
		payload["errors"] = errs[0]
	}
	respondJSON(w, status, payload)
}

func (h *Handler) HandleGetUserProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.userService.GetProfile(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.respondServiceError(w, r, err, "Could not retrieve profile")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   profile,
	})
}

func (h *Handler) HandleOnboarding(w http.ResponseWriter, r *http.Request) {
	var req ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.userService.Onboard(r.Context(), auth.UserIDFromContext(r.Context()), req)
	if err != nil {
		h.respondServiceError(w, r, err, "Could not complete onboarding")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Onboarding completed.",
		"data":    profile,
	})
}

func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.userService.UpdateProfile(r.Context(), auth.UserIDFromContext(r.Context()), req)
	if err != nil {
		h.respondServiceError(w, r, err, "Could not update profile")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Profile updated.",
		"data":    profile,
	})
}

// HandleFooterInfo answers with {status, data} or {status, error}.
func (h *Handler) HandleFooterInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.userService.GetFooterInfo(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		status := http.StatusInternalServerError
		message := "Failed to load footer info"
		switch {
		case errors.Is(err, ErrUnauthenticated):
			status, message = http.StatusUnauthorized, err.Error()
		case errors.Is(err, ErrUserNotFound):
			status, message = http.StatusNotFound, err.Error()
		default:
			h.log.WithError(err).Error(message)
		}
		respondJSON(w, status, map[string]string{"status": "error", "error": message})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   info,
	})
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		respondError(w, http.StatusBadRequest, "Validation errors occurred", ve.Messages())
	case errors.Is(err, ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrUserNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrUserAlreadyOnboarded):
		respondError(w, http.StatusConflict, err.Error())
	default:
		h.log.WithError(err).WithField("path", r.URL.Path).Error(fallback)
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
