package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"

	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/sirupsen/logrus"
)

type RespondJSONFunc func(w http.ResponseWriter, status int, payload interface{})

type RespondErrorFunc func(w http.ResponseWriter, status int, message string, errors ...[]string)

func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func RespondError(w http.ResponseWriter, status int, message string, errors ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}

	if len(errors) > 0 && len(errors[0]) > 0 {
		payload["errors"] = errors[0]
	}

	RespondJSON(w, status, payload)
}

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, financeErrors.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, financeErrors.ErrNotFoundOrUnauthorized):
		return http.StatusNotFound
	case financeErrors.IsValidationErrors(err), financeErrors.IsValidationError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes err with the standard envelope. Storage failures
// are logged and reported with fallback instead of the driver message.
func respondServiceError(w http.ResponseWriter, r *http.Request, respondError RespondErrorFunc, log logrus.FieldLogger, err error, fallback string) {
	status := statusFor(err)
	switch status {
	case http.StatusBadRequest:
		var ve *financeErrors.ValidationErrors
		if errors.As(err, &ve) {
			respondError(w, status, "Validation errors occurred", ve.Messages())
			return
		}
		respondError(w, status, err.Error())
	case http.StatusInternalServerError:
		log.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error(fallback)
		respondError(w, status, fallback)
	default:
		respondError(w, status, err.Error())
	}
}
