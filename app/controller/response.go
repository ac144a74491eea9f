package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"sales-pulse/ordermatrix"
	"sales-pulse/repository"
	"sales-pulse/service"
)

// RoleHeader carries the caller's role, set by the gateway in front of this service
const RoleHeader = "X-User-Role"

var validate = validator.New(validator.WithRequiredStructEnabled())

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, service.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, ordermatrix.ErrNotList),
		errors.Is(err, ordermatrix.ErrInvalidPageSize),
		errors.Is(err, service.ErrUnsupportedFormat),
		errors.Is(err, service.ErrNoRecipient):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrMailDisabled),
		errors.Is(err, service.ErrArchiveDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err and answers with the mapped status
func writeError(w http.ResponseWriter, logger *logrus.Entry, op string, err error) {
	status := statusFor(err)
	entry := logger.WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Errorf("❌ %s: failed", op)
	} else {
		entry.Warnf("⚠️  %s: rejected", op)
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, logger *logrus.Entry, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithError(err).Error("❌ Failed to encode response")
	}
}

// authorize checks the caller's role; it writes 403 and returns false when denied
func authorize(w http.ResponseWriter, r *http.Request, permissions service.PermissionServiceInterface, logger *logrus.Entry, menu, action string) bool {
	role := r.Header.Get(RoleHeader)
	if permissions.CanPerform(role, menu, action) {
		return true
	}
	logger.WithFields(logrus.Fields{"role": role, "menu": menu, "action": action}).Warn("🚫 Permission denied")
	http.Error(w, service.ErrForbidden.Error(), http.StatusForbidden)
	return false
}
