package controller

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"sales-pulse/models"
	"sales-pulse/service"
)

// RightsController exposes the rights matrix so clients can hide what a role cannot do
type RightsController struct {
	permissions service.PermissionServiceInterface
	logger      *logrus.Entry
}

// NewRightsController creates a new RightsController
func NewRightsController(permissions service.PermissionServiceInterface, logger *logrus.Entry) *RightsController {
	return &RightsController{permissions: permissions, logger: logger}
}

// GetRights handles GET /admin/rights?role=sales
// Without ?role the caller's own role header is used
func (c *RightsController) GetRights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	role := strings.TrimSpace(r.URL.Query().Get("role"))
	if role == "" {
		role = strings.TrimSpace(r.Header.Get(RoleHeader))
	}
	if role == "" {
		http.Error(w, "role parameter is required", http.StatusBadRequest)
		return
	}

	writeJSON(w, c.logger, http.StatusOK, models.RoleRightsResponse{
		Role:   role,
		Rights: c.permissions.Rights(role),
	})
}
