package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"sales-pulse/models"
	"sales-pulse/service"
)

// OrderFormController handles HTTP requests for printable order forms
type OrderFormController struct {
	service     service.OrderFormServiceInterface
	permissions service.PermissionServiceInterface
	publicURL   string
	logger      *logrus.Entry
}

// NewOrderFormController creates a new OrderFormController.
// publicURL prefixes the preview page links handed back to clients.
func NewOrderFormController(
	svc service.OrderFormServiceInterface,
	permissions service.PermissionServiceInterface,
	publicURL string,
	logger *logrus.Entry,
) *OrderFormController {
	return &OrderFormController{
		service:     svc,
		permissions: permissions,
		publicURL:   strings.TrimRight(publicURL, "/"),
		logger:      logger,
	}
}

func orderID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		http.Error(w, "order id parameter is required", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

// GetOrderForm handles GET /admin/orders/{id}/form?format=html|pdf|xlsx|json
// format defaults to pdf
func (c *OrderFormController) GetOrderForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !authorize(w, r, c.permissions, c.logger, models.MenuOrder, models.ActionPrint) {
		return
	}
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = service.FormatPDF
	}
	if !service.IsSupportedFormat(format) {
		http.Error(w, fmt.Sprintf("Invalid format. Valid formats: %s", strings.Join(service.Formats, ", ")), http.StatusBadRequest)
		return
	}

	c.logger.WithFields(logrus.Fields{"order_id": id, "format": format}).Info("📥 GetOrderForm: request received")

	file, err := c.service.Render(r.Context(), id, format)
	if err != nil {
		writeError(w, c.logger, "GetOrderForm", err)
		return
	}

	disposition := "attachment"
	if format == service.FormatHTML {
		disposition = "inline"
	}
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		c.logger.WithError(err).Error("❌ GetOrderForm: error writing response")
	}
}

// EmailOrderForm handles POST /admin/orders/{id}/form/email
// Example request: {"to": "buyer@example.com"}; an empty body mails MAIL_TO
func (c *OrderFormController) EmailOrderForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !authorize(w, r, c.permissions, c.logger, models.MenuOrder, models.ActionPrint) {
		return
	}
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	var req models.EmailOrderFormRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, fmt.Sprintf("Validation error: %v", err), http.StatusBadRequest)
		return
	}

	to, err := c.service.EmailOrderForm(r.Context(), id, req.To)
	if err != nil {
		writeError(w, c.logger, "EmailOrderForm", err)
		return
	}

	c.logger.WithFields(logrus.Fields{"order_id": id, "to": to}).Info("✅ EmailOrderForm: sent")
	writeJSON(w, c.logger, http.StatusOK, map[string]string{"status": "sent", "to": to})
}

// ArchiveOrderForm handles POST /admin/orders/{id}/form/archive
func (c *OrderFormController) ArchiveOrderForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !authorize(w, r, c.permissions, c.logger, models.MenuOrder, models.ActionPrint) {
		return
	}
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	resp, err := c.service.ArchiveOrderForm(r.Context(), id)
	if err != nil {
		writeError(w, c.logger, "ArchiveOrderForm", err)
		return
	}
	writeJSON(w, c.logger, http.StatusCreated, resp)
}

// PreviewOrderForm handles POST /admin/orders/{id}/form/preview
// Example response:
// {
//   "sessionId": "1042_0b7c4f9e-...",
//   "orderNo": "1042",
//   "totalPages": 2,
//   "pages": [{"page": 1, "url": "http://localhost:8080/admin/order-forms/png-page?session=...&page=1", "filename": "order_1042_page_1.png"}]
// }
func (c *OrderFormController) PreviewOrderForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !authorize(w, r, c.permissions, c.logger, models.MenuOrder, models.ActionPrint) {
		return
	}
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	resp, err := c.service.Preview(r.Context(), id)
	if err != nil {
		writeError(w, c.logger, "PreviewOrderForm", err)
		return
	}
	for i := range resp.Pages {
		resp.Pages[i].URL = c.publicURL + resp.Pages[i].URL
	}
	writeJSON(w, c.logger, http.StatusOK, resp)
}

// DownloadPreviewPage handles GET /admin/order-forms/png-page?session=XXX&page=N[&size=thumb|medium]
func (c *OrderFormController) DownloadPreviewPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !authorize(w, r, c.permissions, c.logger, models.MenuOrder, models.ActionPrint) {
		return
	}

	sessionID := strings.TrimSpace(r.URL.Query().Get("session"))
	if sessionID == "" {
		http.Error(w, "session parameter is required", http.StatusBadRequest)
		return
	}
	pageNum, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("page")))
	if err != nil || pageNum < 1 {
		http.Error(w, "Invalid page number", http.StatusBadRequest)
		return
	}
	size := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("size")))
	if size != "" && size != "thumb" && size != "medium" {
		http.Error(w, "Invalid size. Valid sizes: thumb, medium", http.StatusBadRequest)
		return
	}

	file, err := c.service.PreviewPage(r.Context(), sessionID, pageNum, size)
	if err != nil {
		writeError(w, c.logger, "DownloadPreviewPage", err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		c.logger.WithError(err).Error("❌ DownloadPreviewPage: error writing response")
	}
}

// BuildOrderForm handles POST /admin/order-forms/build
// Example request:
// {
//   "header": {"orderNo": "1042", "contact": "Ravi Textiles"},
//   "items": [{"name": "A", "style": "S1", "size": "30", "qty": "5"}],
//   "pageSize": 10
// }
// Responds with the paginated document as JSON
func (c *OrderFormController) BuildOrderForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !authorize(w, r, c.permissions, c.logger, models.MenuOrder, models.ActionView) {
		return
	}

	var req models.BuildOrderFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, fmt.Sprintf("Validation error: %v", err), http.StatusBadRequest)
		return
	}

	doc, err := c.service.BuildFromJSON(req.Header, req.Items, req.PageSize)
	if err != nil {
		writeError(w, c.logger, "BuildOrderForm", err)
		return
	}
	writeJSON(w, c.logger, http.StatusOK, doc)
}
