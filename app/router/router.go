package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sales-pulse/app/controller"
)

type Controllers struct {
	OrderForm *controller.OrderFormController
	Rights    *controller.RightsController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Prometheus scrape endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Order form of a stored order
	mux.HandleFunc("/admin/orders/{id}/form", controllers.OrderForm.GetOrderForm)
	mux.HandleFunc("/admin/orders/{id}/form/email", controllers.OrderForm.EmailOrderForm)
	mux.HandleFunc("/admin/orders/{id}/form/archive", controllers.OrderForm.ArchiveOrderForm)
	mux.HandleFunc("/admin/orders/{id}/form/preview", controllers.OrderForm.PreviewOrderForm)

	// Preview pages and ad-hoc builds
	mux.HandleFunc("/admin/order-forms/png-page", controllers.OrderForm.DownloadPreviewPage)
	mux.HandleFunc("/admin/order-forms/build", controllers.OrderForm.BuildOrderForm)

	// Rights matrix
	mux.HandleFunc("/admin/rights", controllers.Rights.GetRights)
}
