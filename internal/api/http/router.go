package http

import (
	"net/http"

	"toolrental-backend/internal/security"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Tools     *ToolHandler
	Bookings  *BookingHandler
	Customers *CustomerHandler
	Admin     *AdminHandler
	Auth      *AuthHandler
	Health    *HealthHandler
}

// NewRouter registers every route under /api/v1. Route names are the keys of the
// endpoint security table, so an unnamed or unknown route is admin-only.
func NewRouter(h Handlers, tm security.TokenManager, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondMessage(w, r, http.StatusNotFound, "not_found", "route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondMessage(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	router.HandleFunc("/healthz", h.Health.Health).Methods(http.MethodGet).Name("health")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(NewAuthMiddleware(tm).Handler)

	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost).Name("auth.login")
	api.HandleFunc("/auth/me", h.Auth.Me).Methods(http.MethodGet).Name("auth.me")

	api.HandleFunc("/tools", h.Tools.ListTools).Methods(http.MethodGet).Name("tools.list")
	api.HandleFunc("/tools", h.Tools.CreateTool).Methods(http.MethodPost).Name("tools.create")
	api.HandleFunc("/tools/categories", h.Tools.ListCategories).Methods(http.MethodGet).Name("tools.categories")
	api.HandleFunc("/tools/{id:[0-9]+}", h.Tools.GetTool).Methods(http.MethodGet).Name("tools.get")
	api.HandleFunc("/tools/{id:[0-9]+}", h.Tools.UpdateTool).Methods(http.MethodPatch).Name("tools.update")
	api.HandleFunc("/tools/{id:[0-9]+}", h.Tools.DeleteTool).Methods(http.MethodDelete).Name("tools.delete")
	api.HandleFunc("/tools/{id:[0-9]+}/availability", h.Tools.SetAvailability).Methods(http.MethodPatch).Name("tools.availability")
	api.HandleFunc("/tools/{id:[0-9]+}/unavailable-dates", h.Tools.GetUnavailableDates).Methods(http.MethodGet).Name("tools.unavailable-dates")
	api.HandleFunc("/tools/{id:[0-9]+}/calendar", h.Tools.GetCalendar).Methods(http.MethodGet).Name("tools.calendar")

	api.HandleFunc("/bookings", h.Bookings.CreateBooking).Methods(http.MethodPost).Name("bookings.create")
	api.HandleFunc("/bookings/check-availability", h.Bookings.CheckAvailability).Methods(http.MethodPost).Name("bookings.check-availability")
	api.HandleFunc("/bookings/tool/{toolId:[0-9]+}", h.Bookings.ListForTool).Methods(http.MethodGet).Name("bookings.by-tool")
	api.HandleFunc("/bookings/customer/{customerId:[0-9]+}", h.Bookings.ListForCustomer).Methods(http.MethodGet).Name("bookings.by-customer")
	api.HandleFunc("/bookings/{id:[0-9]+}", h.Bookings.GetBooking).Methods(http.MethodGet).Name("bookings.get")
	api.HandleFunc("/bookings/{id:[0-9]+}/confirm", h.Bookings.Confirm).Methods(http.MethodPatch).Name("bookings.confirm")
	api.HandleFunc("/bookings/{id:[0-9]+}/cancel", h.Bookings.Cancel).Methods(http.MethodPatch).Name("bookings.cancel")

	api.HandleFunc("/customers", h.Customers.CreateCustomer).Methods(http.MethodPost).Name("customers.create")

	api.HandleFunc("/orders", h.Admin.ListOrders).Methods(http.MethodGet).Name("orders.list")
	api.HandleFunc("/orders/{id:[0-9]+}", h.Admin.GetOrder).Methods(http.MethodGet).Name("orders.get")
	api.HandleFunc("/orders/{id:[0-9]+}/payment-status", h.Admin.UpdatePaymentStatus).Methods(http.MethodPatch).Name("orders.payment-status")
	api.HandleFunc("/admin/stats", h.Admin.DashboardStats).Methods(http.MethodGet).Name("admin.stats")

	var handler http.Handler = router
	handler = Recoverer(handler)
	handler = CORS(allowedOrigins)(handler)
	handler = RequestLogger(handler)
	return handler
}
