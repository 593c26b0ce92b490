package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth    *AuthHandler
	Payment *PaymentHandler
	Member  *MemberHandler
	News    *NewsHandler
	Event   *EventHandler
	Admin   *AdminHandler
	Webhook *WebhookHandler
}

// NewRouter wires all routes under /api with the shared middleware chain.
func NewRouter(h Handlers, mw *Middleware) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Endpoint not found")
	})

	api := r.PathPrefix("/api").Subrouter()

	// Public.
	api.HandleFunc("/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/create-checkout-session", h.Payment.CreateCheckoutSession).Methods(http.MethodPost)
	api.HandleFunc("/payment-success", h.Payment.PaymentSuccess).Methods(http.MethodPost)
	api.HandleFunc("/webhook", h.Webhook.Handle).Methods(http.MethodPost)
	api.HandleFunc("/news", h.News.List).Methods(http.MethodGet)
	api.HandleFunc("/news/{id:[0-9]+}", h.News.Get).Methods(http.MethodGet)
	api.HandleFunc("/events", h.Event.List).Methods(http.MethodGet)
	api.HandleFunc("/events/{id:[0-9]+}", h.Event.Get).Methods(http.MethodGet)

	// Authenticated.
	api.HandleFunc("/logout", mw.Authenticate(h.Auth.Logout)).Methods(http.MethodPost)
	api.HandleFunc("/user", mw.Authenticate(h.Auth.CurrentUser)).Methods(http.MethodGet)
	api.HandleFunc("/member/dashboard", mw.Authenticate(h.Member.Dashboard)).Methods(http.MethodGet)
	api.HandleFunc("/member/events/{id:[0-9]+}/register", mw.Authenticate(h.Member.RegisterForEvent)).Methods(http.MethodPost)

	// Admin.
	api.HandleFunc("/admin/stats", mw.RequireAdmin(h.Admin.Stats)).Methods(http.MethodGet)
	api.HandleFunc("/admin/users", mw.RequireAdmin(h.Admin.ListUsers)).Methods(http.MethodGet)
	api.HandleFunc("/admin/users/{id:[0-9]+}/status", mw.RequireAdmin(h.Admin.UpdateUserStatus)).Methods(http.MethodPut)
	api.HandleFunc("/admin/activities", mw.RequireAdmin(h.Admin.ListActivities)).Methods(http.MethodGet)
	api.HandleFunc("/admin/news", mw.RequireAdmin(h.News.Create)).Methods(http.MethodPost)
	api.HandleFunc("/admin/news/{id:[0-9]+}", mw.RequireAdmin(h.News.Update)).Methods(http.MethodPut)
	api.HandleFunc("/admin/news/{id:[0-9]+}", mw.RequireAdmin(h.News.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/admin/events", mw.RequireAdmin(h.Event.Create)).Methods(http.MethodPost)
	api.HandleFunc("/admin/events/{id:[0-9]+}", mw.RequireAdmin(h.Event.Update)).Methods(http.MethodPut)
	api.HandleFunc("/admin/events/{id:[0-9]+}", mw.RequireAdmin(h.Event.Delete)).Methods(http.MethodDelete)

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return mw.Logging(mw.Recovery(mw.CORS(r)))
}
