package routes

import (
	"net/http"
	"time"

	"pedalads/internal/handlers"
	"pedalads/internal/metrics"
	"pedalads/internal/middleware"

	"github.com/gorilla/mux"
)

// Handlers groups everything InitRoutes mounts.
type Handlers struct {
	Post       *handlers.PostHandler
	Lead       *handlers.LeadHandler
	Consent    *handlers.ConsentHandler
	Calculator *handlers.CalculatorHandler
	Auth       *handlers.AuthHandler
	Logs       *handlers.AdminLogsHandler
	Health     *handlers.HealthHandler
	Metrics    http.Handler
}

type Options struct {
	JWTSecret    string
	RateLimitRPM int
	Metrics      *metrics.Metrics
}

// burst guard on public form routes, in front of the per-action limits
const (
	formBurst       = 20
	formBurstWindow = time.Minute
)

func InitRoutes(router *mux.Router, h Handlers, opts Options) {
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.ClientIP)
	router.Use(middleware.Logging(opts.Metrics))

	router.HandleFunc("/healthz", h.Health.Healthz).Methods(http.MethodGet)
	if h.Metrics != nil {
		router.Handle("/metrics", h.Metrics).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.GlobalRateLimit(opts.RateLimitRPM))

	// --- public reads ---
	api.HandleFunc("/posts", h.Post.List).Methods(http.MethodGet)
	api.HandleFunc("/posts/recent", h.Post.Recent).Methods(http.MethodGet)
	api.HandleFunc("/posts/id/{id}", h.Post.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/posts/{slug}", h.Post.GetBySlug).Methods(http.MethodGet)
	api.HandleFunc("/consent", h.Consent.Get).Methods(http.MethodGet)

	// --- public forms ---
	forms := api.PathPrefix("").Subrouter()
	forms.Use(middleware.BurstLimit(formBurst, formBurstWindow))
	forms.HandleFunc("/waitlist", h.Lead.JoinWaitlist).Methods(http.MethodPost)
	forms.HandleFunc("/riders", h.Lead.SignUpRider).Methods(http.MethodPost)
	forms.HandleFunc("/contact", h.Lead.Contact).Methods(http.MethodPost)
	forms.HandleFunc("/newsletter", h.Lead.Newsletter).Methods(http.MethodPost)
	forms.HandleFunc("/consent", h.Consent.Save).Methods(http.MethodPost)
	forms.HandleFunc("/calculators/pricing", h.Calculator.Pricing).Methods(http.MethodPost)
	forms.HandleFunc("/calculators/roi", h.Calculator.ROI).Methods(http.MethodPost)
	forms.HandleFunc("/admin/login", h.Auth.Login).Methods(http.MethodPost)

	// --- admin ---
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.JWTAuth(opts.JWTSecret))
	admin.Use(middleware.OnlyRole("admin"))

	admin.HandleFunc("/posts", h.Post.Create).Methods(http.MethodPost)
	admin.HandleFunc("/posts/preview", h.Post.Preview).Methods(http.MethodPost)
	admin.HandleFunc("/posts/{id}", h.Post.Update).Methods(http.MethodPatch, http.MethodOptions)
	admin.HandleFunc("/posts/{id}", h.Post.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/leads", h.Lead.AdminList).Methods(http.MethodGet)
	admin.HandleFunc("/logs/days", h.Logs.ListDays).Methods(http.MethodGet)
	admin.HandleFunc("/logs/stats", h.Logs.Stats).Methods(http.MethodGet)
	admin.HandleFunc("/logs", h.Logs.GetLogs).Methods(http.MethodGet)
}
