package handler

import (
	"net/http"

	"github.com/Dan9191/finhealth/internal/config"
	"github.com/Dan9191/finhealth/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// NewRouter registers the API routes
func NewRouter(h *Handler, cfg *config.Config, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Instrument(log))

	// Public routes
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/assessments", h.Assess).Methods(http.MethodPost)
	r.HandleFunc("/key-rate", h.KeyRate).Methods(http.MethodGet)

	// Protected routes
	auth := middleware.AuthMiddleware(cfg)
	r.Handle("/dashboard", auth(http.HandlerFunc(h.Dashboard))).Methods(http.MethodGet)
	r.Handle("/notifications", auth(http.HandlerFunc(h.Notifications))).Methods(http.MethodGet)

	return r
}
