package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dan9191/finhealth/internal/middleware"
	"github.com/Dan9191/finhealth/internal/models"
	"github.com/Dan9191/finhealth/internal/service"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 8 << 20

// Service is the business logic behind the HTTP API
type Service interface {
	Assess(ctx context.Context, in models.AssessmentInput) (*models.Report, error)
	Dashboard(ctx context.Context, userID int64) (*models.Report, error)
	Notifications(ctx context.Context, userID int64) ([]models.Notification, error)
	KeyRate(ctx context.Context) (float64, error)
}

type Handler struct {
	svc Service
	log *logrus.Logger
}

func NewHandler(svc Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Assess computes a report for the financials in the request body
func (h *Handler) Assess(w http.ResponseWriter, r *http.Request) {
	var in models.AssessmentInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	report, err := h.svc.Assess(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

// Dashboard returns the report of the caller's company
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	report, err := h.svc.Dashboard(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

// Notifications returns the risk notifications of the caller's company
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	notifications, err := h.svc.Notifications(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, notifications)
}

// KeyRate returns the lending reference rate
func (h *Handler) KeyRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.svc.KeyRate(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]float64{"key_rate": rate})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "Unable to compute assessment"
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrRatesUnavailable):
		status, msg = http.StatusServiceUnavailable, "Key rate is not available"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status, msg = http.StatusGatewayTimeout, "Request timed out"
	}
	h.log.WithField("request_id", middleware.RequestIDFromContext(r.Context())).
		Errorf("%s %s failed: %v", r.Method, r.URL.Path, err)
	http.Error(w, msg, status)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}
