// Package handler provides HTTP handlers for the application.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/jdm-products/tradechat/internal/errors"
	"github.com/jdm-products/tradechat/internal/middleware"
	"github.com/jdm-products/tradechat/internal/service"
	"github.com/jdm-products/tradechat/internal/validation"
)

// HealthChecker defines the interface for checking database health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handler holds all HTTP handlers and their dependencies.
type Handler struct {
	chatService   *service.ChatService
	leadService   *service.LeadService
	validator     *validation.MessageValidator
	adminAuth     *middleware.AdminKeyAuth
	healthChecker HealthChecker
	logLevel      http.Handler
	logger        *zap.Logger
}

// New creates a new Handler with all dependencies.
func New(
	chatService *service.ChatService,
	validator *validation.MessageValidator,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		chatService: chatService,
		validator:   validator,
		logger:      logger,
	}
}

// SetLeadService enables the admin leads API.
func (h *Handler) SetLeadService(ls *service.LeadService) {
	h.leadService = ls
}

// SetAdminAuth sets the guard for admin endpoints.
func (h *Handler) SetAdminAuth(auth *middleware.AdminKeyAuth) {
	h.adminAuth = auth
}

// SetHealthChecker sets the health checker for database connectivity.
func (h *Handler) SetHealthChecker(hc HealthChecker) {
	h.healthChecker = hc
}

// SetLogLevelHandler mounts the runtime log level endpoint.
func (h *Handler) SetLogLevelHandler(lh http.Handler) {
	h.logLevel = lh
}

// RegisterRoutes registers all routes on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/chat", func(r chi.Router) {
		r.Post("/sessions", h.HandleStartSession)
		r.Post("/sessions/{sessionID}/messages", h.HandleMessage)
		r.Get("/sessions/{sessionID}/transcript", h.HandleTranscript)
	})

	if h.adminAuth != nil {
		r.Group(func(r chi.Router) {
			r.Use(h.adminAuth.Middleware)

			r.Get("/api/admin/leads", h.HandleListLeads)
			r.Get("/api/admin/leads/{leadID}", h.HandleGetLead)

			if h.logLevel != nil {
				r.Get("/admin/log-level", h.logLevel.ServeHTTP)
				r.Put("/admin/log-level", h.logLevel.ServeHTTP)
			}
		})
	}

	// Health and readiness endpoints
	r.Get("/health", h.HandleHealth)
	r.Get("/ready", h.HandleReadiness)
	r.Get("/live", h.HandleLiveness)
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks,omitempty"`
}

// ComponentHealth represents the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HandleHealth returns a health check response including dependencies.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status: "ok",
		Checks: make(map[string]ComponentHealth),
	}

	statusCode := http.StatusOK

	response.Checks["chat"] = ComponentHealth{Status: "healthy"}

	if h.healthChecker != nil {
		if err := h.healthChecker.Ping(ctx); err != nil {
			response.Status = "degraded"
			response.Checks["database"] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
			h.logger.Error("database health check failed", zap.Error(err))
		} else {
			response.Checks["database"] = ComponentHealth{Status: "healthy"}
		}
	}

	h.respondJSON(w, statusCode, response)
}

// HandleReadiness returns a readiness probe response. The dialogue
// engine is in-memory, so the service is ready as soon as it serves.
func (h *Handler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		h.logger.Debug("failed to write readiness response", zap.Error(err))
	}
}

// HandleLiveness returns a liveness probe response.
func (h *Handler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		h.logger.Debug("failed to write liveness response", zap.Error(err))
	}
}

// respondJSON writes a JSON response with the given status code.
func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Debug("failed to write response", zap.Error(err))
	}
}

// respondError maps an application error to its JSON response.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.InternalError("internal server error", err)
	}
	h.respondJSON(w, appErr.HTTPStatus(), appErr.ToResponse())
}
