package handler

import (
	"net/http"
	"strconv"

	"devimpact/internal/domain"
	"devimpact/internal/middleware"
	"devimpact/internal/service"
	"devimpact/pkg/errors"
	"devimpact/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// RegistrationHandler serves the public registration form and the admin
// registration views
type RegistrationHandler struct {
	registrations service.RegistrationService
	logger        *logger.Logger
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrations service.RegistrationService, log *logger.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		registrations: registrations,
		logger:        log,
	}
}

// statusRequest is the body of the status update endpoints
type statusRequest struct {
	Status string `json:"status"`
}

type bulkStatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

// Register handles POST /api/registrations
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegistrationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	reg, err := h.registrations.Register(r.Context(), &req)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":      true,
		"message":      "Registration submitted successfully",
		"registration": reg,
	})
}

// EmailExists handles GET /api/registrations/email-exists?email=
func (h *RegistrationHandler) EmailExists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.registrations.EmailExists(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

// List handles GET /api/admin/registrations?status=&year=&q=
func (h *RegistrationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.RegistrationFilter{
		Status: q.Get("status"),
		Year:   q.Get("year"),
		Query:  q.Get("q"),
	}

	list, err := h.registrations.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// Activity handles GET /api/admin/registrations/activity?limit=
func (h *RegistrationHandler) Activity(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, r, errors.NewValidationError("limit must be a positive integer", map[string]interface{}{"limit": raw}), h.logger)
			return
		}
		limit = parsed
	}

	items, err := h.registrations.RecentActivity(r.Context(), limit)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"activity": items})
}

// Analytics handles GET /api/admin/registrations/analytics
func (h *RegistrationHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.registrations.Analytics(r.Context())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, analytics)
}

// UpdateStatus handles PATCH /api/admin/registrations/{id}/status
func (h *RegistrationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	status, ok := domain.ParseStatus(req.Status)
	if !ok {
		respondError(w, r, invalidStatus(req.Status), h.logger)
		return
	}

	reg, err := h.registrations.UpdateStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	adminLogger(r, h.logger).WithFields(map[string]interface{}{
		"registration_id": reg.ID,
		"status":          status,
	}).Info("Admin updated registration status")

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"registration": reg,
	})
}

// BulkUpdateStatus handles POST /api/admin/registrations/bulk-status
func (h *RegistrationHandler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req bulkStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	status, ok := domain.ParseStatus(req.Status)
	if !ok {
		respondError(w, r, invalidStatus(req.Status), h.logger)
		return
	}

	updated, err := h.registrations.BulkUpdateStatus(r.Context(), req.IDs, status)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	adminLogger(r, h.logger).WithFields(map[string]interface{}{
		"updated": updated,
		"status":  status,
	}).Info("Admin bulk updated registration status")

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"updated": updated,
	})
}

// adminLogger returns the request logger tagged with the acting admin
func adminLogger(r *http.Request, fallback *logger.Logger) *logger.Logger {
	log := logger.FromContext(r.Context(), fallback)
	if admin, ok := middleware.GetAdmin(r.Context()); ok {
		return log.WithField("admin_email", admin.Email)
	}
	return log
}

func invalidStatus(raw string) *errors.AppError {
	return errors.NewValidationError("Invalid status", map[string]interface{}{
		"status":  raw,
		"allowed": []domain.Status{domain.StatusPending, domain.StatusApproved, domain.StatusRejected},
	})
}

// RegisterPublicRoutes registers the registration form endpoints
func (h *RegistrationHandler) RegisterPublicRoutes(r chi.Router) {
	r.Route("/registrations", func(r chi.Router) {
		r.Post("/", h.Register)
		r.Get("/email-exists", h.EmailExists)
	})
}

// RegisterAdminRoutes registers the admin registration endpoints. The caller
// is responsible for guarding r with admin auth.
func (h *RegistrationHandler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/registrations", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/activity", h.Activity)
		r.Get("/analytics", h.Analytics)
		r.Post("/bulk-status", h.BulkUpdateStatus)
		r.Patch("/{id}/status", h.UpdateStatus)
	})
}
