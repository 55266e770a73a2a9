package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"devimpact/internal/domain"
	"devimpact/internal/service"
	"devimpact/pkg/errors"
	"devimpact/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// utf8BOM lets spreadsheet tools detect the export encoding
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TeamHandler serves the admin team management endpoints
type TeamHandler struct {
	teams  service.TeamService
	logger *logger.Logger
	now    func() time.Time
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teams service.TeamService, log *logger.Logger) *TeamHandler {
	return &TeamHandler{
		teams:  teams,
		logger: log,
		now:    time.Now,
	}
}

type addMemberRequest struct {
	ID string `json:"id"`
}

type scoreRequest struct {
	Members []domain.Participant `json:"members"`
}

// List handles GET /api/admin/teams?q=&filter=
// Stats and skill analysis always describe every team; only the team list is filtered.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, ok := service.ParseTeamFilter(q.Get("filter"))
	if !ok {
		respondError(w, r, errors.NewValidationError("Invalid team filter", map[string]interface{}{"filter": q.Get("filter")}), h.logger)
		return
	}

	overview, err := h.teams.Overview(r.Context())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	view := *overview
	view.Teams = h.teams.Filter(overview.Teams, q.Get("q"), filter)
	respondJSON(w, http.StatusOK, view)
}

// Export handles GET /api/admin/teams/export
func (h *TeamHandler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.teams.ExportCSV(r.Context(), &buf); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	filename := service.ExportFilename(h.now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(utf8BOM); err != nil {
		logger.FromContext(r.Context(), h.logger).WithError(err).Error("CSV write failed (BOM)")
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContext(r.Context(), h.logger).WithError(err).Error("CSV write failed")
	}
}

// UpdateStatus handles PATCH /api/admin/teams/{name}/status
func (h *TeamHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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

	name := chi.URLParam(r, "name")
	updated, err := h.teams.UpdateTeamStatus(r.Context(), name, status)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	adminLogger(r, h.logger).WithFields(map[string]interface{}{
		"team":    name,
		"status":  status,
		"updated": updated,
	}).Info("Admin updated team status")

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"updated": updated,
	})
}

// Suggestions handles GET /api/admin/teams/{name}/suggestions
func (h *TeamHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.teams.Suggestions(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"suggestions": suggestions})
}

// AddMember handles POST /api/admin/teams/{name}/members
func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	if req.ID == "" {
		respondError(w, r, errors.NewValidationError("id is required", nil), h.logger)
		return
	}

	name := chi.URLParam(r, "name")
	if err := h.teams.AddMember(r.Context(), name, req.ID); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	adminLogger(r, h.logger).WithFields(map[string]interface{}{
		"team":            name,
		"registration_id": req.ID,
	}).Info("Admin added team member")

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// RemoveMember handles DELETE /api/admin/teams/members/{id}
func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	reg, err := h.teams.RemoveMember(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	adminLogger(r, h.logger).WithField("registration_id", reg.ID).Info("Admin removed team member")

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"registration": reg,
	})
}

// Score handles POST /api/score
func (h *TeamHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, h.teams.Score(req.Members))
}

// RegisterAdminRoutes registers the team management endpoints. The caller
// is responsible for guarding r with admin auth.
func (h *TeamHandler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/teams", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/export", h.Export)
		r.Delete("/members/{id}", h.RemoveMember)
		r.Patch("/{name}/status", h.UpdateStatus)
		r.Get("/{name}/suggestions", h.Suggestions)
		r.Post("/{name}/members", h.AddMember)
	})
}
