package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jdm-products/tradechat/internal/chat"
	"github.com/jdm-products/tradechat/internal/domain"
	apperrors "github.com/jdm-products/tradechat/internal/errors"
)

// LeadListResponse is the admin leads listing.
type LeadListResponse struct {
	Leads []*domain.Lead `json:"leads"`
	Count int            `json:"count"`
}

// HandleListLeads handles GET /api/admin/leads.
// Query parameters: reason, team, urgent, limit, offset.
func (h *Handler) HandleListLeads(w http.ResponseWriter, r *http.Request) {
	if h.leadService == nil {
		h.respondError(w, apperrors.New(apperrors.CodeNotFound, "lead storage is not configured"))
		return
	}

	filter, err := parseLeadFilter(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	leads, err := h.leadService.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list leads", zap.Error(err))
		h.respondError(w, err)
		return
	}
	if leads == nil {
		leads = []*domain.Lead{}
	}

	h.respondJSON(w, http.StatusOK, LeadListResponse{
		Leads: leads,
		Count: len(leads),
	})
}

// HandleGetLead handles GET /api/admin/leads/{leadID}.
func (h *Handler) HandleGetLead(w http.ResponseWriter, r *http.Request) {
	if h.leadService == nil {
		h.respondError(w, apperrors.New(apperrors.CodeNotFound, "lead storage is not configured"))
		return
	}

	leadID, err := uuid.Parse(chi.URLParam(r, "leadID"))
	if err != nil {
		h.respondError(w, apperrors.ValidationFailed("invalid lead id"))
		return
	}

	lead, err := h.leadService.Get(r.Context(), leadID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, lead)
}

// parseLeadFilter reads list filters from query parameters.
func parseLeadFilter(r *http.Request) (*domain.LeadListFilter, error) {
	filter := &domain.LeadListFilter{}
	q := r.URL.Query()

	if v := q.Get("reason"); v != "" {
		reason := chat.CaptureReason(v)
		filter.Reason = &reason
	}
	if v := q.Get("team"); v != "" {
		team := v
		filter.Team = &team
	}
	if v := q.Get("urgent"); v != "" {
		urgent, err := strconv.ParseBool(v)
		if err != nil {
			return nil, apperrors.ValidationFailed("urgent must be true or false")
		}
		filter.Urgent = &urgent
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > 500 {
			return nil, apperrors.ValidationFailed("limit must be between 1 and 500")
		}
		filter.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return nil, apperrors.ValidationFailed("offset must be non-negative")
		}
		filter.Offset = offset
	}

	return filter, nil
}
