package api

import (
	"net/http"

	"github.com/yodaslang/yodas-api/internal/api/shared"
	"github.com/yodaslang/yodas-api/internal/domain"
	"github.com/yodaslang/yodas-api/internal/service"
)

// AssociationHandler serves the terms of a set.
type AssociationHandler struct {
	associations service.AssociationService
}

// NewAssociationHandler creates an AssociationHandler.
func NewAssociationHandler(associations service.AssociationService) *AssociationHandler {
	return &AssociationHandler{associations: associations}
}

// GetTerms handles GET /sets/{id}/terms?lang=.
func (h *AssociationHandler) GetTerms(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	terms, err := h.associations.GetTermsForSet(r.Context(), id, r.URL.Query().Get("lang"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load terms")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, terms)
}

// AddTerms handles POST /sets/{id}/terms. A rejected request is answered
// with 409 and the conflict report.
func (h *AssociationHandler) AddTerms(w http.ResponseWriter, r *http.Request) {
	id, ids, ok := h.decodeTermIDs(w, r)
	if !ok {
		return
	}

	res, err := h.associations.AddTerms(r.Context(), id, ids)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add terms")
		return
	}

	status := http.StatusOK
	if !res.Success {
		status = http.StatusConflict
	}
	shared.RespondWithJSON(w, r, status, res)
}

// RemoveTerms handles DELETE /sets/{id}/terms.
func (h *AssociationHandler) RemoveTerms(w http.ResponseWriter, r *http.Request) {
	id, ids, ok := h.decodeTermIDs(w, r)
	if !ok {
		return
	}

	res, err := h.associations.RemoveTerms(r.Context(), id, ids)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to remove terms")
		return
	}

	status := http.StatusOK
	if !res.Success {
		status = http.StatusConflict
	}
	shared.RespondWithJSON(w, r, status, res)
}

func (h *AssociationHandler) decodeTermIDs(w http.ResponseWriter, r *http.Request) (int64, []int64, bool) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return 0, nil, false
	}

	var req TermIDsRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, domain.NewValidationError("body", "is not valid JSON", err), "")
		return 0, nil, false
	}
	return id, req.TermIDs, true
}
