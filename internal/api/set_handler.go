package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yodaslang/yodas-api/internal/api/shared"
	"github.com/yodaslang/yodas-api/internal/domain"
	"github.com/yodaslang/yodas-api/internal/platform/logger"
	"github.com/yodaslang/yodas-api/internal/redact"
	"github.com/yodaslang/yodas-api/internal/service"
)

// SetHandler serves set lifecycle and browsing requests.
type SetHandler struct {
	sets      service.SetService
	hierarchy *service.HierarchyService
	logger    *slog.Logger
}

// NewSetHandler creates a SetHandler.
func NewSetHandler(sets service.SetService, hierarchy *service.HierarchyService, logger *slog.Logger) *SetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SetHandler{
		sets:      sets,
		hierarchy: hierarchy,
		logger:    logger.With(slog.String("component", "set_handler")),
	}
}

// ListByLanguage handles GET /sets/getSet/{lang}.
func (h *SetHandler) ListByLanguage(w http.ResponseWriter, r *http.Request) {
	sets, err := h.sets.ListSets(r.Context(), chi.URLParam(r, "lang"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list sets")
		return
	}
	if sets == nil {
		sets = []*domain.Set{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, sets)
}

// ListFolders handles GET /sets/folders.
func (h *SetHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.sets.ListFolders(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list folders")
		return
	}
	if folders == nil {
		folders = []string{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, folders)
}

// Hierarchy handles GET /sets/hierarchy.
func (h *SetHandler) Hierarchy(w http.ResponseWriter, r *http.Request) {
	groups, err := h.hierarchy.Hierarchy(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load hierarchy")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, groups)
}

// MessageTermsNotLinked is reported when a set was created but linking its
// terms failed. The set is kept; clients retry the link, not the create.
const MessageTermsNotLinked = "Set created but terms could not be linked"

// Create handles POST /sets. With termIds the set is created first and the
// terms are linked after; a term conflict or a linking failure yields
// status "partial".
func (h *SetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSetRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, domain.NewValidationError("body", "is not valid JSON", err), "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	res, err := h.sets.CreateSetWithTerms(r.Context(), req.Language, req.Name, req.Folder, req.Description, req.TermIDs)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create set")
		return
	}

	resp := CreateSetResponse{
		Status:     res.Status(),
		Set:        res.Set,
		TermReport: res.TermReport,
	}
	if res.LinkErr != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("set created without its terms",
			slog.Int64("set_id", res.Set.ID),
			slog.String("error", redact.Error(res.LinkErr)))
		resp.LinkError = MessageTermsNotLinked
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, resp)
}

// Delete handles DELETE /sets?setName=&setLang=.
func (h *SetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	res, err := h.sets.DeleteSet(r.Context(), q.Get("setName"), q.Get("setLang"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete set")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, res)
}

// DeleteByID handles DELETE /sets/{id}.
func (h *SetHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	res, err := h.sets.DeleteSetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete set")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, res)
}

// UpdateFolder handles PUT /sets/updateSetFolder.
func (h *SetHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	var req UpdateFolderRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, domain.NewValidationError("body", "is not valid JSON", err), "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	res, err := h.sets.UpdateSetFolder(r.Context(), req.Name, req.Language, req.NewFolder)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update folder")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, UpdateFolderResponse{Message: res.Message(), Affected: res.Affected})
}
