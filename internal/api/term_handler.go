package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yodaslang/yodas-api/internal/api/shared"
	"github.com/yodaslang/yodas-api/internal/domain"
	"github.com/yodaslang/yodas-api/internal/platform/logger"
	"github.com/yodaslang/yodas-api/internal/platform/sqlstore"
	"github.com/yodaslang/yodas-api/internal/service"
)

// TermHandler serves the per-language term tables.
type TermHandler struct {
	terms  service.TermService
	logger *slog.Logger
}

// NewTermHandler creates a TermHandler.
func NewTermHandler(terms service.TermService, logger *slog.Logger) *TermHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TermHandler{
		terms:  terms,
		logger: logger.With(slog.String("component", "term_handler")),
	}
}

// ListAll handles GET /data/all/{lang}.
func (h *TermHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	terms, err := h.terms.ListAll(r.Context(), chi.URLParam(r, "lang"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list terms")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, terms)
}

// ListPage handles GET /data/fetch/{lang}?page=&limit=.
func (h *TermHandler) ListPage(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", sqlstore.DefaultPageSize)

	terms, err := h.terms.ListPage(r.Context(), chi.URLParam(r, "lang"), page, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list terms")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, terms)
}

// Count handles GET /data/fetchSize/{lang}.
func (h *TermHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.terms.Count(r.Context(), chi.URLParam(r, "lang"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to count terms")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SizeResponse{Size: n})
}

// Random handles GET /data/random/{lang}?numOfItems=.
func (h *TermHandler) Random(w http.ResponseWriter, r *http.Request) {
	n := queryInt(r, "numOfItems", sqlstore.DefaultRandomCount)

	terms, err := h.terms.Random(r.Context(), chi.URLParam(r, "lang"), n)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to select terms")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, terms)
}

// AddMany handles POST /ops/addData/{lang}. The body is a JSON array of
// {word, definition} entries.
func (h *TermHandler) AddMany(w http.ResponseWriter, r *http.Request) {
	var entries []domain.TermEntry
	if err := shared.DecodeJSON(w, r, &entries); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Entries array is required", err)
		return
	}
	if len(entries) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Entries array is required")
		return
	}

	n, err := h.terms.AddMany(r.Context(), chi.URLParam(r, "lang"), entries)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add entries")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, AddTermsResponse{Message: "Entries added successfully", Count: n})
}

// RemoveByWord handles DELETE /ops/removeData/{lang}?word=.
func (h *TermHandler) RemoveByWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	n, err := h.terms.RemoveByWord(r.Context(), chi.URLParam(r, "lang"), r.URL.Query().Get("word"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to remove entry")
		return
	}
	if n == 0 {
		log.Debug("remove matched no term", slog.String("word", r.URL.Query().Get("word")))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, RemoveTermResponse{Message: "Entry removed successfully", Deleted: n})
}
