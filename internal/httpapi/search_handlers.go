package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"leadfinder-engine/internal/domain"
	"leadfinder-engine/internal/events"
	"leadfinder-engine/internal/search"
)

type SearchHandler struct {
	Searcher Searcher
	Hub      *events.Hub
}

func (h SearchHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req domain.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_query", "query is required")
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeSearchStarted, 1, map[string]any{
		"query": req.Query, "platforms": req.Platforms,
	}))

	res, err := h.Searcher.Search(r.Context(), req)
	if err != nil {
		var unknown *search.UnknownPlatformError
		if errors.As(err, &unknown) {
			WriteError(w, r, http.StatusBadRequest, "unknown_platform", err.Error())
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "search_failed", err.Error())
		return
	}

	h.Hub.Publish(events.MakeEvent(reqID, events.TypeSearchFinished, 1, map[string]any{
		"query": req.Query, "total_results": res.TotalResults,
	}))
	writeJSON(w, res)
}

func (h SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	writeJSON(w, map[string]any{
		"query":       q,
		"suggestions": search.Suggestions(q),
	})
}

func (h SearchHandler) Trending(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"trending": search.Trending(),
	})
}
