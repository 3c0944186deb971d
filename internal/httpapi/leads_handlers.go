package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"leadfinder-engine/internal/domain"
	"leadfinder-engine/internal/events"
	"leadfinder-engine/internal/store"
)

type LeadsHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

func (h LeadsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	leads, err := store.ListLeads(r.Context(), h.DB, store.ListLeadsOpts{
		Sort: q.Get("sort"), Limit: limit,
	})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}
	if leads == nil {
		leads = []store.Lead{}
	}
	writeJSON(w, leads)
}

type saveLeadReq struct {
	Job   domain.JobPosting `json:"job"`
	Notes string            `json:"notes"`
}

func (h LeadsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveLeadReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if !req.Job.Identifiable() {
		WriteError(w, r, http.StatusBadRequest, "unidentifiable_job", "job needs a url or a title and company")
		return
	}

	added, err := store.InsertLeadIgnore(h.DB, req.Job, req.Notes)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}

	if added {
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeLeadSaved, 1, map[string]any{
			"title": req.Job.Title, "company": req.Job.Company,
		}))
	}
	writeJSON(w, map[string]any{"ok": true, "added": added})
}

func (h LeadsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/leads/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	deleted, err := store.DeleteLead(h.DB, id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "delete_failed", err.Error())
		return
	}
	if !deleted {
		WriteError(w, r, http.StatusNotFound, "not_found", "no such lead")
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeLeadDeleted, 1, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}
