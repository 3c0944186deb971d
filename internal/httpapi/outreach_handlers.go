package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"

	"leadfinder-engine/internal/config"
	"leadfinder-engine/internal/events"
	"leadfinder-engine/internal/outreach"
	"leadfinder-engine/internal/store"
)

type OutreachHandler struct {
	DB     *sql.DB
	CfgVal *atomic.Value // stores config.Config
	Hub    *events.Hub

	NewWriter func(cfg config.Config) outreach.MessageWriter
	NewMailer func(cfg config.Config) outreach.Mailer
}

type draftReq struct {
	LeadID int64  `json:"lead_id"`
	Tone   string `json:"tone"`
}

func (h OutreachHandler) Draft(w http.ResponseWriter, r *http.Request) {
	var req draftReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	lead, err := store.GetLead(r.Context(), h.DB, req.LeadID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, r, http.StatusNotFound, "not_found", "no such lead")
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "lookup_failed", err.Error())
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	msg, err := h.NewWriter(cfg).Draft(r.Context(), lead, req.Tone)
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "draft_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{"lead_id": lead.ID, "message": msg})
}

type sendReq struct {
	LeadID  int64  `json:"lead_id"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (h OutreachHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_body", "body is required")
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	mailer := h.NewMailer(cfg)
	if !mailer.Ready() {
		WriteError(w, r, http.StatusBadRequest, "smtp_unconfigured", "smtp is not configured")
		return
	}

	if err := mailer.Send(req.To, req.Subject, req.Body); err != nil {
		WriteError(w, r, http.StatusBadGateway, "send_failed", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeOutreachSent, 1, map[string]any{
		"lead_id": req.LeadID, "to": req.To,
	}))
	writeJSON(w, map[string]any{"ok": true})
}
