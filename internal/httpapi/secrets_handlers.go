package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"leadfinder-engine/internal/config"
	"leadfinder-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setSecretReq struct {
	Value string `json:"value"`
}

func (h SecretsHandler) storeFor(account string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setSecretReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := secrets.Set(account, req.Value); err != nil {
			http.Error(w, "failed to store secret: "+err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h SecretsHandler) SetIMAPPassword(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)
	h.storeFor(secrets.IMAPAccount(cfg))(w, r)
}

func (h SecretsHandler) SetSMTPPassword(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)
	h.storeFor(secrets.SMTPAccount(cfg))(w, r)
}

func (h SecretsHandler) SetLLMKey(w http.ResponseWriter, r *http.Request) {
	h.storeFor(secrets.AccountLLMKey)(w, r)
}
