package httpapi

import "net/http"

// NewMux returns the raw mux so main() can wrap it with middleware.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Search
	srh := SearchHandler{Searcher: d.Searcher, Hub: d.Hub}
	mux.HandleFunc("/api/search/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: srh.Run,
	}))
	mux.HandleFunc("/api/search/suggestions", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: srh.Suggestions,
	}))
	mux.HandleFunc("/api/search/trending", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: srh.Trending,
	}))

	// Leads
	lh := LeadsHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/api/leads", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  lh.List,
		http.MethodPost: lh.Save,
	}))
	mux.HandleFunc("/api/leads/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: lh.DeleteByPath, // expects /api/leads/{id}
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		Hub:         d.Hub,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/api/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/api/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/api/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/imap", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetIMAPPassword,
	}))
	mux.HandleFunc("/api/secrets/smtp", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetSMTPPassword,
	}))
	mux.HandleFunc("/api/secrets/llm", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetLLMKey,
	}))

	// Outreach
	oh := OutreachHandler{
		DB:        d.DB,
		CfgVal:    d.CfgVal,
		Hub:       d.Hub,
		NewWriter: d.NewWriter,
		NewMailer: d.NewMailer,
	}
	mux.HandleFunc("/api/outreach/message", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: oh.Draft,
	}))
	mux.HandleFunc("/api/outreach/send", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: oh.Send,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/api/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
