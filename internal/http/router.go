package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router wraps http.ServeMux with per-route method checks.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// HandleHandler registers a plain http.Handler (metrics).
func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func method(m string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != m {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, req)
	}
}

// RegisterMemberRoutes public registration plus the admin views.
func (r *Router) RegisterMemberRoutes(h *MemberHandler, auth *AuthHandler) {
	r.Handle("/api/v1/members", method(http.MethodPost, h.Metrics.Instrument("register", h.Register)))

	r.Handle("/admin/api/v1/members", method(http.MethodGet, auth.RequireSession(h.Metrics.Instrument("list", h.List))))
	r.Handle("/admin/api/v1/members/stats", method(http.MethodGet, auth.RequireSession(h.Metrics.Instrument("stats", h.Stats))))
	r.Handle("/admin/api/v1/members/export", method(http.MethodGet, auth.RequireSession(h.Metrics.Instrument("export", h.Export))))
}

func (r *Router) RegisterAuthRoutes(a *AuthHandler) {
	r.Handle("/auth/api/v1/login", method(http.MethodPost, a.Login))
	r.Handle("/auth/api/v1/logout", method(http.MethodPost, a.Logout))
	r.Handle("/auth/api/v1/session", method(http.MethodGet, a.RequireSession(a.Session)))
}

func (r *Router) RegisterPollingCenterRoutes(p *PollingCenterHandler) {
	r.Handle("/api/v1/polling-centers", method(http.MethodGet, p.List))
}

// RegisterOpsRoutes health and metrics endpoints.
func (r *Router) RegisterOpsRoutes(m *Metrics) {
	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, Ok("ok"))
	})
	if m != nil {
		r.HandleHandler("/metrics", m.Handler())
	}
}
