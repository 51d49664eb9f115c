package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type AuthHandler struct {
	Users    *AuthStore
	Sessions *SessionStore
	logger   *zap.Logger
}

func NewAuthHandler(users *AuthStore, sessions *SessionStore, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Sessions: sessions, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
	Username    string `json:"username"`
	ExpiresAt   string `json:"expiresAt"`
}

// Login POST /auth/api/v1/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readBodyJSON(r, 1<<16, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, Fail("username and password are required"))
		return
	}
	u, ok := h.Users.Verify(req.Username, req.Password)
	if !ok {
		h.logger.Warn("admin login rejected", zap.String("username", normalizeUsername(req.Username)))
		writeJSON(w, http.StatusUnauthorized, Fail("invalid credentials"))
		return
	}
	sess, err := h.Sessions.Create(r.Context(), u.Username)
	if err != nil {
		h.logger.Error("create session failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("session unavailable"))
		return
	}
	h.logger.Info("admin logged in", zap.String("username", u.Username))
	writeJSON(w, http.StatusOK, Ok(loginResponse{
		AccessToken: sess.Token,
		Username:    sess.Username,
		ExpiresAt:   sess.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}))
}

// Logout POST /auth/api/v1/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Delete(r.Context(), bearerToken(r)); err != nil {
		h.logger.Warn("delete session failed", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}

// Session GET /auth/api/v1/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Result[any]{Code: ResultTokenExpired, Type: "error", Message: "session expired"})
		return
	}
	writeJSON(w, http.StatusOK, Ok(sess))
}

// RequireSession rejects requests without a live bearer session.
func (h *AuthHandler) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := h.Sessions.Get(r.Context(), bearerToken(r))
		if err != nil {
			if !errors.Is(err, ErrSessionNotFound) {
				h.logger.Error("load session failed", zap.Error(err))
			}
			writeJSON(w, http.StatusUnauthorized, Result[any]{Code: ResultTokenExpired, Type: "error", Message: "session expired"})
			return
		}
		next(w, r.WithContext(withSession(r.Context(), sess)))
	}
}
