package service

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mmynk/superlists/internal/auth"
	"github.com/mmynk/superlists/internal/middleware"
)

// LoginHandler serves login links: GET /accounts/login?token=<uid>.
// A valid token sets the session cookie. Every request redirects home.
type LoginHandler struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewLoginHandler creates the handler mounted at auth.LoginPath.
func NewLoginHandler(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *LoginHandler {
	return &LoginHandler{authenticator: authenticator, jwtManager: jwtManager}
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	user, err := h.authenticator.Authenticate(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		slog.Warn("Login link rejected", "error", err)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	token, err := h.jwtManager.Generate(user.Email)
	if err != nil {
		slog.Error("Failed to generate token", "email", user.Email, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.jwtManager.Duration()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	slog.Info("User logged in via link", "email", user.Email)
	http.Redirect(w, r, "/", http.StatusFound)
}
