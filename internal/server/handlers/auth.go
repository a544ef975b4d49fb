package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/AlexTLDR/gather/internal/auth"
)

// HandleAuthPage renders the combined sign-in / sign-up page, or the
// signed-in summary when a session exists.
func HandleAuthPage(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := s.CurrentUser(r)
		s.Render(w, "auth.html", map[string]any{
			"User":          user,
			"Email":         "",
			"GoogleEnabled": s.GetConfig().GoogleClientID != "",
		})
	}
}

// HandleSignUp processes the registration form. On success the user is told
// to check their email; the session is only established after verification.
func HandleSignUp(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Redirect(w, r, "/auth", http.StatusSeeOther)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		name := strings.TrimSpace(r.FormValue("name"))
		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")

		_, err := s.GetAuth().SignUp(email, password, name)
		if err != nil {
			s.Render(w, "auth.html", map[string]any{
				"Error":         userMessage(err, "Could not create your account. Please try again."),
				"Email":         email,
				"GoogleEnabled": s.GetConfig().GoogleClientID != "",
			})
			return
		}

		s.Render(w, "auth.html", map[string]any{
			"Notice":        "Check your email for a verification link!",
			"Email":         "",
			"GoogleEnabled": s.GetConfig().GoogleClientID != "",
		})
	}
}

// HandleSignIn processes the login form and establishes the session.
func HandleSignIn(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Redirect(w, r, "/auth", http.StatusSeeOther)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")

		user, err := s.GetAuth().SignIn(email, password)
		if err != nil {
			s.Render(w, "auth.html", map[string]any{
				"Error":         userMessage(err, "Could not sign you in. Please try again."),
				"Email":         email,
				"GoogleEnabled": s.GetConfig().GoogleClientID != "",
			})
			return
		}

		if err := s.EstablishSession(w, r, user.ID); err != nil {
			http.Error(w, "Failed to save session", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/events", http.StatusSeeOther)
	}
}

// HandleSignOut clears the session and returns to the landing page.
func HandleSignOut(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = s.ClearSession(w, r)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// userMessage returns the auth error's own message when there is one, and
// the generic fallback for everything else (storage failures and the like).
func userMessage(err error, fallback string) string {
	var authError *auth.Error
	if errors.As(err, &authError) {
		return authError.Message
	}
	return fallback
}
