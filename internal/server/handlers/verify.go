package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/AlexTLDR/gather/internal/auth"
)

// Redirect error codes the callback is allowed to emit for its own
// failures. Provider-supplied error codes pass through unchanged.
const (
	errCodeExchangeFailed = "exchange_failed"
	errCodeUnexpected     = "unexpected_error"
)

func redirectToVerify(w http.ResponseWriter, r *http.Request, params url.Values) {
	http.Redirect(w, r, "/auth/verify?"+params.Encode(), http.StatusSeeOther)
}

// HandleAuthCallback is the landing point for email verification links. It
// never renders HTML; every outcome is a redirect to /auth/verify carrying
// either success=true or an error code plus description.
func HandleAuthCallback(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		// Provider-reported errors pass through untouched, no exchange attempted.
		if errCode := q.Get("error"); errCode != "" {
			desc := q.Get("error_description")
			if desc == "" {
				desc = "Verification failed"
			}
			redirectToVerify(w, r, url.Values{
				"error":             {errCode},
				"error_description": {desc},
			})
			return
		}

		if code := q.Get("code"); code != "" {
			user, err := s.GetAuth().ExchangeCode(code)
			if err != nil {
				var authError *auth.Error
				if errors.As(err, &authError) {
					redirectToVerify(w, r, url.Values{
						"error":             {errCodeExchangeFailed},
						"error_description": {authError.Message},
					})
					return
				}
				// Internal detail stays out of the user-facing URL.
				redirectToVerify(w, r, url.Values{
					"error":             {errCodeUnexpected},
					"error_description": {"An error occurred during verification"},
				})
				return
			}

			// Sign the freshly verified user in; the redirect still succeeds
			// if the cookie cannot be written.
			_ = s.EstablishSession(w, r, user.ID)
			redirectToVerify(w, r, url.Values{"success": {"true"}})
			return
		}

		// A bare visit from an email link counts as verified.
		redirectToVerify(w, r, url.Values{"success": {"true"}})
	}
}

// HandleVerifyStatus renders the terminal verification state. Parameter
// precedence: explicit success, then explicit error, then a session check.
func HandleVerifyStatus(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if q.Get("success") == "true" {
			s.Render(w, "verify.html", map[string]any{
				"Status":  "success",
				"Message": "Your email has been successfully verified!",
			})
			return
		}

		if q.Get("error") != "" {
			message := q.Get("error_description")
			if message == "" {
				message = "Verification failed"
			}
			s.Render(w, "verify.html", map[string]any{
				"Status":  "error",
				"Message": message,
			})
			return
		}

		// No parameters: fall back to the session.
		user, err := s.CurrentUser(r)
		switch {
		case err != nil:
			s.Render(w, "verify.html", map[string]any{
				"Status":  "error",
				"Message": "Error checking verification status",
			})
		case user != nil:
			s.Render(w, "verify.html", map[string]any{
				"User":    user,
				"Status":  "success",
				"Message": "Your email has been successfully verified!",
			})
		default:
			s.Render(w, "verify.html", map[string]any{
				"Status":  "error",
				"Message": "Unable to verify email status",
			})
		}
	}
}
