package handlers

import (
	"net/http"
	"strings"
	"time"
)

// Format produced by <input type="datetime-local">.
const dateInputLayout = "2006-01-02T15:04"

// HandleNewEvent renders the event creation form. Wrapped in requireAuth.
func HandleNewEvent(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := s.CurrentUser(r)
		s.Render(w, "event_new.html", map[string]any{
			"User":        user,
			"Title":       "",
			"Description": "",
			"Date":        "",
			"City":        "",
		})
	}
}

// HandleCreateEvent processes the event creation form. Wrapped in
// requireAuth. Events are immutable once created.
func HandleCreateEvent(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Redirect(w, r, "/events/new", http.StatusSeeOther)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		user, err := s.CurrentUser(r)
		if err != nil || user == nil {
			http.Redirect(w, r, "/auth", http.StatusSeeOther)
			return
		}

		title := strings.TrimSpace(r.FormValue("title"))
		description := strings.TrimSpace(r.FormValue("description"))
		dateStr := r.FormValue("date")
		city := strings.TrimSpace(r.FormValue("city"))

		renderError := func(msg string) {
			s.Render(w, "event_new.html", map[string]any{
				"User":        user,
				"Error":       msg,
				"Title":       title,
				"Description": description,
				"Date":        dateStr,
				"City":        city,
			})
		}

		if title == "" || dateStr == "" || city == "" {
			renderError("Title, date and city are required")
			return
		}

		date, err := time.ParseInLocation(dateInputLayout, dateStr, time.Local)
		if err != nil {
			renderError("Invalid date format")
			return
		}

		event, err := s.GetDB().CreateEvent(title, description, date, city, user.ID)
		if err != nil {
			renderError("Could not create the event. Please try again.")
			return
		}

		http.Redirect(w, r, "/events/"+event.ID, http.StatusSeeOther)
	}
}
