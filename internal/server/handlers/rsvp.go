package handlers

import (
	"net/http"
	"strings"

	"github.com/AlexTLDR/gather/internal/database"
)

// HandleEvent serves everything under /events/{id}: the event page with its
// RSVP summary on GET, and the RSVP submission on POST to {id}/rsvp.
func HandleEvent(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/events/")
		if path == "" {
			http.Redirect(w, r, "/events", http.StatusSeeOther)
			return
		}

		if eventID, ok := strings.CutSuffix(path, "/rsvp"); ok {
			if r.Method != http.MethodPost {
				http.Redirect(w, r, "/events/"+eventID, http.StatusSeeOther)
				return
			}
			handleRSVPSubmit(s, w, r, eventID)
			return
		}

		renderEventPage(s, w, r, path, "")
	}
}

// handleRSVPSubmit records a Yes/No/Maybe response. An existing response
// for this user and event is moved to the new status; otherwise one is
// created. The uniqueness of the pair is enforced by the store, so two
// racing submissions collapse into one row either way.
func handleRSVPSubmit(s Server, w http.ResponseWriter, r *http.Request, eventID string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	status := r.FormValue("status")
	if !database.ValidRSVPStatus(status) {
		http.Error(w, "Status must be Yes, No or Maybe", http.StatusBadRequest)
		return
	}

	// Authentication is checked before anything is written.
	user, err := s.CurrentUser(r)
	if err != nil {
		renderEventPage(s, w, r, eventID, "Could not check your session. Please try again.")
		return
	}
	if user == nil {
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}

	event, err := s.GetDB().GetEventByID(eventID)
	if err != nil {
		renderEventPage(s, w, r, eventID, "Could not save your RSVP. Please try again.")
		return
	}
	if event == nil {
		http.NotFound(w, r)
		return
	}

	if err := s.GetDB().UpsertRSVP(user.ID, event.ID, status); err != nil {
		renderEventPage(s, w, r, eventID, "Could not save your RSVP. Please try again.")
		return
	}

	// Redirect back to the event page, which re-fetches every RSVP for the
	// event and recomputes the counts.
	http.Redirect(w, r, "/events/"+event.ID, http.StatusSeeOther)
}

// renderEventPage shows one event with zero-filled per-status counts, the
// attendee list, and the viewer's own response if any.
func renderEventPage(s Server, w http.ResponseWriter, r *http.Request, eventID, errorMsg string) {
	user, _ := s.CurrentUser(r)

	event, err := s.GetDB().GetEventByID(eventID)
	if err != nil {
		s.Render(w, "events.html", map[string]any{
			"User":  user,
			"Error": "Could not load the event. Please try again.",
		})
		return
	}
	if event == nil {
		http.NotFound(w, r)
		return
	}

	rsvps, err := s.GetDB().ListRSVPsForEvent(event.ID)
	if err != nil {
		s.Render(w, "event.html", map[string]any{
			"User":   user,
			"Event":  event,
			"Counts": database.RSVPCounts{},
			"Error":  "Could not load RSVPs. Please try again.",
		})
		return
	}

	var userRSVP *database.RSVP
	if user != nil {
		for _, rsvp := range rsvps {
			if rsvp.UserID == user.ID {
				userRSVP = rsvp
				break
			}
		}
	}

	s.Render(w, "event.html", map[string]any{
		"User":     user,
		"Event":    event,
		"RSVPs":    rsvps,
		"Counts":   database.CountRSVPs(rsvps),
		"UserRSVP": userRSVP,
		"Error":    errorMsg,
	})
}
