package handlers

import (
	"net/http"
	"time"

	"github.com/AlexTLDR/gather/internal/auth"
	"github.com/AlexTLDR/gather/internal/config"
	"github.com/AlexTLDR/gather/internal/database"
)

// Server interface defines the methods needed by handlers. The concrete
// server owns the session store; handlers only see these operations, so
// there is a single place session state is read or written.
type Server interface {
	GetDB() *database.DB
	GetConfig() *config.Config
	GetAuth() *auth.Service
	CurrentUser(r *http.Request) (*database.User, error)
	EstablishSession(w http.ResponseWriter, r *http.Request, userID string) error
	ClearSession(w http.ResponseWriter, r *http.Request) error
	Render(w http.ResponseWriter, name string, data any)
}

// HandleHome renders the landing page.
func HandleHome(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		user, _ := s.CurrentUser(r)
		s.Render(w, "home.html", map[string]any{"User": user})
	}
}

// HandleEvents renders the upcoming-events listing: everything dated now or
// later, soonest first, with the organizer shown next to each event. The
// full set is re-fetched on every load.
func HandleEvents(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := s.CurrentUser(r)

		events, err := s.GetDB().ListUpcomingEvents(time.Now())
		if err != nil {
			s.Render(w, "events.html", map[string]any{
				"User":  user,
				"Error": "Could not load events. Please try again.",
			})
			return
		}

		s.Render(w, "events.html", map[string]any{
			"User":   user,
			"Events": events,
		})
	}
}
