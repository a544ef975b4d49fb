package server

import (
	"errors"
	"net/http"

	"github.com/AlexTLDR/gather/internal/auth"
	"github.com/AlexTLDR/gather/internal/config"
	"github.com/AlexTLDR/gather/internal/database"
	"github.com/AlexTLDR/gather/internal/server/handlers"
	"github.com/gorilla/sessions"
)

const sessionName = "auth-session"

type Server struct {
	config       *config.Config
	db           *database.DB
	auth         *auth.Service
	sessionStore *sessions.CookieStore
	router       *http.ServeMux
}

func New(cfg *config.Config, db *database.DB, authService *auth.Service) *Server {
	s := &Server{
		config:       cfg,
		db:           db,
		auth:         authService,
		sessionStore: sessions.NewCookieStore([]byte(cfg.SessionSecret)),
		router:       http.NewServeMux(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Public routes
	s.router.HandleFunc("/", handlers.HandleHome(s))
	s.router.HandleFunc("/events", handlers.HandleEvents(s))
	s.router.HandleFunc("/events/", handlers.HandleEvent(s))

	// Auth routes
	s.router.HandleFunc("/auth", handlers.HandleAuthPage(s))
	s.router.HandleFunc("/auth/signup", handlers.HandleSignUp(s))
	s.router.HandleFunc("/auth/signin", handlers.HandleSignIn(s))
	s.router.HandleFunc("/auth/logout", handlers.HandleSignOut(s))
	s.router.HandleFunc("/auth/callback", handlers.HandleAuthCallback(s))
	s.router.HandleFunc("/auth/verify", handlers.HandleVerifyStatus(s))

	// Event creation (protected)
	s.router.HandleFunc("/events/new", s.requireAuth(handlers.HandleNewEvent(s)))
	s.router.HandleFunc("/events/create", s.requireAuth(handlers.HandleCreateEvent(s)))

	// Google OAuth, only when configured
	if s.config.GoogleClientID != "" {
		s.router.HandleFunc("/auth/google", s.handleGoogleLogin)
		s.router.HandleFunc("/auth/google/callback", s.handleGoogleCallback)
	}
}

func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the route table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// GetDB implements handlers.Server
func (s *Server) GetDB() *database.DB {
	return s.db
}

// GetConfig implements handlers.Server
func (s *Server) GetConfig() *config.Config {
	return s.config
}

// GetAuth implements handlers.Server
func (s *Server) GetAuth() *auth.Service {
	return s.auth
}

// CurrentUser resolves the session cookie to a profile row. Returns
// (nil, nil) for anonymous visitors and stale sessions; an error means the
// lookup itself failed.
func (s *Server) CurrentUser(r *http.Request) (*database.User, error) {
	session, _ := s.sessionStore.Get(r, sessionName)
	userID, _ := session.Values["user_id"].(string)
	if userID == "" {
		return nil, nil
	}

	user, err := s.auth.CurrentUser(r.Context(), userID)
	if errors.Is(err, auth.ErrNotAuthenticated) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// EstablishSession implements handlers.Server
func (s *Server) EstablishSession(w http.ResponseWriter, r *http.Request, userID string) error {
	session, _ := s.sessionStore.Get(r, sessionName)
	session.Values["user_id"] = userID
	return session.Save(r, w)
}

// ClearSession implements handlers.Server
func (s *Server) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.sessionStore.Get(r, sessionName)
	session.Values["user_id"] = ""
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// requireAuth redirects anonymous visitors to the sign-in page.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.CurrentUser(r)
		if err != nil || user == nil {
			http.Redirect(w, r, "/auth", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}
