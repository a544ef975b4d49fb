package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AlexTLDR/gather/internal/auth"
	"github.com/AlexTLDR/gather/internal/config"
	"github.com/AlexTLDR/gather/internal/database"
	"github.com/AlexTLDR/gather/internal/server"
)

// recordingMailer captures the verification link instead of sending it.
type recordingMailer struct {
	link string
}

func (m *recordingMailer) SendVerificationLink(email, link string) error {
	m.link = link
	return nil
}

type testApp struct {
	handler http.Handler
	db      *database.DB
	auth    *auth.Service
	mailer  *recordingMailer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		DatabaseURL:   ":memory:",
		SessionSecret: "test-secret",
		BaseURL:       "http://localhost:8080",
	}

	mailer := &recordingMailer{}
	authService := auth.New(db, mailer, cfg.BaseURL)
	srv := server.New(cfg, db, authService)

	return &testApp{
		handler: srv.Handler(),
		db:      db,
		auth:    authService,
		mailer:  mailer,
	}
}

func (app *testApp) get(t *testing.T, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) postForm(t *testing.T, target, form string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	return rec
}

// signedUpUser creates a verified account through the real sign-up and
// exchange flow and returns the profile plus a live session cookie.
func (app *testApp) signedUpUser(t *testing.T, email, password, name string) (*database.User, []*http.Cookie) {
	t.Helper()

	authUser, err := app.auth.SignUp(email, password, name)
	if err != nil {
		t.Fatalf("SignUp(%s) error = %v", email, err)
	}

	code := codeFromLink(t, app.mailer.link)
	rec := app.get(t, "/auth/callback?code="+code, nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("callback status = %d, want 303", rec.Code)
	}

	user, err := app.db.GetUserByID(authUser.ID)
	if err != nil || user == nil {
		t.Fatalf("profile row missing for %s: %v", email, err)
	}
	return user, rec.Result().Cookies()
}

func codeFromLink(t *testing.T, link string) string {
	t.Helper()
	idx := strings.Index(link, "code=")
	if idx < 0 {
		t.Fatalf("verification link %q carries no code", link)
	}
	return link[idx+len("code="):]
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, wantLocation string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != wantLocation {
		t.Errorf("Location = %q, want %q", got, wantLocation)
	}
}
