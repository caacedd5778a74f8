package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"packageTrackingManagement/internal/config"
	"packageTrackingManagement/internal/testutil"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const testSecret = "web-test-secret"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = testSecret
	return New(cfg, nil)
}

func withSessionCookie(t *testing.T, r *http.Request, userID int64, name, role string) {
	t.Helper()
	token := testutil.GenerateJWTHS256(t, testSecret, userID, name, role)
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
}

func TestSessionFromRequest(t *testing.T) {
	s := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if sess := s.sessionFromRequest(r); sess != nil {
		t.Errorf("no cookie must mean no session, got %+v", sess)
	}

	r = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "not-a-jwt"})
	if sess := s.sessionFromRequest(r); sess != nil {
		t.Errorf("garbage cookie must mean no session, got %+v", sess)
	}

	r = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	withSessionCookie(t, r, 7, "alice", "client")
	sess := s.sessionFromRequest(r)
	if sess == nil {
		t.Fatal("valid cookie must yield a session")
	}
	if sess.UserID != 7 || sess.Username != "alice" || sess.Role != "client" || sess.Token == "" {
		t.Errorf("unexpected session: %+v", sess)
	}
}

func TestRequireRole(t *testing.T) {
	s := newTestServer(t)
	var got *session
	h := s.requireRole("admin", func(w http.ResponseWriter, r *http.Request, sess *session) {
		got = sess
		w.WriteHeader(http.StatusOK)
	})

	// Anonymous requests are sent to the login page.
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Errorf("anonymous: status=%d location=%q", w.Code, w.Header().Get("Location"))
	}

	// Wrong role is bounced to the index with a flash.
	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	withSessionCookie(t, r, 7, "alice", "client")
	h(w, r)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Errorf("wrong role: status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
	if got != nil {
		t.Error("handler must not run for the wrong role")
	}

	// Matching role reaches the handler with the session attached.
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/admin", nil)
	withSessionCookie(t, r, 1, "root", "admin")
	h(w, r)
	if w.Code != http.StatusOK || got == nil || got.Username != "root" {
		t.Errorf("admin request: status=%d session=%+v", w.Code, got)
	}

	// "any" accepts every authenticated role.
	anyHandler := s.requireRole("any", func(w http.ResponseWriter, r *http.Request, sess *session) {
		w.WriteHeader(http.StatusOK)
	})
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/packages/1/status", nil)
	withSessionCookie(t, r, 7, "alice", "client")
	anyHandler(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("any-role request: status=%d", w.Code)
	}
}

func TestFlashRoundTrip(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.flash(w, "Package added successfully!", flashSuccess)

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	f := s.popFlash(w2, r)
	if f == nil {
		t.Fatal("flash lost")
	}
	if f.Message != "Package added successfully!" || f.Category != flashSuccess {
		t.Errorf("flash = %+v", f)
	}

	// popFlash clears the cookie so the message shows once.
	cleared := false
	for _, c := range w2.Result().Cookies() {
		if c.Name == flashCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("flash cookie not cleared")
	}

	if f := s.popFlash(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)); f != nil {
		t.Errorf("no pending flash must yield nil, got %+v", f)
	}
}

func TestUserMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{status.Error(codes.NotFound, "package 3 does not exist"), "Error: package 3 does not exist"},
		{status.Error(codes.AlreadyExists, "username or email already exists"), "Error: username or email already exists"},
		{status.Error(codes.Unauthenticated, "invalid credentials"), "invalid credentials"},
		{status.Error(codes.Unavailable, "connection refused"), msgCommunication},
		{status.Error(codes.DeadlineExceeded, "context deadline exceeded"), msgCommunication},
		{status.Error(codes.Internal, "unexpected error"), msgUnexpected},
		{errors.New("plain error"), msgUnexpected},
	}
	for _, c := range cases {
		if got := userMessage(c.err); got != c.want {
			t.Errorf("userMessage(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "GUI OK") {
		t.Errorf("healthz body = %q", w.Body.String())
	}
}
