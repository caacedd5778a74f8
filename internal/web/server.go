// Package web is the presentation layer: it authenticates browsers, renders
// HTML, and delegates all state access to the directory and tracking services.
// It treats the services as opaque: every remote call resolves to either a
// rendered page or a flash message plus redirect, never a raw error.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"packageTrackingManagement/internal/auth"
	"packageTrackingManagement/internal/config"
	"packageTrackingManagement/internal/rpc"
)

// Server carries the web handlers' dependencies.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger

	// Service clients are established lazily, on first use per request, so a
	// service that was down at boot becomes usable again without a restart.
	mu        sync.Mutex
	directory *rpc.DirectoryClient
	tracking  *rpc.TrackingClient
}

// New constructs the web server. Service connections are not attempted here;
// the first request that needs one establishes it.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, logger: logger}
}

// directoryClient returns the directory service client, establishing it if
// needed. A failed attempt is not cached: the next request retries.
func (s *Server) directoryClient(ctx context.Context) (*rpc.DirectoryClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.directory != nil {
		return s.directory, nil
	}
	ctx, cancel := context.WithTimeout(ctx, rpc.DefaultCallTimeout)
	defer cancel()
	c, err := rpc.NewDirectoryClient(ctx, s.cfg.Web.DirectoryEndpoint, rpc.DefaultCallTimeout)
	if err != nil {
		s.logger.Error("directory service unavailable", "endpoint", s.cfg.Web.DirectoryEndpoint, "err", err)
		return nil, err
	}
	s.logger.Info("directory service connected", "operations", len(c.Manifest().Operations))
	s.directory = c
	return c, nil
}

func (s *Server) trackingClient(ctx context.Context) (*rpc.TrackingClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tracking != nil {
		return s.tracking, nil
	}
	ctx, cancel := context.WithTimeout(ctx, rpc.DefaultCallTimeout)
	defer cancel()
	c, err := rpc.NewTrackingClient(ctx, s.cfg.Web.TrackingEndpoint, rpc.DefaultCallTimeout)
	if err != nil {
		s.logger.Error("tracking service unavailable", "endpoint", s.cfg.Web.TrackingEndpoint, "err", err)
		return nil, err
	}
	s.logger.Info("tracking service connected", "operations", len(c.Manifest().Operations))
	s.tracking = c
	return c, nil
}

// Handler returns the route table wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /login", s.handleLoginForm)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /register", s.handleRegisterForm)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("GET /dashboard", s.requireRole("client", s.handleDashboard))
	mux.HandleFunc("GET /packages/{id}/status", s.requireRole("any", s.handleStatus))
	mux.HandleFunc("GET /admin", s.requireRole("admin", s.handleAdmin))
	mux.HandleFunc("POST /admin/packages", s.requireRole("admin", s.handleAddPackage))
	mux.HandleFunc("POST /admin/packages/remove", s.requireRole("admin", s.handleRemovePackage))
	mux.HandleFunc("POST /admin/tracking/register", s.requireRole("admin", s.handleRegisterTracking))
	mux.HandleFunc("POST /admin/tracking/update", s.requireRole("admin", s.handleUpdateStatus))
	return s.logRequests(mux)
}

// statusWriter captures the final status code for the request log.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		s.logger.Info("request",
			"method", r.Method, "path", r.URL.Path,
			"status", sw.status, "dur_ms", time.Since(start).Milliseconds())
	})
}

// requireRole gates a handler on a valid session with the given role
// ("any" accepts every authenticated user).
func (s *Server) requireRole(role string, next func(http.ResponseWriter, *http.Request, *session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.sessionFromRequest(r)
		if sess == nil {
			s.flash(w, "Please log in to access this page.", flashWarning)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if role != "any" && sess.Role != role {
			s.flash(w, "You are not authorized to access this page.", flashDanger)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next(w, r, sess)
	}
}

// session is the authenticated browser identity, recovered from the signed
// session cookie. Token is the raw service token forwarded on RPC calls.
type session struct {
	UserID   int64
	Username string
	Role     string
	Token    string
}

const sessionCookie = "pts_session"

func (s *Server) sessionFromRequest(r *http.Request) *session {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	p, err := auth.ParseToken(c.Value, s.cfg.Auth.JWTSecret)
	if err != nil {
		return nil
	}
	return &session{UserID: p.UserID, Username: p.Name, Role: p.Role, Token: c.Value}
}

func (s *Server) setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
