package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"packageTrackingManagement/internal/rpc"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "GUI OK")
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(r)
	switch {
	case sess == nil:
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case sess.Role == "admin":
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if s.sessionFromRequest(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, r, "login.html", "Login", nil, nil)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		s.flash(w, "Username and password are required.", flashWarning)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	dir, err := s.directoryClient(r.Context())
	if err != nil {
		s.flash(w, msgServiceUnavailable, flashDanger)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	resp, err := dir.Login(r.Context(), username, password)
	if err != nil {
		s.flash(w, userMessage(err), flashDanger)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	s.setSession(w, resp.Token)
	s.flash(w, "Logged in as "+resp.Role+".", flashSuccess)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	if s.sessionFromRequest(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, r, "register.html", "Register", nil, nil)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	email := strings.TrimSpace(r.FormValue("email"))
	if username == "" || password == "" || email == "" {
		s.flash(w, "Username, password, and email are required.", flashWarning)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	dir, err := s.directoryClient(r.Context())
	if err != nil {
		s.flash(w, msgServiceUnavailable, flashDanger)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	if err := dir.Register(r.Context(), username, password, email); err != nil {
		s.flash(w, userMessage(err), flashDanger)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	s.flash(w, "Registration successful. Please log in.", flashSuccess)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w)
	s.flash(w, "Logged out.", flashSuccess)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type dashboardData struct {
	Packages []rpc.PackageInfo
	Query    string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, sess *session) {
	dir, err := s.directoryClient(r.Context())
	if err != nil {
		s.flash(w, msgServiceUnavailable, flashDanger)
		s.render(w, r, "dashboard.html", "My Packages", sess, dashboardData{})
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	var packages []rpc.PackageInfo
	if query != "" {
		packages, err = dir.SearchPackages(r.Context(), sess.Token, sess.UserID, query)
	} else {
		packages, err = dir.ListPackages(r.Context(), sess.Token, sess.UserID)
	}
	if err != nil {
		s.flash(w, userMessage(err), flashDanger)
		packages = nil
	}
	s.render(w, r, "dashboard.html", "My Packages", sess, dashboardData{Packages: packages, Query: query})
}

type statusData struct {
	PackageID int64
	History   []rpc.TrackingStatus
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request, sess *session) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		s.flash(w, "A valid package id is required.", flashWarning)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	dir, err := s.directoryClient(r.Context())
	if err != nil {
		s.flash(w, msgServiceUnavailable, flashDanger)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	history, err := dir.CheckStatus(r.Context(), sess.Token, id)
	if err != nil {
		s.flash(w, userMessage(err), flashDanger)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, r, "status.html", "Tracking History", sess, statusData{PackageID: id, History: history})
}

type adminData struct {
	Users    []rpc.UserSelectionInfo
	Packages []rpc.PackageInfoAdmin
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request, sess *session) {
	dir, err := s.directoryClient(r.Context())
	if err != nil {
		s.flash(w, msgServiceUnavailable, flashDanger)
		s.render(w, r, "admin.html", "Administration", sess, adminData{})
		return
	}
	// The two lists are independent; one failing must not blank the other.
	var data adminData
	if data.Users, err = dir.ListAllUsers(r.Context(), sess.Token); err != nil {
		s.flash(w, userMessage(err), flashDanger)
	}
	if data.Packages, err = dir.ListAllPackages(r.Context(), sess.Token); err != nil {
		s.flash(w, userMessage(err), flashDanger)
	}
	s.render(w, r, "admin.html", "Administration", sess, data)
}

func (s *Server) handleAddPackage(w http.ResponseWriter, r *http.Request, sess *session) {
	senderID, err1 := strconv.ParseInt(r.FormValue("sender_id"), 10, 64)
	receiverID, err2 := strconv.ParseInt(r.FormValue("receiver_id"), 10, 64)
	name := strings.TrimSpace(r.FormValue("name"))
	senderCity := strings.TrimSpace(r.FormValue("sender_city"))
	destinationCity := strings.TrimSpace(r.FormValue("destination_city"))
	if err1 != nil || err2 != nil || name == "" || senderCity == "" || destinationCity == "" {
		s.flash(w, "Sender, receiver, name, and both cities are required.", flashWarning)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	tc, err := s.trackingClient(r.Context())
	if err != nil {
		s.flash(w, msgServiceUnavailable, flashDanger)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	id, err := tc.AddPackage(r.Context(), sess.Token, &rpc.AddPackageRequest{
		SenderID:        senderID,
		ReceiverID:      receiverID,
		Name:            name,
		Description:     strings.TrimSpace(r.FormValue("description")),
		SenderCity:      senderCity,
		DestinationCity: destinationCity,
	})
	if err != nil {
		s.flash(w, userMessage(err), flashDanger)
	} else {
		s.flash(w, fmt.Sprintf("Package %d created.", id), flashSuccess)
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleRemovePackage(w http.ResponseWriter, r *http.Request, sess *session) {
	id, err := strconv.ParseInt(r.FormValue("package_id"), 10, 64)
	if err != nil || id <= 0 {
		s.flash(w, "A valid package id is required.", flashWarning)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	tc, err := s.trackingClient(r.Context())
	if err != nil {
		s.flash(w, msgServiceUnavailable, flashDanger)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	if err := tc.RemovePackage(r.Context(), sess.Token, id); err != nil {
		s.flash(w, userMessage(err), flashDanger)
	} else {
		s.flash(w, fmt.Sprintf("Package %d removed.", id), flashSuccess)
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleRegisterTracking(w http.ResponseWriter, r *http.Request, sess *session) {
	id, err := strconv.ParseInt(r.FormValue("package_id"), 10, 64)
	city := strings.TrimSpace(r.FormValue("city"))
	timestamp := strings.TrimSpace(r.FormValue("timestamp"))
	if err != nil || id <= 0 || city == "" || timestamp == "" {
		s.flash(w, "Package id, city, and timestamp are required.", flashWarning)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	tc, err := s.trackingClient(r.Context())
	if err != nil {
		s.flash(w, msgServiceUnavailable, flashDanger)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	if err := tc.RegisterTracking(r.Context(), sess.Token, id, city, timestamp); err != nil {
		s.flash(w, userMessage(err), flashDanger)
	} else {
		s.flash(w, fmt.Sprintf("Tracking registered for package %d.", id), flashSuccess)
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request, sess *session) {
	id, err := strconv.ParseInt(r.FormValue("package_id"), 10, 64)
	city := strings.TrimSpace(r.FormValue("city"))
	timestamp := strings.TrimSpace(r.FormValue("timestamp"))
	if err != nil || id <= 0 || city == "" || timestamp == "" {
		s.flash(w, "Package id, city, and timestamp are required.", flashWarning)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	tc, err := s.trackingClient(r.Context())
	if err != nil {
		s.flash(w, msgServiceUnavailable, flashDanger)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	if err := tc.UpdateStatus(r.Context(), sess.Token, id, city, timestamp); err != nil {
		s.flash(w, userMessage(err), flashDanger)
	} else {
		s.flash(w, fmt.Sprintf("Status updated for package %d.", id), flashSuccess)
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
