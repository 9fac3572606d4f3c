package api

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hostelhunt/internal/models"
)

func methodAllowed(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

func (s *HTTPServer) handleSignUp(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}

	var in models.SignUpInput
	if err := decodeBody(r, &in, func(f url.Values) {
		in = models.SignUpInput{Name: f.Get("name"), Email: f.Get("email"), Password: f.Get("password"), Role: f.Get("role")}
	}); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := s.account.SignUp(r.Context(), ClientID(r.Context()), in)
	if err != nil {
		s.fail(w, r, err, "/signup")
		return
	}

	notice := "Account created, logged in as " + session.Email
	s.succeed(w, r, http.StatusCreated, map[string]any{
		"session":     session,
		"destination": models.DestinationListing,
		"notice":      notice,
	}, string(models.DestinationListing), notice)
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body, func(f url.Values) {
		body.Email, body.Password = f.Get("email"), f.Get("password")
	}); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.account.LogIn(r.Context(), ClientID(r.Context()), body.Email, body.Password)
	if err != nil {
		s.fail(w, r, err, "/login")
		return
	}

	notice := "Welcome back, " + res.Session.Name
	s.succeed(w, r, http.StatusOK, map[string]any{
		"session":     res.Session,
		"destination": res.Destination,
		"notice":      notice,
	}, string(res.Destination), notice)
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}

	_ = s.account.LogOut(r.Context(), ClientID(r.Context()))
	s.succeed(w, r, http.StatusOK, map[string]any{
		"destination": models.DestinationListing,
		"notice":      "Logged out",
	}, string(models.DestinationListing), "Logged out")
}

func (s *HTTPServer) handleSession(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}

	clientID := ClientID(r.Context())
	session, err := s.sessions.GetSession(r.Context(), clientID)
	if err != nil {
		s.fail(w, r, err, "/")
		return
	}
	selected, err := s.sessions.GetSelectedHostel(r.Context(), clientID)
	if err != nil {
		s.fail(w, r, err, "/")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"client_id":       clientID,
		"session":         session,
		"selected_hostel": selected,
	})
}

func (s *HTTPServer) handleHostels(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}

	hostels, err := s.catalog.ListAll(r.Context())
	if err != nil {
		s.fail(w, r, err, "/")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hostels": hostels})
}

func searchQuery(r *http.Request) models.SearchQuery {
	q := r.URL.Query()
	return models.SearchQuery{
		Location: q.Get("location"),
		MaxPrice: formFloat(q.Get("max_price")),
	}
}

func (s *HTTPServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}

	hostels, err := s.catalog.Search(r.Context(), searchQuery(r))
	if err != nil {
		s.fail(w, r, err, "/")
		return
	}

	resp := map[string]any{"hostels": hostels}
	if len(hostels) == 0 {
		resp["notice"] = models.NoticeNoResults
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) handleSelect(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}

	var body struct {
		HostelID string `json:"hostel_id"`
	}
	if err := decodeBody(r, &body, func(f url.Values) { body.HostelID = f.Get("hostel_id") }); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hostel, err := s.catalog.SelectForBooking(r.Context(), ClientID(r.Context()), strings.TrimSpace(body.HostelID))
	if err != nil {
		s.fail(w, r, err, "/")
		return
	}

	s.succeed(w, r, http.StatusOK, map[string]any{
		"hostel":      hostel,
		"destination": models.DestinationBooking,
	}, string(models.DestinationBooking), "")
}

func (s *HTTPServer) handleOwnerHostels(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	session, err := s.sessions.GetSession(r.Context(), ClientID(r.Context()))
	if err != nil {
		s.fail(w, r, err, "/owner")
		return
	}

	if r.Method == http.MethodGet {
		hostels, err := s.owner.ListMine(r.Context(), session)
		if err != nil {
			s.fail(w, r, err, "/owner")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"hostels": hostels})
		return
	}

	var in models.AddHostelInput
	if err := decodeBody(r, &in, func(f url.Values) {
		in = models.AddHostelInput{
			Name:        f.Get("name"),
			Location:    f.Get("location"),
			Rooms:       formFloat(f.Get("rooms")),
			Type:        f.Get("type"),
			Description: f.Get("description"),
		}
	}); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hostel, err := s.owner.AddHostel(r.Context(), session, in)
	if err != nil {
		s.fail(w, r, err, "/owner")
		return
	}

	s.succeed(w, r, http.StatusCreated, map[string]any{
		"hostel": hostel,
		"notice": "Hostel added",
	}, string(models.DestinationOwner), "Hostel added")
}

func (s *HTTPServer) handleBookings(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}

	var in models.BookingInput
	if err := decodeBody(r, &in, func(f url.Values) {
		in = models.BookingInput{
			Name:       f.Get("name"),
			Email:      f.Get("email"),
			HostelName: f.Get("hostel_name"),
			RoomType:   f.Get("room_type"),
			From:       f.Get("from"),
			To:         f.Get("to"),
		}
	}); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := s.booking.Checkout(r.Context(), ClientID(r.Context()), in)
	if err != nil {
		s.fail(w, r, err, "/booking")
		return
	}

	notice := "Booking confirmed! ID: " + booking.ID
	s.succeed(w, r, http.StatusCreated, map[string]any{
		"booking": booking,
		"notice":  notice,
	}, string(models.DestinationBooking), notice)
}

func (s *HTTPServer) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}

	users, err := s.admin.ListUsers(r.Context())
	if err != nil {
		s.fail(w, r, err, "/admin")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (s *HTTPServer) handleAdminHostels(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}

	hostels, err := s.admin.ListHostels(r.Context())
	if err != nil {
		s.fail(w, r, err, "/admin")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hostels": hostels})
}

type deleteRequest struct {
	Email     string `json:"email"`
	ID        string `json:"id"`
	Confirmed bool   `json:"confirmed"`
}

func decodeDelete(r *http.Request) (deleteRequest, error) {
	var body deleteRequest
	err := decodeBody(r, &body, func(f url.Values) {
		body = deleteRequest{Email: f.Get("email"), ID: f.Get("id"), Confirmed: formBool(f.Get("confirmed"))}
	})
	return body, err
}

func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}

	body, err := decodeDelete(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	removed, err := s.admin.DeleteUser(r.Context(), body.Email, body.Confirmed)
	if err != nil {
		s.fail(w, r, err, "/admin")
		return
	}

	s.succeed(w, r, http.StatusOK, map[string]any{"removed": removed}, "/admin",
		fmt.Sprintf("Removed %d user(s)", removed))
}

func (s *HTTPServer) handleDeleteHostel(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}

	body, err := decodeDelete(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	removed, err := s.admin.DeleteHostel(r.Context(), body.ID, body.Confirmed)
	if err != nil {
		s.fail(w, r, err, "/admin")
		return
	}

	s.succeed(w, r, http.StatusOK, map[string]any{"removed": removed}, "/admin",
		fmt.Sprintf("Removed %d hostel(s)", removed))
}

func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}

	name := fmt.Sprintf("hostelhunt_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	var buf bytes.Buffer
	if err := s.admin.Export(r.Context(), &buf); err != nil {
		w.Header().Del("Content-Disposition")
		s.fail(w, r, err, "/admin")
		return
	}
	_, _ = w.Write(buf.Bytes())
}
