package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"hostelhunt/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"index", "signup", "login", "owner", "booking", "admin"}

type pageRenderer struct {
	pages map[string]*template.Template
}

func newPageRenderer() (*pageRenderer, error) {
	funcs := template.FuncMap{
		"number": plainNumber,
		"price":  func(v float64) string { return "₹" + plainNumber(v) + " / month" },
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", name, err)
		}
		pages[name] = t
	}
	return &pageRenderer{pages: pages}, nil
}

// plainNumber formats v without an exponent.
func plainNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// pageData is shared by every page. Unused fields stay empty.
type pageData struct {
	Title     string
	Notice    string
	Session   *models.Session
	Hostels   []models.Hostel
	Users     []models.User
	Bookings  []models.Booking
	Selected  *models.Hostel
	Query     models.SearchQuery
	Searched  bool
	NoResults string
}

func (s *HTTPServer) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	t, ok := s.pages.pages[name]
	if !ok {
		writeError(w, http.StatusInternalServerError, "unknown page")
		return
	}
	if data.Notice == "" {
		data.Notice = r.URL.Query().Get("notice")
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		s.logger.Error().Err(err).Str("page", name).Msg("failed to render page")
		http.Error(w, "Something went wrong, please try again", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// currentSession loads the client's session for display. Errors render as logged out.
func (s *HTTPServer) currentSession(r *http.Request) *models.Session {
	session, err := s.sessions.GetSession(r.Context(), ClientID(r.Context()))
	if err != nil {
		return nil
	}
	return session
}

func (s *HTTPServer) pageError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("page data failed")
	http.Error(w, "Something went wrong, please try again", http.StatusInternalServerError)
}

func (s *HTTPServer) handleIndexPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}

	data := pageData{Title: "Find a hostel", Session: s.currentSession(r), Query: searchQuery(r)}
	q := r.URL.Query()
	data.Searched = q.Has("location") || q.Has("max_price")

	var err error
	if data.Searched {
		data.Hostels, err = s.catalog.Search(r.Context(), data.Query)
	} else {
		data.Hostels, err = s.catalog.ListAll(r.Context())
	}
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	if data.Searched && len(data.Hostels) == 0 {
		data.NoResults = models.NoticeNoResults
	}

	s.render(w, r, "index", data)
}

func (s *HTTPServer) handleSignUpPage(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}
	s.render(w, r, "signup", pageData{Title: "Sign up", Session: s.currentSession(r)})
}

func (s *HTTPServer) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}
	s.render(w, r, "login", pageData{Title: "Log in", Session: s.currentSession(r)})
}

func (s *HTTPServer) handleOwnerPage(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}

	session := s.currentSession(r)
	hostels, err := s.owner.ListMine(r.Context(), session)
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	s.render(w, r, "owner", pageData{Title: "Owner dashboard", Session: session, Hostels: hostels})
}

func (s *HTTPServer) handleBookingPage(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}

	selected, err := s.sessions.GetSelectedHostel(r.Context(), ClientID(r.Context()))
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	s.render(w, r, "booking", pageData{Title: "Book a room", Session: s.currentSession(r), Selected: selected})
}

func (s *HTTPServer) handleAdminPage(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}

	ctx := r.Context()
	users, err := s.admin.ListUsers(ctx)
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	hostels, err := s.admin.ListHostels(ctx)
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	bookings, err := s.admin.ListBookings(ctx)
	if err != nil {
		s.pageError(w, r, err)
		return
	}

	s.render(w, r, "admin", pageData{
		Title:    "Admin",
		Session:  s.currentSession(r),
		Users:    users,
		Hostels:  hostels,
		Bookings: bookings,
	})
}
