package httpapi

import (
	"html/template"
	"net/http"
	"strings"

	"rvce-fee-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

// Server-rendered pages are deliberately minimal shells; the spreadsheet
// import and billing views are driven client-side against the JSON API.
var pageTemplates = template.Must(template.New("pages").Parse(`
{{define "index"}}<!DOCTYPE html>
<html><head><title>RVCE Fee Management</title></head>
<body>
<h1>RVCE Fee Management</h1>
<ul>
<li><a href="/login/STUDENT">Student Login</a></li>
<li><a href="/login/ADMIN">Admin Login</a></li>
<li><a href="/login/OWNER">Owner Login</a></li>
<li><a href="/register">Register</a></li>
</ul>
</body></html>{{end}}

{{define "register"}}<!DOCTYPE html>
<html><head><title>Register</title></head>
<body>
<h1>Student Registration</h1>
<form method="post" action="/register">
<input name="name" placeholder="Name">
<input name="dept" placeholder="Department">
<input name="email" placeholder="Email">
<input name="year" placeholder="Year">
<input name="password" type="password" placeholder="Password">
<button type="submit">Register</button>
</form>
</body></html>{{end}}

{{define "login"}}<!DOCTYPE html>
<html><head><title>{{.Role}} Login</title></head>
<body>
<h1>{{.Role}} Login</h1>
<form method="post" action="/login/{{.Role}}">
<input name="username" placeholder="Username">
<input name="password" type="password" placeholder="Password">
<button type="submit">Login</button>
</form>
</body></html>{{end}}

{{define "dashboard"}}<!DOCTYPE html>
<html><head><title>Dashboard</title></head>
<body>
<h1>Dashboard</h1>
<p>Role: {{.Role}}</p>
<p>User: {{.User}}</p>
<p><a href="/total-bill">Total Bill</a> | <a href="/logout">Logout</a></p>
</body></html>{{end}}

{{define "total-bill"}}<!DOCTYPE html>
<html><head><title>Total Bill</title></head>
<body>
<h1>Total Bill</h1>
<div id="pending-fees" data-source="/api/pending-fees"></div>
</body></html>{{end}}
`))

type pageData struct {
	Role string
	User string
}

func renderPage(w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		WriteText(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	if isAuthenticated(r) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	renderPage(w, "index", pageData{})
}

func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if isAuthenticated(r) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	renderPage(w, "register", pageData{})
}

// Register stores the student row exactly as submitted; the password column
// is plaintext, a known weakness carried over from the legacy system.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	if isAuthenticated(r) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		WriteText(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	_, err := s.DB.Exec(`INSERT INTO students (name, dept, email, year, password) VALUES (?,?,?,?,?)`,
		r.FormValue("name"), r.FormValue("dept"), r.FormValue("email"), r.FormValue("year"), r.FormValue("password"))
	if err != nil {
		WriteText(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	http.Redirect(w, r, "/login/STUDENT", http.StatusFound)
}

func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	if isAuthenticated(r) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	renderPage(w, "login", pageData{Role: chi.URLParam(r, "role")})
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	if isAuthenticated(r) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		WriteText(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	role := chi.URLParam(r, "role")
	password := r.FormValue("password")
	username := strings.TrimSpace(r.FormValue("username"))

	sessionRole, ok := services.Authenticate(role, password, s.Config.AdminPassword, s.Config.OwnerPassword)
	if !ok {
		WriteText(w, http.StatusOK, "Invalid Password")
		return
	}
	session := s.Sessions.Create(sessionRole, username)
	token, err := s.Tokens.CreateSessionToken(session.ID)
	if err != nil {
		s.Sessions.Delete(session.ID)
		WriteText(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.setSessionCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := CurrentSession(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	user := session.Username
	if user == "" {
		user = "N/A"
	}
	renderPage(w, "dashboard", pageData{Role: session.Role, User: user})
}

func (s *Server) TotalBill(w http.ResponseWriter, r *http.Request) {
	renderPage(w, "total-bill", pageData{})
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if session, ok := CurrentSession(r); ok {
		s.Sessions.Delete(session.ID)
	}
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
