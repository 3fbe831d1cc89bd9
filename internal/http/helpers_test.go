package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rvce-fee-backend-go/internal/config"
	"rvce-fee-backend-go/internal/db"
	"rvce-fee-backend-go/internal/services"
)

const (
	testAdminPassword = "admin.rvce.in"
	testOwnerPassword = "owner.rvce.in"
)

// newTestServer wires a Server against a throwaway in-memory database. The
// name keys the shared-cache database, so it must be unique per test.
func newTestServer(t *testing.T, name string) (*Server, http.Handler) {
	t.Helper()
	database, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	if err := db.InitSchema(database); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	cfg := config.Config{
		SessionSecret:     "test-secret",
		SessionTTLSeconds: 3600,
		AdminPassword:     testAdminPassword,
		OwnerPassword:     testOwnerPassword,
	}
	sessions := services.NewSessionStore(time.Hour)
	server := NewServer(database, cfg, sessions, services.NewMetricsHub())
	return server, server.Router()
}

// loginCookie mints a valid session cookie without going through the login
// form.
func loginCookie(t *testing.T, server *Server, role, username string) *http.Cookie {
	t.Helper()
	session := server.Sessions.Create(role, username)
	token, err := server.Tokens.CreateSessionToken(session.ID)
	if err != nil {
		t.Fatalf("session token: %v", err)
	}
	return &http.Cookie{Name: SessionCookieName, Value: token}
}

func doRequest(handler http.Handler, method, target, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func doForm(handler http.Handler, target string, form string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func countRows(t *testing.T, server *Server, table string) int {
	t.Helper()
	var count int
	if err := server.DB.Get(&count, `SELECT count(*) FROM `+table); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}
