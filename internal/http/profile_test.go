package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"rvce-fee-backend-go/internal/services"
)

func TestGetProfileAnonymousDefaults(t *testing.T) {
	_, handler := newTestServer(t, "profileanon")
	res := doRequest(handler, http.MethodGet, "/api/profile", "", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("status = %d", res.Code)
	}
	var out ProfileResponse
	if err := json.Unmarshal(res.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Picture != nil || out.Name != "Student User" || out.Role != "Student" {
		t.Fatalf("unexpected profile: %+v", out)
	}
}

func TestUploadProfileRejectsEmptyPicture(t *testing.T) {
	server, handler := newTestServer(t, "profileempty")
	admin := loginCookie(t, server, services.RoleAdmin, "")

	res := doRequest(handler, http.MethodPost, "/api/profile/upload", `{"picture":"","name":"Bursar"}`, admin)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", res.Code)
	}
	if res.Body.String() != "No picture provided" {
		t.Fatalf("body = %q", res.Body.String())
	}
	if got := countRows(t, server, "user_profiles"); got != 0 {
		t.Fatalf("rejected upload wrote a row: %d", got)
	}
}

func TestUploadThenGetProfile(t *testing.T) {
	server, handler := newTestServer(t, "profileroundtrip")
	admin := loginCookie(t, server, services.RoleAdmin, "")

	res := doRequest(handler, http.MethodPost, "/api/profile/upload",
		`{"picture":"data:image/png;base64,AAAA","name":"Bursar"}`, admin)
	if res.Code != http.StatusOK {
		t.Fatalf("upload status = %d body=%s", res.Code, res.Body.String())
	}
	var upload UploadProfileResponse
	_ = json.Unmarshal(res.Body.Bytes(), &upload)
	if !upload.Success || upload.Message != "Profile updated" {
		t.Fatalf("upload response: %+v", upload)
	}

	get := doRequest(handler, http.MethodGet, "/api/profile", "", admin)
	var out ProfileResponse
	if err := json.Unmarshal(get.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Picture == nil || *out.Picture != "data:image/png;base64,AAAA" {
		t.Fatalf("picture not reflected: %+v", out.Picture)
	}
	if out.Name != "Bursar" || out.Role != "Admin" {
		t.Fatalf("unexpected profile: %+v", out)
	}

	// Overwrite wholesale; last write wins.
	res = doRequest(handler, http.MethodPost, "/api/profile/upload",
		`{"picture":"data:image/png;base64,BBBB"}`, admin)
	if res.Code != http.StatusOK {
		t.Fatalf("second upload status = %d", res.Code)
	}
	get = doRequest(handler, http.MethodGet, "/api/profile", "", admin)
	_ = json.Unmarshal(get.Body.Bytes(), &out)
	if out.Picture == nil || *out.Picture != "data:image/png;base64,BBBB" {
		t.Fatalf("overwrite not reflected: %+v", out.Picture)
	}
	if out.Name != "Admin User" {
		t.Fatalf("blank name should regenerate default, got %q", out.Name)
	}
	if got := countRows(t, server, "user_profiles"); got != 1 {
		t.Fatalf("expected single per-role row, got %d", got)
	}
}

func TestGetProfilePrefersSessionUsername(t *testing.T) {
	server, handler := newTestServer(t, "profileusername")
	admin := loginCookie(t, server, services.RoleAdmin, "chief")

	doRequest(handler, http.MethodPost, "/api/profile/upload",
		`{"picture":"data:image/png;base64,AAAA","name":"Stored Name"}`, admin)

	get := doRequest(handler, http.MethodGet, "/api/profile", "", admin)
	var out ProfileResponse
	_ = json.Unmarshal(get.Body.Bytes(), &out)
	if out.Name != "chief" {
		t.Fatalf("session username should win, got %q", out.Name)
	}

	// Per-role singleton: the owner sees the owner profile, not the admin one.
	owner := loginCookie(t, server, services.RoleOwner, "")
	get = doRequest(handler, http.MethodGet, "/api/profile", "", owner)
	_ = json.Unmarshal(get.Body.Bytes(), &out)
	if out.Picture != nil || out.Name != "Owner User" || out.Role != "Owner" {
		t.Fatalf("owner profile leaked admin data: %+v", out)
	}
}
