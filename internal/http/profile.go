package httpapi

import (
	"encoding/json"
	"net/http"

	"rvce-fee-backend-go/internal/models"
	"rvce-fee-backend-go/internal/services"
)

type ProfileResponse struct {
	Picture *string `json:"picture"`
	Name    string  `json:"name"`
	Role    string  `json:"role"`
}

type UploadProfileRequest struct {
	Picture string `json:"picture"`
	Name    string `json:"name"`
}

type UploadProfileResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// GetProfile resolves the display name with precedence: session username,
// then stored profile name, then a generated role default. Anonymous
// visitors see the student profile.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	session, _ := CurrentSession(r)
	role := session.Role
	if role == "" {
		role = services.RoleStudent
	}

	var picture *string
	var storedName string
	profile := models.UserProfile{}
	if err := s.DB.Get(&profile, `
SELECT role, profile_picture, profile_name, updated_at
FROM user_profiles
WHERE role = ?
`, role); err == nil {
		picture = profile.Picture
		if profile.Name != nil {
			storedName = *profile.Name
		}
	}

	name := session.Username
	if name == "" {
		name = storedName
	}
	if name == "" {
		name = services.DefaultProfileName(role)
	}
	WriteJSON(w, http.StatusOK, ProfileResponse{
		Picture: picture,
		Name:    name,
		Role:    services.CapitalizeRole(role),
	})
}

func (s *Server) UploadProfile(w http.ResponseWriter, r *http.Request) {
	session, _ := CurrentSession(r)
	role := session.Role
	if role == "" {
		role = services.RoleStudent
	}
	var req UploadProfileRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if err := services.SaveProfile(s.DB, role, req.Picture, req.Name); err != nil {
		if serr, ok := err.(services.ServiceError); ok {
			WriteText(w, serr.Status, serr.Message)
			return
		}
		WriteText(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, UploadProfileResponse{Success: true, Message: "Profile updated"})
}
