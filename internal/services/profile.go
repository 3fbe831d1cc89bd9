package services

import (
	"strings"

	"github.com/jmoiron/sqlx"
)

// SaveProfile upserts the shared profile row for a role. The picture is an
// opaque encoded string the client embeds directly in markup; no format or
// size validation is applied. Last write wins.
func SaveProfile(db *sqlx.DB, role, picture, name string) error {
	if strings.TrimSpace(picture) == "" {
		return ErrBadRequest("No picture provided")
	}
	if strings.TrimSpace(name) == "" {
		name = DefaultProfileName(role)
	}
	_, err := db.Exec(`
INSERT OR REPLACE INTO user_profiles (role, profile_picture, profile_name, updated_at)
VALUES (?,?,?,datetime('now'))
`, role, picture, name)
	return WrapError(err, "save profile")
}

// DefaultProfileName is the generated display name for a role, e.g.
// "Student User".
func DefaultProfileName(role string) string {
	return CapitalizeRole(role) + " User"
}

func CapitalizeRole(role string) string {
	if role == "" {
		return ""
	}
	return strings.ToUpper(role[:1]) + role[1:]
}
