package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session roles, stored lower-case.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
	RoleOwner   = "owner"
)

// Login path segments are upper-case and matched case-sensitively.
const (
	LoginRoleStudent = "STUDENT"
	LoginRoleAdmin   = "ADMIN"
	LoginRoleOwner   = "OWNER"
)

// Authenticate validates a login attempt for an upper-case role path segment.
// Admin and owner must present the configured password; student logins accept
// any password. Returns the lower-case session role.
func Authenticate(role, password, adminPassword, ownerPassword string) (string, bool) {
	switch role {
	case LoginRoleAdmin:
		if password == adminPassword {
			return RoleAdmin, true
		}
	case LoginRoleOwner:
		if password == ownerPassword {
			return RoleOwner, true
		}
	case LoginRoleStudent:
		return RoleStudent, true
	}
	return "", false
}

// TokenService signs the session cookie. The cookie value is an HS256 token
// whose subject is the server-side session id, so a tampered cookie never
// reaches the store.
type TokenService struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

var errInvalidSessionToken = errors.New("invalid session token")

func (t TokenService) CreateSessionToken(sessionID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"iss": t.Issuer,
		"sub": sessionID,
		"typ": "session",
		"iat": now.Unix(),
		"exp": now.Add(t.TTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.Secret)
}

func (t TokenService) ParseSessionToken(tokenStr string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return t.Secret, nil
	}, jwt.WithIssuer(t.Issuer))
	if err != nil || !token.Valid {
		return "", errInvalidSessionToken
	}
	if claims["typ"] != "session" {
		return "", errInvalidSessionToken
	}
	sessionID, _ := claims["sub"].(string)
	if sessionID == "" {
		return "", errInvalidSessionToken
	}
	return sessionID, nil
}
