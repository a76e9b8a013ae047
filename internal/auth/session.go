package auth

import (
	"context"
	"database/sql"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "offmode_session"

// Session identifies the profile a request belongs to. The zero value
// is an anonymous session.
type Session struct {
	ProfileID int64
}

// Anonymous reports whether the session belongs to nobody.
func (s Session) Anonymous() bool { return s.ProfileID == 0 }

// SessionResolver answers "who is this request, if anyone?". A failed
// resolution is indistinguishable from no session at all.
type SessionResolver interface {
	Resolve(ctx context.Context, cookieValue string) Session
}

// RoleLookup reads a profile's assigned role. It is a pure read and is
// called again by every mutation, never cached.
type RoleLookup interface {
	Role(ctx context.Context, profileID int64) (string, error)
}

// Store resolves sessions and roles against the profiles table. It
// implements both SessionResolver and RoleLookup.
type Store struct {
	DB     *sql.DB
	Secret []byte
}

// Resolve validates the session token and confirms the profile still
// exists. Any failure (bad token, missing row, database error) yields
// an anonymous session. The gate treats errors as "no session".
func (s *Store) Resolve(ctx context.Context, cookieValue string) Session {
	if cookieValue == "" {
		return Session{}
	}

	profileID, err := ValidateToken(s.Secret, cookieValue)
	if err != nil {
		return Session{}
	}

	var exists int
	err = s.DB.QueryRowContext(ctx, "SELECT 1 FROM profiles WHERE id = ?", profileID).Scan(&exists)
	if err != nil {
		return Session{}
	}

	return Session{ProfileID: profileID}
}

// Role returns the role assigned to a profile.
func (s *Store) Role(ctx context.Context, profileID int64) (string, error) {
	var role string
	err := s.DB.QueryRowContext(ctx, "SELECT role FROM profiles WHERE id = ?", profileID).Scan(&role)
	if err != nil {
		return "", err
	}
	return role, nil
}
