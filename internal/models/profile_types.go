package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Roles. Every profile has exactly one.
const (
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
	RolePegawai  = "pegawai"
	RoleCustomer = "customer"
)

// adminRoles is the set of roles allowed into the back office.
var adminRoles = map[string]bool{
	RoleOwner:   true,
	RoleAdmin:   true,
	RolePegawai: true,
}

// IsAdminRole reports whether a role may reach admin routes.
func IsAdminRole(role string) bool { return adminRoles[role] }

// Profile is the model for the 'profiles' table.
type Profile struct {
	ID           int64     `json:"id" db:"id"`
	Role         string    `json:"role" db:"role"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"fullName" db:"full_name"`
	PhoneNumber  string    `json:"phoneNumber" db:"phone_number"`
	AvatarURL    *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// CanDelete reports whether a profile may be removed through the admin
// surface. The owner account is never deletable, regardless of who asks.
func (p *Profile) CanDelete() bool { return p.Role != RoleOwner }

// CanChangeRoleTo reports whether a profile's role may be changed to the
// given role. Owner cannot be demoted, and nobody can be promoted to
// owner through this surface.
func (p *Profile) CanChangeRoleTo(newRole string) bool {
	if p.Role == RoleOwner {
		return false
	}
	switch newRole {
	case RoleAdmin, RolePegawai, RoleCustomer:
		return true
	}
	return false
}

// Password wraps a plaintext/hash pair (bcrypt).
type Password struct {
	Plaintext *string
	Hash      string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
