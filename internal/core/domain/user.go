package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User models a registered account. Email is the unique, case-sensitive key;
// the stored password hash is never serialized outward.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// RequestIdentity is the authenticated principal attached to a single
// request by the Authenticate middleware. It is reconstructed from the
// bearer token on every request and discarded when the request ends.
type RequestIdentity struct {
	UserID string
	Email  string
	Role   string
}
