package ports

import "context"

// RegisterInput carries the registration payload. Profile fields are stored
// as-is; the requested role is ignored and every new account starts as a
// regular user.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService orchestrates registration and login. Both operations return a
// freshly signed bearer token on success.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}
