package domain

import "time"

// AuthAction identifies the operation an audit event records.
type AuthAction string

const (
	ActionRegister AuthAction = "register"
	ActionLogin    AuthAction = "login"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// AuthEvent is an audit record of a registration or login attempt.
// Events for the same email are processed in order.
type AuthEvent struct {
	Email   string     `json:"email"`
	Action  AuthAction `json:"action"`
	Outcome string     `json:"outcome"`
	Reason  string     `json:"reason,omitempty"`
	At      time.Time  `json:"at"`
}
