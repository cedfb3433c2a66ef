package domain

import "errors"

var ErrEmailInUse = errors.New("email already in use")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidPassword = errors.New("invalid password")
var ErrTokenInvalid = errors.New("token invalid or expired")
var ErrUnauthorized = errors.New("unauthorized")
var ErrTooManyAttempts = errors.New("too many login attempts")
