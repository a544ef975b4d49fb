package auth

import "errors"

// Error codes surfaced to callers. Messages are safe to show to users;
// underlying driver or bcrypt detail never leaves this package.
const (
	CodeInvalidCredentials = "invalid_credentials"
	CodeEmailNotVerified   = "email_not_verified"
	CodeEmailTaken         = "email_taken"
	CodeInvalidCode        = "invalid_code"
)

type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func authErr(code, message string) error {
	return &Error{Code: code, Message: message}
}

// ErrNotAuthenticated is returned when an operation requiring a signed-in
// user is attempted without one.
var ErrNotAuthenticated = errors.New("not authenticated")
