// Package auth orchestrates login, registration, password-reset requests and
// logout against the forum repository and the session store. It owns the
// three form states the screens render and the single-slot auth event the
// navigation layer reacts to.
package auth

import "github.com/proyectoforocine/forocore/internal/models"

// LoginUIState holds the login form fields and their derived error messages.
// An empty message means no error.
type LoginUIState struct {
	Email         string
	Password      string
	EmailError    string
	PasswordError string
	LoginError    string
}

// RegisterUIState holds the registration form fields and their derived error
// messages.
type RegisterUIState struct {
	Username          string
	Email             string
	Password          string
	UsernameError     string
	EmailError        string
	PasswordError     string
	RegistrationError string
}

// ForgotPasswordUIState holds the reset form. FeedbackMessage carries both
// the success and the failure text; IsError picks the rendering.
type ForgotPasswordUIState struct {
	Email           string
	FeedbackMessage string
	IsError         bool
}

// EventKind enumerates the auth event slot states.
type EventKind int

const (
	EventIdle EventKind = iota
	EventLoading
	EventSuccess
	EventError
)

// AuthEvent is the single-slot, replaceable outcome of the most recent
// asynchronous auth operation. The consumer acknowledges it once via
// Controller.ResetAuthEvent, returning the slot to Idle.
type AuthEvent struct {
	Kind    EventKind
	User    *models.User
	Message string
}
