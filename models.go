package session

import (
	"github.com/google/uuid"
)

// Status is the authentication state of the client session
type Status string

const (
	// StatusInitializing means the verify-on-load sequence has not
	// finished yet; route guards must defer their decision.
	StatusInitializing Status = "initializing"
	// StatusUnauthenticated means no valid session exists
	StatusUnauthenticated Status = "unauthenticated"
	// StatusAuthenticatedStudent is an active student session
	StatusAuthenticatedStudent Status = "authenticated:student"
	// StatusAuthenticatedTeacher is an active teacher session
	StatusAuthenticatedTeacher Status = "authenticated:teacher"
)

// IsAuthenticated reports whether the status represents an active session
func (s Status) IsAuthenticated() bool {
	switch s {
	case StatusAuthenticatedStudent, StatusAuthenticatedTeacher:
		return true
	default:
		return false
	}
}

// StatusForRole maps a role onto its authenticated status
func StatusForRole(role Role) (Status, bool) {
	switch role {
	case RoleStudent:
		return StatusAuthenticatedStudent, true
	case RoleTeacher:
		return StatusAuthenticatedTeacher, true
	default:
		return StatusUnauthenticated, false
	}
}

// User is the resolved identity record of the authenticated account
type User struct {
	ID       string `json:"id"`
	Username string `json:"userName"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// UUID parses the backend identifier into a uuid.UUID
func (u User) UUID() (uuid.UUID, error) {
	return uuid.Parse(u.ID)
}

// AccountPayload is the response envelope shared by the verify, login
// and register endpoints. Error/Message carry the backend's soft-error
// convention: a 200 response that still reports a failure in the body.
type AccountPayload struct {
	ID           string `json:"id"`
	Username     string `json:"userName"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenSession string `json:"tokenSession,omitempty"`
	Error        bool   `json:"error,omitempty"`
	Message      string `json:"message,omitempty"`
}

// User converts the payload into an identity record. The role string
// must parse into the closed Role enum so unknown roles cannot slip
// into an authenticated state.
func (p *AccountPayload) User() (*User, error) {
	role, ok := ParseRole(p.Role)
	if !ok {
		return nil, ErrInvalidRole.WithMetadata(map[string]any{
			"role": p.Role,
		})
	}

	return &User{
		ID:       p.ID,
		Username: p.Username,
		Email:    p.Email,
		Role:     role,
	}, nil
}

// Snapshot is an immutable copy of the session state. User is non-nil
// exactly when Status is one of the authenticated variants.
type Snapshot struct {
	User      *User
	Status    Status
	Loading   bool
	LastError string
}

// IsAuthenticated reports whether the snapshot holds an active session
func (s Snapshot) IsAuthenticated() bool {
	return s.Status.IsAuthenticated()
}

// HasRole checks the snapshot against a specific role
func (s Snapshot) HasRole(role Role) bool {
	if !s.IsAuthenticated() || s.User == nil {
		return false
	}
	return s.User.Role == role
}
