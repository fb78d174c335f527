package session

// Role is the account classification
type Role string

const (
	// RoleStudent takes quizzes and coding challenges
	RoleStudent Role = "student"
	// RoleTeacher authors and reviews interviews
	RoleTeacher Role = "teacher"
)

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher:
		return true
	default:
		return false
	}
}

// HomePath returns the area a role lands on after authentication
func (r Role) HomePath() string {
	switch r {
	case RoleStudent:
		return "/student"
	case RoleTeacher:
		return "/teacher"
	default:
		return "/"
	}
}

func (r Role) String() string {
	return string(r)
}

// GetAllRoles returns the closed set of supported roles
func GetAllRoles() []Role {
	return []Role{
		RoleStudent,
		RoleTeacher,
	}
}

// ParseRole safely parses a string into a Role type
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, role.IsValid()
}
