package entity

// Role is the resolved category of a signed-in principal.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDriver Role = "driver"
	RoleUser   Role = "user"
)

// ParseRole returns the role named by s, or false if s names none.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleDriver, RoleUser:
		return Role(s), true
	}
	return "", false
}

// Collection returns the collection that holds profiles for the role.
func (r Role) Collection() Collection {
	switch r {
	case RoleAdmin:
		return Admins
	case RoleDriver:
		return Drivers
	default:
		return Users
	}
}

// UserType returns the profile user type matching the role.
func (r Role) UserType() UserType {
	switch r {
	case RoleAdmin:
		return UserTypeAdmin
	case RoleDriver:
		return UserTypeDriver
	default:
		return UserTypeUser
	}
}

// SessionState is the locally persisted view of the last login: which
// collection the principal resolved to and who it was. It is never
// revalidated against the record store.
type SessionState struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	UserEmail  string `json:"userEmail"`
	UserID     string `json:"userId"`
	Role       Role   `json:"role"`
}
