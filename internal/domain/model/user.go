package model

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"` // Opaque credential, never rendered by the API
	Role     string `json:"role"`
}

// PublicUser is the shape returned to API callers.
type PublicUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Role: u.Role}
}

func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleTeacher
}

// Actor is the already-authenticated caller of a core operation.
type Actor struct {
	UserID int
	Role   string
}

func (a Actor) IsTeacher() bool { return a.Role == RoleTeacher }
