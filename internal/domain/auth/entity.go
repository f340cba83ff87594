package auth

type Role string

const (
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

func (r Role) IsValid() bool {
	return r == RoleHR || r == RoleEmployee
}

// Principal is the authenticated identity carried in token claims.
type Principal struct {
	Subject    string
	Name       string
	Role       Role
	EmployeeID *string
}

// HRSubject is the token subject used for the HR account.
func HRSubject(username string) string {
	return "hr:" + username
}
