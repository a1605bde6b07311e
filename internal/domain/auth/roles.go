package auth

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager
}
