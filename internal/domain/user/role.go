package user

// Role is carried in the access token; the account service that mints tokens
// owns the user records themselves.
type Role string

const (
	RoleOwner    Role = "OWNER"
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

var RoleValues = []string{
	string(RoleOwner),
	string(RoleEmployee),
	string(RoleAdmin),
}
