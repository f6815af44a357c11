package auth

type Role string

const (
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}
