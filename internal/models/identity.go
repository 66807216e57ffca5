package models

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Identity is the signed-in user as the session holder keeps it.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
