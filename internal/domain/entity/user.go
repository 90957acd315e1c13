package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole indica si el rol es uno de los soportados.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User usuario conocido por el servicio. La autenticación la resuelve el proveedor de identidad;
// aquí solo se administra el rol.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      string // admin, user
	CreatedAt time.Time
	UpdatedAt time.Time
}
