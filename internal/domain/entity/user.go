package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"     // gestiona usuarios y categorías
	RoleContador  = "contador"  // gestiona productos, consulta el libro, imprime reportes
	RoleBodeguero = "bodeguero" // registra transacciones de stock
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, contador, bodeguero
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si el rol pertenece al conjunto cerrado.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleContador, RoleBodeguero:
		return true
	}
	return false
}
