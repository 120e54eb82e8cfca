package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleCompras  = "compras"
	RoleFinanzas = "finanzas"
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Role         string // admin, compras, finanzas
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
