package entity

import "time"

// Roles válidos para User (dashboard del negocio).
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User representa un usuario del dashboard (no un cliente de WhatsApp).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, staff
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
