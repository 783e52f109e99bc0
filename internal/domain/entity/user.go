package entity

import "time"

// Perfis válidos para User.
const (
	RoleAdmin        = "admin"
	RoleQualidade    = "qualidade"
	RoleOperador     = "operador"
	RoleVisualizador = "visualizador"
)

// ValidRole informa se role é um dos perfis conhecidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleQualidade, RoleOperador, RoleVisualizador:
		return true
	}
	return false
}

// User representa um usuário do SGQ.
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca a senha em texto
	Name         string
	Role         string
	Filial       string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
