package dto

import "time"

// UserResponse salida de un usuario (sin password).
// CanSeeHistory le indica al front si debe mostrar el selector de periodo del dashboard.
type UserResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Status        string    `json:"status"`
	CanSeeHistory bool      `json:"can_see_history"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
