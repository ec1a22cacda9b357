package dto

import "github.com/jhoicas/elikia-api/internal/domain/entity"

// LoginRequest credenciales. Con Supabase/Firebase el front envía el idToken emitido por el
// proveedor; con cuentas locales email + password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IDToken  string `json:"idToken"`
}

// UserResponse usuario autenticado.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func NewUserResponse(u entity.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)}
}

// LoginResponse token de sesión + vista inicial según el rol.
type LoginResponse struct {
	Token       string               `json:"token"`
	SessionID   string               `json:"sessionId"`
	User        UserResponse         `json:"user"`
	InitialView string               `json:"initialView"`
	State       SessionStateResponse `json:"state"`
}
