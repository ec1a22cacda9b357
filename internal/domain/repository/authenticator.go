package repository

import (
	"context"

	"github.com/jhoicas/elikia-api/internal/domain/entity"
)

// Credentials lo que el front envía al iniciar sesión. Los proveedores BaaS usan IDToken
// (token emitido por Supabase Auth o Firebase Auth); las cuentas locales usan Email/Password.
type Credentials struct {
	Email    string
	Password string
	IDToken  string
}

// Authenticator verifica la identidad contra el proveedor. Devuelve domain.ErrUnauthorized
// si las credenciales no son válidas.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (*entity.User, error)
}
