package entity

// Role rol de la aplicación, leído de la identidad verificada por el proveedor.
type Role string

// Roles reconocidos. Cualquier otro valor se conserva tal cual y se trata como no reconocido.
const (
	RoleAdmin   Role = "ADMIN"
	RoleCaisse  Role = "CAISSE"  // cajero, punto de venta
	RoleGestock Role = "GESTOCK" // gestor de stock
)

// Known indica si el rol es uno de los tres roles de la aplicación.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleCaisse, RoleGestock:
		return true
	}
	return false
}

// User representa al usuario autenticado. Inmutable durante la sesión.
type User struct {
	ID    string
	Email string
	Name  string
	Role  Role
}
