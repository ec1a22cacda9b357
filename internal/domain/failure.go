package domain

import (
	"context"
	"errors"
)

// FailureKind clasificación legible por máquina de un fallo de carga.
type FailureKind string

const (
	FailureNone                 FailureKind = ""
	FailureConfigurationMissing FailureKind = "CONFIGURATION_MISSING"
	FailureMissingSchema        FailureKind = "SCHEMA_MISSING"
	FailurePermissionDenied     FailureKind = "PERMISSION_DENIED"
	FailureUnreachable          FailureKind = "UNREACHABLE"
	FailureUnknown              FailureKind = "UNKNOWN"
)

// Classify devuelve la clase más específica para err. El orden importa: un error puede
// envolver varios sentinels y el más accionable para el operador gana.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrConfigurationMissing):
		return FailureConfigurationMissing
	case errors.Is(err, ErrSchemaMissing):
		return FailureMissingSchema
	case errors.Is(err, ErrPermissionDenied):
		return FailurePermissionDenied
	case errors.Is(err, ErrUnreachable), errors.Is(err, context.DeadlineExceeded):
		return FailureUnreachable
	default:
		return FailureUnknown
	}
}

// Message mensaje consolidado para mostrar al usuario.
func (k FailureKind) Message() string {
	switch k {
	case FailureNone:
		return ""
	case FailureConfigurationMissing:
		return "Configure las credenciales del backend (URL y clave) antes de iniciar la aplicación."
	case FailureMissingSchema:
		return "Faltan tablas o datos iniciales en la base de datos. Ejecute la migración y el seed, luego recargue."
	case FailurePermissionDenied:
		return "Permiso denegado por el backend. Verifique las reglas de seguridad."
	case FailureUnreachable:
		return "No se puede contactar el backend. Verifique la conexión."
	default:
		return "No se pudieron cargar los datos."
	}
}
