package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// Fallos del backend (BaaS). Los adaptadores envuelven la causa original con estos sentinels.
	ErrConfigurationMissing = errors.New("credenciales del backend no configuradas")
	ErrSchemaMissing        = errors.New("colección o tabla inexistente en el backend")
	ErrPermissionDenied     = errors.New("permiso denegado por el backend")
	ErrUnreachable          = errors.New("backend inaccesible")
	ErrOrderingUnsupported  = errors.New("el backend no soporta ordenamiento en servidor")

	// Ciclo de vida de la sesión.
	ErrSessionNotFound = errors.New("sesión no encontrada o cerrada")
	ErrNotReady        = errors.New("los datos de la sesión aún no están listos")
	ErrSuperseded      = errors.New("carga reemplazada por una más reciente")
)
