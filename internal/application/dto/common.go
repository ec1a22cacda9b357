package dto

// ErrorResponse cuerpo de error HTTP. Code es legible por máquina (SCHEMA_MISSING, VALIDATION, ...).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OKResponse confirmación simple para operaciones sin cuerpo (delete, logout).
type OKResponse struct {
	OK bool `json:"ok"`
}
