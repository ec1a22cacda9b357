package dto

// SessionStateResponse estado de la carga de datos: idle, loading, ready o failed.
// En failed, FailureKind es legible por máquina y Message es el mensaje consolidado.
type SessionStateResponse struct {
	Phase       string `json:"phase"`
	FailureKind string `json:"failureKind,omitempty"`
	Message     string `json:"message,omitempty"`
}

// SessionResponse resumen de la sesión actual.
type SessionResponse struct {
	SessionID   string               `json:"sessionId"`
	User        UserResponse         `json:"user"`
	CurrentView string               `json:"currentView"`
	State       SessionStateResponse `json:"state"`
}

// NavigateRequest cambio de vista pedido por el usuario.
type NavigateRequest struct {
	View string `json:"view"`
}

// NavigateResponse Changed=false cuando la vista no existe (no-op silencioso).
type NavigateResponse struct {
	CurrentView string `json:"currentView"`
	Changed     bool   `json:"changed"`
}
