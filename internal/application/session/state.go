// Package session mantiene el estado de datos de cada usuario conectado: la carga inicial desde
// el backend, las escrituras confirmadas y la vista actual.
package session

import "github.com/jhoicas/elikia-api/internal/domain"

// Phase fase de la carga de datos.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseFailed  Phase = "failed"
)

// State estado observable del Store. Failure y Message solo en PhaseFailed.
type State struct {
	Phase   Phase
	Failure domain.FailureKind
	Message string
}

func idle() State    { return State{Phase: PhaseIdle} }
func loading() State { return State{Phase: PhaseLoading} }
func ready() State   { return State{Phase: PhaseReady} }

func failed(kind domain.FailureKind) State {
	return State{Phase: PhaseFailed, Failure: kind, Message: kind.Message()}
}

// Settled indica que la carga terminó (bien o mal) o nunca empezó.
func (s State) Settled() bool {
	return s.Phase != PhaseLoading
}
