package firebase

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jhoicas/elikia-api/internal/domain"
)

type opKind int

const (
	opQuery opKind = iota
	opOrderedQuery
	opDocument
)

// classify traduce el código gRPC de Firestore al sentinel de dominio.
func classify(op string, kind opKind, err error) error {
	if err == nil {
		return nil
	}
	var sentinel error
	switch status.Code(err) {
	case codes.PermissionDenied, codes.Unauthenticated:
		sentinel = domain.ErrPermissionDenied
	case codes.Unavailable, codes.DeadlineExceeded:
		sentinel = domain.ErrUnreachable
	case codes.InvalidArgument:
		sentinel = domain.ErrInvalidInput
	case codes.AlreadyExists:
		sentinel = domain.ErrDuplicate
	case codes.NotFound:
		// en una consulta: base de datos inexistente; en un documento: id inexistente
		sentinel = domain.ErrSchemaMissing
		if kind == opDocument {
			sentinel = domain.ErrNotFound
		}
	case codes.FailedPrecondition:
		// índice faltante para el orden pedido o Firestore no habilitado en el proyecto
		sentinel = domain.ErrSchemaMissing
		if kind == opOrderedQuery {
			sentinel = domain.ErrOrderingUnsupported
		}
	}
	if sentinel == nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, sentinel, err)
}
