package dto

import "github.com/jhoicas/elikia-api/internal/domain/entity"

// SupplierRequest entrada para crear o actualizar un proveedor.
type SupplierRequest struct {
	Name        string `json:"name" validate:"required"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

func (r SupplierRequest) ToEntity(id string) entity.Supplier {
	return entity.Supplier{ID: id, Name: r.Name, ContactName: r.ContactName, Email: r.Email, Phone: r.Phone}
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

func NewSupplierResponse(s entity.Supplier) SupplierResponse {
	return SupplierResponse{ID: s.ID, Name: s.Name, ContactName: s.ContactName, Email: s.Email, Phone: s.Phone}
}

func NewSupplierList(list []entity.Supplier) []SupplierResponse {
	out := make([]SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, NewSupplierResponse(s))
	}
	return out
}
