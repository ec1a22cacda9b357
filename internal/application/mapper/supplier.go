package mapper

import (
	"github.com/jhoicas/elikia-api/internal/domain/entity"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
)

func SupplierFromRow(row repository.Row) entity.Supplier {
	return entity.Supplier{
		ID:          stringValue(row["id"]),
		Name:        stringValue(row["name"]),
		ContactName: stringValue(row["contact_name"]),
		Email:       stringValue(row["email"]),
		Phone:       stringValue(row["phone"]),
	}
}

func SupplierToRow(s entity.Supplier) repository.Row {
	return withID(repository.Row{
		"name":         s.Name,
		"contact_name": s.ContactName,
		"email":        s.Email,
		"phone":        s.Phone,
	}, s.ID)
}
