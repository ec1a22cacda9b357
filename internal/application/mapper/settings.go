package mapper

import (
	"github.com/jhoicas/elikia-api/internal/domain/entity"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
)

func SettingsFromRow(row repository.Row) entity.StoreSettings {
	return entity.StoreSettings{
		ID:            stringValue(row["id"]),
		Name:          stringValue(row["name"]),
		Address:       stringValue(row["address"]),
		City:          stringValue(row["city"]),
		Phone:         stringValue(row["phone"]),
		Email:         stringValue(row["email"]),
		LogoURL:       stringValue(row["logo_url"]),
		ReceiptFooter: stringValue(row["receipt_footer"]),
	}
}

func SettingsToRow(s entity.StoreSettings) repository.Row {
	return withID(repository.Row{
		"name":           s.Name,
		"address":        s.Address,
		"city":           s.City,
		"phone":          s.Phone,
		"email":          s.Email,
		"logo_url":       s.LogoURL,
		"receipt_footer": s.ReceiptFooter,
	}, s.ID)
}
