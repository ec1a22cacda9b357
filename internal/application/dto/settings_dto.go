package dto

import "github.com/jhoicas/elikia-api/internal/domain/entity"

// StoreSettingsDTO configuración de la tienda (entrada y salida).
type StoreSettingsDTO struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	LogoURL       string `json:"logoUrl"`
	ReceiptFooter string `json:"receiptFooter"`
}

func NewStoreSettingsDTO(s entity.StoreSettings) StoreSettingsDTO {
	return StoreSettingsDTO{
		ID:            s.ID,
		Name:          s.Name,
		Address:       s.Address,
		City:          s.City,
		Phone:         s.Phone,
		Email:         s.Email,
		LogoURL:       s.LogoURL,
		ReceiptFooter: s.ReceiptFooter,
	}
}

func (d StoreSettingsDTO) ToEntity() entity.StoreSettings {
	return entity.StoreSettings{
		ID:            d.ID,
		Name:          d.Name,
		Address:       d.Address,
		City:          d.City,
		Phone:         d.Phone,
		Email:         d.Email,
		LogoURL:       d.LogoURL,
		ReceiptFooter: d.ReceiptFooter,
	}
}
