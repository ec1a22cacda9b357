package entity

// StoreSettings configuración singleton de la tienda (encabezado de recibos, contacto).
type StoreSettings struct {
	ID            string
	Name          string
	Address       string
	City          string
	Phone         string
	Email         string
	LogoURL       string
	ReceiptFooter string
}

// DefaultStoreSettings valores mostrados antes de que la carga termine.
func DefaultStoreSettings() StoreSettings {
	return StoreSettings{
		Name:          "Elikia",
		Address:       "",
		City:          "Kinshasa",
		ReceiptFooter: "Merci de votre visite !",
	}
}
