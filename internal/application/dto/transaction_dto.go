package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/elikia-api/internal/domain/entity"
)

// CartItemResponse línea de una venta.
type CartItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// TransactionResponse venta registrada (orden: más reciente primero).
type TransactionResponse struct {
	ID        string             `json:"id"`
	Date      time.Time          `json:"date"`
	Total     decimal.Decimal    `json:"total"`
	CashierID string             `json:"cashierId"`
	Items     []CartItemResponse `json:"items"`
}

func NewTransactionResponse(tx entity.Transaction) TransactionResponse {
	items := make([]CartItemResponse, 0, len(tx.Items))
	for _, it := range tx.Items {
		items = append(items, CartItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			SKU:       it.SKU,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return TransactionResponse{ID: tx.ID, Date: tx.Date, Total: tx.Total, CashierID: tx.CashierID, Items: items}
}

func NewTransactionList(list []entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(list))
	for _, tx := range list {
		out = append(out, NewTransactionResponse(tx))
	}
	return out
}
