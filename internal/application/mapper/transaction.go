package mapper

import (
	"github.com/jhoicas/elikia-api/internal/domain/entity"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
)

// TransactionFromRow fila -> transacción. Las líneas pueden venir como arreglo decodificado
// (Firestore, jsonb) o como JSON crudo.
func TransactionFromRow(row repository.Row) entity.Transaction {
	tx := entity.Transaction{
		ID:        stringValue(row["id"]),
		Date:      timeValue(row["date"]),
		Total:     decimalValue(row["total"]),
		CashierID: stringValue(row["cashier_id"]),
	}
	for _, raw := range sliceValue(row["items"]) {
		m := mapValue(raw)
		if m == nil {
			continue
		}
		tx.Items = append(tx.Items, entity.CartItem{
			ProductID: stringValue(m["product_id"]),
			Name:      stringValue(m["name"]),
			SKU:       stringValue(m["sku"]),
			Price:     decimalValue(m["price"]),
			Quantity:  intValue(m["quantity"]),
		})
	}
	return tx
}

func TransactionToRow(tx entity.Transaction) repository.Row {
	items := make([]map[string]any, 0, len(tx.Items))
	for _, it := range tx.Items {
		items = append(items, map[string]any{
			"product_id": it.ProductID,
			"name":       it.Name,
			"sku":        it.SKU,
			"price":      it.Price,
			"quantity":   it.Quantity,
		})
	}
	return withID(repository.Row{
		"date":       tx.Date,
		"total":      tx.Total,
		"cashier_id": tx.CashierID,
		"items":      items,
	}, tx.ID)
}
