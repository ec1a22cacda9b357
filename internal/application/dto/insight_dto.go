package dto

// BusinessInsightRequest pregunta libre sobre el negocio más contexto serializado.
type BusinessInsightRequest struct {
	Prompt      string `json:"prompt"`
	ContextData string `json:"contextData"`
}

// ProductDescriptionRequest nombre y categoría del producto a describir.
type ProductDescriptionRequest struct {
	ProductName string `json:"productName"`
	Category    string `json:"category"`
}

// InsightResponse texto generado.
type InsightResponse struct {
	Text string `json:"text"`
}
