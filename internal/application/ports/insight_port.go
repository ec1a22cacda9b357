package ports

import "context"

// InsightGenerator puerto de salida para textos generados (análisis del negocio y
// descripciones de producto). La implementación actual es un stub que nunca falla.
type InsightGenerator interface {
	BusinessInsight(ctx context.Context, prompt, contextData string) (string, error)
	ProductDescription(ctx context.Context, productName, category string) (string, error)
}
