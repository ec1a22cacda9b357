package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/elikia-api/internal/application/dto"
	"github.com/jhoicas/elikia-api/internal/application/ports"
	"github.com/jhoicas/elikia-api/internal/domain"
)

const insightTimeout = 10 * time.Second

// InsightUseCase orquesta las llamadas al generador de textos con un timeout de 10 s.
type InsightUseCase struct {
	gen ports.InsightGenerator
}

// NewInsightUseCase construye el caso de uso inyectando el puerto InsightGenerator.
func NewInsightUseCase(gen ports.InsightGenerator) *InsightUseCase {
	return &InsightUseCase{gen: gen}
}

// BusinessInsight análisis libre sobre los datos del negocio.
func (uc *InsightUseCase) BusinessInsight(ctx context.Context, req dto.BusinessInsightRequest) (*dto.InsightResponse, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("insight: %w: prompt es obligatorio", domain.ErrInvalidInput)
	}
	ctx, cancel := context.WithTimeout(ctx, insightTimeout)
	defer cancel()

	text, err := uc.gen.BusinessInsight(ctx, req.Prompt, req.ContextData)
	if err != nil {
		return nil, fmt.Errorf("insight: %w", err)
	}
	return &dto.InsightResponse{Text: text}, nil
}

// ProductDescription descripción comercial a partir del nombre y la categoría.
func (uc *InsightUseCase) ProductDescription(ctx context.Context, req dto.ProductDescriptionRequest) (*dto.InsightResponse, error) {
	if strings.TrimSpace(req.ProductName) == "" {
		return nil, fmt.Errorf("descripción: %w: productName es obligatorio", domain.ErrInvalidInput)
	}
	ctx, cancel := context.WithTimeout(ctx, insightTimeout)
	defer cancel()

	text, err := uc.gen.ProductDescription(ctx, req.ProductName, req.Category)
	if err != nil {
		return nil, fmt.Errorf("descripción: %w", err)
	}
	return &dto.InsightResponse{Text: text}, nil
}
