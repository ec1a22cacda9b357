package ai

import (
	"context"
	"fmt"

	"github.com/jhoicas/elikia-api/internal/application/ports"
	"github.com/jhoicas/elikia-api/pkg/logger"
)

// Verificar en tiempo de compilación que StubInsightService implementa InsightGenerator.
var _ ports.InsightGenerator = (*StubInsightService)(nil)

// StubInsightService generador desactivado: devuelve textos fijos y registra la petición.
type StubInsightService struct {
	log *logger.Logger
}

func NewStubInsightService(log *logger.Logger) *StubInsightService {
	return &StubInsightService{log: log}
}

func (s *StubInsightService) BusinessInsight(_ context.Context, prompt, contextData string) (string, error) {
	s.log.Debug().Str("prompt", prompt).Int("context_bytes", len(contextData)).Msg("insight desactivado")
	return "Analyse factice (l'assistant IA est désactivé).", nil
}

func (s *StubInsightService) ProductDescription(_ context.Context, productName, category string) (string, error) {
	s.log.Debug().Str("product", productName).Str("category", category).Msg("descripción desactivada")
	return fmt.Sprintf("Description factice pour \"%s\" (l'assistant IA est désactivé).", productName), nil
}
