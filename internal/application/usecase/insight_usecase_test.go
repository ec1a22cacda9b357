package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elikia-api/internal/application/dto"
	"github.com/jhoicas/elikia-api/internal/application/usecase"
	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/internal/infrastructure/ai"
	"github.com/jhoicas/elikia-api/pkg/logger"
)

type deadlineSpy struct {
	deadline time.Time
}

func (s *deadlineSpy) BusinessInsight(ctx context.Context, _, _ string) (string, error) {
	s.deadline, _ = ctx.Deadline()
	return "ok", nil
}

func (s *deadlineSpy) ProductDescription(ctx context.Context, _, _ string) (string, error) {
	s.deadline, _ = ctx.Deadline()
	return "ok", nil
}

func TestInsight_StubNuncaFalla(t *testing.T) {
	uc := usecase.NewInsightUseCase(ai.NewStubInsightService(logger.Nop()))

	out, err := uc.BusinessInsight(context.Background(), dto.BusinessInsightRequest{Prompt: "¿Qué se vende más?", ContextData: "{}"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Text)

	out, err = uc.ProductDescription(context.Background(), dto.ProductDescriptionRequest{ProductName: "T-Shirt", Category: "Textile"})
	require.NoError(t, err)
	assert.Contains(t, out.Text, "T-Shirt")
}

func TestInsight_ValidaEntrada(t *testing.T) {
	uc := usecase.NewInsightUseCase(ai.NewStubInsightService(logger.Nop()))

	_, err := uc.BusinessInsight(context.Background(), dto.BusinessInsightRequest{Prompt: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.ProductDescription(context.Background(), dto.ProductDescriptionRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInsight_AplicaTimeout(t *testing.T) {
	spy := &deadlineSpy{}
	uc := usecase.NewInsightUseCase(spy)

	_, err := uc.BusinessInsight(context.Background(), dto.BusinessInsightRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(10*time.Second), spy.deadline, time.Second)
}
