package provider_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
	"github.com/jhoicas/elikia-api/internal/infrastructure/provider"
	"github.com/jhoicas/elikia-api/pkg/config"
	"github.com/jhoicas/elikia-api/pkg/logger"
)

func baseConfig(providerName string) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: "development"},
		JWT:     config.JWTConfig{Secret: "s"},
		Backend: config.BackendConfig{Provider: providerName},
	}
}

func TestNew_SinCredencialesFallaRapido(t *testing.T) {
	_, err := provider.New(context.Background(), baseConfig(config.ProviderSupabase), logger.Nop())
	require.ErrorIs(t, err, domain.ErrConfigurationMissing)
	assert.Equal(t, domain.FailureConfigurationMissing, domain.Classify(err))

	_, err = provider.New(context.Background(), baseConfig(config.ProviderFirebase), logger.Nop())
	assert.ErrorIs(t, err, domain.ErrConfigurationMissing)
}

func TestNew_MemoryEnDesarrollo(t *testing.T) {
	p, err := provider.New(context.Background(), baseConfig(config.ProviderMemory), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	assert.Equal(t, "memory", p.Backend.Name())
	rows, err := p.Backend.FetchAll(context.Background(), repository.CollectionStoreSettings, repository.FetchOptions{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	u, err := p.Auth.Authenticate(context.Background(), repository.Credentials{Email: "admin@elikia.local", Password: "elikia"})
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", string(u.Role))
}

func TestNew_MemoryFueraDeDesarrolloSinCuentas(t *testing.T) {
	cfg := baseConfig(config.ProviderMemory)
	cfg.App.Env = "production"
	_, err := provider.New(context.Background(), cfg, logger.Nop())
	assert.ErrorIs(t, err, domain.ErrConfigurationMissing)
}

func TestNew_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := baseConfig(config.ProviderRedis)
	cfg.Redis = config.RedisConfig{URL: "redis://" + mr.Addr(), Prefix: "t"}

	p, err := provider.New(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	assert.Equal(t, "redis", p.Backend.Name())

	_, err = p.Backend.FetchAll(context.Background(), repository.CollectionProducts, repository.FetchOptions{})
	assert.ErrorIs(t, err, domain.ErrSchemaMissing)
}
