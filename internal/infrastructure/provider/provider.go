// Package provider elige una sola vez, al arrancar, el backend y el autenticador según
// BACKEND_PROVIDER.
package provider

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"

	"github.com/jhoicas/elikia-api/internal/application/catalog"
	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
	"github.com/jhoicas/elikia-api/internal/infrastructure/firebase"
	"github.com/jhoicas/elikia-api/internal/infrastructure/memory"
	"github.com/jhoicas/elikia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/elikia-api/internal/infrastructure/redisstore"
	"github.com/jhoicas/elikia-api/internal/infrastructure/tracing"
	"github.com/jhoicas/elikia-api/pkg/config"
	"github.com/jhoicas/elikia-api/pkg/logger"
)

const tracerName = "github.com/jhoicas/elikia-api/backend"

// Provider backend (decorado con trazas) y autenticador del proveedor elegido.
type Provider struct {
	Backend repository.Backend
	Auth    repository.Authenticator
	// TxRunner solo con supabase: el seed importa el catálogo en una transacción.
	TxRunner *postgres.TxRunner
}

// New falla rápido con ErrConfigurationMissing si faltan credenciales.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("provider: %w: %w", domain.ErrConfigurationMissing, err)
	}

	var (
		backend repository.Backend
		auth    repository.Authenticator
		p       = &Provider{}
	)
	switch cfg.Backend.Provider {
	case config.ProviderSupabase:
		pool, err := postgres.NewPool(ctx, cfg.Supabase)
		if err != nil {
			return nil, fmt.Errorf("provider supabase: %w", err)
		}
		backend = postgres.NewBackend(pool)
		auth = postgres.NewAuthenticator(cfg.Supabase.JWTSecret)
		p.TxRunner = postgres.NewTxRunner(pool)

	case config.ProviderFirebase:
		app, err := firebase.NewApp(ctx, cfg.Firebase)
		if err != nil {
			return nil, fmt.Errorf("provider firebase: %w", err)
		}
		fs, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("provider firebase firestore: %w: %w", domain.ErrConfigurationMissing, err)
		}
		authClient, err := app.Auth(ctx)
		if err != nil {
			_ = fs.Close()
			return nil, fmt.Errorf("provider firebase auth: %w: %w", domain.ErrConfigurationMissing, err)
		}
		backend = firebase.NewBackend(fs)
		auth = firebase.NewAuthenticator(authClient)

	case config.ProviderRedis:
		client, err := redisstore.NewClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("provider redis: %w", err)
		}
		rb := redisstore.NewBackend(client, cfg.Redis.Prefix)
		if err := rb.Ping(ctx); err != nil {
			_ = rb.Close()
			return nil, fmt.Errorf("provider redis: %w", err)
		}
		if auth, err = localAuthenticator(cfg); err != nil {
			_ = rb.Close()
			return nil, err
		}
		backend = rb

	case config.ProviderMemory:
		mb := memory.New()
		if cfg.App.IsDevelopment() {
			if err := seedMemory(ctx, mb); err != nil {
				return nil, err
			}
		}
		a, err := localAuthenticator(cfg)
		if err != nil {
			return nil, err
		}
		backend, auth = mb, a
	}

	p.Backend = tracing.Wrap(backend, otel.Tracer(tracerName), log.Named("backend"))
	p.Auth = auth
	log.Info().Str("provider", backend.Name()).Msg("backend seleccionado")
	return p, nil
}

// Close libera las conexiones del backend.
func (p *Provider) Close() error {
	return p.Backend.Close()
}

// localAuthenticator cuentas de AUTH_LOCAL_USERS más las demo en development.
func localAuthenticator(cfg *config.Config) (repository.Authenticator, error) {
	accounts, err := memory.ParseAccounts(cfg.Auth.LocalUsers)
	if err != nil {
		return nil, fmt.Errorf("provider: %w: %w", domain.ErrConfigurationMissing, err)
	}
	if cfg.App.IsDevelopment() {
		demo, err := memory.DemoAccounts()
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, demo...)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("provider: %w: AUTH_LOCAL_USERS vacío", domain.ErrConfigurationMissing)
	}
	return memory.NewLocalAuthenticator(accounts), nil
}

// seedMemory registra las colecciones y la configuración por defecto para desarrollo local.
func seedMemory(ctx context.Context, b *memory.Backend) error {
	if err := b.Migrate(ctx); err != nil {
		return err
	}
	_, err := catalog.EnsureStoreSettings(ctx, b)
	return err
}
