package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/elikia-api/docs"
	"github.com/jhoicas/elikia-api/internal/application/session"
	"github.com/jhoicas/elikia-api/internal/application/usecase"
	"github.com/jhoicas/elikia-api/internal/application/view"
	"github.com/jhoicas/elikia-api/internal/domain"
	infraai "github.com/jhoicas/elikia-api/internal/infrastructure/ai"
	"github.com/jhoicas/elikia-api/internal/infrastructure/provider"
	httpRouter "github.com/jhoicas/elikia-api/internal/interfaces/http"
	"github.com/jhoicas/elikia-api/pkg/config"
	"github.com/jhoicas/elikia-api/pkg/logger"
	"github.com/jhoicas/elikia-api/pkg/telemetry"
)

// version se sobrescribe en el build con -ldflags "-X main.version=...".
var version = "dev"

// @title        Elikia API
// @description  Punto de venta e inventario: sesiones por rol, carga de datos del backend y vistas.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.Provider).
		Str("version", version).
		Msg("iniciando aplicación")

	ctx := context.Background()
	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, version)
	if err != nil {
		log.Fatal().Err(err).Msg("telemetría")
	}

	// Credenciales ausentes: se detiene antes de aceptar peticiones.
	prov, err := provider.New(ctx, cfg, log)
	if err != nil {
		if errors.Is(err, domain.ErrConfigurationMissing) {
			log.Fatal().Err(err).Msg(domain.FailureConfigurationMissing.Message())
		}
		log.Fatal().Err(err).Msg("inicializar backend")
	}

	sessions := session.NewManager(prov.Auth, prov.Backend, log.Named("session"))
	insightUC := usecase.NewInsightUseCase(infraai.NewStubInsightService(log.Named("insight")))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Named("http")),
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Version = version
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "backend": prov.Backend.Name()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions:  sessions,
		Renderer:  view.NewRenderer(),
		InsightUC: insightUC,
		Auth: httpRouter.AuthConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	sessions.Close()
	if err := prov.Close(); err != nil {
		log.Error().Err(err).Msg("cerrar backend")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("vaciar trazas")
	}

	log.Info().Msg("aplicación detenida")
}
