package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elikia-api/pkg/config"
)

func TestSetup_NoneNoInstalaNada(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TelemetryConfig{Exporter: ExporterNone}, "test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_Stdout(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TelemetryConfig{Exporter: ExporterStdout, ServiceName: "elikia-api"}, "test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_ExportadorDesconocido(t *testing.T) {
	_, err := Setup(context.Background(), config.TelemetryConfig{Exporter: "jaeger"}, "test")
	assert.Error(t, err)
}
