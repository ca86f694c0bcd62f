package observability

import (
	"testing"

	"github.com/instituto-brotar/painel-brotar/internal/config"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
)

func withTracingConfig(t *testing.T, enabled bool, endpoint string) {
	t.Helper()
	previous := config.AppConfig
	config.AppConfig = &config.Config{
		Environment:     "test",
		TracingEnabled:  enabled,
		TracingEndpoint: endpoint,
	}
	t.Cleanup(func() {
		ShutdownTracer()
		config.AppConfig = previous
	})
}

func TestInitTracer_Disabled(t *testing.T) {
	withTracingConfig(t, false, "")

	InitTracer()

	assert.Nil(t, tracerProvider)
	fields := otel.GetTextMapPropagator().Fields()
	assert.Contains(t, fields, "traceparent")
}

func TestInitTracer_Enabled(t *testing.T) {
	// The exporter connects lazily, so an unreachable endpoint still yields a provider
	withTracingConfig(t, true, "127.0.0.1:4317")

	InitTracer()

	assert.NotNil(t, tracerProvider)
	assert.NotNil(t, otel.GetTracerProvider())
}

func TestShutdownTracer_NilProvider(t *testing.T) {
	tracerProvider = nil
	ShutdownTracer()
	assert.Nil(t, tracerProvider)
}
