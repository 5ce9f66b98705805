package tracer

// Config holds tracer identity and export settings.
type Config struct {
	// Logical name of the service emitting spans.
	ServiceName string `yaml:"service_name" env:"TRACER_SERVICE_NAME"`

	// Deployment environment tag, e.g. "local", "staging", "production".
	AppEnv string `yaml:"app_env" env:"APP_ENV"`

	// Whether to export spans over OTLP HTTP. When false, spans are still
	// created (useful for context propagation) but never leave the
	// process.
	EnableExport bool `yaml:"enable_export" env:"TRACER_ENABLE_EXPORT"`

	// Optional collector endpoint URL. Empty means the exporter falls
	// back to the standard OTEL_EXPORTER_OTLP_* environment variables.
	Endpoint string `yaml:"endpoint" env:"TRACER_ENDPOINT"`
}
