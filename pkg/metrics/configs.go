package metrics

// Config defines the configuration for Prometheus metrics exposure.
type Config struct {
	// ServiceName identifies the service exposing metrics. It is added
	// as a common "service" label to every metric, which helps
	// distinguish metrics between services in shared Prometheus
	// clusters.
	ServiceName string `yaml:"service_name" env:"METRICS_SERVICE_NAME"`

	// Namespace sets a global prefix for all metrics registered by this
	// service, e.g. "curator" turns "http_requests_total" into
	// "curator_http_requests_total".
	Namespace string `yaml:"namespace" env:"METRICS_NAMESPACE"`

	// EnableDefaultCollectors controls whether the built-in Go runtime
	// and process metrics are automatically registered. When true,
	// goroutine counts, GC stats, and CPU usage are included.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" env:"METRICS_ENABLE_DEFAULT_COLLECTORS"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		ServiceName:             "curator-api",
		Namespace:               "curator",
		EnableDefaultCollectors: true,
	}
}
