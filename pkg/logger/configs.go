package logger

// Log level names accepted in configuration.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

type Config struct {
	// Minimum level to emit. Unknown values fall back to INFO.
	Level string `yaml:"level" env:"CURATOR_LOG_LEVEL"`
}
