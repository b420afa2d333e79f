package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Query      QueryConfig      `mapstructure:"query"      validate:"required"`
	Operations OperationsConfig `mapstructure:"operations" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port"       validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level"  validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=json text console"`
}

// QueryConfig configures the client for the remote query service.
//
// APIKey is not validated here; the client constructor rejects an empty key.
type QueryConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"        validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
}

// OperationsConfig maps each user endpoint to the ID of the remote operation
// it executes. The IDs are opaque to this service.
type OperationsConfig struct {
	ListUsers  string `mapstructure:"list_users"  validate:"required"`
	GetUser    string `mapstructure:"get_user"    validate:"required"`
	CreateUser string `mapstructure:"create_user" validate:"required"`
	UpdateUser string `mapstructure:"update_user" validate:"required"`
	DeleteUser string `mapstructure:"delete_user" validate:"required"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"    validate:"required_if=Enabled true"`
}

// TracingConfig controls OpenTelemetry tracing. Spans are only exported when
// a Jaeger collector endpoint is configured.
type TracingConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"    validate:"required_if=Enabled true"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint" validate:"omitempty,url"`
}
