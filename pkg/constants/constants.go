package constants

const (
	// AppName is the canonical service name used in logs, traces,
	// and NATS subjects unless overridden by config.
	AppName = "intake_backend"

	// ConfigName and ConfigFormat locate the config file read by viper
	// (config.yaml in the directory passed via --config).
	ConfigName   = "config"
	ConfigFormat = "yaml"

	// EnvPrefix namespaces environment overrides,
	// e.g. INTAKE_DATABASE_HOST overrides database.host.
	EnvPrefix = "INTAKE"
)
