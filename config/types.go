package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Server        ServerConfig        `mapstructure:"server"`
	Submissions   SubmissionsConfig   `mapstructure:"submissions"`
	Blob          BlobConfig          `mapstructure:"blob"`
	Email         EmailConfig         `mapstructure:"email"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	S3            S3Config            `mapstructure:"s3"`
	Nats          NatsConfig          `mapstructure:"nats"`
}

type NatsConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
}

type DatabaseConfig struct {
	Host       string                  `mapstructure:"host"`
	Port       int                     `mapstructure:"port" validate:"min=0,max=65535"`
	User       string                  `mapstructure:"user"`
	Password   string                  `mapstructure:"password"`
	DBName     string                  `mapstructure:"dbname"`
	SSLMode    string                  `mapstructure:"sslmode"`
	Pool       DatabasePoolConfig      `mapstructure:"pool"`
	Migrations DatabaseMigrationConfig `mapstructure:"migrations"`
	Logging    DatabaseLoggingConfig   `mapstructure:"logging"`
}

type DatabasePoolConfig struct {
	MaxOpenConns       int `mapstructure:"max_open_conns" validate:"min=0"`
	MaxIdleConns       int `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetimeMin int `mapstructure:"conn_max_lifetime_minutes" validate:"min=0"`
}

type DatabaseMigrationConfig struct {
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

type DatabaseLoggingConfig struct {
	Enabled              bool `mapstructure:"enabled"`
	SlowQueryThresholdMs int  `mapstructure:"slow_query_threshold_ms" validate:"min=0"`
}

type RedisConfig struct {
	Addr                string `mapstructure:"addr"`
	DB                  int    `mapstructure:"db" validate:"min=0"`
	Username            string `mapstructure:"username"`
	Password            string `mapstructure:"password"`
	PoolSize            int    `mapstructure:"pool_size" validate:"min=0"`
	MinIdleConns        int    `mapstructure:"min_idle_conns" validate:"min=0"`
	DialTimeoutSeconds  int    `mapstructure:"dial_timeout_seconds" validate:"min=0"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds" validate:"min=0"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds" validate:"min=0"`
}

type ServerConfig struct {
	Port           int        `mapstructure:"port" validate:"min=0,max=65535"`
	BodyLimitMB    int        `mapstructure:"body_limit_mb" validate:"min=0"`
	TimeoutSeconds int        `mapstructure:"timeout_seconds" validate:"min=0"`
	Environment    string     `mapstructure:"environment" validate:"omitempty,oneof=development staging production"`
	Domain         string     `mapstructure:"domain"`
	Databases      []string   `mapstructure:"databases"`
	CORS           CORSConfig `mapstructure:"cors"`
}

// CORSConfig narrows the cross-origin policy. An empty allow_origins list
// means all origins are allowed; the public form endpoints are meant to be
// reachable from anywhere the site is embedded.
type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	ExposeHeaders    []string `mapstructure:"expose_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAgeSeconds    int      `mapstructure:"max_age_seconds" validate:"min=0"`
}

// SubmissionsConfig selects the deployment variant and the upload limits.
type SubmissionsConfig struct {
	// Variant is "combined" (single contact form, optional resume) or
	// "split" (separate general and internship forms).
	Variant         string `mapstructure:"variant" validate:"omitempty,oneof=combined split"`
	MaxResumeSizeMB int    `mapstructure:"max_resume_size_mb" validate:"min=0"`
	// PhoneRegion is an ISO 3166-1 alpha-2 code ("IR", "DE", ...) used to
	// normalize mobile numbers to E.164. Empty disables normalization.
	PhoneRegion string `mapstructure:"phone_region" validate:"omitempty,len=2"`
}

type BlobConfig struct {
	// Backend is "postgres" (chunked table store, default) or "s3".
	Backend      string `mapstructure:"backend" validate:"omitempty,oneof=postgres s3"`
	ChunkSizeKiB int    `mapstructure:"chunk_size_kib" validate:"min=0"`
}

type EmailConfig struct {
	Enabled bool       `mapstructure:"enabled"`
	From    string     `mapstructure:"from" validate:"omitempty,email"`
	SMTP    SMTPConfig `mapstructure:"smtp"`
}

type SMTPConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"min=0,max=65535"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	UseTLS         bool   `mapstructure:"use_tls"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=0"`
}

type NotificationsConfig struct {
	Email  EmailNotifyConfig `mapstructure:"email"`
	Events EventsConfig      `mapstructure:"events"`
}

// EmailNotifyConfig controls the owner notification mail sent after each
// accepted submission. Requires email.enabled as well.
type EmailNotifyConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	To      string `mapstructure:"to" validate:"omitempty,email"`
}

// EventsConfig controls NATS publication of accepted submissions.
type EventsConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	SubjectPrefix string `mapstructure:"subject_prefix"`
}

type ObservabilityConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	ServiceName    string        `mapstructure:"service_name"`
	ServiceVersion string        `mapstructure:"service_version"`
	Tracing        TracingConfig `mapstructure:"tracing"`
	Metrics        MetricsConfig `mapstructure:"metrics"`
}

type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	SamplingRate float64 `mapstructure:"sampling_rate" validate:"min=0,max=1"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string       `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string       `mapstructure:"format" validate:"omitempty,oneof=text json"`
	Output OutputConfig `mapstructure:"output"`
}

type OutputConfig struct {
	Stdout bool          `mapstructure:"stdout"`
	File   FileLogConfig `mapstructure:"file"`
	Loki   LokiConfig    `mapstructure:"loki"`
}

type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`        // e.g. "logs/app.log"
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // rotate after N MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type LokiConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"` // e.g. "http://localhost:3100"
	Username string `mapstructure:"username"` // for Grafana Cloud basic auth
	Password string `mapstructure:"password"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Bucket          string `mapstructure:"bucket"`
}

var validate = validator.New()

func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}
