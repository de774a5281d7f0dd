package blob

import "github.com/omidvesal/intake_backend/config"

const (
	BackendPostgres = "postgres"
	BackendS3       = "s3"

	// DefaultChunkSize matches the classic GridFS chunk size and keeps
	// chunk rows comfortably sized for a bytea column.
	DefaultChunkSize = 255 * 1024
)

type Config struct {
	Backend   string
	ChunkSize int
}

func DefaultConfig() Config {
	return Config{
		Backend:   BackendPostgres,
		ChunkSize: DefaultChunkSize,
	}
}

// FromCentralConfig converts central config.BlobConfig to package Config,
// falling back to defaults for unset values.
func FromCentralConfig(c config.BlobConfig) Config {
	cfg := DefaultConfig()
	if c.Backend != "" {
		cfg.Backend = c.Backend
	}
	if c.ChunkSizeKiB > 0 {
		cfg.ChunkSize = c.ChunkSizeKiB * 1024
	}
	return cfg
}
