package configs

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	FileStorage FileStorageConfig `mapstructure:"file_storage" validate:"required"`
	Ingestion   IngestionConfig   `mapstructure:"ingestion"`
	Stream      StreamConfig      `mapstructure:"stream"`
	Cardinality CardinalityConfig `mapstructure:"cardinality"`
	Retention   RetentionConfig   `mapstructure:"retention"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
	QueryTimeout      int `mapstructure:"query_timeout" validate:"min=0"`                // seconds, 0 disables
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// FileStorageConfig holds file storage configuration.
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// IngestionConfig holds limits for the batch ingestion endpoint.
type IngestionConfig struct {
	MaxBatchBytes int `mapstructure:"max_batch_bytes" validate:"min=1"`
}

// StreamConfig sizes the in-process partitioned queue.
type StreamConfig struct {
	Partitions int `mapstructure:"partitions" validate:"min=1,max=256"`
	Buffer     int `mapstructure:"buffer" validate:"min=1"`
}

// CardinalityConfig selects how unique visitors are counted.
// "exact" keeps every identifier; "hll" keeps a HyperLogLog sketch of the given precision.
type CardinalityConfig struct {
	Mode      string `mapstructure:"mode" validate:"oneof=exact hll"`
	Precision int    `mapstructure:"precision" validate:"oneof=14 16"`
}

// RetentionConfig controls how long day buckets stay open.
type RetentionConfig struct {
	Days          int    `mapstructure:"days" validate:"min=0"` // 0 keeps every day
	Policy        string `mapstructure:"policy" validate:"oneof=purge freeze"`
	SweepInterval int    `mapstructure:"sweep_interval" validate:"min=1"` // seconds
	Archive       bool   `mapstructure:"archive"`
}

const (
	CardinalityModeExact = "exact"
	CardinalityModeHLL   = "hll"

	RetentionPolicyPurge  = "purge"
	RetentionPolicyFreeze = "freeze"
)
