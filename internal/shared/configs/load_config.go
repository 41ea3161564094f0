package configs

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"visit-analytics/internal/shared/validators"

	"github.com/spf13/viper"
)

// LoadConfig reads the YAML file at configPath, fills the optional sections with defaults
// and validates the result.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults fills the optional sections so a minimal config file stays valid.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.query_timeout", 10)

	v.SetDefault("ingestion.max_batch_bytes", 2*1024*1024)

	v.SetDefault("stream.partitions", 8)
	v.SetDefault("stream.buffer", 1024)

	v.SetDefault("cardinality.mode", CardinalityModeExact)
	v.SetDefault("cardinality.precision", 14)

	v.SetDefault("retention.days", 0)
	v.SetDefault("retention.policy", RetentionPolicyPurge)
	v.SetDefault("retention.sweep_interval", 3600)
	v.SetDefault("retention.archive", false)
}

// validate reports every invalid field by its YAML path, e.g. "file_storage.root_dir (required)".
func validate(cfg *Config) error {
	validate := validators.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
		if name == "" {
			return field.Name
		}
		return name
	})

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrors validators.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("config validation failed: %w", err)
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, formatFieldError(fe))
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(messages, ", "))
}

func formatFieldError(fe validators.FieldError) string {
	// drop the root struct name: "Config.server.port" -> "server.port"
	path := fe.Namespace()
	if _, rest, ok := strings.Cut(path, "."); ok {
		path = rest
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s (required)", path)
	case "min", "max", "oneof":
		return fmt.Sprintf("%s (%s=%s)", path, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s (%s)", path, fe.Tag())
	}
}
