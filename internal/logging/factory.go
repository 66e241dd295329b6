package logging

import (
	"fmt"

	"jobhunter/internal/logging/adapters"
	"jobhunter/internal/logging/types"
)

// AdapterFactory creates logging adapters based on configuration
type AdapterFactory struct{}

// NewAdapterFactory creates a new adapter factory
func NewAdapterFactory() *AdapterFactory {
	return &AdapterFactory{}
}

// CreateAdapter creates a logging adapter based on the provided configuration
func (f *AdapterFactory) CreateAdapter(cfg types.AdapterConfig) (types.LogAdapter, error) {
	switch cfg.Type {
	case "stdout":
		return adapters.NewStdoutAdapter(cfg.Name, adapters.StdoutConfig{
			Format: getStringOption(cfg.Options, "format", "json"),
		}), nil
	case "file":
		return adapters.NewFileAdapter(cfg.Name, adapters.FileConfig{
			FilePath:   getStringOption(cfg.Options, "file_path", ""),
			Format:     getStringOption(cfg.Options, "format", "json"),
			MaxSize:    getInt64Option(cfg.Options, "max_size", 0),
			CreateDirs: getBoolOption(cfg.Options, "create_dirs", true),
		})
	default:
		return nil, fmt.Errorf("unsupported adapter type: %s", cfg.Type)
	}
}

func getStringOption(options map[string]interface{}, key string, defaultValue string) string {
	if value, exists := options[key]; exists {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return defaultValue
}

func getInt64Option(options map[string]interface{}, key string, defaultValue int64) int64 {
	if value, exists := options[key]; exists {
		switch v := value.(type) {
		case int64:
			return v
		case int:
			return int64(v)
		case float64:
			return int64(v)
		}
	}
	return defaultValue
}

func getBoolOption(options map[string]interface{}, key string, defaultValue bool) bool {
	if value, exists := options[key]; exists {
		if b, ok := value.(bool); ok {
			return b
		}
	}
	return defaultValue
}
