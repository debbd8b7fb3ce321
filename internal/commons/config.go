package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/sind14/Gastronomy-Service/internal/config"
)

// LoadConfig reads a yaml config file. Environment-based configuration is
// handled by config.Load; this loader is used when a file path is given.
func LoadConfig(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}
