// Package config loads tsdocgraph's project configuration.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level config.yaml shape.
type Config struct {
	Project struct {
		Root string `yaml:"root"`
	} `yaml:"project"`
	Resolver struct {
		// ConfigFileNames are tried, in order, at each directory level
		// while searching upward for a TypeScript-style config file.
		ConfigFileNames []string `yaml:"config_file_names"`
	} `yaml:"resolver"`
	Cache struct {
		// SymbolCacheSize is read and defaulted here (0 = 4096); it is not
		// passed to the symbol cache, which uses its own built-in size.
		SymbolCacheSize int    `yaml:"symbol_cache_size"`
		SnapshotPath    string `yaml:"snapshot_path"`
	} `yaml:"cache"`
}

const defaultSymbolCacheSize = 4096

// LoadConfig reads config.yaml at path, applying environment overrides.
// Missing file is not an error for the zero-argument CLI invocations
// that only need defaults; callers that require an explicit file should
// check os.Stat first.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Resolver.ConfigFileNames = []string{"tsconfig.json", "jsconfig.json"}
	cfg.Cache.SymbolCacheSize = defaultSymbolCacheSize

	file, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	if err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	}
	if cfg.Cache.SymbolCacheSize <= 0 {
		cfg.Cache.SymbolCacheSize = defaultSymbolCacheSize
	}
	if len(cfg.Resolver.ConfigFileNames) == 0 {
		cfg.Resolver.ConfigFileNames = []string{"tsconfig.json", "jsconfig.json"}
	}

	if root := os.Getenv("TSDOC_PROJECT_ROOT"); root != "" {
		cfg.Project.Root = root
	}
	if snap := os.Getenv("TSDOC_CACHE_SNAPSHOT"); snap != "" {
		cfg.Cache.SnapshotPath = snap
	}

	return cfg, nil
}
