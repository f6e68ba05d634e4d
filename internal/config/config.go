package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

type Log struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

type Pipeline struct {
	// Environment the sequencer assumes when none is passed on the
	// command line: local or hosted.
	Environment string `yaml:"environment" mapstructure:"environment"`

	// ExtraSecrets are app-specific secret names validated alongside
	// the standard deploy set.
	ExtraSecrets []string `yaml:"extra_secrets" mapstructure:"extra_secrets"`
}

type Config struct {
	// DataDir holds the run history store.
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	Project  types.ProjectConfig `yaml:"project" mapstructure:"project"`
	Pipeline Pipeline            `yaml:"pipeline" mapstructure:"pipeline"`
	Log      Log                 `yaml:"log" mapstructure:"log"`
}

func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Pipeline: Pipeline{
			Environment: string(types.EnvLocal),
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

func defaultDataDir() string {
	home, _ := os.UserHomeDir()
	if home == "" {
		return "./data"
	}
	return filepath.Join(home, ".flightdeck")
}

// Load reads the configuration file at path, or searches the working
// directory and home config dir when path is empty. An explicitly
// named file must exist; an empty search result is not an error and
// defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if path == "" {
		v.SetConfigName("flightdeck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".flightdeck"))
		}
	}
	v.SetEnvPrefix("FLIGHTDECK")
	v.AutomaticEnv()

	cfg := Default()
	if err := v.ReadInConfig(); err != nil {
		// An explicitly named file must exist; the search path may
		// come up empty.
		if path != "" {
			return nil, err
		}
		return cfg, nil
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.Project = cfg.Project.WithDefaults()
	return cfg, nil
}
