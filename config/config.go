package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	DataDir  string `mapstructure:"data_dir"`
	FileName string `mapstructure:"file_name"`
	History  bool   `mapstructure:"history"`

	Author struct {
		Name  string `mapstructure:"name"`
		Email string `mapstructure:"email"`
	} `mapstructure:"author"`
}

// Load reads the YAML config file at path, falling back to defaults for
// anything unset. An empty path loads pure defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("file_name", "plain.db")
	v.SetDefault("history", true)
	v.SetDefault("author.name", "PlainDB")
	v.SetDefault("author.email", "plaindb@localhost")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".plaindb"
	}
	return filepath.Join(home, ".plaindb")
}
