// Package config loads ormkit CLI configuration from config files,
// environment variables and .env files.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem used by the CLI; swapped for a memory fs in tests.
var AppFs = afero.NewOsFs()

// Config holds the CLI configuration
type Config struct {
	SchemaPath  string
	OutputPath  string
	OutputPkg   string
	DatabaseURL string
	Provider    string
}

// LoadConfig loads configuration from various sources
func LoadConfig() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName("ormkit")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "ormkit"))

	viper.SetEnvPrefix("ORMKIT")
	viper.AutomaticEnv()

	viper.SetDefault("schema_path", "schema.okd")
	viper.SetDefault("output_path", "./db")
	viper.SetDefault("output_pkg", "db")
	viper.SetDefault("provider", "sqlite")

	// Config file is optional
	_ = viper.ReadInConfig()

	// .env then .env.local, the latter taking precedence
	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	cfg := &Config{
		SchemaPath:  viper.GetString("schema_path"),
		OutputPath:  viper.GetString("output_path"),
		OutputPkg:   viper.GetString("output_pkg"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Provider:    viper.GetString("provider"),
	}

	return cfg, nil
}

// SaveConfig writes the configuration to the working directory
func SaveConfig(cfg *Config) error {
	viper.Set("schema_path", cfg.SchemaPath)
	viper.Set("output_path", cfg.OutputPath)
	viper.Set("output_pkg", cfg.OutputPkg)
	viper.Set("provider", cfg.Provider)

	return viper.WriteConfigAs("ormkit.yaml")
}
