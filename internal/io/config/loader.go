// Package config provides I/O operations for loading configuration from files,
// environment variables and flags. This is an impure package that handles file
// system and flag operations.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bookdim/bookdim/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Load reads configuration from a YAML file and returns a validated Config.
// If configPath is empty, it searches default locations:
//   - ./bookdim.yaml
//   - ~/.config/bookdim/bookdim.yaml
//
// Environment variables with the BOOKDIM_ prefix override file values,
// e.g. BOOKDIM_DATABASE_PASSWORD overrides database.password.
//
// Returns error if file is malformed or validation fails.
func Load(configPath string) (*config.Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")
	v.SetEnvPrefix(strings.ToUpper(config.AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults seed every key so AutomaticEnv can override them even
	// when no config file exists.
	bindDefaults(v, config.Defaults())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(config.AppName)
		v.AddConfigPath(".")

		homeDir, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", config.AppName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// An explicit path that cannot be read is an error; a miss
			// on the default search paths falls through to defaults.
			if configPath != "" {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func bindDefaults(v *viper.Viper, d *config.Config) {
	v.SetDefault("landing.dir", d.Landing.Dir)
	v.SetDefault("landing.sources_file", d.Landing.SourcesFile)
	v.SetDefault("standard.dir", d.Standard.Dir)
	v.SetDefault("standard.docs_dir", d.Standard.DocsDir)
	v.SetDefault("database.host", d.Database.Host)
	v.SetDefault("database.port", d.Database.Port)
	v.SetDefault("database.user", d.Database.User)
	v.SetDefault("database.password", d.Database.Password)
	v.SetDefault("database.database", d.Database.Database)
	v.SetDefault("database.ssl_mode", d.Database.SSLMode)
	v.SetDefault("database.batch_size", d.Database.BatchSize)
	v.SetDefault("database.max_connections", d.Database.MaxConnections)
	v.SetDefault("database.min_connections", d.Database.MinConnections)
	v.SetDefault("quality.min_title_completeness", d.Quality.MinTitleCompleteness)
	v.SetDefault("quality.max_price", d.Quality.MaxPrice)
	v.SetDefault("quality.min_books", d.Quality.MinBooks)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("jobs_number", d.JobsNumber)
}

// BindFlags binds cobra command flags to viper and returns updated config.
// CLI flags take precedence over config file and environment values.
func BindFlags(cmd *cobra.Command, cfg *config.Config) (*config.Config, error) {
	v := viper.New()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if v.IsSet("host") {
		cfg.Database.Host = v.GetString("host")
	}
	if v.IsSet("port") {
		cfg.Database.Port = v.GetInt("port")
	}
	if v.IsSet("user") {
		cfg.Database.User = v.GetString("user")
	}
	if v.IsSet("password") {
		cfg.Database.Password = v.GetString("password")
	}
	if v.IsSet("database") {
		cfg.Database.Database = v.GetString("database")
	}
	if v.IsSet("ssl-mode") {
		cfg.Database.SSLMode = v.GetString("ssl-mode")
	}
	if v.IsSet("landing-dir") {
		cfg.Landing.Dir = v.GetString("landing-dir")
	}
	if v.IsSet("standard-dir") {
		cfg.Standard.Dir = v.GetString("standard-dir")
	}
	if v.IsSet("jobs") {
		cfg.JobsNumber = v.GetInt("jobs")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration after flag binding: %w", err)
	}

	return cfg, nil
}
