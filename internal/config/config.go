// Package config loads CLI defaults from a config file and the environment.
//
// Sources, lowest precedence first: struct defaults, beautimg.yaml (or the
// file given explicitly), BEAUTIMG_* environment variables. Command-line
// flags are applied on top by the commands themselves.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AnyUserName/beautimg/internal/logging"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. BEAUTIMG_QUALITY.
const EnvPrefix = "BEAUTIMG"

// Config holds the tool's defaults.
type Config struct {
	Quality int    `mapstructure:"quality" default:"82" validate:"min=1,max=100"`
	Mode    string `mapstructure:"mode" default:"standard" validate:"oneof=standard high-quality hq"`
	Profile string `mapstructure:"profile" default:"web"`
	// Workers bounds batch concurrency; 0 means one per CPU.
	Workers int            `mapstructure:"workers" default:"0" validate:"gte=0"`
	Log     logging.Config `mapstructure:"log"`
}

var validate = validator.New()

// Default returns the built-in configuration.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return &c, nil
}

// Load reads path, or beautimg.{yaml,json,toml} from the working directory
// when path is empty. A missing implicit file is not an error.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindKeys(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("beautimg")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// bindKeys registers every key so AutomaticEnv applies to Unmarshal even when
// no config file mentions it.
func bindKeys(v *viper.Viper) {
	for _, key := range []string{
		"quality", "mode", "profile", "workers",
		"log.level", "log.format", "log.file",
		"log.max-size", "log.max-backups", "log.max-age", "log.compress",
	} {
		_ = v.BindEnv(key)
	}
}
