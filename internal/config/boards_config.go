package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// BoardsConfig configures the upstream job boards client and the freshness
// window for fetched listings.
type BoardsConfig struct {
	BaseURL              string        `mapstructure:"base_url" validate:"required,url"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second" validate:"gt=0"`
	CacheTTL             time.Duration `mapstructure:"cache_ttl" validate:"gt=0"`
}

func (config BoardsConfig) validate() error {
	return validator.New().Struct(config)
}

func (config BoardsConfig) bindEnvironmentVariables() error {

	err := viper.BindEnv("boards.base_url", "BOARDS_BASE_URL")
	if err != nil {
		return err
	}

	err = viper.BindEnv("boards.max_requests_per_second", "BOARDS_MAX_REQUESTS_PER_SECOND")
	if err != nil {
		return err
	}

	return viper.BindEnv("boards.cache_ttl", "BOARDS_CACHE_TTL")
}
