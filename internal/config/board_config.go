package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// BoardConfig configures the board's browse behavior.
type BoardConfig struct {
	ItemsPerPage int `mapstructure:"items_per_page" validate:"min=1"`
}

func (config BoardConfig) validate() error {
	return validator.New().Struct(config)
}

func (config BoardConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("board.items_per_page", "BOARD_ITEMS_PER_PAGE")
}
