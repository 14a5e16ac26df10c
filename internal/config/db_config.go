package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type DBConfig struct {
	ConnectionString string `mapstructure:"connection_string" validate:"required"`
}

func (config DBConfig) validate() error {
	return validator.New().Struct(config)
}

func (config DBConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("db.connection_string", "DB_CONNECTION_STRING")
}
