package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Inbound authentication: the bearer token the tool layer must present.
	APIAuthToken string `mapstructure:"API_AUTH_TOKEN"`

	// EnvelopeMode selects the tool-call envelope calling convention; when
	// false, endpoints accept raw parameter bodies instead.
	EnvelopeMode bool `mapstructure:"ENVELOPE_MODE"`

	// Upstream scheduling provider configuration.
	CalComAPIKey     string `mapstructure:"CALCOM_API_KEY"`
	CalComBaseURL    string `mapstructure:"CALCOM_BASE_URL"`
	CalComAPIVersion string `mapstructure:"CALCOM_API_VERSION"`
	ClinicTimeZone   string `mapstructure:"CLINIC_TIMEZONE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("ENVELOPE_MODE", true)
	viper.SetDefault("CALCOM_BASE_URL", "https://api.cal.com/v2")
	viper.SetDefault("CALCOM_API_VERSION", "2024-09-04")
	viper.SetDefault("CLINIC_TIMEZONE", "Asia/Almaty")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
