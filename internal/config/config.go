package config

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds the service settings.
type Config struct {
	ListenAddr      string `mapstructure:"LISTEN_ADDR"`
	DBPath          string `mapstructure:"DB_PATH"`
	DefaultPageSize int    `mapstructure:"DEFAULT_PAGE_SIZE"`
	MaxPageSize     int    `mapstructure:"MAX_PAGE_SIZE"`
	// SampleSize caps the rows fed into summary statistics.
	SampleSize int `mapstructure:"SAMPLE_SIZE"`
	// CaseSensitiveFilters restores strict substring matching.
	CaseSensitiveFilters bool `mapstructure:"CASE_SENSITIVE_FILTERS"`
	// NumericSort enables numeric-aware sort comparison.
	NumericSort bool `mapstructure:"NUMERIC_SORT"`
}

// Get loads configuration from configs/config.json, falling back to
// defaults when the file is absent. Environment variables override file
// values.
func Get(log *logrus.Logger) Config {
	v := viper.New()
	var cfg Config

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath("./configs")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn("Config file not found, using default configs")
		} else {
			log.WithError(err).Fatal("Config file found but could not be parsed")
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		log.WithError(err).Fatal("Unable to decode config into struct")
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("DB_PATH", "csv-manager.db")
	v.SetDefault("DEFAULT_PAGE_SIZE", 10)
	v.SetDefault("MAX_PAGE_SIZE", 500)
	v.SetDefault("SAMPLE_SIZE", 100)
	v.SetDefault("CASE_SENSITIVE_FILTERS", false)
	v.SetDefault("NUMERIC_SORT", false)
}
