// Package config loads service configuration with Viper.
//
// Values come from, in increasing priority: the YAML config file, a .env
// file, process environment variables and finally anything already set on
// a caller-supplied *viper.Viper (typically bound command-line flags).
//
// # Usage
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Scores engine.Config `yaml:"scores" mapstructure:"scores"`
//	}
//
//	var cfg AppConfig
//	err := config.LoadConfig("funcdemo", &cfg)
//
// Environment variables map onto nested keys by splitting on underscores,
// so SCORES_THRESHOLD sets scores.threshold and LOGGING_LEVEL sets
// logging.level.
package config
