// Package config loads service configuration from YAML files, .env files
// and environment variables using Viper.
//
// # Usage
//
//	var cfg AppConfig // embeds config.ServiceConfig
//	files, err := config.LoadConfig("order-service", &cfg)
//
// Environment variables override file values. Underscore-separated names
// are bound to every plausible nested key, so INVENTORY_URL populates
// inventory.url and INVENTORY_CONNECT_TIMEOUT populates
// inventory.connect_timeout.
package config
