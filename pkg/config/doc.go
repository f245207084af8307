// Package config loads env-tagged configuration structs, caching each
// type per process so all components share one parsed view of the
// environment.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
package config
