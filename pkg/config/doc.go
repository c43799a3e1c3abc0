// Package config loads typed configuration sections from environment
// variables, with optional .env files for local development.
//
// Each section is a plain struct with `env` tags; Load parses it once per
// process and caches the result, so independent components can load the
// sections they depend on without sharing a central config object:
//
//	var pgCfg pg.Config
//	if err := config.Load(&pgCfg); err != nil {
//	    return err
//	}
//
//	var redisCfg redis.Config
//	config.MustLoad(&redisCfg)
//
// See pg.Config, redis.Config, email.Config, and auth.Config for the
// sections this module defines.
package config
