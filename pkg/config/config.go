// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads predictor settings from a YAML file with environment
// variable overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/recgraph/predictor/pkg/recommender"
	"github.com/recgraph/predictor/pkg/store"
)

// Defaults applied when the config file or environment leaves them unset.
const (
	DefaultRedisAddr  = "localhost:6379"
	DefaultListenAddr = "127.0.0.1:8765"
)

// envPrefix namespaces environment overrides, e.g. PREDICTOR_REDIS_ADDR.
const envPrefix = "PREDICTOR"

// RedisSettings configures the connection to the backing store.
type RedisSettings struct {
	Addr         string        `mapstructure:"addr"`
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// StoreConfig converts the settings into a store.RedisConfig.
func (s RedisSettings) StoreConfig() store.RedisConfig {
	return store.RedisConfig{
		Addr:         s.Addr,
		Username:     s.Username,
		Password:     s.Password,
		DB:           s.DB,
		DialTimeout:  s.DialTimeout,
		ReadTimeout:  s.ReadTimeout,
		WriteTimeout: s.WriteTimeout,
	}
}

// ServerSettings configures the HTTP query server.
type ServerSettings struct {
	ListenAddr string `mapstructure:"listen_addr"`
	Metrics    bool   `mapstructure:"metrics"`
}

// MatrixSettings declares one matrix of a recommender class.
type MatrixSettings struct {
	Label  string  `mapstructure:"label"`
	Weight float64 `mapstructure:"weight"`
}

// RecommenderSettings declares one recommender class.
type RecommenderSettings struct {
	Class       string           `mapstructure:"class"`
	Limit       int64            `mapstructure:"limit"`
	Concurrency int              `mapstructure:"concurrency"`
	Matrices    []MatrixSettings `mapstructure:"matrices"`
}

// RecommenderConfig converts the settings into a recommender.Config.
func (s RecommenderSettings) RecommenderConfig() recommender.Config {
	matrices := make([]recommender.MatrixConfig, len(s.Matrices))
	for i, m := range s.Matrices {
		matrices[i] = recommender.MatrixConfig{Label: m.Label, Weight: m.Weight}
	}
	return recommender.Config{
		Class:           s.Class,
		Matrices:        matrices,
		SimilarityLimit: s.Limit,
		Concurrency:     s.Concurrency,
	}
}

// Settings is the root configuration document.
type Settings struct {
	Redis        RedisSettings         `mapstructure:"redis"`
	Server       ServerSettings        `mapstructure:"server"`
	Recommenders []RecommenderSettings `mapstructure:"recommenders"`
}

// Validate checks the settings, delegating recommender validation to the
// recommender package so the rules stay in one place.
func (s *Settings) Validate() error {
	if s.Redis.Addr == "" {
		return fmt.Errorf("redis address is required")
	}
	if len(s.Recommenders) == 0 {
		return fmt.Errorf("at least one recommender class is required")
	}
	classes := make(map[string]struct{}, len(s.Recommenders))
	for _, rec := range s.Recommenders {
		cfg := rec.RecommenderConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}
		if _, dup := classes[rec.Class]; dup {
			return fmt.Errorf("duplicate recommender class %q", rec.Class)
		}
		classes[rec.Class] = struct{}{}
	}
	return nil
}

// Recommender returns the settings of the named class.
func (s *Settings) Recommender(class string) (RecommenderSettings, bool) {
	for _, rec := range s.Recommenders {
		if rec.Class == class {
			return rec, true
		}
	}
	return RecommenderSettings{}, false
}

// Load reads settings from the given file path, or from predictor.yaml in
// the working directory when path is empty. Environment variables prefixed
// with PREDICTOR_ override file values.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetDefault("redis.addr", DefaultRedisAddr)
	v.SetDefault("server.listen_addr", DefaultListenAddr)
	v.SetDefault("server.metrics", true)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("predictor")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine; explicit paths must exist.
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &settings, nil
}
