/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ModeStrict = "strict"
	ModeSoft   = "soft"
)

// Config is the resolved CLI configuration.
type Config struct {
	// Mode selects the failure handler: strict raises, soft logs and continues.
	Mode      string `mapstructure:"mode"`
	Color     bool   `mapstructure:"color"`
	Verbosity int    `mapstructure:"verbosity"`
}

// LoadConfig resolves the configuration.
// Precedence (highest to lowest):
// 1. Command-line flags that were set explicitly
// 2. Environment variables (CONTRACTS_MODE, CONTRACTS_COLOR, CONTRACTS_VERBOSITY)
// 3. Config file (path, or .contracts.yaml in the working directory)
// 4. Built-in defaults
func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".contracts")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("CONTRACTS")
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range []string{"mode", "color", "verbosity"} {
			if f := flags.Lookup(key); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", key, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	if cfg.Mode != ModeStrict && cfg.Mode != ModeSoft {
		return nil, fmt.Errorf("invalid mode %q: want %s or %s", cfg.Mode, ModeStrict, ModeSoft)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", ModeStrict)
	v.SetDefault("color", true)
	v.SetDefault("verbosity", 0)
}
