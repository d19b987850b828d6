// SPDX-License-Identifier: AGPL-3.0-or-later
// soliloque-server - a TeamSpeak2-compatible voice chat server
// Copyright (C) 2023-2026 Jacob McSwain
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// Package config loads and validates the server's configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Server holds the UDP listener configuration for the voice protocol.
type Server struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
	// Name is the server's display name, clamped to 29 bytes on the wire.
	Name string `yaml:"name"`
	// Welcome is shown to clients on login, clamped to 253 bytes on the wire.
	Welcome string `yaml:"welcome"`
	// Password gates anonymous (unregistered) logins.
	Password string `yaml:"password"`
	Machine  string `yaml:"machine"`
}

// Database holds the persistence configuration (spec.md §6's db.* keys).
type Database struct {
	Type DatabaseDriver `yaml:"type"`
	// Dir is the sqlite file path, used when Type.IsSQLite().
	Dir string `yaml:"dir"`
	// Host/Port/User/Pass/DB are used for any non-sqlite driver.
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
	DB   string `yaml:"db"`
}

// Logging holds the log.* configuration keys.
type Logging struct {
	Output LogOutput `yaml:"output"`
	Level  LogLevel  `yaml:"level"`
}

// Metrics holds the optional Prometheus metrics listener configuration.
type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Bind    string `yaml:"bind"`
	Port    int    `yaml:"port"`
}

// Config is the top-level configuration for a soliloque-server instance.
type Config struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"db"`
	Logging  Logging  `yaml:"log"`
	Metrics  Metrics  `yaml:"metrics"`
}

// Default returns a configuration matching spec.md §6's defaults.
func Default() Config {
	return Config{
		Server: Server{
			Bind:    "0.0.0.0",
			Port:    8767,
			Name:    "soliloque-server",
			Welcome: "Welcome!",
			Machine: "soliloque-server",
		},
		Database: Database{
			Type: DatabaseDriverSQLite3,
			Dir:  "soliloque.db",
			Port: 3306,
			User: "root",
			DB:   "soliloque",
		},
		Logging: Logging{
			Output: LogOutputStderr,
			Level:  LogLevelInfo,
		},
		Metrics: Metrics{
			Enabled: false,
			Bind:    "127.0.0.1",
			Port:    9147,
		},
	}
}

// Load reads and validates a YAML configuration file at path, falling back
// to Default() values for anything the file omits.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
