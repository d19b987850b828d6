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

package config

import "errors"

var (
	// ErrInvalidLogLevel indicates that the provided log level is not valid.
	ErrInvalidLogLevel = errors.New("invalid log level provided")
	// ErrInvalidLogOutput indicates that the provided log output is not valid.
	ErrInvalidLogOutput = errors.New("invalid log output provided")
	// ErrInvalidDatabaseDriver indicates that the provided database driver is not valid.
	ErrInvalidDatabaseDriver = errors.New("invalid database driver provided")
	// ErrInvalidDatabaseHost indicates that the provided database host is not valid.
	ErrInvalidDatabaseHost = errors.New("invalid database host provided")
	// ErrInvalidDatabasePort indicates that the provided database port is not valid.
	ErrInvalidDatabasePort = errors.New("invalid database port provided")
	// ErrInvalidDatabaseName indicates that the provided database name is not valid.
	ErrInvalidDatabaseName = errors.New("invalid database name provided")
	// ErrInvalidServerBind indicates that the provided UDP bind address is not valid.
	ErrInvalidServerBind = errors.New("invalid server bind address provided")
	// ErrInvalidServerPort indicates that the provided UDP port is not valid.
	ErrInvalidServerPort = errors.New("invalid server port provided")
	// ErrInvalidMetricsBindAddress indicates that the provided metrics server bind address is not valid.
	ErrInvalidMetricsBindAddress = errors.New("invalid metrics server bind address provided")
	// ErrInvalidMetricsPort indicates that the provided metrics server port is not valid.
	ErrInvalidMetricsPort = errors.New("invalid metrics server port provided")
)

// Validate validates the Server configuration.
func (s Server) Validate() error {
	if s.Bind == "" {
		return ErrInvalidServerBind
	}
	if s.Port <= 0 || s.Port > 65535 {
		return ErrInvalidServerPort
	}
	return nil
}

// Validate validates the Database configuration.
func (d Database) Validate() error {
	if d.Type == "" {
		return ErrInvalidDatabaseDriver
	}

	if !d.Type.IsSQLite() {
		if d.Host == "" {
			return ErrInvalidDatabaseHost
		}
		if d.Port <= 0 || d.Port > 65535 {
			return ErrInvalidDatabasePort
		}
	}

	if d.DB == "" {
		return ErrInvalidDatabaseName
	}

	return nil
}

// Validate validates the Logging configuration.
func (l Logging) Validate() error {
	switch l.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return ErrInvalidLogLevel
	}

	switch l.Output {
	case LogOutputStdout, LogOutputStderr:
	default:
		return ErrInvalidLogOutput
	}

	return nil
}

// Validate validates the Metrics configuration.
func (m Metrics) Validate() error {
	if !m.Enabled {
		return nil
	}

	if m.Bind == "" {
		return ErrInvalidMetricsBindAddress
	}
	if m.Port <= 0 || m.Port > 65535 {
		return ErrInvalidMetricsPort
	}

	return nil
}

// Validate validates the whole configuration, section by section.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	return nil
}
