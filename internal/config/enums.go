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

// LogLevel represents the logging level for the application.
type LogLevel string

const (
	// LogLevelDebug is the debug logging level, providing detailed information.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the informational logging level, providing general information.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn is the warning logging level, indicating potential issues.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError is the error logging level, indicating serious issues.
	LogLevelError LogLevel = "error"
)

// LogOutput selects where log lines are written.
type LogOutput string

const (
	// LogOutputStderr writes log lines to standard error.
	LogOutputStderr LogOutput = "stderr"
	// LogOutputStdout writes log lines to standard output.
	LogOutputStdout LogOutput = "stdout"
)

// DatabaseDriver represents the type of database driver used in the application.
type DatabaseDriver string

const (
	// DatabaseDriverSQLite is the SQLite database driver (config key "sqlite").
	DatabaseDriverSQLite DatabaseDriver = "sqlite"
	// DatabaseDriverSQLite3 is an alias accepted for the SQLite driver (config key "sqlite3").
	DatabaseDriverSQLite3 DatabaseDriver = "sqlite3"
	// DatabaseDriverMySQL is the MySQL/MariaDB database driver, used for any
	// db.type other than sqlite/sqlite3.
	DatabaseDriverMySQL DatabaseDriver = "mysql"
)

// IsSQLite reports whether the driver is one of the file-backed SQLite spellings.
func (d DatabaseDriver) IsSQLite() bool {
	return d == DatabaseDriverSQLite || d == DatabaseDriverSQLite3
}
