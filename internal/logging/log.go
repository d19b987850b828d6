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

// Package logging wires up the process-wide slog logger.
package logging

import (
	"log/slog"
	"os"

	"github.com/Youx/soliloque-server/internal/config"
	"github.com/lmittmann/tint"
)

// New builds a tint-formatted slog.Logger for the given logging configuration.
func New(cfg config.Logging) *slog.Logger {
	out := os.Stderr
	if cfg.Output == config.LogOutputStdout {
		out = os.Stdout
	}

	return slog.New(tint.NewHandler(out, &tint.Options{
		Level:      level(cfg.Level),
		TimeFormat: "15:04:05",
	}))
}

func level(l config.LogLevel) slog.Level {
	switch l {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	case config.LogLevelInfo:
		fallthrough
	default:
		return slog.LevelInfo
	}
}
