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

package store

import (
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	gorm_seeder "github.com/kachit/gorm-seeder"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Youx/soliloque-server/internal/config"
)

// Open connects to the configured database, migrates the schema and seeds
// the default server-privileges rows on first boot, grounded in the
// teacher's MakeDB pattern (open → AutoMigrate → seed-if-empty); the
// connection pool keeps gorm's defaults.
func Open(cfg config.Database) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	if cfg.Type.IsSQLite() {
		db, err = gorm.Open(sqlite.Open(cfg.Dir), &gorm.Config{})
	} else {
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.User, cfg.Pass, cfg.Host, cfg.Port, cfg.DB)
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(
		&ServerRow{},
		&ChannelRow{},
		&RegistrationRow{},
		&PlayerChannelPrivilegeRow{},
		&ServerPrivilegeRow{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	var count int64
	db.Model(&ServerPrivilegeRow{}).Count(&count)
	if count == 0 {
		seeder := NewServerPrivilegesSeeder(gorm_seeder.SeederConfiguration{Rows: len(defaultGroupRows)})
		stack := gorm_seeder.NewSeedersStack(db)
		stack.AddSeeder(&seeder)
		if err := stack.Seed(); err != nil {
			return nil, fmt.Errorf("failed to seed server_privileges: %w", err)
		}
	}

	return db, nil
}

// LoadLogger is a convenience used by internal/cmd's boot to report which
// database backend was selected, matching the teacher's boot-time logging
// texture.
func LoadLogger(log *slog.Logger, cfg config.Database) {
	if cfg.Type.IsSQLite() {
		log.Info("opening database", "driver", cfg.Type, "path", cfg.Dir)
		return
	}
	log.Info("opening database", "driver", cfg.Type, "host", cfg.Host, "db", cfg.DB)
}
