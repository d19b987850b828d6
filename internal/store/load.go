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

	"gorm.io/gorm"

	"github.com/Youx/soliloque-server/internal/arena"
)

// FindOrCreateServer loads the active server row matching name, creating
// one from cfg-derived defaults on first boot (spec §6).
func FindOrCreateServer(db *gorm.DB, name, welcome, password, machine string, port int) (ServerRow, error) {
	var row ServerRow
	err := db.Where("name = ?", name).First(&row).Error
	if err == nil {
		if !row.Active {
			return ServerRow{}, fmt.Errorf("server %q is not active", name)
		}
		return row, nil
	}
	if err != gorm.ErrRecordNotFound {
		return ServerRow{}, fmt.Errorf("failed to query server row: %w", err)
	}
	row = ServerRow{Name: name, Welcome: welcome, Password: password, Machine: machine, Port: port, Active: true}
	if err := db.Create(&row).Error; err != nil {
		return ServerRow{}, fmt.Errorf("failed to create server row: %w", err)
	}
	return row, nil
}

// Load hydrates s with every channel, registration and registration-scoped
// channel privilege persisted for serverID, replacing the provisional
// default channel NewServer seeds when at least one channel row exists
// (spec §2's "the in-memory arena is the source of truth at runtime;
// registered rows seed and are updated from it").
//
// A player-scoped privilege row (PlayerName set, no RegistrationID) names
// a not-yet-registered player and so cannot be reattached until a player
// with that nickname reconnects; this pass does not perform that
// reattachment; the row remains in the table for a future login to pick
// up the original grant manually.
func Load(db *gorm.DB, serverID uint, s *arena.Server) error {
	var channelRows []ChannelRow
	if err := db.Where("server_id = ?", serverID).Order("parent_id asc, id asc").Find(&channelRows).Error; err != nil {
		return fmt.Errorf("failed to load channels: %w", err)
	}

	byDBID := map[uint]*arena.Channel{}
	if len(channelRows) > 0 {
		s.ResetChannels()
		for _, row := range channelRows {
			if row.ParentID != -1 {
				continue
			}
			byDBID[row.ID] = s.LoadChannel(uint32(row.ID), row.Name, arena.ChannelFlag(row.Flags),
				row.Codec, row.SortOrder, row.MaxUsers, row.Topic, row.Desc, row.Password)
		}
		for _, row := range channelRows {
			if row.ParentID == -1 {
				continue
			}
			parent, ok := byDBID[uint(row.ParentID)]
			if !ok {
				continue
			}
			byDBID[row.ID] = s.LoadSubchannel(parent, uint32(row.ID), row.Name, row.Codec)
		}
	}

	var regRows []RegistrationRow
	if err := db.Where("server_id = ?", serverID).Find(&regRows).Error; err != nil {
		return fmt.Errorf("failed to load registrations: %w", err)
	}
	regByDBID := map[uint]*arena.Registration{}
	for _, row := range regRows {
		reg := &arena.Registration{
			DBID:         uint32(row.ID),
			Login:        row.Login,
			PasswordHash: row.PasswordHash,
			GlobalFlags:  arena.GlobalFlag(row.GlobalFlags),
		}
		s.AddRegistration(reg)
		regByDBID[row.ID] = reg
	}

	if len(byDBID) == 0 {
		return nil
	}
	channelIDs := make([]uint, 0, len(byDBID))
	for id := range byDBID {
		channelIDs = append(channelIDs, id)
	}
	var privRows []PlayerChannelPrivilegeRow
	if err := db.Where("channel_id IN ?", channelIDs).Find(&privRows).Error; err != nil {
		return fmt.Errorf("failed to load channel privileges: %w", err)
	}
	for _, row := range privRows {
		if row.RegistrationID == nil {
			continue
		}
		c, ok := byDBID[row.ChannelID]
		if !ok {
			continue
		}
		reg, ok := regByDBID[*row.RegistrationID]
		if !ok {
			continue
		}
		rec := arena.NewRegistrationScopedPrivilege(c, reg, arena.ChanPriv(row.Flags))
		rec.DBID = uint32(row.ID)
		c.AddPrivilege(rec)
	}
	return nil
}
