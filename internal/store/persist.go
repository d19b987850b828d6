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
	"log/slog"

	"gorm.io/gorm"

	"github.com/Youx/soliloque-server/internal/arena"
)

// Persist implements handlers.Persister against a gorm database, the
// boundary across which a handler's in-memory mutation reaches the
// registered subset of the domain model (spec §2).
type Persist struct {
	db       *gorm.DB
	serverID uint
	log      *slog.Logger
}

// NewPersist binds a persistence adapter to one server row.
func NewPersist(db *gorm.DB, serverID uint, log *slog.Logger) *Persist {
	return &Persist{db: db, serverID: serverID, log: log}
}

func (p *Persist) SaveChannel(c *arena.Channel) {
	parentID := int32(-1)
	if c.Parent != nil {
		parentID = int32(c.Parent.DBID)
	}
	row := ChannelRow{
		ID:        uint(c.DBID),
		ServerID:  p.serverID,
		ParentID:  parentID,
		Flags:     uint16(c.Flags),
		Codec:     c.Codec,
		SortOrder: c.SortOrder,
		MaxUsers:  c.MaxUsers,
		Name:      c.Name,
		Topic:     c.Topic,
		Desc:      c.Desc,
		Password:  c.Password,
	}
	if err := p.db.Save(&row).Error; err != nil {
		p.log.Error("failed to save channel", "channel", c.Name, "error", err)
		return
	}
	c.DBID = uint32(row.ID)
}

func (p *Persist) DeleteChannel(c *arena.Channel) {
	if c.DBID == 0 {
		return
	}
	if err := p.db.Delete(&ChannelRow{}, c.DBID).Error; err != nil {
		p.log.Error("failed to delete channel", "channel", c.Name, "error", err)
		return
	}
	c.DBID = 0
}

func (p *Persist) SaveRegistration(r *arena.Registration) {
	row := RegistrationRow{
		ID:           uint(r.DBID),
		ServerID:     p.serverID,
		Login:        r.Login,
		PasswordHash: r.PasswordHash,
		GlobalFlags:  uint16(r.GlobalFlags),
	}
	if err := p.db.Save(&row).Error; err != nil {
		p.log.Error("failed to save registration", "login", r.Login, "error", err)
		return
	}
	r.DBID = uint32(row.ID)
}

func (p *Persist) DeleteRegistration(r *arena.Registration) {
	if r.DBID == 0 {
		return
	}
	if err := p.db.Delete(&RegistrationRow{}, r.DBID).Error; err != nil {
		p.log.Error("failed to delete registration", "login", r.Login, "error", err)
		return
	}
	r.DBID = 0
}

func (p *Persist) SavePrivilege(rec *arena.ChannelPrivilege) {
	row := PlayerChannelPrivilegeRow{
		ID:        uint(rec.DBID),
		ChannelID: uint(rec.Channel.DBID),
		Flags:     uint8(rec.Flags),
	}
	if reg := rec.Registration(); reg != nil {
		id := uint(reg.DBID)
		row.RegistrationID = &id
	} else if player := rec.Player(); player != nil {
		row.PlayerName = player.Nickname
	}
	if err := p.db.Save(&row).Error; err != nil {
		p.log.Error("failed to save channel privilege", "channel", rec.Channel.Name, "error", err)
		return
	}
	rec.DBID = uint32(row.ID)
}

func (p *Persist) DeletePrivilege(rec *arena.ChannelPrivilege) {
	if rec.DBID == 0 {
		return
	}
	if err := p.db.Delete(&PlayerChannelPrivilegeRow{}, rec.DBID).Error; err != nil {
		p.log.Error("failed to delete channel privilege", "channel", rec.Channel.Name, "error", err)
		return
	}
	rec.DBID = 0
}
