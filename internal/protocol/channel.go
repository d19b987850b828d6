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

package protocol

import "github.com/Youx/soliloque-server/internal/wire"

// RootParentID is the sentinel parent_id value for a channel with no parent.
const RootParentID uint32 = 0xFFFFFFFF

// ChannelWire is the on-wire form of a channel: id(4)|flags(2)|codec(2)|
// parent_id(4, 0xFFFFFFFF for root)|sort_order(2)|max_users(2)|name(zt)|
// topic(zt)|desc(zt) (spec §6).
type ChannelWire struct {
	ID         uint32
	Flags      uint16
	Codec      uint16
	ParentID   uint32
	SortOrder  uint16
	MaxUsers   uint16
	Name       string
	Topic      string
	Desc       string
}

// Encode appends the wire form of c to b and returns the extended slice.
func (c ChannelWire) Encode(b []byte) []byte {
	head := make([]byte, 16)
	wire.PutU32(head, 0, c.ID)
	wire.PutU16(head, 4, c.Flags)
	wire.PutU16(head, 6, c.Codec)
	wire.PutU32(head, 8, c.ParentID)
	wire.PutU16(head, 12, c.SortOrder)
	wire.PutU16(head, 14, c.MaxUsers)
	b = append(b, head...)
	b = append(b, []byte(c.Name)...)
	b = append(b, 0)
	b = append(b, []byte(c.Topic)...)
	b = append(b, 0)
	b = append(b, []byte(c.Desc)...)
	b = append(b, 0)
	return b
}

// DecodeChannelWire reads a ChannelWire starting at off and returns it along
// with the offset immediately following it.
func DecodeChannelWire(b []byte, off int) (ChannelWire, int) {
	c := ChannelWire{
		ID:        wire.ReadU32(b, off),
		Flags:     wire.ReadU16(b, off+4),
		Codec:     wire.ReadU16(b, off+6),
		ParentID:  wire.ReadU32(b, off+8),
		SortOrder: wire.ReadU16(b, off+12),
		MaxUsers:  wire.ReadU16(b, off+14),
	}
	next := off + 16
	c.Name, next = wire.ZTString(b, next)
	c.Topic, next = wire.ZTString(b, next)
	c.Desc, next = wire.ZTString(b, next)
	return c, next
}

// PlayerWire is the on-wire form of a player: public_id(4)|channel_id(4)|
// channel_privs(2)|global_flags(2)|attributes(2)|name_len(1)|name(29
// padded) (spec §6).
type PlayerWire struct {
	PublicID     uint32
	ChannelID    uint32
	ChannelPrivs uint16
	GlobalFlags  uint16
	Attributes   uint16
	Name         string
}

func (p PlayerWire) Encode(b []byte) []byte {
	head := make([]byte, 14)
	wire.PutU32(head, 0, p.PublicID)
	wire.PutU32(head, 4, p.ChannelID)
	wire.PutU16(head, 8, p.ChannelPrivs)
	wire.PutU16(head, 10, p.GlobalFlags)
	wire.PutU16(head, 12, p.Attributes)
	b = append(b, head...)
	slot := make([]byte, 1+wire.NameSlotLen)
	wire.PutFixedString(slot, 0, p.Name, wire.NameSlotLen)
	return append(b, slot...)
}

func DecodePlayerWire(b []byte, off int) (PlayerWire, int) {
	p := PlayerWire{
		PublicID:     wire.ReadU32(b, off),
		ChannelID:    wire.ReadU32(b, off+4),
		ChannelPrivs: wire.ReadU16(b, off+8),
		GlobalFlags:  wire.ReadU16(b, off+10),
		Attributes:   wire.ReadU16(b, off+12),
		Name:         wire.FixedString(b, off+14, wire.NameSlotLen),
	}
	return p, off + 14 + 1 + wire.NameSlotLen
}

// BanWire is the on-wire form of a ban: ip(zt)|duration(2)|reason(zt).
type BanWire struct {
	IP       string
	Duration uint16
	Reason   string
}

func (ban BanWire) Encode(b []byte) []byte {
	b = append(b, []byte(ban.IP)...)
	b = append(b, 0)
	dur := make([]byte, 2)
	wire.PutU16(dur, 0, ban.Duration)
	b = append(b, dur...)
	b = append(b, []byte(ban.Reason)...)
	b = append(b, 0)
	return b
}

func DecodeBanWire(b []byte, off int) (BanWire, int) {
	var ban BanWire
	ban.IP, off = wire.ZTString(b, off)
	ban.Duration = wire.ReadU16(b, off)
	off += 2
	ban.Reason, off = wire.ZTString(b, off)
	return ban, off
}
