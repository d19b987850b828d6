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

package arena

import (
	"net"

	"github.com/Youx/soliloque-server/internal/privilege"
	"github.com/Youx/soliloque-server/internal/queue"
)

// GlobalFlag is a bit in Player.GlobalFlags (spec §3).
type GlobalFlag uint16

const (
	FlagServerAdmin GlobalFlag = 1 << 0
	FlagAllowReg    GlobalFlag = 1 << 1
	FlagRegistered  GlobalFlag = 1 << 2
)

// Attribute is a bit in Player.Attributes (spec §3).
type Attribute uint16

const (
	AttrBlockWhisper Attribute = 1 << 0
	AttrAway         Attribute = 1 << 1
	AttrMuteMic      Attribute = 1 << 2
	AttrMuteSpeaker  Attribute = 1 << 3
	AttrRequestVoice Attribute = 1 << 4
)

// Counters holds the per-direction packet counters spec §3 names:
// f0 (control), f1 (ack), f4 (connection/keepalive), split by
// server-sent/client-sent.
type Counters struct {
	F0Sent, F0Client uint32
	F1Sent, F1Client uint32
	F4Sent, F4Client uint32
}

// Stats holds the statistics fields recovered from original_source's
// player_stat (spec §3's "statistics" field, supplemented per SPEC_FULL §3).
type Stats struct {
	Ping          uint32
	ActivityTime  uint32
	PacketsRecv   uint64
	PacketsSent   uint64
	BytesRecv     uint64
	BytesSent     uint64
	// PacketsLost is carried for wire compatibility but is never
	// incremented, matching the original's unused pkt_lost field
	// (spec §9 Open Questions).
	PacketsLost uint64
}

// Player is a connected (or disconnecting) client (spec §3).
type Player struct {
	PublicID  uint32
	PrivateID uint32

	ClientName string
	Machine    string
	Nickname   string
	Login      string // empty for an anonymous session
	Version    [4]uint16

	GlobalFlags GlobalFlag
	Attributes  Attribute

	// Channel is a weak back-reference; Channel never owns its players'
	// lifetime, the server's registry does (spec §9).
	Channel *Channel

	// Registration is nil for an unregistered (anonymous or
	// not-yet-self-registered) player.
	Registration *Registration

	Counters Counters
	Stats    Stats

	Addr *net.UDPAddr

	// Muted holds the public-ids of players this player has muted
	// (spec §4.7's mute check).
	Muted map[uint32]bool

	Outbound *queue.Queue

	server *Server
}

// Anonymous reports whether the player has no attached registration.
func (p *Player) Anonymous() bool { return p.Registration == nil }

// HasMuted reports whether p has muted the player with the given public id.
func (p *Player) HasMuted(publicID uint32) bool {
	return p.Muted[publicID]
}

// PrivilegeRecord returns the per-channel privilege record that applies to
// p in its current channel, or nil if none exists.
func (p *Player) PrivilegeRecord() *ChannelPrivilege {
	for _, rec := range p.Channel.PrivilegeList() {
		if rec.AppliesTo(p) {
			return rec
		}
	}
	return nil
}

// Membership computes p's privilege-group membership in its current
// channel, fresh on every call, per spec §4.3's "no cached role" rule.
func (p *Player) Membership() privilege.Membership {
	m := privilege.Membership{
		ServerAdmin: p.GlobalFlags&FlagServerAdmin != 0,
		Registered:  p.GlobalFlags&FlagRegistered != 0,
	}
	if rec := p.PrivilegeRecord(); rec != nil {
		m.ChannelAdmin = rec.Flags&ChanPrivAdmin != 0
		m.Operator = rec.Flags&ChanPrivOperator != 0
		m.Voice = rec.Flags&ChanPrivVoice != 0
	}
	return m
}

// HasPrivilege checks p against the server's bitmap using p's current
// channel context.
func (p *Player) HasPrivilege(priv privilege.Privilege) bool {
	return privilege.HasPrivilege(p.server.Privileges, p.Membership(), priv)
}
