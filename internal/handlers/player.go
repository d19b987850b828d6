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

package handlers

import (
	"github.com/Youx/soliloque-server/internal/arena"
	"github.com/Youx/soliloque-server/internal/privilege"
	"github.com/Youx/soliloque-server/internal/protocol"
	"github.com/Youx/soliloque-server/internal/wire"
)

func init() {
	register(protocol.OpSwitchChannel, handleSwitchChannel)
	register(protocol.OpMovePlayer, handleSwitchChannel)
	register(protocol.OpMovePlayerAdmin, handleMovePlayerAdmin)
	register(protocol.OpKickFromChannel, handleKickFromChannel)
	register(protocol.OpChannelKick, handleKickFromChannel)
	register(protocol.OpKickFromServer, handleKickFromServer)
	register(protocol.OpChangeOwnAttributes, handleChangeOwnAttributes)
	register(protocol.OpChangeAttributes, handleChangeAttributes)
	register(protocol.OpChangeGlobalFlag, handleChangeGlobalFlag)
	register(protocol.OpRequestVoice, handleRequestVoice)
	register(protocol.OpRequestPlayerStats, handleRequestPlayerStats)
}

func playerWireOf(p *arena.Player) protocol.PlayerWire {
	var chanPrivs uint16
	if rec := p.PrivilegeRecord(); rec != nil {
		chanPrivs = uint16(rec.Flags)
	}
	var channelID uint32
	if p.Channel != nil {
		channelID = p.Channel.ID
	}
	return protocol.PlayerWire{
		PublicID:     p.PublicID,
		ChannelID:    channelID,
		ChannelPrivs: chanPrivs,
		GlobalFlags:  uint16(p.GlobalFlags),
		Attributes:   uint16(p.Attributes),
		Name:         p.Nickname,
	}
}

// announceNewPlayer broadcasts a NEW_PLAYER notice to the rest of the
// server once a login completes (spec §4.5, §4.6 step 7).
func announceNewPlayer(s *arena.Server, p *arena.Player) {
	body := playerWireOf(p).Encode(nil)
	dg := newDatagram(protocol.ControlHeader{Opcode: protocol.OpNewPlayer}, len(body))
	copy(dg[protocol.ControlHeaderLen:], body)
	broadcastServer(s, dg, p)
}

// announcePlayerLeft broadcasts a PLAYER_LEFT notice (spec §4.8).
func announcePlayerLeft(s *arena.Server, p *arena.Player, reason protocol.PlayerLeftReason) {
	dg := newDatagram(protocol.ControlHeader{Opcode: protocol.OpPlayerLeft}, 5)
	wire.PutU32(dg[protocol.ControlHeaderLen:], 0, p.PublicID)
	dg[protocol.ControlHeaderLen+4] = byte(reason)
	broadcastServer(s, dg, p)
}

// AnnouncePlayerLeft is the exported form announcePlayerLeft, for the
// retransmit loop's timeout eviction and the server runtime's shutdown
// broadcast (spec §4.2 step 3, §5's SIGINT/SIGUSR1 handling).
func AnnouncePlayerLeft(s *arena.Server, p *arena.Player, reason protocol.PlayerLeftReason) {
	announcePlayerLeft(s, p, reason)
}

// announceSwitchChannel broadcasts that p is now in c (spec §4.5's
// SWITCH_CH_REQUEST reply).
func announceSwitchChannel(s *arena.Server, p *arena.Player, c *arena.Channel) {
	dg := newDatagram(protocol.ControlHeader{Opcode: protocol.OpSwitchChannel}, 8)
	wire.PutU32(dg[protocol.ControlHeaderLen:], 0, p.PublicID)
	wire.PutU32(dg[protocol.ControlHeaderLen:], 4, c.ID)
	broadcastServer(s, dg, nil)
}

// handleSwitchChannel moves the acting player into the requested channel
// (spec §4.5's SWITCH_CH_REQUEST/MOVE_PLAYER_REQUEST). Body: channel_id(4).
func handleSwitchChannel(ctx *Context) error {
	if len(ctx.Body) < 4 {
		return nil
	}
	dest, ok := ctx.Server.FindChannel(wire.ReadU32(ctx.Body, 0))
	if !ok {
		return nil
	}
	if dest.EffectivePassword() != "" && !ctx.Player.HasPrivilege(privilege.PrivChaJoinWithoutPass) {
		return ErrPermissionDenied{Privilege: privilege.PrivChaJoinWithoutPass}
	}
	if err := ctx.Server.MovePlayer(ctx.Player, dest); err != nil {
		return err
	}
	announceSwitchChannel(ctx.Server, ctx.Player, dest)
	return nil
}

// handleMovePlayerAdmin forcibly moves another player into a channel
// (spec §4.5's MOVE_PLAYER, admin privilege AdmMovePlayer). Body:
// public_id(4) channel_id(4).
func handleMovePlayerAdmin(ctx *Context) error {
	if err := require(ctx, privilege.PrivAdmMovePlayer); err != nil {
		return err
	}
	if len(ctx.Body) < 8 {
		return nil
	}
	target := findPlayer(ctx.Server, wire.ReadU32(ctx.Body, 0))
	if target == nil {
		return nil
	}
	dest, ok := ctx.Server.FindChannel(wire.ReadU32(ctx.Body, 4))
	if !ok {
		return nil
	}
	if err := ctx.Server.MovePlayer(target, dest); err != nil {
		return err
	}
	announceSwitchChannel(ctx.Server, target, dest)
	return nil
}

// handleKickFromChannel moves target back to the default channel (spec
// §4.5's CHANNEL_KICK, requires OtherChKick).
func handleKickFromChannel(ctx *Context) error {
	if err := require(ctx, privilege.PrivOtherChKick); err != nil {
		return err
	}
	if len(ctx.Body) < 4 {
		return nil
	}
	target := findPlayer(ctx.Server, wire.ReadU32(ctx.Body, 0))
	if target == nil {
		return nil
	}
	def, err := ctx.Server.DefaultChannel()
	if err != nil {
		return err
	}
	if err := ctx.Server.MovePlayer(target, def); err != nil {
		return err
	}
	announceSwitchChannel(ctx.Server, target, def)
	return nil
}

// handleKickFromServer disconnects target entirely (spec §4.5's SV_KICK,
// requires OtherSvKick).
func handleKickFromServer(ctx *Context) error {
	if err := require(ctx, privilege.PrivOtherSvKick); err != nil {
		return err
	}
	if len(ctx.Body) < 4 {
		return nil
	}
	target := findPlayer(ctx.Server, wire.ReadU32(ctx.Body, 0))
	if target == nil {
		return nil
	}
	announcePlayerLeft(ctx.Server, target, protocol.ReasonKickedOrBanned)
	ctx.Server.BeginLeaving(target)
	return nil
}

// handleChangeOwnAttributes lets a player update its own mic/speaker/away
// bits (spec §4.5's CHANGE_OWN_ATTRIBUTES). Body: attributes(2).
func handleChangeOwnAttributes(ctx *Context) error {
	if len(ctx.Body) < 2 {
		return nil
	}
	ctx.Player.Attributes = arena.Attribute(wire.ReadU16(ctx.Body, 0))
	announceAttributeChange(ctx.Server, ctx.Player)
	return nil
}

// handleChangeAttributes is the admin-privileged form for another player
// (spec §4.5's CHANGE_ATTRIBUTES, gated like the other "force a player's
// state" admin operations on AdmSetPermissions). Body: public_id(4)
// attributes(2).
func handleChangeAttributes(ctx *Context) error {
	if err := require(ctx, privilege.PrivAdmSetPermissions); err != nil {
		return err
	}
	if len(ctx.Body) < 6 {
		return nil
	}
	target := findPlayer(ctx.Server, wire.ReadU32(ctx.Body, 0))
	if target == nil {
		return nil
	}
	target.Attributes = arena.Attribute(wire.ReadU16(ctx.Body, 4))
	announceAttributeChange(ctx.Server, target)
	return nil
}

func announceAttributeChange(s *arena.Server, p *arena.Player) {
	dg := newDatagram(protocol.ControlHeader{Opcode: protocol.OpChangeAttributes}, 6)
	wire.PutU32(dg[protocol.ControlHeaderLen:], 0, p.PublicID)
	wire.PutU16(dg[protocol.ControlHeaderLen:], 4, uint16(p.Attributes))
	broadcastServer(s, dg, nil)
}

// handleChangeGlobalFlag toggles a global flag (e.g. server-admin,
// allow-registration) on a target player (spec §4.5's CHANGE_GLOBAL_FLAG,
// requires AdmSetPermissions). Body: public_id(4) flags(2).
func handleChangeGlobalFlag(ctx *Context) error {
	if err := require(ctx, privilege.PrivAdmSetPermissions); err != nil {
		return err
	}
	if len(ctx.Body) < 6 {
		return nil
	}
	target := findPlayer(ctx.Server, wire.ReadU32(ctx.Body, 0))
	if target == nil {
		return nil
	}
	before := target.GlobalFlags
	target.GlobalFlags = arena.GlobalFlag(wire.ReadU16(ctx.Body, 4))

	// Clearing REGISTERED deletes the registration outright, rescoping its
	// channel privileges to the still-connected player (spec §4.5's
	// "Removing a registration..." edge case, grounded in the original's
	// GLOBAL_FLAG_REGISTERED special case in c_req_change_player_sv_right).
	if before&arena.FlagRegistered != 0 && target.GlobalFlags&arena.FlagRegistered == 0 && target.Registration != nil {
		reg := target.Registration
		ctx.Server.RemoveRegistration(reg)
		if ctx.Persist != nil {
			ctx.Persist.DeleteRegistration(reg)
		}
		target.Registration = nil
	} else if target.Registration != nil {
		target.Registration.GlobalFlags = target.GlobalFlags
		if ctx.Persist != nil {
			ctx.Persist.SaveRegistration(target.Registration)
		}
	}
	announceGlobalFlagChange(ctx.Server, target)
	return nil
}

// announceGlobalFlagChange broadcasts a player's new global-flag set to
// every connected player (spec §4.5's opcode 0x006b, fan-out "all"). Both
// the admin-driven CHANGE_GLOBAL_FLAG handler and self-registration's
// implicit REGISTERED grant fire this notice.
func announceGlobalFlagChange(s *arena.Server, p *arena.Player) {
	dg := newDatagram(protocol.ControlHeader{Opcode: protocol.OpChangeGlobalFlag}, 6)
	b := dg[protocol.ControlHeaderLen:]
	wire.PutU32(b, 0, p.PublicID)
	wire.PutU16(b, 4, uint16(p.GlobalFlags))
	broadcastServer(s, dg, nil)
}

// handleRequestVoice sets the REQUEST_VOICE attribute so channel admins
// can see a raised hand (spec §4.5's REQUEST_VOICE).
func handleRequestVoice(ctx *Context) error {
	ctx.Player.Attributes |= arena.AttrRequestVoice
	announceAttributeChange(ctx.Server, ctx.Player)
	return nil
}

// handleRequestPlayerStats replies with the requested player's counters
// (spec §4.5's REQUEST_PLAYER_STATS).
func handleRequestPlayerStats(ctx *Context) error {
	target := ctx.Player
	if len(ctx.Body) >= 4 {
		if t := findPlayer(ctx.Server, wire.ReadU32(ctx.Body, 0)); t != nil {
			target = t
		}
	}
	dg := newDatagram(protocol.ControlHeader{Opcode: protocol.OpPlayerStats}, 36)
	b := dg[protocol.ControlHeaderLen:]
	wire.PutU32(b, 0, target.PublicID)
	wire.PutU32(b, 4, target.Stats.Ping)
	wire.PutU32(b, 8, target.Stats.ActivityTime)
	putU64(b, 12, target.Stats.PacketsRecv)
	putU64(b, 20, target.Stats.PacketsSent)
	putU64(b, 28, target.Stats.BytesRecv)
	notify(ctx, dg)
	return nil
}

// putU64 writes v as two little-endian 32-bit words, matching wire.PutU32's
// byte order: low word first.
func putU64(b []byte, off int, v uint64) {
	wire.PutU32(b, off, uint32(v))
	wire.PutU32(b, off+4, uint32(v>>32))
}

func findPlayer(s *arena.Server, publicID uint32) *arena.Player {
	p, _ := s.Players.Load(publicID)
	return p
}
