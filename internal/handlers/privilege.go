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
	register(protocol.OpChangeChannelPriv, handleChangeChannelPriv)
}

// privilegeForFlags picks the grant privilege matching the requested
// channel-privilege bits, per spec §4.3's group of PlGrant* checks.
func privilegeForFlags(flags arena.ChanPriv) privilege.Privilege {
	switch {
	case flags&arena.ChanPrivAdmin != 0:
		return privilege.PrivPlGrantCA
	case flags&arena.ChanPrivOperator != 0:
		return privilege.PrivPlGrantOp
	case flags&arena.ChanPrivAutoOp != 0:
		return privilege.PrivPlGrantAutoOp
	case flags&arena.ChanPrivAutoVoice != 0:
		return privilege.PrivPlGrantAutoVoice
	default:
		return privilege.PrivPlGrantVoice
	}
}

// handleChangeChannelPriv grants or revokes a channel-scoped privilege on
// a target player, anchored to the player's registration when it has one
// (spec §3's "player-xor-registration" discriminator, §4.5's
// CHANGE_CHANNEL_PRIV). Body: public_id(4) flags(1), flags==0 revokes.
func handleChangeChannelPriv(ctx *Context) error {
	if len(ctx.Body) < 5 {
		return nil
	}
	target := findPlayer(ctx.Server, wire.ReadU32(ctx.Body, 0))
	if target == nil {
		return nil
	}
	flags := arena.ChanPriv(ctx.Body[4])

	if flags != 0 {
		if err := require(ctx, privilegeForFlags(flags)); err != nil {
			return err
		}
	}

	grantsVoice := flags&arena.ChanPrivVoice != 0 && target.Attributes&arena.AttrRequestVoice != 0
	channel := target.Channel
	if existing := target.PrivilegeRecord(); existing != nil {
		if flags == 0 {
			channel.RemovePrivilege(existing)
			if ctx.Persist != nil && channel.Registered() {
				ctx.Persist.DeletePrivilege(existing)
			}
		} else {
			existing.Flags = flags
			if ctx.Persist != nil && channel.Registered() {
				ctx.Persist.SavePrivilege(existing)
			}
		}
	} else if flags != 0 {
		var rec *arena.ChannelPrivilege
		if target.Registration != nil {
			rec = arena.NewRegistrationScopedPrivilege(channel, target.Registration, flags)
		} else {
			rec = arena.NewPlayerScopedPrivilege(channel, target, flags)
		}
		channel.AddPrivilege(rec)
		if ctx.Persist != nil && channel.Registered() {
			ctx.Persist.SavePrivilege(rec)
		}
	}

	dg := newDatagram(protocol.ControlHeader{Opcode: protocol.OpChangeChannelPriv}, 5)
	wire.PutU32(dg[protocol.ControlHeaderLen:], 0, target.PublicID)
	dg[protocol.ControlHeaderLen+4] = byte(flags)
	broadcastChannel(channel, dg, nil)

	if grantsVoice {
		target.Attributes &^= arena.AttrRequestVoice
		announceAttributeChange(ctx.Server, target)
	}
	return nil
}
