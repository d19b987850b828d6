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
	"github.com/Youx/soliloque-server/internal/privilege"
	"github.com/Youx/soliloque-server/internal/protocol"
	"github.com/Youx/soliloque-server/internal/wire"
)

func init() {
	register(protocol.OpSendTextMessage, handleSendTextMessage)
}

// handleSendTextMessage routes a chat message by its kind (spec §4.7):
// to a single player (honoring that player's mute list), to the sender's
// current channel, or to the whole server. Body: kind(1) target(4)
// message(zt).
func handleSendTextMessage(ctx *Context) error {
	if len(ctx.Body) < 5 {
		return nil
	}
	kind := protocol.TextMessageKind(ctx.Body[0])
	target := wire.ReadU32(ctx.Body, 1)
	msg, _ := wire.ZTString(ctx.Body, 5)

	switch kind {
	case protocol.TextMessagePlayer:
		recipient := findPlayer(ctx.Server, target)
		if recipient == nil || recipient.HasMuted(ctx.Player.PublicID) {
			return nil
		}
		if err := require(ctx, privilege.PrivOtherTextPl); err != nil {
			return err
		}
		deliver(recipient, textMessageDatagram(kind, ctx.Player.PublicID, msg))
	case protocol.TextMessageChannel:
		if err := require(ctx, privilege.PrivOtherTextInCh); err != nil {
			return err
		}
		broadcastChannel(ctx.Player.Channel, textMessageDatagram(kind, ctx.Player.PublicID, msg), ctx.Player)
	default:
		if err := require(ctx, privilege.PrivOtherTextAll); err != nil {
			return err
		}
		broadcastServer(ctx.Server, textMessageDatagram(kind, ctx.Player.PublicID, msg), ctx.Player)
	}
	return nil
}

func textMessageDatagram(kind protocol.TextMessageKind, from uint32, msg string) []byte {
	dg := newDatagram(protocol.ControlHeader{Opcode: protocol.OpTextMessage}, 5+len(msg)+1)
	b := dg[protocol.ControlHeaderLen:]
	b[0] = byte(kind)
	wire.PutU32(b, 1, from)
	copy(b[5:], msg)
	return dg
}
