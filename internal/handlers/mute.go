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
	"github.com/Youx/soliloque-server/internal/protocol"
	"github.com/Youx/soliloque-server/internal/wire"
)

func init() {
	register(protocol.OpMutePlayer, handleMutePlayer)
}

// handleMutePlayer mutes or unmutes another player for the requester only
// (spec §4.5's 0x0040, fan-out "requester only"): the audio and text-message
// fast paths consult Player.Muted to decide whether to deliver to this
// player at all. Body: public_id(4) on_off(1), 1 = mute, 0 = unmute.
func handleMutePlayer(ctx *Context) error {
	if len(ctx.Body) < 5 {
		return nil
	}
	targetID := wire.ReadU32(ctx.Body, 0)
	onOff := ctx.Body[4]
	if targetID == ctx.Player.PublicID {
		return nil
	}
	target := findPlayer(ctx.Server, targetID)
	if target == nil {
		return nil
	}

	switch onOff {
	case 1:
		if ctx.Player.Muted[target.PublicID] {
			return nil
		}
		ctx.Player.Muted[target.PublicID] = true
	case 0:
		if !ctx.Player.Muted[target.PublicID] {
			return nil
		}
		delete(ctx.Player.Muted, target.PublicID)
	default:
		return nil
	}

	dg := newDatagram(protocol.ControlHeader{Opcode: protocol.OpMutePlayer}, 5)
	b := dg[protocol.ControlHeaderLen:]
	wire.PutU32(b, 0, target.PublicID)
	b[4] = onOff
	notify(ctx, dg)
	return nil
}
