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
	"github.com/Youx/soliloque-server/internal/protocol"
)

// deliver queues body for a single recipient: the template is allocated
// once by the caller, then retargeted per recipient and pushed onto that
// player's retransmit queue (spec §4.5's broadcast template).
func deliver(p *arena.Player, body []byte) {
	msg := make([]byte, len(body))
	copy(msg, body)
	p.Counters.F0Sent++
	protocol.RetargetRecipient(msg, p.PrivateID, p.PublicID, p.Counters.F0Sent)
	p.Outbound.Push(msg)
}

// broadcastChannel delivers body to every player in c except exclude.
func broadcastChannel(c *arena.Channel, body []byte, exclude *arena.Player) {
	for _, p := range c.Players() {
		if p == exclude {
			continue
		}
		deliver(p, body)
	}
}

// broadcastServer delivers body to every connected player except exclude.
func broadcastServer(s *arena.Server, body []byte, exclude *arena.Player) {
	s.Players.Range(func(_ uint32, p *arena.Player) bool {
		if p != exclude {
			deliver(p, body)
		}
		return true
	})
}

// notify is a convenience for replying only to ctx.Player.
func notify(ctx *Context, body []byte) {
	deliver(ctx.Player, body)
}

// newDatagram allocates a control datagram body with header h and n body
// bytes, ready for callers to fill in starting at protocol.ControlHeaderLen.
func newDatagram(h protocol.ControlHeader, n int) []byte {
	b := make([]byte, protocol.ControlHeaderLen+n)
	protocol.EncodeControlHeader(b, h)
	return b
}
