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

import "github.com/Youx/soliloque-server/internal/protocol"

func init() {
	register(protocol.OpRequestServerStats, handleRequestServerStats)
}

// handleRequestServerStats replies with server-wide counters recovered
// from original_source's server_stat (spec §4.5's REQUEST_SERVER_STATS,
// SPEC_FULL §3).
func handleRequestServerStats(ctx *Context) error {
	dg := newDatagram(protocol.ControlHeader{Opcode: protocol.OpServerStats}, 40)
	b := dg[protocol.ControlHeaderLen:]
	putU64(b, 0, ctx.Server.Stats.TotalLogins)
	putU64(b, 8, ctx.Server.Stats.PacketsRecv)
	putU64(b, 16, ctx.Server.Stats.PacketsSent)
	putU64(b, 24, ctx.Server.Stats.BytesRecv)
	putU64(b, 32, ctx.Server.Stats.BytesSent)
	notify(ctx, dg)
	return nil
}
