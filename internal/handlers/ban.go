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
	register(protocol.OpIPBan, handleIPBan)
	register(protocol.OpBanPlayer, handleBanPlayer)
	register(protocol.OpRemoveBan, handleRemoveBan)
	register(protocol.OpRequestBanList, handleRequestBanList)
}

// handleIPBan bans a raw IP address directly (spec §4.5's IP_BAN, requires
// AdmBanIP). Body: duration(2) ip(zt) reason(zt).
func handleIPBan(ctx *Context) error {
	if err := require(ctx, privilege.PrivAdmBanIP); err != nil {
		return err
	}
	if len(ctx.Body) < 2 {
		return nil
	}
	duration := wire.ReadU16(ctx.Body, 0)
	ip, next := wire.ZTString(ctx.Body, 2)
	reason, _ := wire.ZTString(ctx.Body, next)
	ctx.Server.AddBan(ip, reason, duration)
	return nil
}

// handleBanPlayer bans the IP address a connected player is using and
// disconnects them (spec §4.5's BAN_PLAYER, requires AdmBanIP). Body:
// public_id(4) duration(2) reason(zt).
func handleBanPlayer(ctx *Context) error {
	if err := require(ctx, privilege.PrivAdmBanIP); err != nil {
		return err
	}
	if len(ctx.Body) < 6 {
		return nil
	}
	target := findPlayer(ctx.Server, wire.ReadU32(ctx.Body, 0))
	if target == nil {
		return nil
	}
	duration := wire.ReadU16(ctx.Body, 4)
	reason, _ := wire.ZTString(ctx.Body, 6)
	ctx.Server.AddBan(target.Addr.IP.String(), reason, duration)

	announcePlayerLeft(ctx.Server, target, protocol.ReasonKickedOrBanned)
	ctx.Server.BeginLeaving(target)
	return nil
}

// handleRemoveBan lifts a ban by IP address, matching the wire ban list's
// ip-keyed form (spec §4.5's REMOVE_BAN, §6's ban layout). Body: ip(zt).
func handleRemoveBan(ctx *Context) error {
	if err := require(ctx, privilege.PrivAdmBanIP); err != nil {
		return err
	}
	ip, _ := wire.ZTString(ctx.Body, 0)
	if b, ok := ctx.Server.FindBan(ip); ok {
		ctx.Server.RemoveBan(b.ID)
	}
	return nil
}

// handleRequestBanList replies with the active ban list (spec §4.5's
// REQUEST_BAN_LIST).
func handleRequestBanList(ctx *Context) error {
	if err := require(ctx, privilege.PrivAdmListRegistrations); err != nil {
		return err
	}
	var body []byte
	for _, b := range ctx.Server.Bans() {
		body = protocol.BanWire{IP: b.IP, Duration: b.Duration, Reason: b.Reason}.Encode(body)
	}
	dg := newDatagram(protocol.ControlHeader{Opcode: protocol.OpBanList}, len(body))
	copy(dg[protocol.ControlHeaderLen:], body)
	notify(ctx, dg)
	return nil
}
