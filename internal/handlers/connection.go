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
	"net"

	"github.com/Youx/soliloque-server/internal/arena"
	"github.com/Youx/soliloque-server/internal/protocol"
	"github.com/Youx/soliloque-server/internal/queue"
	"github.com/Youx/soliloque-server/internal/wire"
)

func init() {
	register(protocol.OpClientLeaves, handleClientLeaves)
}

// handleClientLeaves is the control-family counterpart of HandleDisconnect,
// reached through the normal dispatch table when a connected client sends
// an explicit "I'm leaving" request rather than simply going quiet (spec
// §4.5's CLIENT_LEAVES, recovered from original_source's c_req_leave).
func handleClientLeaves(ctx *Context) error {
	HandleDisconnect(ctx.Server, ctx.Player)
	return nil
}

// HandleLogin processes a connection-family login datagram (spec §4.6
// steps 1-6). It returns the accept or refusal datagram to send back
// immediately, or nil when nothing is sent (a malformed datagram or bad
// credentials); login replies are never queued on the retransmit FIFO,
// since no player (and so no private/public id pair) exists until the
// reply is built. On success, p is the newly seated player; nil on any
// rejection path.
func HandleLogin(s *arena.Server, addr *net.UDPAddr, data []byte) ([]byte, *arena.Player) {
	if len(data) != protocol.LoginRequestLen || !wire.CheckCRC(data, wire.ConnectionCRCOffset) {
		return nil, nil
	}
	if s.IsBanned(addr.IP.String()) {
		return protocol.RefusalReply(), nil
	}

	req := protocol.DecodeLoginRequest(data)

	var reg *arena.Registration
	if !req.Anonymous() {
		found, ok := s.FindRegistration(req.Login)
		if !ok || !found.CheckPassword(req.Password) {
			return nil, nil
		}
		reg = found
	} else if s.Password != "" && req.Password != s.Password {
		return nil, nil
	}

	def, err := s.DefaultChannel()
	if err != nil {
		return protocol.RefusalReply(), nil
	}

	p := &arena.Player{
		ClientName:   req.ClientName,
		Machine:      req.Machine,
		Nickname:     req.Nickname,
		Login:        req.Login,
		Version:      req.Version,
		Registration: reg,
		Addr:         addr,
		Muted:        map[uint32]bool{},
		Outbound:     queue.NewQueue(),
	}
	if reg != nil {
		p.GlobalFlags |= arena.FlagRegistered | reg.GlobalFlags
	}

	s.NewPlayer(p)
	_ = s.MovePlayer(p, def)
	s.Stats.TotalLogins++

	reply := protocol.EncodeAcceptReply(protocol.AcceptReply{
		ErrorCode:  protocol.ErrLoginAccepted,
		ServerName: s.Name,
		Machine:    s.Machine,
		Version:    protocol.ProtocolVersion,
		CodecMask:  s.CodecMask,
		Privileges: s.Privileges.MarshalWire(),
		PrivateID:  p.PrivateID,
		PublicID:   p.PublicID,
		Welcome:    s.Welcome,
	})

	announceNewPlayer(s, p)

	return reply, p
}

// HandleKeepalive echoes the client's counter back (spec §4.6's keepalive
// round trip); it never touches the control retransmit queue either.
func HandleKeepalive(p *arena.Player, data []byte) []byte {
	if len(data) != protocol.KeepaliveLen || !wire.CheckCRC(data, wire.ConnectionCRCOffset) {
		return nil
	}
	kp := protocol.DecodeKeepalive(data)
	p.Counters.F4Client++
	return protocol.EncodeKeepaliveReply(kp.ClientCounter)
}

// HandleDisconnect removes a voluntarily-leaving player from its channel
// and server, announcing the departure before the queue is allowed to
// drain (spec §4.8).
func HandleDisconnect(s *arena.Server, p *arena.Player) {
	announcePlayerLeft(s, p, protocol.ReasonVoluntaryLeave)
	s.BeginLeaving(p)
}
