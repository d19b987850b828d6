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

package udpserver

import (
	"net"

	"github.com/Youx/soliloque-server/internal/handlers"
	"github.com/Youx/soliloque-server/internal/protocol"
	"github.com/Youx/soliloque-server/internal/wire"
)

// receiveLoop reads datagrams off the socket until it is closed, handing
// each one to handleDatagram (spec §5's receiver task).
func (s *Server) receiveLoop() {
	defer s.wg.Done()

	buf := make([]byte, maxDatagramSize)
	for {
		n, addr, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-s.stopCh:
				return
			default:
				s.log.Warn("udp read failed", "error", err)
				continue
			}
		}
		s.arena.Stats.PacketsRecv++
		s.arena.Stats.BytesRecv += uint64(n)

		data := make([]byte, n)
		copy(data, buf[:n])
		s.handleDatagram(addr, data)
	}
}

// handleDatagram demultiplexes a raw datagram by its family tag (spec §4.1).
func (s *Server) handleDatagram(addr *net.UDPAddr, data []byte) {
	family, ok := wire.PeekFamily(data)
	if !ok {
		return
	}
	switch family {
	case wire.FamilyConnection:
		s.handleConnection(addr, data)
	case wire.FamilyControl:
		s.handleControl(addr, data)
	case wire.FamilyAck:
		s.handleAck(data)
	case wire.FamilyAudio:
		s.handleAudio(data)
	}
}

// handleConnection dispatches a connection-family datagram by its fixed
// length: a login request (180 bytes) or a keepalive (24 bytes), per spec
// §4.6. A successful login populates byAddr so a later keepalive, which
// carries no public/private id of its own, can still be matched to its
// player.
func (s *Server) handleConnection(addr *net.UDPAddr, data []byte) {
	switch len(data) {
	case protocol.LoginRequestLen:
		reply, p := handlers.HandleLogin(s.arena, addr, data)
		if reply != nil {
			s.send(addr, reply)
		}
		if p != nil {
			s.mu.Lock()
			s.byAddr[addr.String()] = p
			s.mu.Unlock()
		}
	case protocol.KeepaliveLen:
		s.mu.Lock()
		p := s.byAddr[addr.String()]
		s.mu.Unlock()
		if p == nil {
			return
		}
		if reply := handlers.HandleKeepalive(p, data); reply != nil {
			s.send(addr, reply)
		}
	}
}

// handleControl processes one control-family datagram: acknowledge
// immediately, then dispatch to the opcode's handler (spec §4.4's "every
// control datagram is acknowledged independent of whether the operation
// succeeds").
func (s *Server) handleControl(addr *net.UDPAddr, data []byte) {
	if len(data) < protocol.MinControlLen || !wire.CheckCRC(data, wire.DefaultCRCOffset) {
		return
	}
	header := protocol.DecodeControlHeader(data)

	p, ok := s.arena.Players.Load(header.PublicID)
	if !ok || p.PrivateID != header.PrivateID {
		return
	}
	p.Counters.F0Client++

	s.send(addr, protocol.EncodeAck(header))

	ctx := &handlers.Context{
		Server:  s.arena,
		Player:  p,
		Header:  header,
		Body:    data[protocol.ControlHeaderLen:],
		Log:     s.log,
		Persist: s.persist,
	}
	if err := handlers.Dispatch(ctx); err != nil {
		s.log.Warn("control handler failed", "opcode", header.Opcode, "error", err)
	}
}

// handleAck matches an acknowledgement to the head of the acked player's
// outbound queue. Unlike a control datagram, an ack must be checked
// against both the live and leaving player tables: a player can be
// mid-departure, still draining its final queued notifications, when its
// last acks arrive (spec §4.2).
func (s *Server) handleAck(data []byte) {
	if len(data) < protocol.AckLen {
		return
	}
	ack := protocol.DecodeAck(data)

	p, ok := s.arena.Players.Load(ack.PublicID)
	if !ok {
		p, ok = s.arena.LeavingPlayers.Load(ack.PublicID)
		if !ok {
			return
		}
	}
	if p.PrivateID != ack.PrivateID {
		return
	}
	p.Outbound.Ack(ack.Counter, ack.Version)
}
