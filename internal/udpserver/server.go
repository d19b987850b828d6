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

// Package udpserver is the server runtime (spec §5): the UDP socket, the
// receive loop that demultiplexes by family tag, and the retransmit loop
// that drives every player's outbound queue.
package udpserver

import (
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/Youx/soliloque-server/internal/arena"
	"github.com/Youx/soliloque-server/internal/handlers"
	"github.com/Youx/soliloque-server/internal/metrics"
	"github.com/Youx/soliloque-server/internal/protocol"
)

// maxDatagramSize comfortably covers the largest fixed layout this
// protocol defines (the 436-byte accept reply) plus any audio payload the
// codec table names, with headroom for a hostile oversized send.
const maxDatagramSize = 2048

// Server is one server's UDP runtime: one socket shared by the receiver
// and retransmitter (spec §5's two-task concurrency model).
type Server struct {
	arena   *arena.Server
	persist handlers.Persister
	log     *slog.Logger
	metrics *metrics.Metrics

	conn *net.UDPConn

	// byAddr resolves a keepalive datagram to its player: unlike control
	// datagrams, a keepalive carries no public-id (spec §4.6), so the
	// source address is the only handle available.
	mu     sync.Mutex
	byAddr map[string]*arena.Player

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New builds a runtime bound to one in-memory arena and persistence
// adapter. persist may be nil, in which case handlers skip persistence
// entirely (spec §2). m may be nil, in which case no Prometheus
// collectors are updated.
func New(a *arena.Server, persist handlers.Persister, m *metrics.Metrics, log *slog.Logger) *Server {
	return &Server{
		arena:   a,
		persist: persist,
		metrics: m,
		log:     log,
		byAddr:  map[string]*arena.Player{},
	}
}

// Start opens the UDP socket and launches the receiver and retransmitter
// goroutines (spec §5).
func (s *Server) Start(bind string, port int) error {
	addr := &net.UDPAddr{IP: net.ParseIP(bind), Port: port}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return fmt.Errorf("failed to open udp socket: %w", err)
	}
	s.conn = conn
	s.stopCh = make(chan struct{})

	s.wg.Add(2)
	go s.receiveLoop()
	go s.retransmitLoop()

	s.log.Info("udp server listening", "bind", bind, "port", port)
	return nil
}

// Stop broadcasts a server-stopping notice, waits up to drainTimeout for
// leaving players to drain their final queued datagrams, then closes the
// socket and cancels both background tasks (spec §5's cancellation rule).
func (s *Server) Stop(drainTimeout time.Duration) {
	s.arena.Players.Range(func(_ uint32, p *arena.Player) bool {
		handlers.AnnouncePlayerLeft(s.arena, p, protocol.ReasonServerStopping)
		s.arena.BeginLeaving(p)
		return true
	})

	deadline := time.Now().Add(drainTimeout)
	for time.Now().Before(deadline) {
		if s.arena.LeavingPlayers.Size() == 0 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	close(s.stopCh)
	s.conn.Close()
	s.wg.Wait()
}

func (s *Server) send(addr *net.UDPAddr, data []byte) {
	n, err := s.conn.WriteToUDP(data, addr)
	if err != nil {
		s.log.Warn("udp write failed", "addr", addr, "error", err)
		return
	}
	s.arena.Stats.PacketsSent++
	s.arena.Stats.BytesSent += uint64(n)
}
