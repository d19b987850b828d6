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
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/Youx/soliloque-server/internal/arena"
	"github.com/Youx/soliloque-server/internal/handlers"
	"github.com/Youx/soliloque-server/internal/protocol"
	"github.com/Youx/soliloque-server/internal/wire"
)

// retransmitTick is how often the retransmit task wakes to scan every
// player's outbound queue head (spec §5).
const retransmitTick = 50 * time.Millisecond

// retransmitLoop drives every connected and leaving player's outbound
// queue (spec §4.2, §5). A timed-out active player is announced as left
// and moved to LeavingPlayers; a timed-out leaving player is fully
// destroyed, since its queue has exhausted its retransmit budget and
// nothing more will ever reach it.
func (s *Server) retransmitLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(retransmitTick)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case now := <-ticker.C:
			s.tickPlayers(now, s.arena.Players, false)
			s.tickPlayers(now, s.arena.LeavingPlayers, true)
			if s.metrics != nil {
				s.metrics.Sample(s.arena)
			}
		}
	}
}

func (s *Server) tickPlayers(now time.Time, players *xsync.Map[uint32, *arena.Player], leaving bool) {
	players.Range(func(_ uint32, p *arena.Player) bool {
		result := p.Outbound.Tick(now)
		if result.Sent != nil {
			s.send(p.Addr, result.Sent)
			if s.metrics != nil && wire.ReadU16(result.Sent, protocol.ControlVersionOffset) > 0 {
				s.metrics.IncRetransmit()
			}
		}
		if result.TimedOut {
			if leaving {
				s.arena.Destroy(p)
			} else {
				handlers.AnnouncePlayerLeft(s.arena, p, protocol.ReasonKickedOrBanned)
				s.arena.BeginLeaving(p)
				if s.metrics != nil {
					s.metrics.IncPlayerEvicted()
				}
			}
			return true
		}
		// A leaving player whose queue has drained normally (every entry
		// acked) is done, not just one that exhausted its retransmit
		// budget (spec §4.2 step 4, §4.8: destroy "once [the queue is]
		// empty").
		if leaving && p.Outbound.Len() == 0 {
			s.arena.Destroy(p)
		}
		return true
	})
}
