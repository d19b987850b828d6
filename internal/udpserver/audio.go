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

import "github.com/Youx/soliloque-server/internal/protocol"

// handleAudio is the voice fast path (spec §4.7): validate once, then fan
// the frame out directly to every co-channel player, rewritten per
// recipient. Audio is sent best-effort and never touches the retransmit
// queue.
func (s *Server) handleAudio(data []byte) {
	if len(data) < protocol.AudioHeaderLen {
		return
	}
	hdr := protocol.DecodeAudioHeader(data)

	entry, known := protocol.CodecTable[hdr.Codec]
	if !known || !entry.Valid() || len(data) != entry.BodyLen() {
		return
	}

	sender, ok := s.arena.Players.Load(hdr.PublicID)
	if !ok || sender.PrivateID != hdr.PrivateID || sender.Channel == nil {
		return
	}
	if sender.Channel.Codec != uint16(hdr.Codec) {
		return
	}

	for _, recipient := range sender.Channel.Players() {
		if recipient == sender || recipient.HasMuted(sender.PublicID) {
			continue
		}
		out := protocol.RewriteForRecipient(data, recipient.PrivateID, recipient.PublicID, sender.PublicID)
		s.send(recipient.Addr, out)
	}
}
