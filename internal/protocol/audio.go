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

package protocol

import "github.com/Youx/soliloque-server/internal/wire"

// AudioHeaderLen is the fixed prefix of an audio datagram, before the
// per-codec header and opaque audio block (spec §4.7).
const AudioHeaderLen = 16

// Codec is an audio codec identifier, indexing CodecTable.
type Codec uint16

// CodecEntry describes the fixed sizes a codec's payload must have.
type CodecEntry struct {
	// Offset is the size of the codec's own per-frame header.
	Offset int
	// AudioSize is the size of the opaque audio block that follows.
	AudioSize int
}

// CodecTable maps codec ids to their fixed frame sizes, ported in full from
// the original's codec_audio_size/codec_offset tables (audio_packet.c). A
// zero-value entry (Offset==0 && AudioSize==0) is reserved and must always
// be rejected, per spec §9's note that codec index 4 (CELPWin_5_2) has a
// zero table entry and is unusable.
var CodecTable = map[Codec]CodecEntry{
	0:  {Offset: 6, AudioSize: 153},
	1:  {Offset: 6, AudioSize: 51},
	2:  {Offset: 6, AudioSize: 165},
	3:  {Offset: 6, AudioSize: 132},
	4:  {Offset: 0, AudioSize: 0}, // CELPWin_5_2, reserved/unusable
	5:  {Offset: 1, AudioSize: 27},
	6:  {Offset: 1, AudioSize: 50},
	7:  {Offset: 1, AudioSize: 75},
	8:  {Offset: 1, AudioSize: 100},
	9:  {Offset: 1, AudioSize: 138}, // SPEEX_12_3, per spec §8 scenario 2
	10: {Offset: 1, AudioSize: 188},
	11: {Offset: 1, AudioSize: 228},
	12: {Offset: 1, AudioSize: 308},
}

// Valid reports whether the codec has a usable (non-zero) table entry.
func (e CodecEntry) Valid() bool { return e.Offset != 0 || e.AudioSize != 0 }

// BodyLen is the total datagram length the codec entry expects, including
// the fixed AudioHeaderLen prefix.
func (e CodecEntry) BodyLen() int { return AudioHeaderLen + e.Offset + e.AudioSize }

// AudioHeader is the fixed prefix of every audio datagram.
type AudioHeader struct {
	Codec         Codec
	PrivateID     uint32
	PublicID      uint32
	ConvCounter   uint16
	SenderPublic  uint16
}

func DecodeAudioHeader(b []byte) AudioHeader {
	return AudioHeader{
		Codec:       Codec(wire.ReadU16(b, 2)),
		PrivateID:   wire.ReadU32(b, 4),
		PublicID:    wire.ReadU32(b, 8),
		ConvCounter: wire.ReadU16(b, 12),
	}
}

// RewriteForRecipient builds the outbound datagram for one recipient: the
// inbound bytes with family/codec/private-id/public-id rewritten to the
// recipient's identifiers, the conversation counter preserved, and the
// sender's public-id inserted, per spec §4.7. Audio datagrams carry no CRC
// check in spec.md's wire description and are not queued for retransmit.
func RewriteForRecipient(inbound []byte, recipientPrivate, recipientPublic uint32, senderPublic uint32) []byte {
	out := make([]byte, len(inbound))
	copy(out, inbound)
	wire.PutU16(out, 0, uint16(wire.FamilyAudioOut))
	wire.PutU32(out, 4, recipientPrivate)
	wire.PutU32(out, 8, recipientPublic)
	wire.PutU16(out, 14, uint16(senderPublic))
	return out
}
