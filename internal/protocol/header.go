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

// ControlHeaderLen is the fixed header every control datagram carries
// before its opcode-specific body: family(2) subtype(2) private-id(4)
// public-id(4) counter(4) version(2) reserved(2) crc(4).
const ControlHeaderLen = 24

// MinControlLen is the minimum length a control datagram must have before
// any handler is allowed to see it (spec §4.4).
const MinControlLen = 24

// Byte offsets within a control datagram that the retransmit queue needs
// to read/rewrite in place (spec §4.2).
const (
	ControlCounterOffset = 12
	ControlVersionOffset = 16
)

// ControlHeader is the fixed prefix of every control-family (0xbef0)
// datagram. Body bytes start at ControlHeaderLen.
type ControlHeader struct {
	Opcode    Opcode
	PrivateID uint32
	PublicID  uint32
	Counter   uint32
	Version   uint16
}

// DecodeControlHeader parses the fixed header of a control datagram. The
// caller must have already checked len(b) >= MinControlLen.
func DecodeControlHeader(b []byte) ControlHeader {
	return ControlHeader{
		Opcode:    Opcode(wire.ReadU16(b, 2)),
		PrivateID: wire.ReadU32(b, 4),
		PublicID:  wire.ReadU32(b, 8),
		Counter:   wire.ReadU32(b, 12),
		Version:   wire.ReadU16(b, 16),
	}
}

// EncodeControlHeader writes h into b[0:ControlHeaderLen] (not including
// the CRC, which the caller computes last via wire.PutCRC).
func EncodeControlHeader(b []byte, h ControlHeader) {
	wire.PutU16(b, 0, uint16(wire.FamilyControl))
	wire.PutU16(b, 2, uint16(h.Opcode))
	wire.PutU32(b, 4, h.PrivateID)
	wire.PutU32(b, 8, h.PublicID)
	wire.PutU32(b, 12, h.Counter)
	wire.PutU16(b, 16, h.Version)
	wire.PutU16(b, 18, 0)
}

// RetargetRecipient rewrites a pre-built control datagram's private-id,
// public-id and packet counter for one recipient and recomputes the CRC,
// per the broadcast template in spec §4.5: "allocate the datagram once,
// then for each recipient overwrite the recipient's private-id, public-id,
// and the recipient's per-player outbound counter, recompute the CRC."
func RetargetRecipient(b []byte, privateID, publicID uint32, counter uint32) {
	wire.PutU32(b, 4, privateID)
	wire.PutU32(b, 8, publicID)
	wire.PutU32(b, 12, counter)
	wire.PutCRC(b, wire.DefaultCRCOffset)
}

// AckLen is the fixed size of an acknowledgement datagram: family(2)
// version(2) private-id(4) public-id(4) counter(4).
const AckLen = 16

// Ack is the body of a 0xbef1 acknowledgement datagram. It carries the
// head entry's counter and version (spec §4.2), so the retransmit queue
// can match it against the exact (re)transmission being acknowledged.
type Ack struct {
	Version   uint16
	PrivateID uint32
	PublicID  uint32
	Counter   uint32
}

// DecodeAck parses a 16-byte acknowledgement datagram.
func DecodeAck(b []byte) Ack {
	return Ack{
		Version:   wire.ReadU16(b, 2),
		PrivateID: wire.ReadU32(b, 4),
		PublicID:  wire.ReadU32(b, 8),
		Counter:   wire.ReadU32(b, 12),
	}
}

// EncodeAck serializes an acknowledgement for the given control header,
// echoing back the version the client just received.
func EncodeAck(h ControlHeader) []byte {
	b := make([]byte, AckLen)
	wire.PutU16(b, 0, uint16(wire.FamilyAck))
	wire.PutU16(b, 2, h.Version)
	wire.PutU32(b, 4, h.PrivateID)
	wire.PutU32(b, 8, h.PublicID)
	wire.PutU32(b, 12, h.Counter)
	return b
}
