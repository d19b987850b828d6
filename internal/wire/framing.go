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

package wire

import "encoding/binary"

// Family is the first little-endian uint16 of every datagram.
type Family uint16

const (
	FamilyControl    Family = 0xbef0
	FamilyAck        Family = 0xbef1
	FamilyAudio      Family = 0xbef2
	FamilyAudioOut   Family = 0xbef3
	FamilyConnection Family = 0xbef4
)

func ReadU16(b []byte, off int) uint16 { return binary.LittleEndian.Uint16(b[off:]) }
func ReadU32(b []byte, off int) uint32 { return binary.LittleEndian.Uint32(b[off:]) }

func PutU16(b []byte, off int, v uint16) { binary.LittleEndian.PutUint16(b[off:], v) }
func PutU32(b []byte, off int, v uint32) { binary.LittleEndian.PutUint32(b[off:], v) }

// PeekFamily reads the 2-byte family tag at offset 0. Returns false if the
// datagram is too short to contain one.
func PeekFamily(b []byte) (Family, bool) {
	if len(b) < 2 {
		return 0, false
	}
	return Family(ReadU16(b, 0)), true
}

// PeekSubtype reads the 2-byte subtype/opcode at offset 2.
func PeekSubtype(b []byte) (uint16, bool) {
	if len(b) < 4 {
		return 0, false
	}
	return ReadU16(b, 2), true
}
