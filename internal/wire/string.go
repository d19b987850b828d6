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

// NameSlotLen is the fixed-string clamp length for names (spec §4.1).
// WelcomeSlotLen is not used by any packet layout: the accept reply clamps
// the welcome text to the 253 bytes its own layout leaves for it.
const (
	NameSlotLen    = 29
	WelcomeSlotLen = 255
)

// PutFixedString writes a (1-byte length)(N bytes, zero padded) slot at off,
// clamping the written length to min(max, len(s)). The slot occupies
// 1+max bytes regardless of the string's actual length.
func PutFixedString(b []byte, off int, s string, max int) {
	n := len(s)
	if n > max {
		n = max
	}
	b[off] = byte(n)
	copy(b[off+1:off+1+max], s[:n])
	for i := off + 1 + n; i < off+1+max; i++ {
		b[i] = 0
	}
}

// FixedString reads a (1-byte length)(N bytes) slot back into a string,
// clamping the read length to max in case of a corrupt/hostile length byte.
func FixedString(b []byte, off int, max int) string {
	n := int(b[off])
	if n > max {
		n = max
	}
	return string(b[off+1 : off+1+n])
}

// ZTString reads a NUL-terminated string starting at off, returning the
// string and the offset of the byte following the terminator. If no
// terminator is found before the end of b, the whole remainder is returned.
func ZTString(b []byte, off int) (string, int) {
	for i := off; i < len(b); i++ {
		if b[i] == 0 {
			return string(b[off:i]), i + 1
		}
	}
	return string(b[off:]), len(b)
}

// PutZTString writes s followed by a NUL terminator at off, returning the
// offset following the terminator.
func PutZTString(b []byte, off int, s string) int {
	n := copy(b[off:], s)
	b[off+n] = 0
	return off + n + 1
}
