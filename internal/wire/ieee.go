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

import "hash/crc32"

// ChecksumIEEE computes the polynomial-0xEDB88320 CRC-32 the wire protocol
// uses; it is bit-for-bit the same table (crc32.IEEE) the standard library
// already exposes, so there is nothing a third-party checksum package would
// add here.
func ChecksumIEEE(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}
