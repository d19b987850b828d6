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

package arena

import (
	"crypto/sha256"
	"encoding/hex"
)

// Registration is a persisted login: its password is stored as the
// lowercase hex of SHA-256 of the plaintext (spec §3).
type Registration struct {
	DBID        uint32
	Login       string
	PasswordHash string
	GlobalFlags GlobalFlag
}

// HashPassword returns the lowercase hex SHA-256 digest used for both
// storage and credential comparison (spec §3, §4.6).
func HashPassword(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// CheckPassword reports whether plaintext hashes to r's stored digest.
func (r *Registration) CheckPassword(plaintext string) bool {
	return HashPassword(plaintext) == r.PasswordHash
}
