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

// Ban is an administrative IP ban; it is never persisted across restarts
// (spec §3).
type Ban struct {
	ID       uint32
	Duration uint16 // minutes; 0 means permanent
	IP       string
	Reason   string
}

// Permanent reports whether the ban has no expiry. Duration is parsed and
// displayed but never consulted for expiry, per spec §9's Open Question:
// this implementation keeps that behavior rather than guessing intent.
func (b *Ban) Permanent() bool { return b.Duration == 0 }
