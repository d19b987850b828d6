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

// Package arena holds the in-memory domain model for one server instance:
// channels, players, bans and registrations, with the arena-per-server and
// weak-back-reference structure the "cyclic references" design note calls
// for (spec §9).
package arena

import "math/rand"

// idPool hands out the dense 1-based integer ids spec §3 requires for
// channels, players, bans and registrations: the first free slot, not a
// monotonically increasing counter, so ids are reused once freed.
type idPool struct {
	next uint32
	free []uint32
}

func newIDPool() *idPool {
	return &idPool{next: 1}
}

func (p *idPool) alloc() uint32 {
	if len(p.free) > 0 {
		lo := 0
		for i, id := range p.free {
			if id < p.free[lo] {
				lo = i
			}
		}
		id := p.free[lo]
		p.free = append(p.free[:lo], p.free[lo+1:]...)
		return id
	}
	id := p.next
	p.next++
	return id
}

func (p *idPool) release(id uint32) {
	p.free = append(p.free, id)
}

// newPrivateID draws the 32-bit random cookie that authenticates a player's
// peer address for the lifetime of its session (spec §3).
func newPrivateID() uint32 {
	for {
		id := rand.Uint32()
		if id != 0 {
			return id
		}
	}
}
