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

// Package queue implements the per-player reliable outbound packet queue
// (spec §4.2): a FIFO of pre-built control datagrams, retransmitted on a
// timer and popped only on a matching acknowledgement.
package queue

import (
	"sync"
	"time"

	"github.com/Youx/soliloque-server/internal/protocol"
	"github.com/Youx/soliloque-server/internal/wire"
)

// RetransmitInterval and MaxRetransmits implement the 500ms/50-strike
// timeout rule from spec §4.2 and §5.
const (
	RetransmitInterval = 500 * time.Millisecond
	MaxRetransmits     = 50
)

// entry is one outbound datagram awaiting acknowledgement.
type entry struct {
	bytes    []byte
	lastSent time.Time
}

// Queue is a single player's ordered outbound packet queue. It is safe for
// concurrent use by exactly two callers: the receiver goroutine (Push,
// Ack) and the retransmit goroutine (Tick), per spec §5's concurrency
// model — the lock's critical sections stay to "one head peek, one
// optional send, one timestamp write".
type Queue struct {
	mu      sync.Mutex
	entries []entry
}

// NewQueue returns an empty outbound queue for one player.
func NewQueue() *Queue {
	return &Queue{}
}

// Push enqueues a fully-encoded, CRC-signed control datagram. The version
// counter embedded in the bytes must start at 0; Tick increments it on
// every retransmit. Returns the queue depth after the push.
func (q *Queue) Push(datagram []byte) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, entry{bytes: datagram})
	return len(q.entries)
}

// Len reports the current queue depth.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// TickResult reports what Tick did to the head entry.
type TickResult struct {
	// Sent is non-nil when a (re)transmission happened; the caller must
	// hand it to the UDP socket.
	Sent []byte
	// TimedOut is true when the head's version counter just exceeded
	// MaxRetransmits; the caller must evict the player.
	TimedOut bool
}

// Tick runs one retransmit-worker pass over the head entry, per spec §4.2
// steps 1-3: if now-lastSent exceeds RetransmitInterval, the version
// counter is incremented in place, the CRC recomputed, and the bytes
// returned for sending.
func (q *Queue) Tick(now time.Time) TickResult {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return TickResult{}
	}
	head := &q.entries[0]

	// The zero time.Time value of a never-sent entry must not itself count
	// as a retransmit: the first send goes out carrying version 0, exactly
	// as Push left it, and only a genuine 500ms-later retry bumps the
	// version counter (spec §8 scenario 3 / testable property 6).
	if head.lastSent.IsZero() {
		head.lastSent = now
		sent := make([]byte, len(head.bytes))
		copy(sent, head.bytes)
		return TickResult{Sent: sent}
	}

	if now.Sub(head.lastSent) <= RetransmitInterval {
		return TickResult{}
	}

	version := wire.ReadU16(head.bytes, protocol.ControlVersionOffset) + 1
	wire.PutU16(head.bytes, protocol.ControlVersionOffset, version)
	wire.PutCRC(head.bytes, wire.DefaultCRCOffset)
	head.lastSent = now

	sent := make([]byte, len(head.bytes))
	copy(sent, head.bytes)

	return TickResult{Sent: sent, TimedOut: version > MaxRetransmits}
}

// Ack pops the head entry iff its on-wire counter equals counter and its
// current version is <= version, per spec §4.2's ack-matching rule. It
// reports whether the head was popped.
func (q *Queue) Ack(counter uint32, version uint16) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return false
	}
	head := q.entries[0]
	headCounter := wire.ReadU32(head.bytes, protocol.ControlCounterOffset)
	headVersion := wire.ReadU16(head.bytes, protocol.ControlVersionOffset)
	if headCounter != counter || version > headVersion {
		return false
	}
	q.entries = q.entries[1:]
	return true
}

// Drain discards every queued entry and returns how many were dropped.
// The retransmit loop does not call it: a leaving player that exhausts its
// retransmit budget is destroyed with its queue as it is.
func (q *Queue) Drain() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.entries)
	q.entries = nil
	return n
}
