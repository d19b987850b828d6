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

package queue_test

import (
	"testing"
	"time"

	"github.com/Youx/soliloque-server/internal/protocol"
	"github.com/Youx/soliloque-server/internal/queue"
	"github.com/Youx/soliloque-server/internal/wire"
)

func notification(counter uint32) []byte {
	b := make([]byte, protocol.ControlHeaderLen)
	protocol.EncodeControlHeader(b, protocol.ControlHeader{
		Opcode:  protocol.OpNewPlayer,
		Counter: counter,
	})
	wire.PutCRC(b, wire.DefaultCRCOffset)
	return b
}

func TestNewQueue(t *testing.T) {
	t.Parallel()
	q := queue.NewQueue()
	if q == nil {
		t.Fatal("Expected non-nil queue")
	}
}

func TestPushIncreasesLen(t *testing.T) {
	t.Parallel()
	q := queue.NewQueue()

	if n := q.Push(notification(1)); n != 1 {
		t.Errorf("Expected len 1, got %d", n)
	}
	if n := q.Push(notification(2)); n != 2 {
		t.Errorf("Expected len 2, got %d", n)
	}
}

func TestTickSendsFreshHeadImmediatelyAtVersionZero(t *testing.T) {
	t.Parallel()
	q := queue.NewQueue()
	q.Push(notification(1))

	result := q.Tick(time.Now())
	if result.Sent == nil {
		t.Fatalf("Expected the never-sent head to go out on its first tick")
	}
	if v := wire.ReadU16(result.Sent, protocol.ControlVersionOffset); v != 0 {
		t.Errorf("Expected version 0 on the first transmission, got %d", v)
	}
}

func TestTickIgnoresHeadBeforeRetransmitInterval(t *testing.T) {
	t.Parallel()
	q := queue.NewQueue()
	q.Push(notification(1))
	now := time.Now()

	q.Tick(now)
	result := q.Tick(now.Add(time.Millisecond))
	if result.Sent != nil {
		t.Fatalf("Expected no retransmit before RetransmitInterval elapses since the last send")
	}
}

func TestTickRetransmitsAndIncrementsVersion(t *testing.T) {
	t.Parallel()
	q := queue.NewQueue()
	q.Push(notification(1))
	now := time.Now()

	q.Tick(now)

	later := now.Add(queue.RetransmitInterval + time.Millisecond)
	result := q.Tick(later)
	if result.Sent == nil {
		t.Fatalf("Expected a retransmit once RetransmitInterval elapses")
	}
	if v := wire.ReadU16(result.Sent, protocol.ControlVersionOffset); v != 1 {
		t.Errorf("Expected version 1 after the first retransmit, got %d", v)
	}
	if !wire.CheckCRC(result.Sent, wire.DefaultCRCOffset) {
		t.Errorf("Retransmitted datagram has an invalid CRC")
	}
}

func TestTickReportsTimeoutAfterMaxRetransmits(t *testing.T) {
	t.Parallel()
	q := queue.NewQueue()
	q.Push(notification(1))

	now := time.Now()
	last := q.Tick(now)
	for i := 0; i <= queue.MaxRetransmits; i++ {
		now = now.Add(queue.RetransmitInterval + time.Millisecond)
		last = q.Tick(now)
	}
	if !last.TimedOut {
		t.Fatalf("Expected TimedOut after %d retransmits", queue.MaxRetransmits+1)
	}
}

func TestAckPopsHeadOnExactMatch(t *testing.T) {
	t.Parallel()
	q := queue.NewQueue()
	q.Push(notification(42))

	if !q.Ack(42, 0) {
		t.Fatalf("Expected Ack to pop the head on an exact counter/version match")
	}
	if q.Len() != 0 {
		t.Errorf("Expected empty queue after Ack, got len %d", q.Len())
	}
}

func TestAckIgnoresWrongCounter(t *testing.T) {
	t.Parallel()
	q := queue.NewQueue()
	q.Push(notification(42))

	if q.Ack(43, 0) {
		t.Fatalf("Ack should not pop on a counter mismatch")
	}
	if q.Len() != 1 {
		t.Errorf("Expected queue unchanged, got len %d", q.Len())
	}
}

func TestAckIgnoresVersionAheadOfHead(t *testing.T) {
	t.Parallel()
	q := queue.NewQueue()
	q.Push(notification(42))

	if q.Ack(42, 1) {
		t.Fatalf("Ack should not pop when the acked version is ahead of the head's current version")
	}
}

func TestAckPreservesFIFOOrdering(t *testing.T) {
	t.Parallel()
	q := queue.NewQueue()
	q.Push(notification(1))
	q.Push(notification(2))

	if q.Ack(2, 0) {
		t.Fatalf("Ack for the second entry must not pop the head out of order")
	}
	if !q.Ack(1, 0) {
		t.Fatalf("Ack for the head entry should succeed")
	}
	if !q.Ack(2, 0) {
		t.Fatalf("Ack for the newly-exposed head should succeed")
	}
}

func TestDrainEmptiesQueue(t *testing.T) {
	t.Parallel()
	q := queue.NewQueue()
	q.Push(notification(1))
	q.Push(notification(2))

	if n := q.Drain(); n != 2 {
		t.Errorf("Expected Drain to report 2 dropped entries, got %d", n)
	}
	if q.Len() != 0 {
		t.Errorf("Expected empty queue after Drain, got len %d", q.Len())
	}
}
