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

// Package handlers implements the control-family opcode table (spec §4.5):
// ack, privilege check, mutate, persist-if-registered, broadcast.
package handlers

import (
	"fmt"
	"log/slog"

	"github.com/Youx/soliloque-server/internal/arena"
	"github.com/Youx/soliloque-server/internal/privilege"
	"github.com/Youx/soliloque-server/internal/protocol"
)

// Persister bridges a handler's in-memory mutation to the registered
// subset of the domain model (spec §2's persistence adapter). A nil
// Persister is valid: handlers skip persistence entirely, as they must
// for an unregistered channel or an anonymous player.
type Persister interface {
	SaveChannel(c *arena.Channel)
	DeleteChannel(c *arena.Channel)
	SaveRegistration(r *arena.Registration)
	DeleteRegistration(r *arena.Registration)
	SavePrivilege(rec *arena.ChannelPrivilege)
	DeletePrivilege(rec *arena.ChannelPrivilege)
}

// Context carries everything a handler needs to act on one inbound
// control datagram.
type Context struct {
	Server *arena.Server
	Player *arena.Player
	Header protocol.ControlHeader
	// Body is the datagram bytes following the fixed control header.
	Body []byte

	Log     *slog.Logger
	Persist Persister
}

// ErrPermissionDenied is returned by a handler when the acting player
// lacks the privilege the operation requires (spec §4.3).
type ErrPermissionDenied struct {
	Privilege privilege.Privilege
}

func (e ErrPermissionDenied) Error() string {
	return fmt.Sprintf("missing privilege %d", e.Privilege)
}

// ErrInvalidRequest is returned by a handler that rejects a request outright
// rather than acting on it, e.g. clearing a channel's password through the
// flags handler (spec §4.5's "removing a password via the flags handler is
// explicitly rejected").
type ErrInvalidRequest struct {
	Reason string
}

func (e ErrInvalidRequest) Error() string { return e.Reason }

// require returns ErrPermissionDenied unless ctx.Player holds priv.
func require(ctx *Context, priv privilege.Privilege) error {
	if !ctx.Player.HasPrivilege(priv) {
		return ErrPermissionDenied{Privilege: priv}
	}
	return nil
}

// Func is one opcode's handler body, invoked after the generic ack has
// already been sent by the caller (spec §4.4's "every control datagram is
// acknowledged independent of whether the operation succeeds").
type Func func(ctx *Context) error

var registry = map[protocol.Opcode]Func{}

func register(op protocol.Opcode, fn Func) {
	registry[op] = fn
}

// Dispatch routes ctx to the handler registered for its opcode.
func Dispatch(ctx *Context) error {
	fn, ok := registry[ctx.Header.Opcode]
	if !ok {
		return fmt.Errorf("unhandled opcode %#04x", uint16(ctx.Header.Opcode))
	}
	return fn(ctx)
}
