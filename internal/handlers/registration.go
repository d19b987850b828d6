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

package handlers

import (
	"github.com/Youx/soliloque-server/internal/arena"
	"github.com/Youx/soliloque-server/internal/privilege"
	"github.com/Youx/soliloque-server/internal/protocol"
	"github.com/Youx/soliloque-server/internal/wire"
)

func init() {
	register(protocol.OpSelfRegister, handleSelfRegister)
	register(protocol.OpAdminCreateRegistered, handleAdminCreateRegistered)
}

// handleSelfRegister lets the currently-connected anonymous player create
// its own registration, gated on AllowReg (spec §4.5's SELF_REGISTER and
// the AllowSelfReg privilege). Body: login(zt) password(zt).
func handleSelfRegister(ctx *Context) error {
	if ctx.Player.GlobalFlags&arena.FlagAllowReg == 0 {
		if err := require(ctx, privilege.PrivPlAllowSelfReg); err != nil {
			return err
		}
	}
	if ctx.Player.Registration != nil {
		return nil
	}
	login, next := wire.ZTString(ctx.Body, 0)
	password, _ := wire.ZTString(ctx.Body, next)
	if login == "" {
		return nil
	}
	if _, exists := ctx.Server.FindRegistration(login); exists {
		return nil
	}

	reg := &arena.Registration{
		Login:        login,
		PasswordHash: arena.HashPassword(password),
	}
	ctx.Server.AddRegistration(reg)
	ctx.Player.Registration = reg
	ctx.Player.GlobalFlags |= arena.FlagRegistered

	if rec := ctx.Player.PrivilegeRecord(); rec != nil && !rec.IsRegistrationScoped() {
		rec.RescopeToRegistration(reg)
		if ctx.Persist != nil && ctx.Player.Channel.Registered() {
			ctx.Persist.SavePrivilege(rec)
		}
	}
	if ctx.Persist != nil {
		ctx.Persist.SaveRegistration(reg)
	}
	announceGlobalFlagChange(ctx.Server, ctx.Player)
	return nil
}

// handleAdminCreateRegistered lets a privileged player register another
// login on the server's behalf (spec §4.5's ADMIN_REGISTER, requires
// AdmRegisterPlayer). Body: login(zt) password(zt).
func handleAdminCreateRegistered(ctx *Context) error {
	if err := require(ctx, privilege.PrivAdmRegisterPlayer); err != nil {
		return err
	}
	login, next := wire.ZTString(ctx.Body, 0)
	password, _ := wire.ZTString(ctx.Body, next)
	if login == "" {
		return nil
	}
	if _, exists := ctx.Server.FindRegistration(login); exists {
		return nil
	}
	reg := &arena.Registration{Login: login, PasswordHash: arena.HashPassword(password)}
	ctx.Server.AddRegistration(reg)
	if ctx.Persist != nil {
		ctx.Persist.SaveRegistration(reg)
	}
	return nil
}
