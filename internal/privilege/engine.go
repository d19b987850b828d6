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

package privilege

// Membership is the set of groups a player belongs to in a given channel
// context, derived fresh on every check per spec §4.3 (no cached role).
// The caller (internal/arena) computes this from the player's global flags
// and per-channel privilege record; privilege itself stays free of any
// dependency on the domain model.
type Membership struct {
	ServerAdmin  bool
	ChannelAdmin bool
	Operator     bool
	Voice        bool
	Registered   bool
}

// Groups returns the list of groups this membership belongs to. Anonymous
// is always included, matching spec's "anonymous is universal" rule.
func (m Membership) Groups() []Group {
	groups := make([]Group, 0, groupCount)
	if m.ServerAdmin {
		groups = append(groups, GroupServerAdmin)
	}
	if m.ChannelAdmin {
		groups = append(groups, GroupChannelAdmin)
	}
	if m.Operator {
		groups = append(groups, GroupOperator)
	}
	if m.Voice {
		groups = append(groups, GroupVoice)
	}
	if m.Registered {
		groups = append(groups, GroupRegistered)
	}
	groups = append(groups, GroupAnonymous)
	return groups
}

// HasPrivilege implements player_has_privilege: true iff any group m
// belongs to has p set in bitmap.
func HasPrivilege(bitmap *Bitmap, m Membership, p Privilege) bool {
	for _, g := range m.Groups() {
		if bitmap.Has(g, p) {
			return true
		}
	}
	return false
}

// Default returns a bitmap seeded with a conservative starting grant:
// server_admin and anonymous get nothing extra beyond what's explicitly
// set; registered/voice/operator/channel_admin/server_admin are granted
// the privileges their name implies. This seed is what
// internal/store's ServerPrivilegesSeeder writes on first boot.
func Default() *Bitmap {
	b := &Bitmap{}

	adminOnly := []Privilege{
		PrivAdmDelServer, PrivAdmAddServer, PrivAdmListServers, PrivAdmSetPermissions,
		PrivAdmChangeUserPass, PrivAdmChangeOwnPass, PrivAdmListRegistrations,
		PrivAdmRegisterPlayer, PrivAdmChangeServerCodecs, PrivAdmChangeServerType,
		PrivAdmChangeServerPass, PrivAdmChangeServerWelc, PrivAdmChangeServerMax,
		PrivAdmChangeServerName, PrivAdmChangeWebpostURL, PrivAdmChangeServerPort,
		PrivAdmStartServer, PrivAdmStopServer, PrivAdmMovePlayer, PrivAdmBanIP,
		PrivOtherSvKick, PrivPlDelRegistration, PrivPlRegisterPlayer,
	}
	for _, p := range adminOnly {
		b.Set(GroupServerAdmin, p, true)
	}

	channelAdmin := []Privilege{
		PrivChaDelete, PrivChaCreateModerated, PrivChaCreateSubchanneled,
		PrivChaCreateDefault, PrivChaCreateUnregistered, PrivChaCreateRegistered,
		PrivChaJoinRegistered, PrivChaJoinWithoutPass, PrivChaChangeCodec,
		PrivChaChangeMaxUsers, PrivChaChangeOrder, PrivChaChangeDesc,
		PrivChaChangeTopic, PrivChaChangePass, PrivChaChangeName,
		PrivPlGrantAllowReg, PrivPlGrantVoice, PrivPlGrantAutoVoice,
		PrivPlGrantOp, PrivPlGrantAutoOp, PrivPlGrantCA,
		PrivPlRevokeAllowReg, PrivPlRevokeVoice, PrivPlRevokeAutoVoice,
		PrivPlRevokeOp, PrivPlRevokeAutoOp, PrivPlRevokeCA,
		PrivOtherChCommander, PrivOtherChKick, PrivOtherTextAllCh,
	}
	for _, p := range channelAdmin {
		b.Set(GroupChannelAdmin, p, true)
	}

	operator := []Privilege{
		PrivChaChangeTopic, PrivChaChangeDesc, PrivOtherChKick,
		PrivPlGrantVoice, PrivPlGrantAutoVoice, PrivPlRevokeVoice, PrivPlRevokeAutoVoice,
		PrivOtherTextInCh,
	}
	for _, p := range operator {
		b.Set(GroupOperator, p, true)
	}

	for _, p := range []Privilege{PrivOtherTextPl, PrivOtherTextInCh} {
		b.Set(GroupVoice, p, true)
	}

	for _, p := range []Privilege{PrivPlAllowSelfReg, PrivChaJoinRegistered, PrivOtherTextPl} {
		b.Set(GroupRegistered, p, true)
	}

	b.Set(GroupAnonymous, PrivOtherTextPl, true)

	return b
}
