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

// ChanPriv is a bit in ChannelPrivilege.Flags, grounded in the original
// implementation's player.h channel-privilege bit assignment.
type ChanPriv uint8

const (
	ChanPrivAdmin     ChanPriv = 1
	ChanPrivOperator  ChanPriv = 2
	ChanPrivVoice     ChanPriv = 4
	ChanPrivAutoOp    ChanPriv = 8
	ChanPrivAutoVoice ChanPriv = 16
)

// privilegeOwner is the "player-xor-registration" tagged discriminator
// (spec §3, §9's "polymorphic privilege record" design note): exactly one
// of player/registration is ever non-nil, and the tag (not a nil check)
// drives every persistence decision.
type privilegeOwner int

const (
	ownerPlayer privilegeOwner = iota
	ownerRegistration
)

// ChannelPrivilege ties a (channel, player-or-registration) pair to a set
// of channel-scoped flags (spec §3).
type ChannelPrivilege struct {
	Channel *Channel
	Flags   ChanPriv

	// DBID is the persisted row id; zero means not yet persisted.
	DBID uint32

	owner        privilegeOwner
	player       *Player
	registration *Registration
}

// NewPlayerScopedPrivilege creates a record anchored to an unregistered
// player: it is discarded with the player (spec §3).
func NewPlayerScopedPrivilege(ch *Channel, p *Player, flags ChanPriv) *ChannelPrivilege {
	return &ChannelPrivilege{Channel: ch, Flags: flags, owner: ownerPlayer, player: p}
}

// NewRegistrationScopedPrivilege creates a record anchored to a
// registration: it survives the player's logout (spec §3).
func NewRegistrationScopedPrivilege(ch *Channel, r *Registration, flags ChanPriv) *ChannelPrivilege {
	return &ChannelPrivilege{Channel: ch, Flags: flags, owner: ownerRegistration, registration: r}
}

// IsRegistrationScoped reports whether the record's discriminator is
// "registration" (spec invariant 7: the discriminator is consistent with
// the live partner reference).
func (r *ChannelPrivilege) IsRegistrationScoped() bool { return r.owner == ownerRegistration }

// Player returns the player this record is anchored to, or nil if it is
// registration-scoped.
func (r *ChannelPrivilege) Player() *Player { return r.player }

// Registration returns the registration this record is anchored to, or
// nil if it is player-scoped.
func (r *ChannelPrivilege) Registration() *Registration { return r.registration }

// AppliesTo reports whether this record describes p: directly if
// player-scoped, or via p's attached registration if registration-scoped.
func (r *ChannelPrivilege) AppliesTo(p *Player) bool {
	switch r.owner {
	case ownerPlayer:
		return r.player == p
	case ownerRegistration:
		return p.Registration != nil && p.Registration == r.registration
	default:
		return false
	}
}

// RescopeToPlayer switches a registration-scoped record to player-scoped,
// used when its registration is deleted while the described player is
// still connected (spec §4.5's "Removing a registration..." edge case).
func (r *ChannelPrivilege) RescopeToPlayer(p *Player) {
	r.owner = ownerPlayer
	r.player = p
	r.registration = nil
}

// RescopeToRegistration switches a player-scoped record to
// registration-scoped, the inverse transition taken when a connected
// player self-registers (spec §4.5's SELF_REGISTER).
func (r *ChannelPrivilege) RescopeToRegistration(reg *Registration) {
	r.owner = ownerRegistration
	r.registration = reg
	r.player = nil
}
