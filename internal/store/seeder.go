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

package store

import (
	gorm_seeder "github.com/kachit/gorm-seeder"
	"gorm.io/gorm"

	"github.com/Youx/soliloque-server/internal/privilege"
)

// defaultGroupRows names the six user groups in privilege.Group order; the
// ServerPrivilegeRow seeded for each is built from privilege.Default()'s
// bitmap contents.
var defaultGroupRows = []string{
	"server_admin",
	"channel_admin",
	"operator",
	"voice",
	"registered",
	"anonymous",
}

// ServerPrivilegesSeeder populates the server_privileges table on first
// boot, mirroring the teacher's UsersSeeder (internal/models/user.go):
// a gorm_seeder.SeederAbstract embed plus Seed/Clear.
type ServerPrivilegesSeeder struct {
	gorm_seeder.SeederAbstract
}

// NewServerPrivilegesSeeder builds a seeder configured to insert one row
// per user group.
func NewServerPrivilegesSeeder(cfg gorm_seeder.SeederConfiguration) ServerPrivilegesSeeder {
	return ServerPrivilegesSeeder{SeederAbstract: gorm_seeder.NewSeederAbstract(cfg)}
}

// Seed inserts one ServerPrivilegeRow per user group, each populated from
// privilege.Default()'s per-group grants.
func (s *ServerPrivilegesSeeder) Seed(db *gorm.DB) error {
	bitmap := privilege.Default()
	rows := make([]ServerPrivilegeRow, 0, len(defaultGroupRows))
	for i, name := range defaultGroupRows {
		rows = append(rows, rowForGroup(name, bitmap, privilege.Group(i)))
	}
	return db.CreateInBatches(rows, s.Configuration.Rows).Error
}

// Clear removes every seeded row, matching UsersSeeder.Clear's signature;
// privileges are never re-seeded once edited, so this is a no-op left for
// symmetry with the teacher's seeder interface.
func (s *ServerPrivilegesSeeder) Clear(db *gorm.DB) error {
	return nil
}

func rowForGroup(name string, b *privilege.Bitmap, g privilege.Group) ServerPrivilegeRow {
	has := func(p privilege.Privilege) bool { return b.Has(g, p) }
	return ServerPrivilegeRow{
		UserGroup: name,

		AdmDelServer:          has(privilege.PrivAdmDelServer),
		AdmAddServer:          has(privilege.PrivAdmAddServer),
		AdmListServers:        has(privilege.PrivAdmListServers),
		AdmSetPermissions:     has(privilege.PrivAdmSetPermissions),
		AdmChangeUserPass:     has(privilege.PrivAdmChangeUserPass),
		AdmChangeOwnPass:      has(privilege.PrivAdmChangeOwnPass),
		AdmListRegistrations:  has(privilege.PrivAdmListRegistrations),
		AdmRegisterPlayer:     has(privilege.PrivAdmRegisterPlayer),
		AdmChangeServerCodecs: has(privilege.PrivAdmChangeServerCodecs),
		AdmChangeServerType:   has(privilege.PrivAdmChangeServerType),
		AdmChangeServerPass:   has(privilege.PrivAdmChangeServerPass),
		AdmChangeServerWelc:   has(privilege.PrivAdmChangeServerWelc),
		AdmChangeServerMax:    has(privilege.PrivAdmChangeServerMax),
		AdmChangeServerName:   has(privilege.PrivAdmChangeServerName),
		AdmChangeWebpostURL:   has(privilege.PrivAdmChangeWebpostURL),
		AdmChangeServerPort:   has(privilege.PrivAdmChangeServerPort),
		AdmStartServer:        has(privilege.PrivAdmStartServer),
		AdmStopServer:         has(privilege.PrivAdmStopServer),
		AdmMovePlayer:         has(privilege.PrivAdmMovePlayer),
		AdmBanIP:              has(privilege.PrivAdmBanIP),

		ChaDelete:             has(privilege.PrivChaDelete),
		ChaCreateModerated:    has(privilege.PrivChaCreateModerated),
		ChaCreateSubchanneled: has(privilege.PrivChaCreateSubchanneled),
		ChaCreateDefault:      has(privilege.PrivChaCreateDefault),
		ChaCreateUnregistered: has(privilege.PrivChaCreateUnregistered),
		ChaCreateRegistered:   has(privilege.PrivChaCreateRegistered),
		ChaJoinRegistered:     has(privilege.PrivChaJoinRegistered),
		ChaJoinWithoutPass:    has(privilege.PrivChaJoinWithoutPass),
		ChaChangeCodec:        has(privilege.PrivChaChangeCodec),
		ChaChangeMaxUsers:     has(privilege.PrivChaChangeMaxUsers),
		ChaChangeOrder:        has(privilege.PrivChaChangeOrder),
		ChaChangeDesc:         has(privilege.PrivChaChangeDesc),
		ChaChangeTopic:        has(privilege.PrivChaChangeTopic),
		ChaChangePass:         has(privilege.PrivChaChangePass),
		ChaChangeName:         has(privilege.PrivChaChangeName),

		PlGrantAllowReg:  has(privilege.PrivPlGrantAllowReg),
		PlGrantVoice:     has(privilege.PrivPlGrantVoice),
		PlGrantAutoVoice: has(privilege.PrivPlGrantAutoVoice),
		PlGrantOp:        has(privilege.PrivPlGrantOp),
		PlGrantAutoOp:    has(privilege.PrivPlGrantAutoOp),
		PlGrantCA:        has(privilege.PrivPlGrantCA),
		PlGrantSA:        has(privilege.PrivPlGrantSA),

		PlRegisterPlayer:  has(privilege.PrivPlRegisterPlayer),
		PlRevokeAllowReg:  has(privilege.PrivPlRevokeAllowReg),
		PlRevokeVoice:     has(privilege.PrivPlRevokeVoice),
		PlRevokeAutoVoice: has(privilege.PrivPlRevokeAutoVoice),
		PlRevokeOp:        has(privilege.PrivPlRevokeOp),
		PlRevokeAutoOp:    has(privilege.PrivPlRevokeAutoOp),
		PlRevokeCA:        has(privilege.PrivPlRevokeCA),
		PlRevokeSA:        has(privilege.PrivPlRevokeSA),

		PlAllowSelfReg:    has(privilege.PrivPlAllowSelfReg),
		PlDelRegistration: has(privilege.PrivPlDelRegistration),

		OtherChCommander: has(privilege.PrivOtherChCommander),
		OtherChKick:      has(privilege.PrivOtherChKick),
		OtherSvKick:      has(privilege.PrivOtherSvKick),
		OtherTextPl:      has(privilege.PrivOtherTextPl),
		OtherTextAllCh:   has(privilege.PrivOtherTextAllCh),
		OtherTextInCh:    has(privilege.PrivOtherTextInCh),
		OtherTextAll:     has(privilege.PrivOtherTextAll),
	}
}
