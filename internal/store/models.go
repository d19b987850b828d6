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

// Package store is the persistence adapter: it loads and mutates the
// registered subset of the domain model (spec §2, §6). Unregistered
// channels and anonymous players never touch it.
package store

// ServerRow is the `servers` table row (spec §6). Only active=1 servers
// are booted.
type ServerRow struct {
	ID       uint   `gorm:"primarykey"`
	Name     string `gorm:"size:30"`
	Welcome  string `gorm:"size:255"`
	Password string `gorm:"size:30"`
	Machine  string `gorm:"size:30"`
	Port     int
	Active   bool `gorm:"default:true"`
}

func (ServerRow) TableName() string { return "servers" }

// ChannelRow is the `channels` table row. ParentID uses -1 (stored as the
// signed representation) for a root channel (spec §6).
type ChannelRow struct {
	ID        uint `gorm:"primarykey"`
	ServerID  uint
	ParentID  int32 `gorm:"default:-1"`
	Flags     uint16
	Codec     uint16
	SortOrder uint16
	MaxUsers  uint16
	Name      string `gorm:"size:30"`
	Topic     string `gorm:"size:255"`
	Desc      string `gorm:"size:255"`
	Password  string `gorm:"size:30"`
}

func (ChannelRow) TableName() string { return "channels" }

// RegistrationRow is the `registrations` table row (spec §3, §6).
type RegistrationRow struct {
	ID           uint   `gorm:"primarykey"`
	ServerID     uint
	Login        string `gorm:"size:30;uniqueIndex:idx_server_login"`
	PasswordHash string `gorm:"size:64"`
	GlobalFlags  uint16
}

func (RegistrationRow) TableName() string { return "registrations" }

// PlayerChannelPrivilegeRow is the `player_channel_privileges` table row.
// Exactly one of RegistrationID/PlayerName is meaningful, mirroring the
// player-xor-registration discriminator (spec §3, §9).
type PlayerChannelPrivilegeRow struct {
	ID             uint `gorm:"primarykey"`
	ChannelID      uint
	RegistrationID *uint
	// PlayerName anchors a player-scoped record: unregistered-channel
	// privileges never reach the store, so this column only appears for
	// registered channels granting a privilege to a not-yet-registered
	// player, per spec §3's per-channel privilege record rule.
	PlayerName string `gorm:"size:29"`
	Flags      uint8
}

func (PlayerChannelPrivilegeRow) TableName() string { return "player_channel_privileges" }

// ServerPrivilegeRow is one row of the `server_privileges` table: a user
// group mapped onto boolean columns named after the lowercase
// symbol-style privilege identifiers (spec §6). Only the privileges this
// implementation names in internal/privilege are represented as columns;
// the rest of the original's sparse 0..87 range is not modeled.
type ServerPrivilegeRow struct {
	ID        uint   `gorm:"primarykey"`
	UserGroup string `gorm:"uniqueIndex;size:20"`

	AdmDelServer          bool
	AdmAddServer          bool
	AdmListServers        bool
	AdmSetPermissions     bool
	AdmChangeUserPass     bool
	AdmChangeOwnPass      bool
	AdmListRegistrations  bool
	AdmRegisterPlayer     bool
	AdmChangeServerCodecs bool
	AdmChangeServerType   bool
	AdmChangeServerPass   bool
	AdmChangeServerWelc   bool
	AdmChangeServerMax    bool
	AdmChangeServerName   bool
	AdmChangeWebpostURL   bool
	AdmChangeServerPort   bool
	AdmStartServer        bool
	AdmStopServer         bool
	AdmMovePlayer         bool
	AdmBanIP              bool

	ChaDelete             bool
	ChaCreateModerated    bool
	ChaCreateSubchanneled bool
	ChaCreateDefault      bool
	ChaCreateUnregistered bool
	ChaCreateRegistered   bool
	ChaJoinRegistered     bool
	ChaJoinWithoutPass    bool
	ChaChangeCodec        bool
	ChaChangeMaxUsers     bool
	ChaChangeOrder        bool
	ChaChangeDesc         bool
	ChaChangeTopic        bool
	ChaChangePass         bool
	ChaChangeName         bool

	PlGrantAllowReg  bool
	PlGrantVoice     bool
	PlGrantAutoVoice bool
	PlGrantOp        bool
	PlGrantAutoOp    bool
	PlGrantCA        bool
	PlGrantSA        bool

	PlRegisterPlayer bool
	PlRevokeAllowReg bool
	PlRevokeVoice    bool
	PlRevokeAutoVoice bool
	PlRevokeOp       bool
	PlRevokeAutoOp   bool
	PlRevokeCA       bool
	PlRevokeSA       bool

	PlAllowSelfReg    bool
	PlDelRegistration bool

	OtherChCommander bool
	OtherChKick      bool
	OtherSvKick      bool
	OtherTextPl      bool
	OtherTextAllCh   bool
	OtherTextInCh    bool
	OtherTextAll     bool
}

func (ServerPrivilegeRow) TableName() string { return "server_privileges" }
