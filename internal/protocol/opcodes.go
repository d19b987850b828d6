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

// Package protocol defines the opcode table and the fixed byte layouts the
// wire protocol must reproduce exactly, per the layout structs called for
// by the "ad-hoc byte layouts" design note: every handler decodes once and
// encodes one or more times through these types rather than doing its own
// pointer arithmetic.
package protocol

// Opcode is the 16-bit control operation code carried at datagram offset 2.
type Opcode uint16

const (
	OpListChannels          Opcode = 0x0005
	OpChannelListReply      Opcode = 0x0006
	OpPlayerListReply       Opcode = 0x0007
	OpNewPlayer             Opcode = 0x0064
	OpPlayerLeft            Opcode = 0x0065
	OpChannelKick           Opcode = 0x0066
	OpSwitchChannel         Opcode = 0x0067
	OpChangeAttributes      Opcode = 0x0068
	OpChangeChannelPriv     Opcode = 0x006a
	OpChangeGlobalFlag      Opcode = 0x006b
	OpMovePlayerAdmin       Opcode = 0x006d
	OpCreateChannel         Opcode = 0x006e
	OpChangeChannelName     Opcode = 0x006f
	OpChangeChannelTopic    Opcode = 0x0070
	OpChangeChannelFlags    Opcode = 0x0071
	OpChangeChannelDesc     Opcode = 0x0072
	OpDeleteChannel         Opcode = 0x0073
	OpChangeChannelMaxUsers Opcode = 0x0074
	OpChangeChannelOrder    Opcode = 0x0075
	OpTextMessage           Opcode = 0x0082
	OpDeleteChannelFailed   Opcode = 0xff93
	OpPlayerStats           Opcode = 0x0194
	OpServerStats           Opcode = 0x0196
	OpBanList               Opcode = 0x019b
	OpClientLeaves          Opcode = 0x002c
	OpKickFromServer        Opcode = 0x002d
	OpKickFromChannel       Opcode = 0x002e
	OpChangeOwnAttributes   Opcode = 0x0030
	OpRequestVoice          Opcode = 0x0031
	OpSelfRegister          Opcode = 0x0034
	OpAdminCreateRegistered Opcode = 0x0036
	OpMutePlayer            Opcode = 0x0040
	OpIPBan                 Opcode = 0x0044
	OpBanPlayer             Opcode = 0x0045
	OpRemoveBan             Opcode = 0x0046
	OpMovePlayer            Opcode = 0x004a
	OpRequestPlayerStats    Opcode = 0x0090
	OpRequestServerStats    Opcode = 0x0095
	OpRequestBanList        Opcode = 0x009a
	OpSendTextMessage       Opcode = 0x00ae

	// OpChangeChannelPass is the dedicated channel-password handler the
	// original implementation keeps separate from the combined
	// flags+codec handler (spec §4.5's edge case note); recovered from
	// original_source's f0_callbacks[0][0xcb] registration.
	OpChangeChannelPass Opcode = 0x00cb

	// OpChannelDeleteQuery is the c→s delete-channel request. It shares
	// spec.md's §8 scenario 4 opcode (0x00d1), distinct from the wire-form
	// query/reply opcodes documented in §4.5's table.
	OpChannelDeleteQuery Opcode = 0x00d1
)

// Connection-family (0xbef4) subtypes.
const (
	ConnLogin     uint16 = 0x0003
	ConnKeepalive uint16 = 0x0001
	ConnAccept    uint16 = 0x0002
)

// PlayerLeftReason is the reason code carried by OpPlayerLeft.
type PlayerLeftReason uint8

const (
	ReasonVoluntaryLeave   PlayerLeftReason = 1
	ReasonKickedOrBanned   PlayerLeftReason = 2
	ReasonServerStopping   PlayerLeftReason = 4
)

// TextMessageKind is the `type` field of OpTextMessage/OpSendTextMessage.
type TextMessageKind uint8

const (
	TextMessageAll     TextMessageKind = 0
	TextMessageChannel TextMessageKind = 1
	TextMessagePlayer  TextMessageKind = 2
)

// ErrLoginBanned is the error code carried by a login refusal to a banned peer.
const ErrLoginBanned uint32 = 0xFFFFFFFA

// ErrLoginAccepted is the error code carried by a successful accept reply.
const ErrLoginAccepted uint32 = 0x00000001

// ProtocolVersion is the fixed client/server version string sent in the
// accept reply.
var ProtocolVersion = [4]uint16{2, 0, 20, 1}
