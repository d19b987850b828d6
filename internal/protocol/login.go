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

package protocol

import "github.com/Youx/soliloque-server/internal/wire"

// LoginRequestLen is the fixed length of a login datagram (spec §6).
const LoginRequestLen = 180

// Slot offsets within a login datagram. The leading 20 bytes are the
// connection-family header (family, subtype, reserved, CRC at offset 16);
// everything after is the 30-byte name-style slots spec §4.6 enumerates.
const (
	loginNameOff     = 20
	loginMachineOff  = 50
	loginVersionOff  = 80
	loginLoginOff    = 88
	loginPasswordOff = 118
	loginNicknameOff = 148
)

// ClientVersion is the four 16-bit version fields a client reports at login.
type ClientVersion [4]uint16

// LoginRequest is the decoded body of a 0xbef4/ConnLogin datagram.
type LoginRequest struct {
	ClientName string
	Machine    string
	Version    ClientVersion
	// Login is empty for an anonymous connection attempt.
	Login    string
	Password string
	Nickname string
}

// Anonymous reports whether this login attempt carries no registration name.
func (r LoginRequest) Anonymous() bool { return r.Login == "" }

// DecodeLoginRequest parses a 180-byte login datagram. The caller must have
// already validated length and CRC.
func DecodeLoginRequest(b []byte) LoginRequest {
	var v ClientVersion
	for i := range v {
		v[i] = wire.ReadU16(b, loginVersionOff+2*i)
	}
	return LoginRequest{
		ClientName: wire.FixedString(b, loginNameOff, wire.NameSlotLen),
		Machine:    wire.FixedString(b, loginMachineOff, wire.NameSlotLen),
		Version:    v,
		Login:      wire.FixedString(b, loginLoginOff, wire.NameSlotLen),
		Password:   wire.FixedString(b, loginPasswordOff, wire.NameSlotLen),
		Nickname:   wire.FixedString(b, loginNicknameOff, wire.NameSlotLen),
	}
}

// EncodeLoginRequest serializes r and computes its CRC, mostly useful for
// tests exercising the server's decode path.
func EncodeLoginRequest(r LoginRequest) []byte {
	b := make([]byte, LoginRequestLen)
	wire.PutU16(b, 0, uint16(wire.FamilyConnection))
	wire.PutU16(b, 2, ConnLogin)
	wire.PutFixedString(b, loginNameOff, r.ClientName, wire.NameSlotLen)
	wire.PutFixedString(b, loginMachineOff, r.Machine, wire.NameSlotLen)
	for i, v := range r.Version {
		wire.PutU16(b, loginVersionOff+2*i, v)
	}
	wire.PutFixedString(b, loginLoginOff, r.Login, wire.NameSlotLen)
	wire.PutFixedString(b, loginPasswordOff, r.Password, wire.NameSlotLen)
	wire.PutFixedString(b, loginNicknameOff, r.Nickname, wire.NameSlotLen)
	wire.PutCRC(b, wire.ConnectionCRCOffset)
	return b
}

// KeepaliveLen is the fixed size of a keepalive datagram (spec §4.6).
const KeepaliveLen = 24

// Keepalive is the decoded body of a 0xbef4/ConnKeepalive datagram: it
// echoes back a client-side counter at offset 20.
type Keepalive struct {
	ClientCounter uint32
}

func DecodeKeepalive(b []byte) Keepalive {
	return Keepalive{ClientCounter: wire.ReadU32(b, 20)}
}

func EncodeKeepaliveReply(counter uint32) []byte {
	b := make([]byte, KeepaliveLen)
	wire.PutU16(b, 0, uint16(wire.FamilyConnection))
	wire.PutU16(b, 2, ConnKeepalive)
	wire.PutU32(b, 20, counter)
	wire.PutCRC(b, wire.ConnectionCRCOffset)
	return b
}
