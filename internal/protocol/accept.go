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

// AcceptReplyLen is the fixed length of the connection accept/refusal
// datagram (spec §6).
const AcceptReplyLen = 436

// Anchor offsets lifted verbatim from spec §6; the bytes between anchors
// that spec.md leaves unnamed are treated as reserved padding rather than
// guessed at, per the "ad-hoc byte layouts" design note.
const (
	acceptErrorOff     = 87
	acceptNameOff      = 25
	acceptMachineOff   = 55
	acceptVersionOff   = 84
	acceptCodecMaskOff = 94
	acceptPrivOff      = 103
	acceptPrivLen      = 54 // 6 groups * 9 bytes, MSB-first
	acceptPrivateIDOff = 173
	acceptPublicIDOff  = 177
	acceptWelcomeLenOff = 181
	acceptWelcomeOff    = 182
	// acceptWelcomeMax is what the fixed 436-byte total leaves for the
	// welcome text: AcceptReplyLen - acceptWelcomeOff.
	acceptWelcomeMax = AcceptReplyLen - acceptWelcomeOff
)

// AcceptReply is the decoded/encoded body of a connection accept or
// refusal datagram (0xbef4/ConnAccept, s→c).
type AcceptReply struct {
	ErrorCode   uint32
	ServerName  string
	Machine     string
	Version     ClientVersion
	CodecMask   uint32
	Privileges  [acceptPrivLen]byte
	PrivateID   uint32
	PublicID    uint32
	Welcome     string
}

// EncodeAcceptReply serializes r into a 436-byte datagram and signs it.
func EncodeAcceptReply(r AcceptReply) []byte {
	b := make([]byte, AcceptReplyLen)
	wire.PutU16(b, 0, uint16(wire.FamilyConnection))
	wire.PutU16(b, 2, ConnAccept)
	wire.PutU32(b, acceptErrorOff, r.ErrorCode)
	wire.PutFixedString(b, acceptNameOff, r.ServerName, wire.NameSlotLen)
	copy(b[acceptMachineOff:acceptMachineOff+wire.NameSlotLen], []byte(r.Machine))
	for i, v := range r.Version {
		wire.PutU16(b, acceptVersionOff+2*i, v)
	}
	wire.PutU32(b, acceptCodecMaskOff, r.CodecMask)
	copy(b[acceptPrivOff:acceptPrivOff+acceptPrivLen], r.Privileges[:])
	wire.PutU32(b, acceptPrivateIDOff, r.PrivateID)
	wire.PutU32(b, acceptPublicIDOff, r.PublicID)
	n := len(r.Welcome)
	if n > acceptWelcomeMax-1 {
		n = acceptWelcomeMax - 1
	}
	b[acceptWelcomeLenOff] = byte(n)
	copy(b[acceptWelcomeOff:acceptWelcomeOff+n], r.Welcome[:n])
	wire.PutCRC(b, wire.ConnectionCRCOffset)
	return b
}

// RefusalReply builds the 436-byte refusal datagram for a banned peer
// (spec §4.6 step 2, error code protocol.ErrLoginBanned).
func RefusalReply() []byte {
	b := make([]byte, AcceptReplyLen)
	wire.PutU16(b, 0, uint16(wire.FamilyConnection))
	wire.PutU16(b, 2, ConnAccept)
	wire.PutU32(b, acceptErrorOff, ErrLoginBanned)
	wire.PutCRC(b, wire.ConnectionCRCOffset)
	return b
}
