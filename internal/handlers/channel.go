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
	register(protocol.OpListChannels, handleListChannels)
	register(protocol.OpCreateChannel, handleCreateChannel)
	register(protocol.OpDeleteChannel, handleDeleteChannel)
	register(protocol.OpChannelDeleteQuery, handleDeleteChannel)
	register(protocol.OpChangeChannelName, handleChangeChannelName)
	register(protocol.OpChangeChannelTopic, handleChangeChannelTopic)
	register(protocol.OpChangeChannelDesc, handleChangeChannelDesc)
	register(protocol.OpChangeChannelFlags, handleChangeChannelFlags)
	register(protocol.OpChangeChannelMaxUsers, handleChangeChannelMaxUsers)
	register(protocol.OpChangeChannelOrder, handleChangeChannelOrder)
	register(protocol.OpChangeChannelPass, handleChangeChannelPass)
}

func channelWireOf(c *arena.Channel) protocol.ChannelWire {
	parentID := protocol.RootParentID
	if c.Parent != nil {
		parentID = c.Parent.ID
	}
	return protocol.ChannelWire{
		ID:        c.ID,
		Flags:     uint16(c.Flags),
		Codec:     c.Codec,
		ParentID:  parentID,
		SortOrder: c.SortOrder,
		MaxUsers:  c.MaxUsers,
		Name:      c.Name,
		Topic:     c.Topic,
		Desc:      c.Desc,
	}
}

// playerListChunk is the number of PlayerWire entries sent per
// PLAYER_LIST_REPLY datagram (spec §4.5's "chunks of 10").
const playerListChunk = 10

// handleListChannels replies with every channel, then every connected
// player in chunks of 10, both to the requester only (spec §4.5's
// LIST_CHANNELS / CHANNEL_LIST_REPLY / PLAYER_LIST_REPLY).
func handleListChannels(ctx *Context) error {
	channels := append([]*arena.Channel(nil), ctx.Server.Channels()...)
	arena.SortChannels(channels)

	var body []byte
	for _, c := range channels {
		body = channelWireOf(c).Encode(body)
	}
	dg := newDatagram(protocol.ControlHeader{Opcode: protocol.OpChannelListReply}, len(body))
	copy(dg[protocol.ControlHeaderLen:], body)
	notify(ctx, dg)

	var players []*arena.Player
	ctx.Server.Players.Range(func(_ uint32, p *arena.Player) bool {
		players = append(players, p)
		return true
	})
	for i := 0; i < len(players); i += playerListChunk {
		end := i + playerListChunk
		if end > len(players) {
			end = len(players)
		}
		var chunk []byte
		for _, p := range players[i:end] {
			chunk = playerWireOf(p).Encode(chunk)
		}
		pdg := newDatagram(protocol.ControlHeader{Opcode: protocol.OpPlayerListReply}, len(chunk))
		copy(pdg[protocol.ControlHeaderLen:], chunk)
		notify(ctx, pdg)
	}
	return nil
}

// announceChannelChange re-broadcasts a channel's current wire form under
// the given opcode, the general pattern every per-field CHANGE_CHANNEL_*
// handler shares (spec §4.5).
func announceChannelChange(s *arena.Server, op protocol.Opcode, c *arena.Channel) {
	body := channelWireOf(c).Encode(nil)
	dg := newDatagram(protocol.ControlHeader{Opcode: op}, len(body))
	copy(dg[protocol.ControlHeaderLen:], body)
	broadcastServer(s, dg, nil)
}

func (ctx *Context) persistChannel(c *arena.Channel) {
	if ctx.Persist != nil && c.Registered() {
		ctx.Persist.SaveChannel(c)
	}
}

// handleCreateChannel requires the flag-specific creation privilege that
// matches the requested channel's flags (spec §4.5's CREATE_CHANNEL).
func handleCreateChannel(ctx *Context) error {
	if len(ctx.Body) < 1 {
		return nil
	}
	c, _ := protocol.DecodeChannelWire(ctx.Body, 0)

	flags := arena.ChannelFlag(c.Flags)
	if flags&arena.ChannelModerated != 0 {
		if err := require(ctx, privilege.PrivChaCreateModerated); err != nil {
			return err
		}
	}
	if flags&arena.ChannelSubchannels != 0 {
		if err := require(ctx, privilege.PrivChaCreateSubchanneled); err != nil {
			return err
		}
	}
	if flags&arena.ChannelDefault != 0 {
		if err := require(ctx, privilege.PrivChaCreateDefault); err != nil {
			return err
		}
	}
	if flags&arena.ChannelUnregistered != 0 {
		if err := require(ctx, privilege.PrivChaCreateUnregistered); err != nil {
			return err
		}
	} else if err := require(ctx, privilege.PrivChaCreateRegistered); err != nil {
		return err
	}

	created := ctx.Server.CreateChannel(c.Name, flags, c.Codec)
	created.Topic = c.Topic
	created.Desc = c.Desc
	created.MaxUsers = c.MaxUsers
	created.SortOrder = c.SortOrder
	ctx.persistChannel(created)
	announceChannelChange(ctx.Server, protocol.OpCreateChannel, created)
	return nil
}

// handleDeleteChannel rejects a non-empty channel per spec §4.5's edge
// case by replying with DELETE_CHANNEL_FAILED (spec §8 scenario 4);
// an empty channel is deleted and DELETE_CHANNEL is broadcast.
func handleDeleteChannel(ctx *Context) error {
	if err := require(ctx, privilege.PrivChaDelete); err != nil {
		return err
	}
	if len(ctx.Body) < 4 {
		return nil
	}
	c, ok := ctx.Server.FindChannel(wire.ReadU32(ctx.Body, 0))
	if !ok {
		return nil
	}
	if err := ctx.Server.DeleteChannel(c); err != nil {
		dg := newDatagram(protocol.ControlHeader{Opcode: protocol.OpDeleteChannelFailed}, 4)
		wire.PutU32(dg[protocol.ControlHeaderLen:], 0, c.ID)
		notify(ctx, dg)
		return nil
	}
	if ctx.Persist != nil && c.Registered() {
		ctx.Persist.DeleteChannel(c)
	}
	dg := newDatagram(protocol.ControlHeader{Opcode: protocol.OpDeleteChannel}, 4)
	wire.PutU32(dg[protocol.ControlHeaderLen:], 0, c.ID)
	broadcastServer(ctx.Server, dg, nil)
	return nil
}

// channelFieldHandler factors the repeated "find channel, require
// privilege, mutate one field, persist, announce" shape that spec §4.5's
// per-field CHANGE_CHANNEL_* opcodes all share.
func channelFieldHandler(priv privilege.Privilege, op protocol.Opcode, mutate func(c *arena.Channel, body []byte)) Func {
	return func(ctx *Context) error {
		if err := require(ctx, priv); err != nil {
			return err
		}
		if len(ctx.Body) < 4 {
			return nil
		}
		c, ok := ctx.Server.FindChannel(wire.ReadU32(ctx.Body, 0))
		if !ok {
			return nil
		}
		mutate(c, ctx.Body[4:])
		ctx.persistChannel(c)
		announceChannelChange(ctx.Server, op, c)
		return nil
	}
}

var handleChangeChannelName = channelFieldHandler(privilege.PrivChaChangeName, protocol.OpChangeChannelName, func(c *arena.Channel, b []byte) {
	name, _ := wire.ZTString(b, 0)
	c.Name = name
})

var handleChangeChannelTopic = channelFieldHandler(privilege.PrivChaChangeTopic, protocol.OpChangeChannelTopic, func(c *arena.Channel, b []byte) {
	topic, _ := wire.ZTString(b, 0)
	c.Topic = topic
})

var handleChangeChannelDesc = channelFieldHandler(privilege.PrivChaChangeDesc, protocol.OpChangeChannelDesc, func(c *arena.Channel, b []byte) {
	desc, _ := wire.ZTString(b, 0)
	c.Desc = desc
})

// handleChangeChannelFlags checks each changed flag bit against its own
// creation privilege and the codec against ChaChangeCodec (spec §4.5's
// combined flags+codec handler). A subchannel's flags are silently left
// untouched; only its codec propagates. Clearing the PASSWORD bit is
// rejected, and setting it leaves the password text as it is; the text
// itself is changed only through the dedicated handler (spec §4.5 edge
// cases).
func handleChangeChannelFlags(ctx *Context) error {
	if len(ctx.Body) < 8 {
		return nil
	}
	c, ok := ctx.Server.FindChannel(wire.ReadU32(ctx.Body, 0))
	if !ok {
		return nil
	}
	newFlags := arena.ChannelFlag(wire.ReadU16(ctx.Body, 4))
	newCodec := wire.ReadU16(ctx.Body, 6)
	old := c.Flags

	changed := func(bit arena.ChannelFlag) bool { return old&bit != newFlags&bit }
	switch {
	case changed(arena.ChannelUnregistered) && newFlags&arena.ChannelUnregistered != 0 &&
		!ctx.Player.HasPrivilege(privilege.PrivChaCreateUnregistered):
		return ErrPermissionDenied{Privilege: privilege.PrivChaCreateUnregistered}
	case changed(arena.ChannelUnregistered) && newFlags&arena.ChannelUnregistered == 0 &&
		!ctx.Player.HasPrivilege(privilege.PrivChaCreateRegistered):
		return ErrPermissionDenied{Privilege: privilege.PrivChaCreateRegistered}
	case changed(arena.ChannelDefault) && !ctx.Player.HasPrivilege(privilege.PrivChaCreateDefault):
		return ErrPermissionDenied{Privilege: privilege.PrivChaCreateDefault}
	case changed(arena.ChannelModerated) && !ctx.Player.HasPrivilege(privilege.PrivChaCreateModerated):
		return ErrPermissionDenied{Privilege: privilege.PrivChaCreateModerated}
	case changed(arena.ChannelSubchannels) && !ctx.Player.HasPrivilege(privilege.PrivChaCreateSubchanneled):
		return ErrPermissionDenied{Privilege: privilege.PrivChaCreateSubchanneled}
	case changed(arena.ChannelPassword) && newFlags&arena.ChannelPassword == 0:
		// Removing a password is the dedicated password handler's job, not
		// the flags handler's (spec §4.5's edge case).
		return ErrInvalidRequest{Reason: "cannot clear channel password via flags handler"}
	case changed(arena.ChannelPassword) && !ctx.Player.HasPrivilege(privilege.PrivChaChangePass):
		return ErrPermissionDenied{Privilege: privilege.PrivChaChangePass}
	}
	if c.Codec != newCodec && !ctx.Player.HasPrivilege(privilege.PrivChaChangeCodec) {
		return ErrPermissionDenied{Privilege: privilege.PrivChaChangeCodec}
	}

	wasRegistered := c.Registered()
	if !c.IsSubchannel() {
		c.Flags = newFlags
	}
	c.Codec = newCodec

	if wasRegistered != c.Registered() {
		if ctx.Persist != nil {
			if c.Registered() {
				ctx.Persist.SaveChannel(c)
			} else {
				ctx.Persist.DeleteChannel(c)
			}
		}
	} else {
		ctx.persistChannel(c)
	}
	announceChannelChange(ctx.Server, protocol.OpChangeChannelFlags, c)
	return nil
}

var handleChangeChannelMaxUsers = channelFieldHandler(privilege.PrivChaChangeMaxUsers, protocol.OpChangeChannelMaxUsers, func(c *arena.Channel, b []byte) {
	if len(b) < 2 {
		return
	}
	c.MaxUsers = wire.ReadU16(b, 0)
})

var handleChangeChannelOrder = channelFieldHandler(privilege.PrivChaChangeOrder, protocol.OpChangeChannelOrder, func(c *arena.Channel, b []byte) {
	if len(b) < 2 {
		return
	}
	c.SortOrder = wire.ReadU16(b, 0)
})

// handleChangeChannelPass sets a root channel's password text, the
// dedicated handler the combined flags+codec handler defers to rather than
// accepting password text itself (spec §4.5 edge cases; recovered from
// original_source's c_req_change_chan_pass). Body: ch_id(4) pass(zt).
// Root channels only; a subchannel always uses its parent's password.
func handleChangeChannelPass(ctx *Context) error {
	if err := require(ctx, privilege.PrivChaChangePass); err != nil {
		return err
	}
	if len(ctx.Body) < 4 {
		return nil
	}
	c, ok := ctx.Server.FindChannel(wire.ReadU32(ctx.Body, 0))
	if !ok || c.IsSubchannel() {
		return nil
	}
	pass, _ := wire.ZTString(ctx.Body, 4)
	if pass == "" {
		c.Password = ""
		c.Flags &^= arena.ChannelPassword
	} else {
		c.Password = pass
		c.Flags |= arena.ChannelPassword
	}
	ctx.persistChannel(c)
	announceChannelChange(ctx.Server, protocol.OpChangeChannelPass, c)
	return nil
}
