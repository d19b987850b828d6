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

import (
	"errors"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/Youx/soliloque-server/internal/privilege"
)

var (
	ErrChannelNotEmpty = errors.New("channel is not empty")
	ErrChannelFull     = errors.New("channel is full")
	ErrNoDefaultChannel = errors.New("server has no default channel")
)

// Server is one arena: the owning collections for channels, players, bans
// and registrations (spec §3). Channels/bans/registrations are mutated
// only from the receiver goroutine and need no internal locking; Players
// and LeavingPlayers are read concurrently by the retransmit goroutine
// (spec §5), so they are xsync concurrent maps keyed by public-id.
type Server struct {
	Name       string
	Welcome    string
	Password   string
	Machine    string
	Port       int
	CodecMask  uint32
	Privileges *privilege.Bitmap

	Stats ServerStats

	Players        *xsync.Map[uint32, *Player]
	LeavingPlayers *xsync.Map[uint32, *Player]

	channels     []*Channel
	channelIDs   *idPool
	playerIDs    *idPool
	banIDs       *idPool
	bans         []*Ban
	registrations []*Registration
}

// ServerStats holds the server-wide statistics fields recovered from
// original_source's server_stat (SPEC_FULL §3).
type ServerStats struct {
	TotalLogins uint64
	PacketsRecv uint64
	PacketsSent uint64
	BytesRecv   uint64
	BytesSent   uint64
}

// NewServer builds an empty arena with a single default channel, matching
// spec invariant 2 ("a channel with DEFAULT flag exists iff at least one
// channel exists").
func NewServer(name, welcome, password, machine string, port int) *Server {
	s := &Server{
		Name:           name,
		Welcome:        welcome,
		Password:       password,
		Machine:        machine,
		Port:           port,
		Privileges:     privilege.Default(),
		Players:        xsync.NewMap[uint32, *Player](),
		LeavingPlayers: xsync.NewMap[uint32, *Player](),
		channelIDs:     newIDPool(),
		playerIDs:      newIDPool(),
		banIDs:         newIDPool(),
	}
	def := s.newChannel("Default Channel", ChannelDefault)
	s.channels = append(s.channels, def)
	return s
}

func (s *Server) newChannel(name string, flags ChannelFlag) *Channel {
	return &Channel{
		ID:     s.channelIDs.alloc(),
		Name:   name,
		Flags:  flags | ChannelUnregistered,
		server: s,
	}
}

// DefaultChannel returns the server's unique DEFAULT-flagged channel.
func (s *Server) DefaultChannel() (*Channel, error) {
	for _, c := range s.channels {
		if c.IsDefault() {
			return c, nil
		}
	}
	return nil, ErrNoDefaultChannel
}

// Channels returns every root and subchannel on the server.
func (s *Server) Channels() []*Channel { return s.channels }

// FindChannel looks up a channel by its dense id.
func (s *Server) FindChannel(id uint32) (*Channel, bool) {
	for _, c := range s.channels {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// ResetChannels discards the server's provisional channel set (the single
// default channel NewServer seeds) so the store package can replace it
// wholesale with rows loaded from the database, per spec invariant 2 ("a
// channel with DEFAULT flag exists iff at least one channel exists").
func (s *Server) ResetChannels() {
	s.channels = nil
	s.channelIDs = newIDPool()
}

// LoadChannel reconstructs one persisted root channel during startup
// hydration, assigning a fresh dense id while preserving its database
// identity and stored fields.
func (s *Server) LoadChannel(dbid uint32, name string, flags ChannelFlag, codec, sortOrder, maxUsers uint16, topic, desc, password string) *Channel {
	c := s.newChannel(name, flags)
	c.DBID = dbid
	c.Codec = codec
	c.SortOrder = sortOrder
	c.MaxUsers = maxUsers
	c.Topic = topic
	c.Desc = desc
	c.Password = password
	s.channels = append(s.channels, c)
	return c
}

// LoadSubchannel reconstructs one persisted subchannel under an
// already-loaded parent.
func (s *Server) LoadSubchannel(parent *Channel, dbid uint32, name string, codec uint16) *Channel {
	c := s.CreateSubchannel(parent, name)
	c.DBID = dbid
	c.Codec = codec
	return c
}

// CreateChannel allocates a new root channel and registers it on the
// server (spec §4.5's CREATE_CH handler).
func (s *Server) CreateChannel(name string, flags ChannelFlag, codec uint16) *Channel {
	c := s.newChannel(name, flags)
	c.Codec = codec
	s.channels = append(s.channels, c)
	return c
}

// CreateSubchannel creates a subchannel under parent, inheriting parent's
// flags except SUBCHANNELS and DEFAULT, which are always cleared, per
// spec §3.
func (s *Server) CreateSubchannel(parent *Channel, name string) *Channel {
	c := s.newChannel(name, parent.Flags&^(ChannelSubchannels|ChannelDefault))
	c.Parent = parent
	c.Codec = parent.Codec
	parent.Flags |= ChannelSubchannels
	parent.Subchannels = append(parent.Subchannels, c)
	s.channels = append(s.channels, c)
	return c
}

// DeleteChannel removes an empty channel from the server, per spec §4.5's
// edge case: a non-empty channel cannot be deleted.
func (s *Server) DeleteChannel(c *Channel) error {
	if len(c.players) > 0 {
		return ErrChannelNotEmpty
	}
	if c.Parent != nil {
		for i, sub := range c.Parent.Subchannels {
			if sub == c {
				c.Parent.Subchannels = append(c.Parent.Subchannels[:i], c.Parent.Subchannels[i+1:]...)
				break
			}
		}
	}
	for i, ch := range s.channels {
		if ch == c {
			s.channels = append(s.channels[:i], s.channels[i+1:]...)
			break
		}
	}
	s.channelIDs.release(c.ID)
	return nil
}

// MovePlayer moves p into dest, enforcing the capacity invariant (spec §3
// invariant 4, §8's boundary behavior).
func (s *Server) MovePlayer(p *Player, dest *Channel) error {
	if dest.Full() {
		return ErrChannelFull
	}
	if p.Channel != nil {
		p.Channel.removePlayer(p)
	}
	dest.addPlayer(p)
	p.Channel = dest
	return nil
}

// NewPlayer allocates a public-id/private-id pair and registers p in the
// active player set (spec §4.6 step 6).
func (s *Server) NewPlayer(p *Player) {
	p.PublicID = s.playerIDs.alloc()
	p.PrivateID = newPrivateID()
	p.server = s
	s.Players.Store(p.PublicID, p)
}

// BeginLeaving moves p from the active set into LeavingPlayers; it is
// destroyed only once its outbound queue drains (spec §3, §4.8).
func (s *Server) BeginLeaving(p *Player) {
	s.Players.Delete(p.PublicID)
	s.LeavingPlayers.Store(p.PublicID, p)
}

// Destroy fully removes a leaving player once its queue is empty and
// frees its public-id.
func (s *Server) Destroy(p *Player) {
	s.LeavingPlayers.Delete(p.PublicID)
	if p.Channel != nil {
		p.Channel.removePlayer(p)
	}
	s.playerIDs.release(p.PublicID)
}

// Bans returns every active ban.
func (s *Server) Bans() []*Ban { return s.bans }

// IsBanned reports whether ip matches a live ban.
func (s *Server) IsBanned(ip string) bool {
	_, ok := s.FindBan(ip)
	return ok
}

// FindBan looks up the ban record covering ip, if any.
func (s *Server) FindBan(ip string) (*Ban, bool) {
	for _, b := range s.bans {
		if b.IP == ip {
			return b, true
		}
	}
	return nil, false
}

// AddBan records a new administrative ban.
func (s *Server) AddBan(ip, reason string, durationMinutes uint16) *Ban {
	b := &Ban{ID: s.banIDs.alloc(), IP: ip, Reason: reason, Duration: durationMinutes}
	s.bans = append(s.bans, b)
	return b
}

// RemoveBan lifts a ban by id.
func (s *Server) RemoveBan(id uint32) bool {
	for i, b := range s.bans {
		if b.ID == id {
			s.bans = append(s.bans[:i], s.bans[i+1:]...)
			s.banIDs.release(id)
			return true
		}
	}
	return false
}

// Registrations returns every persisted registration loaded into the arena.
func (s *Server) Registrations() []*Registration { return s.registrations }

// FindRegistration looks up a registration by login name.
func (s *Server) FindRegistration(login string) (*Registration, bool) {
	for _, r := range s.registrations {
		if r.Login == login {
			return r, true
		}
	}
	return nil, false
}

// AddRegistration inserts a newly-created registration into the arena.
func (s *Server) AddRegistration(r *Registration) {
	s.registrations = append(s.registrations, r)
}

// RemoveRegistration deletes r and rescopes any privilege record anchored
// to it to the still-connected player it describes, per spec §4.5's
// "Removing a registration..." edge case and §8 testable property 7.
func (s *Server) RemoveRegistration(r *Registration) {
	for i, reg := range s.registrations {
		if reg == r {
			s.registrations = append(s.registrations[:i], s.registrations[i+1:]...)
			break
		}
	}
	var connected *Player
	s.Players.Range(func(_ uint32, p *Player) bool {
		if p.Registration == r {
			connected = p
			return false
		}
		return true
	})
	for _, c := range s.channels {
		// removePrivilege mutates c.privileges in place, so range over a
		// copy: ranging over the live slice while deleting from it would
		// skip the element that slides into the just-visited index.
		privs := append([]*ChannelPrivilege(nil), c.privileges...)
		for _, rec := range privs {
			if !rec.IsRegistrationScoped() || rec.registration != r {
				continue
			}
			if connected != nil {
				rec.RescopeToPlayer(connected)
			} else {
				c.removePrivilege(rec)
			}
		}
	}
}
