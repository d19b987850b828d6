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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Youx/soliloque-server/internal/arena"
)

// Metrics holds the server's Prometheus collectors. PlayersConnected,
// PlayersLeaving, ChannelsTotal and the packet/byte counters mirror the
// arena's own ServerStats (spec §3); RetransmitsTotal and
// PlayersEvictedTotal are driven directly by the retransmit loop (spec §5)
// since nothing in ServerStats tracks them.
type Metrics struct {
	PlayersConnected prometheus.Gauge
	PlayersLeaving   prometheus.Gauge
	ChannelsTotal    prometheus.Gauge

	PacketsReceivedTotal prometheus.Gauge
	PacketsSentTotal     prometheus.Gauge
	BytesReceivedTotal   prometheus.Gauge
	BytesSentTotal       prometheus.Gauge
	LoginsTotal          prometheus.Gauge

	RetransmitsTotal    prometheus.Counter
	PlayersEvictedTotal prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		PlayersConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "soliloque_players_connected",
			Help: "Number of players currently connected to the server",
		}),
		PlayersLeaving: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "soliloque_players_leaving",
			Help: "Number of players draining their outbound queue before disconnect",
		}),
		ChannelsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "soliloque_channels_total",
			Help: "Number of channels and subchannels on the server",
		}),
		PacketsReceivedTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "soliloque_packets_received_total",
			Help: "Total UDP packets received since server start",
		}),
		PacketsSentTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "soliloque_packets_sent_total",
			Help: "Total UDP packets sent since server start",
		}),
		BytesReceivedTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "soliloque_bytes_received_total",
			Help: "Total UDP bytes received since server start",
		}),
		BytesSentTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "soliloque_bytes_sent_total",
			Help: "Total UDP bytes sent since server start",
		}),
		LoginsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "soliloque_logins_total",
			Help: "Total successful logins since server start",
		}),
		RetransmitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "soliloque_retransmits_total",
			Help: "Total control-packet retransmits sent by the outbound queue",
		}),
		PlayersEvictedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "soliloque_players_evicted_total",
			Help: "Total players dropped for exhausting their retransmit budget",
		}),
	}
	m.register()
	return m
}

func (m *Metrics) register() {
	prometheus.MustRegister(m.PlayersConnected)
	prometheus.MustRegister(m.PlayersLeaving)
	prometheus.MustRegister(m.ChannelsTotal)
	prometheus.MustRegister(m.PacketsReceivedTotal)
	prometheus.MustRegister(m.PacketsSentTotal)
	prometheus.MustRegister(m.BytesReceivedTotal)
	prometheus.MustRegister(m.BytesSentTotal)
	prometheus.MustRegister(m.LoginsTotal)
	prometheus.MustRegister(m.RetransmitsTotal)
	prometheus.MustRegister(m.PlayersEvictedTotal)
}

// Sample refreshes the gauges from a snapshot of s, called once per
// retransmit tick (spec §5) so scrapes never see anything but the
// current arena state.
func (m *Metrics) Sample(s *arena.Server) {
	m.PlayersConnected.Set(float64(s.Players.Size()))
	m.PlayersLeaving.Set(float64(s.LeavingPlayers.Size()))
	m.ChannelsTotal.Set(float64(len(s.Channels())))
	m.PacketsReceivedTotal.Set(float64(s.Stats.PacketsRecv))
	m.PacketsSentTotal.Set(float64(s.Stats.PacketsSent))
	m.BytesReceivedTotal.Set(float64(s.Stats.BytesRecv))
	m.BytesSentTotal.Set(float64(s.Stats.BytesSent))
	m.LoginsTotal.Set(float64(s.Stats.TotalLogins))
}

// IncRetransmit records one control packet resent past its first send.
func (m *Metrics) IncRetransmit() {
	m.RetransmitsTotal.Inc()
}

// IncPlayerEvicted records one player dropped for exhausting its
// retransmit budget.
func (m *Metrics) IncPlayerEvicted() {
	m.PlayersEvictedTotal.Inc()
}
