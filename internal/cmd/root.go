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

// Package cmd wires the configuration, database and UDP runtime into the
// cobra root command (spec §6).
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/ztrue/shutdown"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Youx/soliloque-server/internal/arena"
	"github.com/Youx/soliloque-server/internal/config"
	"github.com/Youx/soliloque-server/internal/logging"
	"github.com/Youx/soliloque-server/internal/metrics"
	"github.com/Youx/soliloque-server/internal/store"
	"github.com/Youx/soliloque-server/internal/udpserver"
)

// shutdownTimeout bounds how long a SIGINT/SIGTERM shutdown waits for
// LeavingPlayers to drain before forcing the process to exit.
const shutdownTimeout = 10 * time.Second

// NewCommand builds the root cobra command, matching the teacher's
// version/commit annotation scheme.
func NewCommand(version, commit string) *cobra.Command {
	var (
		configPath  string
		showVersion bool
	)

	cmd := &cobra.Command{
		Use:     "soliloqued",
		Short:   "A TeamSpeak2-compatible voice chat server",
		Version: fmt.Sprintf("%s - %s", version, commit),
		Annotations: map[string]string{
			"version": version,
			"commit":  commit,
		},
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				fmt.Printf("soliloque-server - %s (%s)\n", cmd.Annotations["version"], cmd.Annotations["commit"])
				return nil
			}
			return runRoot(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the configuration file")
	cmd.Flags().BoolVarP(&showVersion, "version", "v", false, "print the version and exit")

	return cmd
}

// runtime bundles everything boot() builds so stop/reload can tear it down
// and rebuild it without duplicating the wiring logic.
type runtime struct {
	db  *gorm.DB
	srv *udpserver.Server
}

func boot(cfg config.Config, log *slog.Logger) (*runtime, error) {
	db, err := store.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	store.LoadLogger(log, cfg.Database)

	row, err := store.FindOrCreateServer(db, cfg.Server.Name, cfg.Server.Welcome, cfg.Server.Password, cfg.Server.Machine, cfg.Server.Port)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve server row: %w", err)
	}

	a := arena.NewServer(cfg.Server.Name, cfg.Server.Welcome, cfg.Server.Password, cfg.Server.Machine, cfg.Server.Port)
	if err := store.Load(db, row.ID, a); err != nil {
		return nil, fmt.Errorf("failed to hydrate arena from database: %w", err)
	}

	persist := store.NewPersist(db, row.ID, log)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.NewMetrics()
	}

	srv := udpserver.New(a, persist, m, log)
	if err := srv.Start(cfg.Server.Bind, cfg.Server.Port); err != nil {
		return nil, fmt.Errorf("failed to start udp server: %w", err)
	}

	return &runtime{db: db, srv: srv}, nil
}

func (r *runtime) stop() {
	r.srv.Stop(shutdownTimeout)
	if sqlDB, err := r.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func runRoot(configPath string) error {
	var (
		cfg config.Config
		err error
	)
	if configPath == "" {
		cfg = config.Default()
	} else {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	log := logging.New(cfg.Logging)
	slog.SetDefault(log)

	var mu sync.Mutex
	rt, err := boot(cfg, log)
	if err != nil {
		return err
	}

	var g errgroup.Group
	if cfg.Metrics.Enabled {
		g.Go(func() error {
			if err := metrics.CreateMetricsServer(&cfg); err != nil {
				log.Error("metrics server failed", "error", err)
				return err
			}
			return nil
		})
	}

	// stop handles both SIGINT/SIGTERM/SIGQUIT (full shutdown) and SIGUSR1
	// (reload): the two share the same drain-and-stop sequence, and only
	// reload rebuilds a fresh runtime instead of exiting the process
	// (spec §5's "reload tears down and re-runs the full boot sequence").
	stop := func(sig os.Signal) {
		mu.Lock()
		defer mu.Unlock()

		log.Info("stopping for signal", "signal", sig)
		rt.stop()

		if sig != syscall.SIGUSR1 {
			os.Exit(0)
		}

		log.Info("reloading")
		next, err := boot(cfg, log)
		if err != nil {
			log.Error("failed to reload, shutting down", "error", err)
			os.Exit(1)
		}
		rt = next
	}

	defer stop(syscall.SIGINT)
	shutdown.AddWithParam(stop)
	shutdown.Listen(syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGUSR1)
	return nil
}
