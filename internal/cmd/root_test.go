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

package cmd

import (
	"bytes"
	"testing"
)

func TestNewCommand_VersionFlagPrintsAndSkipsBoot(t *testing.T) {
	t.Parallel()
	cmd := NewCommand("1.2.3", "deadbeef")
	cmd.SetArgs([]string{"--version"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected no error for --version, got: %v", err)
	}
}

func TestNewCommand_ConfigFlagShorthand(t *testing.T) {
	t.Parallel()
	cmd := NewCommand("1.2.3", "deadbeef")

	flag := cmd.Flags().ShorthandLookup("c")
	if flag == nil {
		t.Fatal("expected -c shorthand for --config")
	}
	if flag.Name != "config" {
		t.Errorf("expected -c to map to --config, got %q", flag.Name)
	}
}

func TestNewCommand_AcceptsConfigFlag(t *testing.T) {
	t.Parallel()
	cmd := NewCommand("1.2.3", "deadbeef")

	flag := cmd.Flags().Lookup("config")
	if flag == nil {
		t.Fatal("expected --config flag to be registered")
	}
	if flag.DefValue != "" {
		t.Errorf("expected empty default config path, got %q", flag.DefValue)
	}
}
