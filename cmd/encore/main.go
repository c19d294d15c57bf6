// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

// Package main is the entry point for the Encore command-line tool.
//
// Encore recommends songs to musicians and bands by blending how well a song
// fits a player's instrument, level and favorite genres with what similar
// players rated highly.
//
// # Commands
//
//	encore seed <file>                   Import a JSON fixture
//	encore recommend user <id>           Rank songs for one user
//	encore recommend campaign <id>       Rank songs for a campaign's group and store the set
//	encore campaign create <group> <name> [--due YYYY-MM-DD]
//	                                     Create a campaign and seed its set
//	encore campaign show <id>            Show a campaign's set and member ratings
//	encore rate <user> <song> <score>    Rate a catalog song
//	encore rate-campaign <campaign> <song> <user> <score>
//	                                     Rate a song in a campaign's set
//	encore config                        Print the effective configuration
//
// # Global Flags
//
//	--config   Path to a YAML config file (default: CONFIG_PATH, encore.yaml, /etc/encore/encore.yaml)
//	--json     Print results as JSON
//	--metrics  Print collected metrics after the command runs
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (ENCORE_*, LOG_*)
//   - Config file (encore.yaml)
//   - Built-in defaults
//
// # Example Usage
//
//	export ENCORE_DATA_DIR=/var/lib/encore
//	encore seed sample.json
//	encore recommend user 1 --limit 5
//	encore rate 1 3 5
//	encore recommend campaign 1 --json
package main

import (
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}
