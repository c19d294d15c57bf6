// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/encore/internal/config"
	"github.com/tomtom215/encore/internal/logging"
	"github.com/tomtom215/encore/internal/recommend"
	"github.com/tomtom215/encore/internal/service"
	"github.com/tomtom215/encore/internal/store"
)

// cli holds flag values and the components opened for one invocation.
type cli struct {
	configPath  string
	jsonOutput  bool
	showMetrics bool

	stdout io.Writer
	stderr io.Writer

	cfg   *config.Config
	store *store.Store
	svc   *service.Service
}

// run executes the command line args and releases the store whether or not
// the command succeeded.
func run(args []string, stdout, stderr io.Writer) (err error) {
	c := &cli{stdout: stdout, stderr: stderr}
	defer func() {
		closeErr := c.close()
		if closeErr == nil {
			return
		}
		if err == nil {
			err = closeErr
			return
		}
		logging.Warn().Err(closeErr).Msg("store close failed after command error")
	}()

	root := c.rootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(logging.ContextWithNewCorrelationID(context.Background()))
}

// rootCommand builds the command tree.
func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "encore",
		Short: "Encore - hybrid song recommendations for musicians and bands",
		Long: `Encore ranks songs for a musician or a band preparing a campaign by
blending profile fit (genre, instrument, proficiency) with what similar
players rated highly.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			logging.Ctx(cmd.Context()).Debug().Str("command", cmd.CommandPath()).Msg("running command")
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !c.showMetrics {
				return nil
			}
			return c.printMetrics()
		},
	}
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "print results as JSON")
	root.PersistentFlags().BoolVar(&c.showMetrics, "metrics", false, "print collected metrics after the command")

	root.AddCommand(
		c.createSeedCommand(),
		c.createRecommendCommand(),
		c.createCampaignCommand(),
		c.createRateCommand(),
		c.createRateCampaignCommand(),
		c.createConfigCommand(),
	)
	return root
}

// loadConfig loads layered configuration and configures logging.
func (c *cli) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	logCfg := cfg.LoggerConfig()
	logCfg.Output = c.stderr
	logging.Init(logCfg)

	logging.Debug().
		Str("data_dir", cfg.Store.Path).
		Bool("in_memory", cfg.Store.InMemory).
		Float64("fusion_alpha", cfg.Recommend.FusionAlpha).
		Msg("configuration loaded")
	return nil
}

// openService opens the store and builds the engine and service.
func (c *cli) openService() (*service.Service, error) {
	if c.svc != nil {
		return c.svc, nil
	}

	st, err := c.openStore()
	if err != nil {
		return nil, err
	}

	engine, err := recommend.NewEngine(c.cfg.EngineConfig(), logging.WithComponent("recommend"))
	if err != nil {
		return nil, err
	}

	c.svc = service.New(st, engine, logging.WithComponent("service"))
	return c.svc, nil
}

func (c *cli) openStore() (*store.Store, error) {
	if c.store != nil {
		return c.store, nil
	}

	st, err := store.Open(store.Config{
		Path:       c.cfg.Store.Path,
		InMemory:   c.cfg.Store.InMemory,
		SyncWrites: c.cfg.Store.SyncWrites,
	}, logging.WithComponent("store"))
	if err != nil {
		return nil, err
	}
	c.store = st
	return st, nil
}

// close closes the store if it was opened. Safe to call more than once.
func (c *cli) close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	c.svc = nil
	if err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

// limit returns the --limit flag when set, otherwise the configured default.
func (c *cli) limit(cmd *cobra.Command) int {
	if cmd.Flags().Changed("limit") {
		n, err := cmd.Flags().GetInt("limit")
		if err == nil {
			return n
		}
	}
	return c.cfg.Recommend.DefaultLimit
}
