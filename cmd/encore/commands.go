// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// createSeedCommand creates the 'seed' command
func (c *cli) createSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Import a JSON fixture",
		Long: `Import artists, albums, songs, users, groups, campaigns and ratings
from a JSON fixture. Records with existing IDs are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open fixture: %w", err)
			}
			defer f.Close()

			st, err := c.openStore()
			if err != nil {
				return err
			}
			stats, err := st.LoadFixture(cmd.Context(), f)
			if err != nil {
				return err
			}

			if c.jsonOutput {
				return c.printJSON(stats)
			}
			return c.printFixtureStats(stats)
		},
	}
}

// createRecommendCommand creates the 'recommend' command
func (c *cli) createRecommendCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend songs",
		Long:  `Rank songs for a single user or for a campaign's group.`,
	}

	cmd.AddCommand(
		c.createRecommendUserCommand(),
		c.createRecommendCampaignCommand(),
	)
	return cmd
}

// createRecommendUserCommand creates the 'recommend user' command
func (c *cli) createRecommendUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user <user-id>",
		Short: "Rank songs for one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID("user", args[0])
			if err != nil {
				return err
			}

			svc, err := c.openService()
			if err != nil {
				return err
			}
			list, err := svc.RecommendForUser(cmd.Context(), userID, c.limit(cmd))
			if err != nil {
				return err
			}
			return c.printList(list)
		},
	}
	cmd.Flags().Int("limit", 0, "maximum songs to return, 0 for all (default from config)")
	return cmd
}

// createRecommendCampaignCommand creates the 'recommend campaign' command
func (c *cli) createRecommendCampaignCommand() *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "campaign <campaign-id>",
		Short: "Rank songs for a campaign's group and store the set",
		Long: `Rank songs for every member of the campaign's group together and store
the ranked songs as the campaign's recommended set, replacing any previous
set. Use --preview to rank without storing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			campaignID, err := parseID("campaign", args[0])
			if err != nil {
				return err
			}

			svc, err := c.openService()
			if err != nil {
				return err
			}

			if preview {
				list, err := svc.PreviewCampaign(cmd.Context(), campaignID, c.limit(cmd))
				if err != nil {
					return err
				}
				return c.printList(list)
			}

			list, err := svc.SeedCampaign(cmd.Context(), campaignID, c.limit(cmd))
			if err != nil {
				return err
			}
			if err := c.printList(list); err != nil {
				return err
			}
			if !c.jsonOutput {
				_, _ = fmt.Fprintf(c.stdout, "Campaign %d seeded with %d songs\n", campaignID, len(list.Items))
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 0, "maximum songs to return, 0 for all (default from config)")
	cmd.Flags().BoolVar(&preview, "preview", false, "rank without storing the set")
	return cmd
}

// createCampaignCommand creates the 'campaign' command
func (c *cli) createCampaignCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Create and inspect campaigns",
		Long:  `Create a campaign for a group or show a campaign's stored set and ratings.`,
	}

	cmd.AddCommand(
		c.createCampaignCreateCommand(),
		c.createCampaignShowCommand(),
	)
	return cmd
}

// createCampaignCreateCommand creates the 'campaign create' command
func (c *cli) createCampaignCreateCommand() *cobra.Command {
	var due string

	cmd := &cobra.Command{
		Use:   "create <group-id> <name>",
		Short: "Create a campaign and seed its recommended set",
		Long: `Create a campaign for a group under the next free campaign ID and store
the group's ranked songs as its recommended set.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			groupID, err := parseID("group", args[0])
			if err != nil {
				return err
			}
			var dueDate time.Time
			if due != "" {
				dueDate, err = time.Parse(dateLayout, due)
				if err != nil {
					return fmt.Errorf("invalid due date %q: want %s", due, dateLayout)
				}
			}

			svc, err := c.openService()
			if err != nil {
				return err
			}
			campaign, list, err := svc.CreateCampaign(cmd.Context(), groupID, args[1], dueDate, c.limit(cmd))
			if err != nil {
				return err
			}

			if c.jsonOutput {
				return c.printJSON(map[string]interface{}{
					"campaign":        campaign,
					"recommendations": list,
				})
			}
			if err := c.printList(list); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(c.stdout, "Campaign %d %q created for group %d with %d songs\n",
				campaign.ID, campaign.Name, campaign.GroupID, len(list.Items))
			return nil
		},
	}
	cmd.Flags().StringVar(&due, "due", "", "due date as YYYY-MM-DD")
	cmd.Flags().Int("limit", 0, "maximum songs to store, 0 for all (default from config)")
	return cmd
}

// createCampaignShowCommand creates the 'campaign show' command
func (c *cli) createCampaignShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <campaign-id>",
		Short: "Show a campaign's recommended set and member ratings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			campaignID, err := parseID("campaign", args[0])
			if err != nil {
				return err
			}

			svc, err := c.openService()
			if err != nil {
				return err
			}
			detail, err := svc.ShowCampaign(cmd.Context(), campaignID)
			if err != nil {
				return err
			}

			if c.jsonOutput {
				return c.printJSON(detail)
			}
			return c.printCampaign(detail)
		},
	}
}

// createRateCommand creates the 'rate' command
func (c *cli) createRateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rate <user-id> <song-id> <score>",
		Short: "Rate a catalog song",
		Long:  `Record a user's rating of a song. A later rating replaces an earlier one.`,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs([]string{"user", "song", "score"}, args)
			if err != nil {
				return err
			}

			svc, err := c.openService()
			if err != nil {
				return err
			}
			version, err := svc.RateSong(cmd.Context(), ids[0], ids[1], ids[2])
			if err != nil {
				return err
			}

			if c.jsonOutput {
				return c.printJSON(map[string]interface{}{
					"user_id":        ids[0],
					"song_id":        ids[1],
					"score":          ids[2],
					"rating_version": version,
				})
			}
			_, _ = fmt.Fprintf(c.stdout, "User %d rated song %d: %d (rating version %d)\n", ids[0], ids[1], ids[2], version)
			return nil
		},
	}
}

// createRateCampaignCommand creates the 'rate-campaign' command
func (c *cli) createRateCampaignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rate-campaign <campaign-id> <song-id> <user-id> <score>",
		Short: "Rate a song in a campaign's recommended set",
		Long: `Record a group member's rating of a song the campaign was seeded with.
A later rating replaces an earlier one.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs([]string{"campaign", "song", "user", "score"}, args)
			if err != nil {
				return err
			}

			svc, err := c.openService()
			if err != nil {
				return err
			}
			if err := svc.RateCampaignRecommendation(cmd.Context(), ids[0], ids[1], ids[2], ids[3]); err != nil {
				return err
			}

			if c.jsonOutput {
				return c.printJSON(map[string]int{
					"campaign_id": ids[0],
					"song_id":     ids[1],
					"user_id":     ids[2],
					"score":       ids[3],
				})
			}
			_, _ = fmt.Fprintf(c.stdout, "User %d rated song %d in campaign %d: %d\n", ids[2], ids[1], ids[0], ids[3])
			return nil
		},
	}
}

// createConfigCommand creates the 'config' command
func (c *cli) createConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  `Print the configuration after defaults, config file and environment are applied.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.jsonOutput {
				return c.printJSON(c.cfg)
			}
			out, err := c.cfg.YAML()
			if err != nil {
				return err
			}
			_, err = c.stdout.Write(out)
			return err
		},
	}
}

// dateLayout is the --due date format.
const dateLayout = "2006-01-02"

func parseID(name, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", name, arg)
	}
	return n, nil
}

func parseIDs(names, args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, arg := range args {
		n, err := parseID(names[i], arg)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
