// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/tomtom215/encore/internal/models"
	"github.com/tomtom215/encore/internal/service"
	"github.com/tomtom215/encore/internal/store"
)

// metricPrefix selects Encore's own metric families for --metrics.
const metricPrefix = "encore_"

func (c *cli) printJSON(v interface{}) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printList prints a recommendation list as JSON or a table.
func (c *cli) printList(list *models.RecommendationList) error {
	if c.jsonOutput {
		return c.printJSON(list)
	}

	if len(list.Items) == 0 {
		_, _ = fmt.Fprintln(c.stdout, "No songs to recommend.")
		return nil
	}

	table := tablewriter.NewWriter(c.stdout)
	table.Header("#", "ID", "Song", "Artist", "Genre", "Content", "Collab", "Score")

	for i := range list.Items {
		item := &list.Items[i]
		collab := "-"
		if item.HasCollaborative() {
			collab = formatScore(*item.CollaborativeScore)
		}
		_ = table.Append([]string{
			strconv.Itoa(i + 1),
			strconv.Itoa(item.Song.ID),
			item.Song.Name,
			item.Song.ArtistName(),
			item.Song.Genre().String(),
			formatScore(item.ContentScore),
			collab,
			formatScore(item.FusedScore),
		})
	}

	if err := table.Render(); err != nil {
		return err
	}

	meta := list.Metadata
	_, _ = fmt.Fprintf(c.stdout, "\n%s: %d of %d candidates", meta.Target, len(list.Items), list.TotalCandidates)
	if meta.ColdStart {
		_, _ = fmt.Fprint(c.stdout, " (cold start: no ratings yet)")
	}
	_, _ = fmt.Fprintln(c.stdout)
	if len(meta.InvalidSongs) > 0 {
		_, _ = fmt.Fprintf(c.stdout, "Songs without usable requirements: %s\n", joinInts(meta.InvalidSongs))
	}
	return nil
}

// printCampaign prints a campaign's stored set with each song's member
// ratings as user:score pairs.
func (c *cli) printCampaign(detail *service.CampaignDetail) error {
	campaign := detail.Campaign
	_, _ = fmt.Fprintf(c.stdout, "Campaign %d %q for group %d", campaign.ID, campaign.Name, campaign.GroupID)
	if !campaign.DueDate.IsZero() {
		_, _ = fmt.Fprintf(c.stdout, ", due %s", campaign.DueDate.Format(dateLayout))
	}
	_, _ = fmt.Fprintln(c.stdout)

	if len(detail.Recommendations) == 0 {
		_, _ = fmt.Fprintln(c.stdout, "Not seeded yet.")
		return nil
	}

	bySong := make(map[int][]string, len(detail.Recommendations))
	for _, r := range detail.Ratings {
		bySong[r.SongID] = append(bySong[r.SongID], fmt.Sprintf("%d:%d", r.UserID, r.Score))
	}

	table := tablewriter.NewWriter(c.stdout)
	table.Header("Rank", "Song", "Score", "Ratings")
	for _, rec := range detail.Recommendations {
		ratings := "-"
		if r, ok := bySong[rec.SongID]; ok {
			ratings = strings.Join(r, " ")
		}
		_ = table.Append([]string{
			strconv.Itoa(rec.Rank),
			strconv.Itoa(rec.SongID),
			formatScore(rec.Score),
			ratings,
		})
	}
	return table.Render()
}

// printFixtureStats prints what a seed wrote.
func (c *cli) printFixtureStats(stats store.FixtureStats) error {
	table := tablewriter.NewWriter(c.stdout)
	table.Header("Record", "Count")

	_ = table.Append([]string{"Songs", strconv.Itoa(stats.Songs)})
	_ = table.Append([]string{"Users", strconv.Itoa(stats.Users)})
	_ = table.Append([]string{"Groups", strconv.Itoa(stats.Groups)})
	_ = table.Append([]string{"Campaigns", strconv.Itoa(stats.Campaigns)})
	_ = table.Append([]string{"Ratings", strconv.Itoa(stats.Ratings)})

	return table.Render()
}

// metricRow is one sample of a gathered metric family.
type metricRow struct {
	Name   string  `json:"name"`
	Labels string  `json:"labels,omitempty"`
	Value  float64 `json:"value"`
}

// printMetrics gathers the default registry and prints Encore's samples.
// Histograms are reported as their sample count and sum.
func (c *cli) printMetrics() error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	rows := metricRows(families)
	if c.jsonOutput {
		return c.printJSON(rows)
	}

	table := tablewriter.NewWriter(c.stdout)
	table.Header("Metric", "Labels", "Value")
	for _, r := range rows {
		_ = table.Append([]string{r.Name, r.Labels, strconv.FormatFloat(r.Value, 'g', -1, 64)})
	}
	return table.Render()
}

func metricRows(families []*dto.MetricFamily) []metricRow {
	var rows []metricRow
	for _, mf := range families {
		name := mf.GetName()
		if !strings.HasPrefix(name, metricPrefix) {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := formatLabels(m.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				rows = append(rows, metricRow{Name: name, Labels: labels, Value: m.GetCounter().GetValue()})
			case dto.MetricType_GAUGE:
				rows = append(rows, metricRow{Name: name, Labels: labels, Value: m.GetGauge().GetValue()})
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				rows = append(rows,
					metricRow{Name: name + "_count", Labels: labels, Value: float64(h.GetSampleCount())},
					metricRow{Name: name + "_sum", Labels: labels, Value: h.GetSampleSum()},
				)
			}
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].Labels < rows[j].Labels
	})
	return rows
}

func formatLabels(pairs []*dto.LabelPair) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.GetName() + "=" + p.GetValue()
	}
	return strings.Join(parts, ",")
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
