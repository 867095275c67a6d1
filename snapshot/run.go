/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package snapshot

import (
	"fmt"

	"github.com/mikeb26/courtbot/league"
	"github.com/mikeb26/courtbot/scheduler"
)

// Request builds a scheduling request for the snapshot's week. History of
// the week being scheduled is ignored so that reruns are stable.
func (s *Snapshot) Request() scheduler.Request {
	cfg := s.Config
	return scheduler.Request{
		Players:   s.Players,
		History:   s.HistoryBefore(s.WeekID),
		Courts:    s.Courts,
		TimeSlots: s.TimeSlots,
		WeekID:    s.WeekID,
		SeasonID:  s.SeasonID,
		Config:    &cfg,
	}
}

// Schedule runs the optimal selector for the snapshot's week.
func (s *Snapshot) Schedule() (Scheduled, error) {
	res, err := scheduler.Schedule(s.Request())
	if err != nil {
		return Scheduled{}, fmt.Errorf("snapshot.schedule: %w", err)
	}
	return Scheduled{
		WeekID:        s.WeekID,
		SeasonID:      s.SeasonID,
		Strategy:      res.Strategy,
		FairnessScore: res.FairnessScore,
		Matches:       res.Matches,
		SitOuts:       res.SitOuts,
	}, nil
}

// Assign fills the snapshot's skeletons with the auto-assigner. Without
// stored skeletons one empty skeleton per grid cell is used.
func (s *Snapshot) Assign(rng scheduler.RandSource) (Scheduled, error) {
	skeletons := s.Skeletons
	if len(skeletons) == 0 {
		for _, c := range scheduler.Grid(s.Courts, s.TimeSlots) {
			skeletons = append(skeletons, league.Match{WeekID: s.WeekID,
				SeasonID: s.SeasonID, Court: c.Court, TimeSlot: c.TimeSlot})
		}
	}
	a := scheduler.NewAssigner(s.Layout, rng, s.Config)
	res, err := a.Assign(s.Players, skeletons)
	if err != nil {
		return Scheduled{}, fmt.Errorf("snapshot.assign: %w", err)
	}
	return Scheduled{
		WeekID:   s.WeekID,
		SeasonID: s.SeasonID,
		Strategy: string(res.Mode),
		Matches:  res.Matches,
		SitOuts:  res.Unplaced,
	}, nil
}

// HistoryBefore returns the history without the given week.
func (s *Snapshot) HistoryBefore(weekID string) league.History {
	var h league.History
	for _, m := range s.History.Matches {
		if m.WeekID != weekID {
			h.Matches = append(h.Matches, m)
		}
	}
	for _, so := range s.History.SitOuts {
		if so.WeekID != weekID {
			h.SitOuts = append(h.SitOuts, so)
		}
	}
	return h
}

// Stats aggregates the season for every rostered player. An empty season
// means all seasons.
func (s *Snapshot) Stats(seasonID string) []league.PlayerStats {
	all := league.AggregateAll(s.Players, s.History, seasonID)
	out := make([]league.PlayerStats, 0, len(all))
	for _, p := range s.Players {
		out = append(out, all[p.ID])
	}
	return out
}

// WeekFairness scores a week already in history against the stats every
// player had going into it.
func (s *Snapshot) WeekFairness(weekID string) (scheduler.FairnessMetrics, error) {
	var week []league.Match
	for _, m := range s.History.Matches {
		if m.WeekID == weekID {
			week = append(week, m)
		}
	}
	if len(week) == 0 {
		return scheduler.FairnessMetrics{}, fmt.Errorf("snapshot.fairness: no matches for week %v", weekID)
	}
	prior := league.AggregateAll(s.Players, s.HistoryBefore(weekID), s.SeasonID)
	return scheduler.NewScorer(s.Config).Metrics(week, s.Players, prior, weekID), nil
}

// Output renders a run as an aligned text table.
func (s *Snapshot) Output(run Scheduled) string {
	return league.BuildScheduleOutput(run.Matches, run.SitOuts,
		league.IndexPlayers(s.Players))
}

// StatsOutput renders the season stats of every player, or of playerID only
// when it is set. ok is false when playerID is not on the roster.
func (s *Snapshot) StatsOutput(seasonID, playerID string) (out string, ok bool) {
	stats := s.Stats(seasonID)
	if playerID != "" {
		var one []league.PlayerStats
		for _, ps := range stats {
			if ps.PlayerID == playerID {
				one = append(one, ps)
			}
		}
		if len(one) == 0 {
			return "", false
		}
		stats = one
	}
	return league.BuildStatsOutput(stats, league.IndexPlayers(s.Players)), true
}
