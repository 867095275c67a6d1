/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

import (
	"github.com/samber/lo"
)

// PlayerStats is derived from match history and never persisted.
type PlayerStats struct {
	PlayerID      string         `json:"playerId"`
	MatchesPlayed int            `json:"matchesPlayed"`
	Partners      map[string]int `json:"partners"`
	Opponents     map[string]int `json:"opponents"`
	Courts        map[int]int    `json:"courts"`
	SitOuts       int            `json:"sitOuts"`
}

func NewPlayerStats(playerID string) PlayerStats {
	return PlayerStats{
		PlayerID:  playerID,
		Partners:  make(map[string]int),
		Opponents: make(map[string]int),
		Courts:    make(map[int]int),
	}
}

// Clone returns a deep copy.
func (ps PlayerStats) Clone() PlayerStats {
	out := NewPlayerStats(ps.PlayerID)
	out.MatchesPlayed = ps.MatchesPlayed
	out.SitOuts = ps.SitOuts
	for k, v := range ps.Partners {
		out.Partners[k] = v
	}
	for k, v := range ps.Opponents {
		out.Opponents[k] = v
	}
	for k, v := range ps.Courts {
		out.Courts[k] = v
	}
	return out
}

// Record folds one match into the stats. Matches that do not contain the
// player are ignored.
func (ps *PlayerStats) Record(m Match) {
	side, ok := m.SideOf(ps.PlayerID)
	if !ok {
		return
	}
	if ps.Partners == nil {
		*ps = ps.Clone()
	}
	mates, opps := m.TeamA, m.TeamB
	if side == SideB {
		mates, opps = m.TeamB, m.TeamA
	}
	ps.MatchesPlayed++
	for _, id := range lo.Without(mates, ps.PlayerID) {
		ps.Partners[id]++
	}
	for _, id := range opps {
		ps.Opponents[id]++
	}
	ps.Courts[m.Court]++
}

func inSeason(seasonID, candidate string) bool {
	return seasonID == "" || seasonID == candidate
}

// AggregateStats derives one player's history. An empty seasonID includes
// every season.
func AggregateStats(playerID string, history History, seasonID string) PlayerStats {
	ps := NewPlayerStats(playerID)
	for _, m := range history.Matches {
		if !inSeason(seasonID, m.SeasonID) {
			continue
		}
		ps.Record(m)
	}
	for _, so := range history.SitOuts {
		if !inSeason(seasonID, so.SeasonID) {
			continue
		}
		if lo.Contains(so.PlayerIDs, playerID) {
			ps.SitOuts++
		}
	}
	return ps
}

// AggregateAll derives stats for every player in one pass over the history.
func AggregateAll(players []Player, history History, seasonID string) map[string]PlayerStats {
	out := make(map[string]PlayerStats, len(players))
	for _, p := range players {
		out[p.ID] = NewPlayerStats(p.ID)
	}
	for _, m := range history.Matches {
		if !inSeason(seasonID, m.SeasonID) {
			continue
		}
		for _, id := range m.Players() {
			ps, ok := out[id]
			if !ok {
				continue
			}
			ps.Record(m)
			out[id] = ps
		}
	}
	for _, so := range history.SitOuts {
		if !inSeason(seasonID, so.SeasonID) {
			continue
		}
		for _, id := range lo.Uniq(so.PlayerIDs) {
			if ps, ok := out[id]; ok {
				ps.SitOuts++
				out[id] = ps
			}
		}
	}
	return out
}
