/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scheduler

import (
	"github.com/mikeb26/courtbot/league"
)

// Team is an unordered doubles pair.
type Team struct {
	Players [2]league.Player
	// position in generation order, used for stable tie-breaking
	order int
}

func (t Team) Skill() float64 {
	return t.Players[0].Skill + t.Players[1].Skill
}

func (t Team) IDs() []string {
	return []string{t.Players[0].ID, t.Players[1].ID}
}

func (t Team) has(id string) bool {
	return t.Players[0].ID == id || t.Players[1].ID == id
}

// Disjoint reports whether the two teams share no player.
func (t Team) Disjoint(o Team) bool {
	return !o.has(t.Players[0].ID) && !o.has(t.Players[1].ID)
}

// GenerateTeams enumerates every unordered pair of the eligible players in
// input order (i < j). The result has n(n-1)/2 entries, so callers with
// large rosters should pre-filter (e.g. by team) before calling.
func GenerateTeams(players []league.Player) []Team {
	n := len(players)
	if n < 2 {
		return nil
	}
	teams := make([]Team, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			teams = append(teams, Team{
				Players: [2]league.Player{players[i], players[j]},
				order:   len(teams),
			})
		}
	}
	return teams
}
