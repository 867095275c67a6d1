/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

import (
	"fmt"
	"sort"
)

// Player is one league member as supplied by the roster. Skill is a
// continuous rating (typically 1.0-5.5 in 0.25 steps); Share is the
// contract-share weight which is only ever used to break ties.
type Player struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Skill  float64 `json:"skill"`
	TeamID string  `json:"teamId,omitempty"`
	Share  float64 `json:"share,omitempty"`
}

func (p Player) String() string {
	if p.Name == "" {
		return p.ID
	}
	return fmt.Sprintf("%v(%.2f)", p.Name, p.Skill)
}

// PlayerIndex maps player ids to players.
type PlayerIndex map[string]Player

func IndexPlayers(players []Player) PlayerIndex {
	idx := make(PlayerIndex, len(players))
	for _, p := range players {
		idx[p.ID] = p
	}
	return idx
}

// SkillOf returns the summed skill of the given ids. Unknown ids count as 0.
func (idx PlayerIndex) SkillOf(ids []string) float64 {
	total := 0.0
	for _, id := range ids {
		total += idx[id].Skill
	}
	return total
}

// DisplayName returns the player's name or its id if it is not in the index.
func (idx PlayerIndex) DisplayName(id string) string {
	if p, ok := idx[id]; ok && p.Name != "" {
		return p.Name
	}
	return id
}

// SortBySkill sorts ascending by skill, breaking ties by id so that the
// result does not depend on input order.
func SortBySkill(players []Player) {
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Skill != players[j].Skill {
			return players[i].Skill < players[j].Skill
		}
		return players[i].ID < players[j].ID
	})
}

// TeamIDs returns the distinct non-empty team affiliations in first-seen
// order.
func TeamIDs(players []Player) []string {
	seen := make(map[string]bool)
	var teams []string
	for _, p := range players {
		if p.TeamID == "" || seen[p.TeamID] {
			continue
		}
		seen[p.TeamID] = true
		teams = append(teams, p.TeamID)
	}
	return teams
}
