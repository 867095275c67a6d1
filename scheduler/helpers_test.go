/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scheduler

import (
	"fmt"

	"github.com/mikeb26/courtbot/league"
)

func makePlayers(skills ...float64) []league.Player {
	out := make([]league.Player, len(skills))
	for i, s := range skills {
		out[i] = league.Player{
			ID:    fmt.Sprintf("p%02d", i+1),
			Name:  fmt.Sprintf("Player %d", i+1),
			Skill: s,
		}
	}
	return out
}

func placedIDs(matches []league.Match) map[string]int {
	out := make(map[string]int)
	for _, m := range matches {
		for _, id := range m.Players() {
			out[id]++
		}
	}
	return out
}
