/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scheduler

import (
	"fmt"

	"github.com/mikeb26/courtbot/league"
)

// ValidateMatches checks that no player is on both sides of (or twice in)
// a match, and that nobody plays two matches in the same time slot. With a
// layout, each side must not exceed its position count; with exact set it
// must match it.
func ValidateMatches(matches []league.Match, layout *league.CourtLayout,
	exact bool) error {

	bySlot := make(map[int]map[string]bool)
	for _, m := range matches {
		seen := make(map[string]bool, len(m.TeamA)+len(m.TeamB))
		for _, id := range m.Players() {
			if seen[id] {
				return &InvariantError{PlayerID: id, Match: m,
					Reason: "appears twice in one match"}
			}
			seen[id] = true
		}

		if layout != nil {
			nA, nB := layout.Count(league.SideA), layout.Count(league.SideB)
			if len(m.TeamA) > nA || len(m.TeamB) > nB ||
				(exact && (len(m.TeamA) != nA || len(m.TeamB) != nB)) {
				return &InvariantError{Match: m, Reason: fmt.Sprintf(
					"side sizes %d/%d do not fit layout %d/%d", len(m.TeamA),
					len(m.TeamB), nA, nB)}
			}
		}

		slot, ok := bySlot[m.TimeSlot]
		if !ok {
			slot = make(map[string]bool)
			bySlot[m.TimeSlot] = slot
		}
		for _, id := range m.Players() {
			if slot[id] {
				return &InvariantError{PlayerID: id, Match: m,
					Reason: fmt.Sprintf("double-booked in time slot %d",
						m.TimeSlot)}
			}
			slot[id] = true
		}
	}
	return nil
}

// validateOncePerRun checks that no player is placed in two matches of the
// same run, regardless of time slot.
func validateOncePerRun(matches []league.Match) error {
	seen := make(map[string]bool)
	for _, m := range matches {
		for _, id := range m.Players() {
			if seen[id] {
				return &InvariantError{PlayerID: id, Match: m,
					Reason: "placed in more than one match"}
			}
			seen[id] = true
		}
	}
	return nil
}

// validateCoverage checks that placed players and sit-outs partition the
// eligible pool exactly.
func validateCoverage(players []league.Player, matches []league.Match,
	sitOuts []string) error {

	eligible := make(map[string]bool, len(players))
	for _, p := range players {
		eligible[p.ID] = true
	}
	seen := make(map[string]bool, len(players))
	for _, m := range matches {
		for _, id := range m.Players() {
			if !eligible[id] {
				return &InvariantError{PlayerID: id, Match: m,
					Reason: "is not eligible"}
			}
			seen[id] = true
		}
	}
	for _, id := range sitOuts {
		if seen[id] {
			return &InvariantError{PlayerID: id,
				Reason: "both placed and sitting out"}
		}
		if !eligible[id] {
			return &InvariantError{PlayerID: id,
				Reason: "sits out but is not eligible"}
		}
		seen[id] = true
	}
	for _, p := range players {
		if !seen[p.ID] {
			return &InvariantError{PlayerID: p.ID,
				Reason: "neither placed nor sitting out"}
		}
	}
	return nil
}

func checkDuplicates(players []league.Player) error {
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if seen[p.ID] {
			return fmt.Errorf("%w: %v", ErrDuplicatePlayer, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}
