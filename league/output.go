/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

import (
	"fmt"
	"sort"
	"strings"
)

func sideString(ids []string, idx PlayerIndex) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if p, ok := idx[id]; ok {
			names = append(names, fmt.Sprintf("%s(%.2f)", idx.DisplayName(id),
				p.Skill))
		} else {
			names = append(names, id)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, " & ")
}

// BuildScheduleOutput formats matches and sit-outs into an aligned table
// ordered by time slot then court.
func BuildScheduleOutput(matches []Match, sitOuts []string, idx PlayerIndex) string {
	list := append([]Match(nil), matches...)
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].TimeSlot != list[j].TimeSlot {
			return list[i].TimeSlot < list[j].TimeSlot
		}
		return list[i].Court < list[j].Court
	})

	var sb strings.Builder
	if len(list) == 0 {
		sb.WriteString("No matches scheduled\n")
	}

	type row struct{ slot, court, a, b, diff string }
	var rows []row
	for _, m := range list {
		diff := idx.SkillOf(m.TeamA) - idx.SkillOf(m.TeamB)
		if diff < 0 {
			diff = -diff
		}
		rows = append(rows, row{
			slot:  fmt.Sprintf("%d", m.TimeSlot),
			court: fmt.Sprintf("%d", m.Court),
			a:     sideString(m.TeamA, idx),
			b:     sideString(m.TeamB, idx),
			diff: fmt.Sprintf("%.2f (A %.0f%%)", diff,
				100*MatchExpectancy(m, idx)),
		})
	}

	if len(rows) > 0 {
		// Compute column widths
		maxS, maxC, maxA, maxB := len("Slot"), len("Court"), len("Side A"),
			len("Side B")
		for _, r := range rows {
			if l := len(r.slot); l > maxS {
				maxS = l
			}
			if l := len(r.court); l > maxC {
				maxC = l
			}
			if l := len(r.a); l > maxA {
				maxA = l
			}
			if l := len(r.b); l > maxB {
				maxB = l
			}
		}
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %s\n", maxS, "Slot",
			maxC, "Court", maxA, "Side A", maxB, "Side B", "Skill diff"))
		for _, r := range rows {
			sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %s\n", maxS,
				r.slot, maxC, r.court, maxA, r.a, maxB, r.b, r.diff))
		}
	}

	if len(sitOuts) > 0 {
		names := make([]string, 0, len(sitOuts))
		for _, id := range sitOuts {
			names = append(names, idx.DisplayName(id))
		}
		sb.WriteString(fmt.Sprintf("\nSitting out: %s\n", strings.Join(names, ", ")))
	}

	return sb.String()
}

func topCounts(counts map[string]int, idx PlayerIndex, limit int) string {
	type kv struct {
		id string
		n  int
	}
	var list []kv
	for id, n := range counts {
		list = append(list, kv{id, n})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].n != list[j].n {
			return list[i].n > list[j].n
		}
		return list[i].id < list[j].id
	})
	if len(list) > limit {
		list = list[:limit]
	}
	parts := make([]string, 0, len(list))
	for _, e := range list {
		parts = append(parts, fmt.Sprintf("%s x%d", idx.DisplayName(e.id), e.n))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

// BuildStatsOutput renders season analytics for the given players.
func BuildStatsOutput(stats []PlayerStats, idx PlayerIndex) string {
	list := append([]PlayerStats(nil), stats...)
	sort.Slice(list, func(i, j int) bool {
		if list[i].MatchesPlayed != list[j].MatchesPlayed {
			return list[i].MatchesPlayed > list[j].MatchesPlayed
		}
		return list[i].PlayerID < list[j].PlayerID
	})

	var sb strings.Builder
	for _, ps := range list {
		courts := make(map[string]int, len(ps.Courts))
		for c, n := range ps.Courts {
			courts[fmt.Sprintf("court %d", c)] = n
		}
		sb.WriteString(fmt.Sprintf("%s: %d played, %d sat out\n",
			idx.DisplayName(ps.PlayerID), ps.MatchesPlayed, ps.SitOuts))
		sb.WriteString(fmt.Sprintf("  partners:  %s\n",
			topCounts(ps.Partners, idx, 5)))
		sb.WriteString(fmt.Sprintf("  opponents: %s\n",
			topCounts(ps.Opponents, idx, 5)))
		sb.WriteString(fmt.Sprintf("  courts:    %s\n",
			topCounts(courts, idx, 5)))
	}
	return sb.String()
}
