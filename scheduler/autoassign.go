/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scheduler

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/mikeb26/courtbot/league"
)

type AssignMode string

const (
	// opposing rosters face each other; each side is drawn from one team
	ModeInterTeam AssignMode = "inter-team"
	// one shared pool, skill-balanced with randomized tie-breaking
	ModeIntraTeam AssignMode = "intra-team"
)

// tolerance comparisons allow for float rounding of quarter-point skills
const skillEpsilon = 1e-9

type AssignResult struct {
	Matches  []league.Match `json:"matches"`
	Unplaced []string       `json:"unplaced"`
	Mode     AssignMode     `json:"mode"`
}

// Assigner fills pre-existing match skeletons with players.
type Assigner struct {
	Layout league.CourtLayout
	Rand   RandSource
	// SkillTolerance bounds the side-average skill gap in intra-team mode.
	SkillTolerance float64
}

func NewAssigner(layout league.CourtLayout, rng RandSource,
	cfg league.Config) *Assigner {

	return &Assigner{Layout: layout, Rand: rng,
		SkillTolerance: cfg.SkillTolerance}
}

// AutoAssignSlots fills skeletons using the default skill tolerance.
func AutoAssignSlots(players []league.Player, skeletons []league.Match,
	layout league.CourtLayout, rng RandSource) (AssignResult, error) {

	return NewAssigner(layout, rng, league.DefaultConfig()).Assign(players,
		skeletons)
}

// Assign returns new matches built from the skeletons; the caller's
// skeletons are never modified. Locked skeletons are kept as they are and
// their players leave the pool. Every other skeleton is refilled from
// scratch. Filling stops once fewer than two players remain, leaving later
// skeletons partially filled or empty.
func (a *Assigner) Assign(players []league.Player,
	skeletons []league.Match) (AssignResult, error) {

	if err := a.Layout.Validate(); err != nil {
		return AssignResult{}, err
	}
	if err := checkDuplicates(players); err != nil {
		return AssignResult{}, err
	}
	rng := a.Rand
	if rng == nil {
		rng = NewTimeRand()
	}

	out := make([]league.Match, len(skeletons))
	taken := make(map[string]bool)
	var open []int
	for i, sk := range skeletons {
		out[i] = sk.Clone()
		if out[i].ID == "" {
			out[i].ID = league.MatchID(sk.WeekID, sk.Court, sk.TimeSlot)
		}
		if sk.Locked {
			for _, id := range sk.Players() {
				taken[id] = true
			}
			continue
		}
		out[i].TeamA = nil
		out[i].TeamB = nil
		open = append(open, i)
	}

	pool := lo.Filter(players, func(p league.Player, _ int) bool {
		return !taken[p.ID]
	})

	res := AssignResult{Mode: ModeIntraTeam}
	if len(league.TeamIDs(pool)) >= 2 {
		res.Mode = ModeInterTeam
		a.fillInterTeam(out, open, pool, rng)
	} else {
		a.fillIntraTeam(out, open, pool, rng)
	}

	placed := make(map[string]bool)
	for _, i := range open {
		for _, id := range out[i].Players() {
			placed[id] = true
		}
	}
	for _, p := range pool {
		if !placed[p.ID] {
			res.Unplaced = append(res.Unplaced, p.ID)
		}
	}

	if err := ValidateMatches(out, &a.Layout, false); err != nil {
		return AssignResult{}, err
	}
	if err := validateOncePerRun(out); err != nil {
		return AssignResult{}, err
	}

	res.Matches = out
	return res, nil
}

func take(pool []league.Player, n int) ([]string, []league.Player) {
	if n > len(pool) {
		n = len(pool)
	}
	ids := make([]string, 0, n)
	for _, p := range pool[:n] {
		ids = append(ids, p.ID)
	}
	return ids, pool[n:]
}

// fillInterTeam cycles through every team-vs-team pairing, putting the
// first team of the pairing on side A and the second on side B. Players
// without a team are left unplaced.
func (a *Assigner) fillInterTeam(out []league.Match, open []int,
	pool []league.Player, rng RandSource) {

	teams := league.TeamIDs(pool)
	rosters := lo.GroupBy(lo.Filter(pool, func(p league.Player, _ int) bool {
		return p.TeamID != ""
	}), func(p league.Player) string {
		return p.TeamID
	})
	for _, t := range teams {
		r := rosters[t]
		rng.Shuffle(len(r), func(i, j int) { r[i], r[j] = r[j], r[i] })
	}

	var pairings [][2]string
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			pairings = append(pairings, [2]string{teams[i], teams[j]})
		}
	}

	remaining := func() int {
		n := 0
		for _, r := range rosters {
			n += len(r)
		}
		return n
	}

	nA, nB := a.Layout.Count(league.SideA), a.Layout.Count(league.SideB)
	next := 0
	for _, i := range open {
		if remaining() < 2 {
			return
		}
		found := false
		var pr [2]string
		for tries := 0; tries < len(pairings); tries++ {
			cand := pairings[(next+tries)%len(pairings)]
			if len(rosters[cand[0]]) > 0 && len(rosters[cand[1]]) > 0 {
				pr = cand
				next = (next + tries + 1) % len(pairings)
				found = true
				break
			}
		}
		if !found {
			// only one team has players left
			return
		}
		out[i].TeamA, rosters[pr[0]] = take(rosters[pr[0]], nA)
		out[i].TeamB, rosters[pr[1]] = take(rosters[pr[1]], nB)
		out[i].Algorithm = league.AlgorithmAutoTeam
	}
}

func avgSkill(ps []league.Player) float64 {
	if len(ps) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range ps {
		total += p.Skill
	}
	return total / float64(len(ps))
}

func ids(ps []league.Player) []string {
	return lo.Map(ps, func(p league.Player, _ int) string { return p.ID })
}

// fillIntraTeam walks positions pairwise: a uniformly random player takes
// the next A position, then the B position goes to a random player among
// those who keep the side-average gap within tolerance, or to the closest
// player when none do.
func (a *Assigner) fillIntraTeam(out []league.Match, open []int,
	pool []league.Player, rng RandSource) {

	remaining := append([]league.Player(nil), pool...)
	sort.SliceStable(remaining, func(i, j int) bool {
		if remaining[i].Skill != remaining[j].Skill {
			return remaining[i].Skill > remaining[j].Skill
		}
		if remaining[i].Share != remaining[j].Share {
			return remaining[i].Share > remaining[j].Share
		}
		return remaining[i].ID < remaining[j].ID
	})
	removeAt := func(k int) league.Player {
		p := remaining[k]
		remaining = append(remaining[:k], remaining[k+1:]...)
		return p
	}

	nA, nB := a.Layout.Count(league.SideA), a.Layout.Count(league.SideB)
	steps := nA
	if nB > steps {
		steps = nB
	}
	for _, i := range open {
		var sideA, sideB []league.Player
		for k := 0; k < steps; k++ {
			if len(remaining) < 2 {
				break
			}
			if k < nA {
				sideA = append(sideA, removeAt(rng.Intn(len(remaining))))
			}
			if k < nB {
				sideB = append(sideB, removeAt(a.pickOpponent(sideA, sideB,
					remaining, rng)))
			}
		}
		if len(sideA)+len(sideB) > 0 {
			out[i].TeamA = ids(sideA)
			out[i].TeamB = ids(sideB)
			out[i].Algorithm = league.AlgorithmAutoBalance
		}
		if len(remaining) < 2 {
			return
		}
	}
}

// pickOpponent returns the index in remaining of the next side-B player.
func (a *Assigner) pickOpponent(sideA, sideB, remaining []league.Player,
	rng RandSource) int {

	target := avgSkill(sideA)
	var within []int
	closest := -1
	closestDelta := math.Inf(1)
	for k, c := range remaining {
		delta := math.Abs(avgSkill(append(append([]league.Player(nil),
			sideB...), c)) - target)
		if delta <= a.SkillTolerance+skillEpsilon {
			within = append(within, k)
		}
		if delta < closestDelta {
			closest, closestDelta = k, delta
		}
	}
	if len(within) > 0 {
		return within[rng.Intn(len(within))]
	}
	return closest
}

// SkillGap is the absolute difference of side-average skills.
func SkillGap(m league.Match, idx league.PlayerIndex) float64 {
	if len(m.TeamA) == 0 || len(m.TeamB) == 0 {
		return 0
	}
	return math.Abs(idx.SkillOf(m.TeamA)/float64(len(m.TeamA)) -
		idx.SkillOf(m.TeamB)/float64(len(m.TeamB)))
}
