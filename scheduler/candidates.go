/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scheduler

import (
	"fmt"
	"math"
	"sort"

	"github.com/mikeb26/courtbot/league"
)

// Cell is one court/time-slot of the schedule grid.
type Cell struct {
	Court    int
	TimeSlot int
}

// Grid lists cells court-major, slot-minor: court 1 slots 1..n, then
// court 2, and so on. Courts and slots are numbered from 1.
func Grid(courts, timeSlots int) []Cell {
	if courts <= 0 || timeSlots <= 0 {
		return nil
	}
	cells := make([]Cell, 0, courts*timeSlots)
	for c := 1; c <= courts; c++ {
		for s := 1; s <= timeSlots; s++ {
			cells = append(cells, Cell{Court: c, TimeSlot: s})
		}
	}
	return cells
}

// BuildContext is the read-only input shared by every strategy in a run.
type BuildContext struct {
	Players  []league.Player
	Teams    []Team
	Stats    map[string]league.PlayerStats
	Cells    []Cell
	WeekID   string
	SeasonID string
}

// Candidate is one complete schedule proposal.
type Candidate struct {
	Strategy  string
	Algorithm league.Algorithm
	Matches   []league.Match
	SitOuts   []string
}

type Strategy interface {
	Name() string
	Build(bc BuildContext) Candidate
}

// TeamRanker orders the team pool for the slot-filling walk; lower ranks are
// visited first.
type TeamRanker func(bc BuildContext, t Team) float64

// OpponentCost scores b as the opponent of a; the lowest cost wins, ties go
// to the earlier team in walk order.
type OpponentCost func(bc BuildContext, a, b Team) float64

// greedyStrategy walks teams in rank order and pairs each free team with a
// free, disjoint opponent. With a nil cost the first compatible opponent is
// taken, which for a skill-sorted walk is also the closest in skill.
type greedyStrategy struct {
	name      string
	algorithm league.Algorithm
	rank      TeamRanker
	cost      OpponentCost
}

// NewGreedyStrategy builds a strategy from custom ranking and cost hooks.
func NewGreedyStrategy(name string, algorithm league.Algorithm, rank TeamRanker,
	cost OpponentCost) Strategy {

	return &greedyStrategy{name: name, algorithm: algorithm, rank: rank,
		cost: cost}
}

func (g *greedyStrategy) Name() string { return g.name }

func (g *greedyStrategy) Build(bc BuildContext) Candidate {
	order := make([]int, len(bc.Teams))
	ranks := make([]float64, len(bc.Teams))
	for i, t := range bc.Teams {
		order[i] = i
		ranks[i] = g.rank(bc, t)
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := ranks[order[a]], ranks[order[b]]
		if ra != rb {
			return ra < rb
		}
		return bc.Teams[order[a]].order < bc.Teams[order[b]].order
	})

	used := make(map[string]bool, len(bc.Players))
	free := len(bc.Players)
	isFree := func(t Team) bool {
		return !used[t.Players[0].ID] && !used[t.Players[1].ID]
	}

	cand := Candidate{Strategy: g.name, Algorithm: g.algorithm}
	cell := 0
	for oi, i := range order {
		if cell >= len(bc.Cells) || free < 4 {
			break
		}
		a := bc.Teams[i]
		if !isFree(a) {
			continue
		}

		best := -1
		bestCost := math.Inf(1)
		for _, j := range order[oi+1:] {
			b := bc.Teams[j]
			if !isFree(b) || !a.Disjoint(b) {
				continue
			}
			if g.cost == nil {
				best = j
				break
			}
			if c := g.cost(bc, a, b); c < bestCost {
				best, bestCost = j, c
			}
		}
		if best < 0 {
			continue
		}

		b := bc.Teams[best]
		c := bc.Cells[cell]
		cell++
		cand.Matches = append(cand.Matches, league.Match{
			ID:        league.MatchID(bc.WeekID, c.Court, c.TimeSlot),
			WeekID:    bc.WeekID,
			SeasonID:  bc.SeasonID,
			Court:     c.Court,
			TimeSlot:  c.TimeSlot,
			TeamA:     a.IDs(),
			TeamB:     b.IDs(),
			Algorithm: g.algorithm,
		})
		for _, id := range append(a.IDs(), b.IDs()...) {
			used[id] = true
		}
		free -= 4
	}

	for _, p := range bc.Players {
		if !used[p.ID] {
			cand.SitOuts = append(cand.SitOuts, p.ID)
		}
	}
	return cand
}

func skillRank(bc BuildContext, t Team) float64 {
	return t.Skill()
}

// SkillProximity sorts teams by combined skill and pairs each with the next
// free disjoint team, i.e. the closest in skill.
func SkillProximity() Strategy {
	return NewGreedyStrategy("skill-proximity", league.AlgorithmSkillOptimizer,
		skillRank, nil)
}

// Diversity ranks teams by combined skill plus a penalty for partnerships
// that already happened, minus a boost for players who have sat out, and
// picks opponents by skill gap plus a penalty for repeat opponents. The
// scale multiplies every history term.
func Diversity(dc league.DiversityConfig, scale float64) Strategy {
	rank := func(bc BuildContext, t Team) float64 {
		p0, p1 := t.Players[0].ID, t.Players[1].ID
		r := t.Skill()
		r += scale * dc.PartnerPenalty * float64(bc.Stats[p0].Partners[p1])
		r -= scale * dc.SitOutBoost *
			float64(bc.Stats[p0].SitOuts+bc.Stats[p1].SitOuts)
		return r
	}
	cost := func(bc BuildContext, a, b Team) float64 {
		c := math.Abs(a.Skill() - b.Skill())
		repeats := 0
		for _, pa := range a.Players {
			for _, pb := range b.Players {
				repeats += bc.Stats[pa.ID].Opponents[pb.ID]
			}
		}
		return c + scale*dc.OpponentPenalty*float64(repeats)
	}
	return NewGreedyStrategy(fmt.Sprintf("diversity-x%g", scale),
		league.AlgorithmDiversity, rank, cost)
}

var diversityScales = []float64{1, 2, 4, 0.5, 8, 16}

// DefaultStrategies returns skill-proximity followed by diversity variants
// of increasing history weight, capped at cfg.CandidateBudget.
func DefaultStrategies(cfg league.Config) []Strategy {
	strategies := []Strategy{SkillProximity()}
	for _, scale := range diversityScales {
		if len(strategies) >= cfg.CandidateBudget {
			break
		}
		strategies = append(strategies, Diversity(cfg.Diversity, scale))
	}
	if len(strategies) > cfg.CandidateBudget {
		strategies = strategies[:cfg.CandidateBudget]
	}
	return strategies
}

// BuildCandidates runs each strategy once over the shared context.
func BuildCandidates(bc BuildContext, strategies []Strategy) []Candidate {
	out := make([]Candidate, 0, len(strategies))
	for _, s := range strategies {
		out = append(out, s.Build(bc))
	}
	return out
}
