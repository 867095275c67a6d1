/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scheduler

import (
	"fmt"

	"github.com/mikeb26/courtbot/league"
)

// Request is one scheduling run. Stats may be nil, in which case they are
// derived from History.
type Request struct {
	Players   []league.Player
	Stats     map[string]league.PlayerStats
	History   league.History
	Courts    int
	TimeSlots int
	WeekID    string
	SeasonID  string

	// Config defaults to league.DefaultConfig() when nil.
	Config *league.Config
	// Strategies overrides DefaultStrategies(Config) when set.
	Strategies []Strategy
}

type Result struct {
	Matches       []league.Match  `json:"matches"`
	SitOuts       []string        `json:"sitOuts"`
	FairnessScore float64         `json:"fairnessScore"`
	Metrics       FairnessMetrics `json:"metrics"`
	Strategy      string          `json:"strategy"`
	Candidates    int             `json:"candidates"`
}

const legacyStrategyName = "legacy-sorted"

// Schedule builds the fairest schedule for the request. Pools below the
// combinatorial threshold use the deterministic legacy pairing; larger pools
// evaluate every strategy's candidate and keep the best (first wins ties).
//
// Candidate generation costs O(n²) teams and O(n²) opponent scans per team
// for each strategy, so rosters beyond a few dozen players should be split
// (e.g. by team) before scheduling.
func Schedule(req Request) (Result, error) {
	cfg := league.DefaultConfig()
	if req.Config != nil {
		cfg = *req.Config
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("scheduler: %w", err)
	}
	if req.Courts <= 0 || req.TimeSlots <= 0 {
		return Result{}, fmt.Errorf("%w: %d courts x %d slots", ErrInvalidGrid,
			req.Courts, req.TimeSlots)
	}
	if err := checkDuplicates(req.Players); err != nil {
		return Result{}, err
	}

	stats := req.Stats
	if stats == nil {
		stats = league.AggregateAll(req.Players, req.History, req.SeasonID)
	}
	scorer := NewScorer(cfg)
	bc := BuildContext{
		Players:  req.Players,
		Stats:    stats,
		Cells:    Grid(req.Courts, req.TimeSlots),
		WeekID:   req.WeekID,
		SeasonID: req.SeasonID,
	}

	var best Candidate
	var bestMetrics FairnessMetrics
	count := 0
	if len(req.Players) < cfg.CombinatorialThreshold {
		best = legacySchedule(bc)
		bestMetrics = scorer.Score(best, req.Players, stats)
		count = 1
	} else {
		strategies := req.Strategies
		if len(strategies) == 0 {
			strategies = DefaultStrategies(cfg)
		}
		bc.Teams = GenerateTeams(req.Players)
		for i, cand := range BuildCandidates(bc, strategies) {
			fm := scorer.Score(cand, req.Players, stats)
			if i == 0 || fm.Overall > bestMetrics.Overall {
				best, bestMetrics = cand, fm
			}
			count++
		}
	}

	doubles := league.DoublesLayout()
	if err := ValidateMatches(best.Matches, &doubles, true); err != nil {
		return Result{}, err
	}
	if err := validateOncePerRun(best.Matches); err != nil {
		return Result{}, err
	}
	if err := validateCoverage(req.Players, best.Matches, best.SitOuts); err != nil {
		return Result{}, err
	}

	return Result{
		Matches:       best.Matches,
		SitOuts:       best.SitOuts,
		FairnessScore: bestMetrics.Overall,
		Metrics:       bestMetrics,
		Strategy:      best.Strategy,
		Candidates:    count,
	}, nil
}

// BuildOptimalSchedule is Schedule with the inputs spelled out.
func BuildOptimalSchedule(players []league.Player,
	stats map[string]league.PlayerStats, pastMatches []league.Match,
	courts int, timeSlots int, weights league.BalanceWeights) (Result, error) {

	cfg := league.DefaultConfig()
	cfg.Weights = weights
	return Schedule(Request{
		Players:   players,
		Stats:     stats,
		History:   league.History{Matches: pastMatches},
		Courts:    courts,
		TimeSlots: timeSlots,
		Config:    &cfg,
	})
}

// legacySchedule sorts by skill ascending, pairs neighbours into teams and
// fills cells court-major with consecutive team pairs. Leftover teams and an
// odd player sit out. No randomness: same input, same output.
func legacySchedule(bc BuildContext) Candidate {
	sorted := append([]league.Player(nil), bc.Players...)
	league.SortBySkill(sorted)

	var teams [][]string
	for i := 0; i+1 < len(sorted); i += 2 {
		teams = append(teams, []string{sorted[i].ID, sorted[i+1].ID})
	}

	cand := Candidate{Strategy: legacyStrategyName,
		Algorithm: league.AlgorithmLegacyGreedy}
	placed := make(map[string]bool)
	next := 0
	for _, c := range bc.Cells {
		if next+1 >= len(teams) {
			break
		}
		cand.Matches = append(cand.Matches, league.Match{
			ID:        league.MatchID(bc.WeekID, c.Court, c.TimeSlot),
			WeekID:    bc.WeekID,
			SeasonID:  bc.SeasonID,
			Court:     c.Court,
			TimeSlot:  c.TimeSlot,
			TeamA:     teams[next],
			TeamB:     teams[next+1],
			Algorithm: league.AlgorithmLegacyGreedy,
		})
		for _, id := range append(append([]string(nil), teams[next]...), teams[next+1]...) {
			placed[id] = true
		}
		next += 2
	}

	for _, p := range sorted {
		if !placed[p.ID] {
			cand.SitOuts = append(cand.SitOuts, p.ID)
		}
	}
	return cand
}
