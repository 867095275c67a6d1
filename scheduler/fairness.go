/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scheduler

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/mikeb26/courtbot/league"
)

// MaxSubScore is the top of the 0-10 scale every sub-score uses.
const MaxSubScore = 10.0

// FairnessMetrics are the sub-scores of one schedule, each on a 0-10 scale
// where higher is fairer, plus their weighted sum.
type FairnessMetrics struct {
	SkillBalance      float64 `json:"skillBalance"`
	PartnerDiversity  float64 `json:"partnerDiversity"`
	OpponentDiversity float64 `json:"opponentDiversity"`
	CourtBalance      float64 `json:"courtBalance"`
	SitOutBalance     float64 `json:"sitOutBalance"`
	Overall           float64 `json:"overall"`
}

// Scorer is pure; it never modifies its inputs.
type Scorer struct {
	Weights    league.BalanceWeights
	Dispersion league.Dispersion
}

func NewScorer(cfg league.Config) Scorer {
	return Scorer{Weights: cfg.Weights, Dispersion: cfg.Dispersion}
}

// MatchSkillScore is max(0, 10 - |skill(A) - skill(B)|).
func MatchSkillScore(m league.Match, idx league.PlayerIndex) float64 {
	diff := math.Abs(idx.SkillOf(m.TeamA) - idx.SkillOf(m.TeamB))
	return math.Max(0, MaxSubScore-diff)
}

// ProjectStats returns the stats each pool player would have after the given
// matches are played: prior stats plus these matches, plus one sit-out for
// every pool player not placed.
func ProjectStats(matches []league.Match, players []league.Player,
	prior map[string]league.PlayerStats) map[string]league.PlayerStats {

	placed := make(map[string]bool)
	for _, m := range matches {
		for _, id := range m.Players() {
			placed[id] = true
		}
	}

	out := make(map[string]league.PlayerStats, len(players))
	for _, p := range players {
		ps, ok := prior[p.ID]
		if ok {
			ps = ps.Clone()
		} else {
			ps = league.NewPlayerStats(p.ID)
		}
		for _, m := range matches {
			ps.Record(m)
		}
		if !placed[p.ID] {
			ps.SitOuts++
		}
		out[p.ID] = ps
	}
	return out
}

// Metrics scores matches against the pool. When weekID is non-empty only
// matches of that week are considered part of the run.
func (s Scorer) Metrics(matches []league.Match, players []league.Player,
	prior map[string]league.PlayerStats, weekID string) FairnessMetrics {

	run := matches
	if weekID != "" {
		run = nil
		for _, m := range matches {
			if m.WeekID == weekID {
				run = append(run, m)
			}
		}
	}

	idx := league.IndexPlayers(players)
	projected := ProjectStats(run, players, prior)

	var fm FairnessMetrics
	if len(run) > 0 {
		perMatch := make([]float64, len(run))
		for i, m := range run {
			perMatch[i] = MatchSkillScore(m, idx)
		}
		fm.SkillBalance = stat.Mean(perMatch, nil)
	}

	fm.PartnerDiversity = s.diversity(players, projected, func(ps league.PlayerStats) map[string]int {
		return ps.Partners
	})
	fm.OpponentDiversity = s.diversity(players, projected, func(ps league.PlayerStats) map[string]int {
		return ps.Opponents
	})
	fm.CourtBalance = courtBalance(players, projected)
	fm.SitOutBalance = sitOutBalance(players, projected)

	w := s.Weights
	fm.Overall = floats.Dot(
		[]float64{w.Skill, w.Partners, w.Opponents, w.Courts, w.SitOuts},
		[]float64{fm.SkillBalance, fm.PartnerDiversity, fm.OpponentDiversity,
			fm.CourtBalance, fm.SitOutBalance})
	return fm
}

// Score is the overall weighted fitness of one candidate.
func (s Scorer) Score(c Candidate, players []league.Player,
	prior map[string]league.PlayerStats) FairnessMetrics {

	return s.Metrics(c.Matches, players, prior, "")
}

// dispersionScore maps a population standard deviation onto 0-10; a
// perfectly even distribution scores 10.
func dispersionScore(sigma float64) float64 {
	return MaxSubScore / (1 + sigma)
}

func popStdDev(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return stat.PopStdDev(x, nil)
}

// evenness is the Shannon entropy of counts normalized by its maximum ln(n),
// so 1 means perfectly even. No observations at all counts as even.
func evenness(counts []float64) float64 {
	total := floats.Sum(counts)
	if len(counts) < 2 || total == 0 {
		return 1
	}
	p := make([]float64, len(counts))
	floats.ScaleTo(p, 1/total, counts)
	return stat.Entropy(p) / math.Log(float64(len(counts)))
}

// diversity averages, over the pool, how evenly each player's partner (or
// opponent) counts are spread across every other pool member.
func (s Scorer) diversity(players []league.Player,
	projected map[string]league.PlayerStats,
	counts func(league.PlayerStats) map[string]int) float64 {

	if len(players) < 2 {
		return MaxSubScore
	}
	perPlayer := make([]float64, 0, len(players))
	vec := make([]float64, 0, len(players)-1)
	for _, p := range players {
		m := counts(projected[p.ID])
		vec = vec[:0]
		for _, q := range players {
			if q.ID == p.ID {
				continue
			}
			vec = append(vec, float64(m[q.ID]))
		}
		if s.Dispersion == league.DispersionEntropy {
			perPlayer = append(perPlayer, evenness(vec))
		} else {
			perPlayer = append(perPlayer, popStdDev(vec))
		}
	}
	avg := stat.Mean(perPlayer, nil)
	if s.Dispersion == league.DispersionEntropy {
		return MaxSubScore * avg
	}
	return dispersionScore(avg)
}

func courtBalance(players []league.Player,
	projected map[string]league.PlayerStats) float64 {

	maxCourt := 0
	for _, p := range players {
		for c := range projected[p.ID].Courts {
			if c > maxCourt {
				maxCourt = c
			}
		}
	}
	if maxCourt < 2 || len(players) == 0 {
		return MaxSubScore
	}
	perPlayer := make([]float64, 0, len(players))
	vec := make([]float64, maxCourt)
	for _, p := range players {
		courts := projected[p.ID].Courts
		for c := 1; c <= maxCourt; c++ {
			vec[c-1] = float64(courts[c])
		}
		perPlayer = append(perPlayer, popStdDev(vec))
	}
	return dispersionScore(stat.Mean(perPlayer, nil))
}

func sitOutBalance(players []league.Player,
	projected map[string]league.PlayerStats) float64 {

	vec := make([]float64, 0, len(players))
	for _, p := range players {
		vec = append(vec, float64(projected[p.ID].SitOuts))
	}
	return dispersionScore(popStdDev(vec))
}

// ComputeFairnessMetrics scores matches with the given weights using the
// default dispersion measure.
func ComputeFairnessMetrics(matches []league.Match, players []league.Player,
	stats map[string]league.PlayerStats, weekID string,
	weights league.BalanceWeights) FairnessMetrics {

	cfg := league.DefaultConfig()
	cfg.Weights = weights
	return NewScorer(cfg).Metrics(matches, players, stats, weekID)
}
