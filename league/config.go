/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BalanceWeights are the league-configurable weights of the fairness
// sub-scores.
type BalanceWeights struct {
	Skill     float64 `yaml:"skill" json:"skill"`
	Partners  float64 `yaml:"partners" json:"partners"`
	Opponents float64 `yaml:"opponents" json:"opponents"`
	Courts    float64 `yaml:"courts" json:"courts"`
	SitOuts   float64 `yaml:"sitouts" json:"sitouts"`
}

func DefaultWeights() BalanceWeights {
	return BalanceWeights{
		Skill:     5,
		Partners:  3,
		Opponents: 2,
		Courts:    1,
		SitOuts:   4,
	}
}

type Dispersion string

const (
	DispersionStdDev  Dispersion = "stddev"
	DispersionEntropy Dispersion = "entropy"
)

// DiversityConfig tunes the history-aware candidate ranking.
type DiversityConfig struct {
	PartnerPenalty  float64 `yaml:"partner_penalty"`
	OpponentPenalty float64 `yaml:"opponent_penalty"`
	SitOutBoost     float64 `yaml:"sitout_boost"`
}

type Config struct {
	Weights BalanceWeights `yaml:"weights"`

	// Pools smaller than this skip combinatorial generation and use the
	// legacy sorted pairing.
	CombinatorialThreshold int `yaml:"combinatorial_threshold"`

	// Upper bound on schedule candidates evaluated per run.
	CandidateBudget int `yaml:"candidate_budget"`

	// Maximum side-average skill difference accepted by intra-team
	// auto-assign before it falls back to the closest candidate.
	SkillTolerance float64 `yaml:"skill_tolerance"`

	Dispersion Dispersion      `yaml:"dispersion"`
	Diversity  DiversityConfig `yaml:"diversity"`
}

func DefaultConfig() Config {
	return Config{
		Weights:                DefaultWeights(),
		CombinatorialThreshold: 8,
		CandidateBudget:        6,
		SkillTolerance:         0.5,
		Dispersion:             DispersionStdDev,
		Diversity: DiversityConfig{
			PartnerPenalty:  0.5,
			OpponentPenalty: 0.25,
			SitOutBoost:     0.75,
		},
	}
}

func (cfg Config) Validate() error {
	w := cfg.Weights
	for name, v := range map[string]float64{"skill": w.Skill,
		"partners": w.Partners, "opponents": w.Opponents, "courts": w.Courts,
		"sitouts": w.SitOuts} {
		if v < 0 {
			return fmt.Errorf("weight %v must not be negative (%v)", name, v)
		}
	}
	if cfg.CombinatorialThreshold < 4 {
		return fmt.Errorf("combinatorial_threshold must be at least 4 (%v)",
			cfg.CombinatorialThreshold)
	}
	if cfg.CandidateBudget < 1 {
		return fmt.Errorf("candidate_budget must be at least 1 (%v)",
			cfg.CandidateBudget)
	}
	if cfg.SkillTolerance < 0 {
		return fmt.Errorf("skill_tolerance must not be negative (%v)",
			cfg.SkillTolerance)
	}
	if cfg.Dispersion != DispersionStdDev && cfg.Dispersion != DispersionEntropy {
		return fmt.Errorf("unknown dispersion %q", cfg.Dispersion)
	}
	return nil
}

// ParseConfig decodes YAML over the defaults, so omitted keys keep their
// default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("league.config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("league.config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file. An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("league.config: %w", err)
	}
	return ParseConfig(data)
}
