/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mikeb26/courtbot/internal"
)

// Algorithm tags which code path produced a match.
type Algorithm string

const (
	AlgorithmLegacyGreedy   = Algorithm("legacy-greedy")
	AlgorithmSkillOptimizer = Algorithm("skill-optimizer")
	AlgorithmDiversity      = Algorithm("diversity-optimizer")
	AlgorithmAutoTeam       = Algorithm("auto-team")
	AlgorithmAutoBalance    = Algorithm("auto-balance")
)

// Match is one court/time-slot cell. TeamA and TeamB hold player ids in
// position order. Historical matches are read-only input.
type Match struct {
	ID        string    `json:"id,omitempty"`
	WeekID    string    `json:"weekId,omitempty"`
	SeasonID  string    `json:"seasonId,omitempty"`
	Court     int       `json:"court"`
	TimeSlot  int       `json:"timeSlot"`
	TeamA     []string  `json:"teamA"`
	TeamB     []string  `json:"teamB"`
	Algorithm Algorithm `json:"algorithm,omitempty"`
	Locked    bool      `json:"locked,omitempty"`
	PlayedAt  time.Time `json:"playedAt,omitempty"`
}

// SitOut records the players who sat out a given week.
type SitOut struct {
	WeekID    string   `json:"weekId"`
	SeasonID  string   `json:"seasonId,omitempty"`
	PlayerIDs []string `json:"playerIds"`
}

// History is the prior play data a scheduling run consumes.
type History struct {
	Matches []Match  `json:"matches"`
	SitOuts []SitOut `json:"sitOuts,omitempty"`
}

// Players returns every id on either side, A first.
func (m Match) Players() []string {
	out := make([]string, 0, len(m.TeamA)+len(m.TeamB))
	out = append(out, m.TeamA...)
	return append(out, m.TeamB...)
}

// SideOf reports which side the player is on.
func (m Match) SideOf(playerID string) (Side, bool) {
	for _, id := range m.TeamA {
		if id == playerID {
			return SideA, true
		}
	}
	for _, id := range m.TeamB {
		if id == playerID {
			return SideB, true
		}
	}
	return "", false
}

// Clone returns a copy that shares no slices with m.
func (m Match) Clone() Match {
	out := m
	out.TeamA = append([]string(nil), m.TeamA...)
	out.TeamB = append([]string(nil), m.TeamB...)
	return out
}

func (m Match) String() string {
	return fmt.Sprintf("court %d slot %d: %v vs %v", m.Court, m.TimeSlot,
		m.TeamA, m.TeamB)
}

var matchNamespace = uuid.MustParse("3b7c1f0e-5a0a-4c55-9d0b-6c2f3f41a7d2")

// MatchID derives a stable id for a week/court/slot cell so that repeated
// runs over the same input produce identical output.
func MatchID(weekID string, court, timeSlot int) string {
	name := fmt.Sprintf("%v/%d/%d", weekID, court, timeSlot)
	return uuid.NewSHA1(matchNamespace, []byte(name)).String()
}

// Custom unmarshaller for Match to accept the loose date formats exported by
// league spreadsheets.
func (m *Match) UnmarshalJSON(data []byte) error {
	type Alias Match
	aux := &struct {
		PlayedAt string `json:"playedAt"`
		*Alias
	}{
		Alias: (*Alias)(m),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("Match unmarshal: %w", err)
	}
	var err error
	m.PlayedAt, err = internal.ParseDateOrZero(aux.PlayedAt)
	if err != nil {
		return fmt.Errorf("parsing Match.PlayedAt: %w", err)
	}
	return nil
}

// MarshalJSON omits playedAt for matches that have not been played.
func (m Match) MarshalJSON() ([]byte, error) {
	type Alias Match
	aux := struct {
		PlayedAt string `json:"playedAt,omitempty"`
		Alias
	}{
		Alias: Alias(m),
	}
	if !m.PlayedAt.IsZero() {
		aux.PlayedAt = m.PlayedAt.Format(time.RFC3339)
	}
	return json.Marshal(aux)
}
