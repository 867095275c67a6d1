/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTeams(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"empty", 0, 0},
		{"single", 1, 0},
		{"pair", 2, 1},
		{"four", 4, 6},
		{"twelve", 12, 66},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skills := make([]float64, tt.n)
			teams := GenerateTeams(makePlayers(skills...))
			assert.Len(t, teams, tt.want)
		})
	}
}

func TestGenerateTeamsOrder(t *testing.T) {
	players := makePlayers(1, 2, 3)
	teams := GenerateTeams(players)
	require.Len(t, teams, 3)

	assert.Equal(t, []string{"p01", "p02"}, teams[0].IDs())
	assert.Equal(t, []string{"p01", "p03"}, teams[1].IDs())
	assert.Equal(t, []string{"p02", "p03"}, teams[2].IDs())
	assert.Equal(t, 5.0, teams[2].Skill())

	for _, tm := range teams {
		assert.NotEqual(t, tm.Players[0].ID, tm.Players[1].ID)
	}
	assert.False(t, teams[0].Disjoint(teams[1]))
}

func TestTeamDisjoint(t *testing.T) {
	teams := GenerateTeams(makePlayers(1, 2, 3, 4))
	// (p01,p02) and (p03,p04)
	assert.True(t, teams[0].Disjoint(teams[5]))
	assert.False(t, teams[0].Disjoint(teams[3]))
}
