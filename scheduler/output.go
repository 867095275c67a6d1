/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scheduler

import (
	"fmt"
	"strings"
)

// BuildFairnessOutput renders the sub-scores of one week as an aligned
// table.
func BuildFairnessOutput(weekID string, fm FairnessMetrics) string {
	rows := []struct {
		name  string
		value float64
	}{
		{"Skill balance", fm.SkillBalance},
		{"Partner diversity", fm.PartnerDiversity},
		{"Opponent diversity", fm.OpponentDiversity},
		{"Court balance", fm.CourtBalance},
		{"Sit-out balance", fm.SitOutBalance},
	}
	maxName := len("Overall")
	for _, r := range rows {
		if len(r.name) > maxName {
			maxName = len(r.name)
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Fairness for week %v\n", weekID))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("  %-*s  %5.2f / %.0f\n", maxName, r.name,
			r.value, MaxSubScore))
	}
	sb.WriteString(fmt.Sprintf("  %-*s  %5.2f\n", maxName, "Overall", fm.Overall))
	return sb.String()
}
