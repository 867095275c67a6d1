/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

import "math"

// A side that is stronger by skillSpread combined rating points is expected
// to score about 10x as often as its opponent.
const skillSpread = 2.0

// ExpectedScore is the logistic win expectancy of a side with combined skill
// mySkill against oppSkill, in the same shape as the Elo expected score.
func ExpectedScore(mySkill float64, oppSkill float64) float64 {
	exp := math.Pow(10, (oppSkill-mySkill)/skillSpread)
	return 1.0 / (exp + 1.0)
}

// MatchExpectancy returns side A's win expectancy for m.
func MatchExpectancy(m Match, idx PlayerIndex) float64 {
	return ExpectedScore(idx.SkillOf(m.TeamA), idx.SkillOf(m.TeamB))
}
