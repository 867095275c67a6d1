/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scheduler

import (
	"math/rand"
	"time"
)

// RandSource is the randomness the auto-assigner draws from. *rand.Rand
// satisfies it.
type RandSource interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a seeded source; runs with the same seed are identical.
func NewRand(seed int64) RandSource {
	return rand.New(rand.NewSource(seed))
}

// NewTimeRand returns a source seeded from the wall clock, for production
// runs where week-over-week variety is wanted.
func NewTimeRand() RandSource {
	return NewRand(time.Now().UnixNano())
}
