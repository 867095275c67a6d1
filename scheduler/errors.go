/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scheduler

import (
	"errors"
	"fmt"

	"github.com/mikeb26/courtbot/league"
)

// Configuration errors are returned before any work is done. Small pools,
// partial fills and tie-break exhaustion are not errors.
var (
	ErrDegenerateLayout = league.ErrDegenerateLayout
	ErrInvalidGrid      = errors.New("court count and time slots per court must be positive")
	ErrDuplicatePlayer  = errors.New("player appears more than once in the eligible pool")

	// ErrInvariantViolation means the engine produced an impossible
	// schedule, i.e. a bug.
	ErrInvariantViolation = errors.New("schedule invariant violated")
)

// InvariantError describes which player broke which invariant.
type InvariantError struct {
	PlayerID string
	Match    league.Match
	Reason   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v: player %v %v (%v)", ErrInvariantViolation,
		e.PlayerID, e.Reason, e.Match)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}
