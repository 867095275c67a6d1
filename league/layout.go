/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

import (
	"errors"
	"fmt"
)

type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// ErrDegenerateLayout is returned for a court layout that cannot host a
// two-sided match.
var ErrDegenerateLayout = errors.New("court layout needs at least one A and one B position")

type Position struct {
	Side Side   `json:"side" yaml:"side"`
	Role string `json:"role,omitempty" yaml:"role,omitempty"`
}

// CourtLayout is the ordered set of positions on one court. A single layout
// is shared read-only by every match in a scheduling run.
type CourtLayout struct {
	Name      string     `json:"name,omitempty" yaml:"name,omitempty"`
	Positions []Position `json:"positions" yaml:"positions"`
}

// DoublesLayout is the standard 2v2 layout.
func DoublesLayout() CourtLayout {
	return CourtLayout{
		Name: "doubles",
		Positions: []Position{
			{Side: SideA, Role: "deuce"},
			{Side: SideA, Role: "ad"},
			{Side: SideB, Role: "deuce"},
			{Side: SideB, Role: "ad"},
		},
	}
}

func (l CourtLayout) Count(side Side) int {
	n := 0
	for _, pos := range l.Positions {
		if pos.Side == side {
			n++
		}
	}
	return n
}

// Validate rejects layouts with an empty side or an unknown side tag.
func (l CourtLayout) Validate() error {
	for i, pos := range l.Positions {
		if pos.Side != SideA && pos.Side != SideB {
			return fmt.Errorf("%w: position %d has side %q", ErrDegenerateLayout,
				i, pos.Side)
		}
	}
	if l.Count(SideA) == 0 || l.Count(SideB) == 0 {
		return fmt.Errorf("%w: %d A / %d B positions", ErrDegenerateLayout,
			l.Count(SideA), l.Count(SideB))
	}
	return nil
}
