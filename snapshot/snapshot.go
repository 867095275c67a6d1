/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/courtbot/league"
)

// Document names within a snapshot location.
const (
	WeekDoc      = "week.json"
	PlayersDoc   = "players.json"
	HistoryDoc   = "history.json"
	LayoutDoc    = "layout.json"
	SkeletonsDoc = "skeletons.json"
	ConfigDoc    = "league.yaml"
	schedulesDir = "schedules"
)

// Week describes the run being scheduled.
type Week struct {
	WeekID    string `json:"weekId"`
	SeasonID  string `json:"seasonId,omitempty"`
	Courts    int    `json:"courts"`
	TimeSlots int    `json:"timeSlots"`
}

// Snapshot is everything one scheduling run reads. Layout, Skeletons and
// Config are optional in storage and take defaults when absent.
type Snapshot struct {
	Week
	Players   []league.Player
	History   league.History
	Layout    league.CourtLayout
	Skeletons []league.Match
	Config    league.Config
}

// Load fetches every snapshot document from st in parallel. week.json and
// players.json are required.
func Load(ctx context.Context, st Store) (*Snapshot, error) {
	snap := &Snapshot{
		Layout: league.DoublesLayout(),
		Config: league.DefaultConfig(),
	}

	optional := func(err error) error {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ReadJSON(gctx, st, WeekDoc, &snap.Week)
	})
	g.Go(func() error {
		return ReadJSON(gctx, st, PlayersDoc, &snap.Players)
	})
	g.Go(func() error {
		return optional(ReadJSON(gctx, st, HistoryDoc, &snap.History))
	})
	g.Go(func() error {
		var layout league.CourtLayout
		err := ReadJSON(gctx, st, LayoutDoc, &layout)
		if err == nil {
			snap.Layout = layout
		}
		return optional(err)
	})
	g.Go(func() error {
		return optional(ReadJSON(gctx, st, SkeletonsDoc, &snap.Skeletons))
	})
	g.Go(func() error {
		data, err := st.Read(gctx, ConfigDoc)
		if err != nil {
			return optional(err)
		}
		cfg, err := league.ParseConfig(data)
		if err != nil {
			return err
		}
		snap.Config = cfg
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("snapshot.load: %v: %w", st, err)
	}

	if err := snap.Layout.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot.load: %v: %w", st, err)
	}
	return snap, nil
}

// LoadURI opens uri and loads the snapshot stored there.
func LoadURI(ctx context.Context, uri string) (*Snapshot, error) {
	st, err := Open(ctx, uri)
	if err != nil {
		return nil, err
	}
	return Load(ctx, st)
}

// Scheduled is the persisted outcome of one run.
type Scheduled struct {
	WeekID        string         `json:"weekId"`
	SeasonID      string         `json:"seasonId,omitempty"`
	Strategy      string         `json:"strategy,omitempty"`
	FairnessScore float64        `json:"fairnessScore,omitempty"`
	Matches       []league.Match `json:"matches"`
	SitOuts       []string       `json:"sitOuts"`
}

// ScheduleDoc is the document name a week's schedule is saved under.
func ScheduleDoc(weekID string) string {
	return path.Join(schedulesDir, weekID+".json")
}

// SaveSchedule writes the schedule document for the week without touching
// history, so a run can be reviewed before it is committed.
func SaveSchedule(ctx context.Context, st Store, s Scheduled) error {
	return WriteJSON(ctx, st, ScheduleDoc(s.WeekID), s)
}

// Commit folds a run into the snapshot's history and persists both the
// schedule and the updated history. Matches or sit-outs already recorded for
// the same week are replaced.
func Commit(ctx context.Context, st Store, snap *Snapshot, s Scheduled) error {
	if s.WeekID == "" {
		return fmt.Errorf("snapshot.commit: missing week id")
	}

	h := league.History{}
	for _, m := range snap.History.Matches {
		if m.WeekID != s.WeekID {
			h.Matches = append(h.Matches, m)
		}
	}
	for _, so := range snap.History.SitOuts {
		if so.WeekID != s.WeekID {
			h.SitOuts = append(h.SitOuts, so)
		}
	}
	for _, m := range s.Matches {
		m = m.Clone()
		m.WeekID, m.SeasonID = s.WeekID, s.SeasonID
		h.Matches = append(h.Matches, m)
	}
	if len(s.SitOuts) > 0 {
		h.SitOuts = append(h.SitOuts, league.SitOut{WeekID: s.WeekID,
			SeasonID: s.SeasonID, PlayerIDs: s.SitOuts})
	}

	if err := SaveSchedule(ctx, st, s); err != nil {
		return fmt.Errorf("snapshot.commit: %w", err)
	}
	if err := WriteJSON(ctx, st, HistoryDoc, h); err != nil {
		return fmt.Errorf("snapshot.commit: %w", err)
	}
	log.Printf("snapshot.commit: %v: week %v committed with %d matches", st,
		s.WeekID, len(s.Matches))
	snap.History = h
	return nil
}
