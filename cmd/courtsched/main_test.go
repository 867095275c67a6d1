/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mikeb26/courtbot/league"
	"github.com/mikeb26/courtbot/snapshot"
)

func testSnapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Week: snapshot.Week{WeekID: "w1", Courts: 1, TimeSlots: 1},
		Players: []league.Player{
			{ID: "a", Name: "Ann", Skill: 3}, {ID: "b", Name: "Bob", Skill: 3},
			{ID: "c", Name: "Cy", Skill: 3}, {ID: "d", Name: "Di", Skill: 3},
		},
		History: league.History{Matches: []league.Match{
			{WeekID: "w0", Court: 1, TimeSlot: 1, TeamA: []string{"a", "b"},
				TeamB: []string{"c", "d"}},
		}},
		Layout: league.DoublesLayout(),
		Config: league.DefaultConfig(),
	}
}

func TestPrintRun(t *testing.T) {
	snap := testSnapshot()
	run, err := snap.Schedule()
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	var buf bytes.Buffer
	if err := printRun(&buf, snap, run, false); err != nil {
		t.Fatalf("printRun: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Week w1 (legacy-sorted") {
		t.Errorf("table output = %q", buf.String())
	}

	buf.Reset()
	if err := printRun(&buf, snap, run, true); err != nil {
		t.Fatalf("printRun json: %v", err)
	}
	var back snapshot.Scheduled
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("json output did not decode: %v\n%s", err, buf.String())
	}
	if len(back.Matches) != 1 {
		t.Errorf("decoded run = %+v", back)
	}
}

func TestStatsOutput(t *testing.T) {
	snap := testSnapshot()
	out := statsOutput(snap, "", "a")
	if !strings.HasPrefix(out, "Ann: 1 played") {
		t.Errorf("stats output = %q", out)
	}
	if strings.Contains(out, "Bob:") {
		t.Errorf("player filter ignored: %q", out)
	}
	if out := statsOutput(snap, "", "zz"); !strings.Contains(out, "No player zz") {
		t.Errorf("unknown player output = %q", out)
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"help", "schedule", "assign", "stats", "fairness"} {
		if _, ok := commands[name]; !ok {
			t.Errorf("command %q not registered", name)
		}
	}
}
