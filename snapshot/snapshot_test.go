/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package snapshot

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/mikeb26/courtbot/league"
	"github.com/mikeb26/courtbot/s3store"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func seedDir(t *testing.T) string {
	dir := t.TempDir()
	writeFile(t, dir, WeekDoc, `{"weekId":"w3","seasonId":"s1","courts":2,"timeSlots":1}`)
	writeFile(t, dir, PlayersDoc, `[
  {"id":"a","name":"Ann","skill":3.0,"teamId":"red"},
  {"id":"b","name":"Bob","skill":3.5,"teamId":"blue"}
]`)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	snap, err := Load(context.Background(), DirStore(seedDir(t)))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.WeekID != "w3" || snap.Courts != 2 || snap.TimeSlots != 1 {
		t.Errorf("week = %+v", snap.Week)
	}
	if len(snap.Players) != 2 || snap.Players[1].TeamID != "blue" {
		t.Errorf("players = %+v", snap.Players)
	}
	if snap.Layout.Count(league.SideA) != 2 {
		t.Errorf("expected doubles layout, got %+v", snap.Layout)
	}
	if snap.Config != league.DefaultConfig() {
		t.Errorf("expected default config, got %+v", snap.Config)
	}
	if len(snap.History.Matches) != 0 || len(snap.Skeletons) != 0 {
		t.Errorf("optional documents should be empty")
	}
}

func TestLoadOptionalDocuments(t *testing.T) {
	dir := seedDir(t)
	writeFile(t, dir, HistoryDoc, `{"matches":[{"weekId":"w1","court":1,"timeSlot":1,"teamA":["a"],"teamB":["b"],"playedAt":"2026-02-05"}]}`)
	writeFile(t, dir, LayoutDoc, `{"name":"singles","positions":[{"side":"A"},{"side":"B"}]}`)
	writeFile(t, dir, SkeletonsDoc, `[{"court":1,"timeSlot":1,"teamA":[],"teamB":[]}]`)
	writeFile(t, dir, ConfigDoc, "combinatorial_threshold: 10\n")

	snap, err := Load(context.Background(), DirStore(dir))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.History.Matches) != 1 || snap.History.Matches[0].PlayedAt.Year() != 2026 {
		t.Errorf("history = %+v", snap.History)
	}
	if snap.Layout.Name != "singles" {
		t.Errorf("layout = %+v", snap.Layout)
	}
	if len(snap.Skeletons) != 1 {
		t.Errorf("skeletons = %+v", snap.Skeletons)
	}
	if snap.Config.CombinatorialThreshold != 10 {
		t.Errorf("config = %+v", snap.Config)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T, dir string)
	}{
		{"missing players", func(t *testing.T, dir string) {
			os.Remove(filepath.Join(dir, PlayersDoc))
		}},
		{"bad layout", func(t *testing.T, dir string) {
			writeFile(t, dir, LayoutDoc, `{"positions":[{"side":"A"}]}`)
		}},
		{"bad config", func(t *testing.T, dir string) {
			writeFile(t, dir, ConfigDoc, "candidate_budget: -1\n")
		}},
		{"bad json", func(t *testing.T, dir string) {
			writeFile(t, dir, HistoryDoc, `{"matches":`)
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dir := seedDir(t)
			c.setup(t, dir)
			if _, err := Load(context.Background(), DirStore(dir)); err == nil {
				t.Errorf("%s: expected error", c.name)
			}
		})
	}
}

func TestCommit(t *testing.T) {
	ctx := context.Background()
	dir := seedDir(t)
	st := DirStore(dir)
	snap, err := Load(ctx, st)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	snap.History.Matches = []league.Match{
		{WeekID: "w2", Court: 1, TimeSlot: 1, TeamA: []string{"a"}, TeamB: []string{"b"}},
		{WeekID: "w3", Court: 1, TimeSlot: 1, TeamA: []string{"b"}, TeamB: []string{"a"}},
	}

	run := Scheduled{WeekID: "w3", SeasonID: "s1", Strategy: "legacy-sorted",
		Matches: []league.Match{{Court: 2, TimeSlot: 1,
			TeamA: []string{"a"}, TeamB: []string{"b"}}},
		SitOuts: []string{"c"}}
	if err := Commit(ctx, st, snap, run); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	var h league.History
	if err := ReadJSON(ctx, st, HistoryDoc, &h); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(h.Matches) != 2 {
		t.Fatalf("history matches = %d; want 2 (w3 replaced)", len(h.Matches))
	}
	if h.Matches[1].WeekID != "w3" || h.Matches[1].Court != 2 || h.Matches[1].SeasonID != "s1" {
		t.Errorf("committed match = %+v", h.Matches[1])
	}
	if len(h.SitOuts) != 1 || h.SitOuts[0].PlayerIDs[0] != "c" {
		t.Errorf("sit-outs = %+v", h.SitOuts)
	}

	var saved Scheduled
	if err := ReadJSON(ctx, st, ScheduleDoc("w3"), &saved); err != nil {
		t.Fatalf("ReadJSON schedule: %v", err)
	}
	if saved.Strategy != "legacy-sorted" || len(saved.Matches) != 1 {
		t.Errorf("saved schedule = %+v", saved)
	}

	if err := Commit(ctx, st, snap, Scheduled{}); err == nil {
		t.Errorf("expected error for missing week id")
	}
}

func TestDirStoreNotFound(t *testing.T) {
	_, err := DirStore(t.TempDir()).Read(context.Background(), "nope.json")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v; want ErrNotFound", err)
	}
}

// memObjects is an in-memory S3 object API.
type memObjects struct {
	mu   sync.Mutex
	objs map[string][]byte
}

func (m *memObjects) GetObject(_ context.Context, in *s3.GetObjectInput,
	_ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {

	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objs[*in.Key]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey"}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *memObjects) PutObject(_ context.Context, in *s3.PutObjectInput,
	_ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {

	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objs[*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (m *memObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput,
	_ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objs, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3StoreLoad(t *testing.T) {
	ctx := context.Background()
	objs := &memObjects{objs: map[string][]byte{
		"leagues/thu/week.json":    []byte(`{"weekId":"w1","courts":1,"timeSlots":2}`),
		"leagues/thu/players.json": []byte(`[{"id":"a","skill":3}]`),
	}}
	st := s3store.New(ctx, "test-bucket", "leagues/thu", false, false)
	st.Client = objs

	snap, err := Load(ctx, NewS3Store(st))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.WeekID != "w1" || len(snap.Players) != 1 {
		t.Errorf("snapshot = %+v", snap)
	}

	if err := SaveSchedule(ctx, NewS3Store(st), Scheduled{WeekID: "w1"}); err != nil {
		t.Fatalf("SaveSchedule: %v", err)
	}
	if _, ok := objs.objs["leagues/thu/schedules/w1.json"]; !ok {
		t.Errorf("schedule not written: %v", objs.objs)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	st, err := Open(ctx, "/tmp/league")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := st.(DirStore); !ok {
		t.Errorf("expected DirStore, got %T", st)
	}
	if _, err := Open(ctx, "s3:///nobucket"); err == nil {
		t.Errorf("expected error for missing bucket")
	}
}
