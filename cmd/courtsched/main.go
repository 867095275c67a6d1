/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mikeb26/courtbot/league"
	"github.com/mikeb26/courtbot/scheduler"
	"github.com/mikeb26/courtbot/snapshot"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":     handleHelp,
	"schedule": handleSchedule,
	"assign":   handleAssign,
	"stats":    handleStats,
	"fairness": handleFairness,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

// runFlags are shared by schedule and assign.
type runFlags struct {
	snapshot *string
	config   *string
	commit   *bool
	asJSON   *bool
}

func addRunFlags(fs *flag.FlagSet) runFlags {
	return runFlags{
		snapshot: fs.String("snapshot", os.Getenv("COURTBOT_SNAPSHOT"),
			"league snapshot directory or s3://bucket/prefix"),
		config: fs.String("config", "", "league.yaml overriding the snapshot config"),
		commit: fs.Bool("commit", false, "save the run and fold it into history"),
		asJSON: fs.Bool("json", false, "print JSON instead of a table"),
	}
}

func loadSnapshot(ctx context.Context, uri string,
	configPath string) (snapshot.Store, *snapshot.Snapshot) {

	st, err := snapshot.Open(ctx, uri)
	if err != nil {
		log.Fatalf("Error opening snapshot %v: %v", uri, err)
	}
	snap, err := snapshot.Load(ctx, st)
	if err != nil {
		log.Fatalf("Error loading snapshot %v: %v", uri, err)
	}
	if configPath != "" {
		snap.Config, err = league.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Error loading config %v: %v", configPath, err)
		}
	}
	return st, snap
}

func finishRun(ctx context.Context, w io.Writer, st snapshot.Store,
	snap *snapshot.Snapshot, run snapshot.Scheduled, rf runFlags) {

	if *rf.commit {
		if err := snapshot.Commit(ctx, st, snap, run); err != nil {
			log.Fatalf("Error committing week %v: %v", run.WeekID, err)
		}
	}
	if err := printRun(w, snap, run, *rf.asJSON); err != nil {
		log.Fatalf("Error writing output: %v", err)
	}
}

func printRun(w io.Writer, snap *snapshot.Snapshot, run snapshot.Scheduled,
	asJSON bool) error {

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	}
	_, err := fmt.Fprintf(w, "Week %v (%v, fairness %.2f)\n\n%s", run.WeekID,
		run.Strategy, run.FairnessScore, snap.Output(run))
	return err
}

func handleSchedule(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("schedule", flag.ExitOnError)
	rf := addRunFlags(fs)
	courts := fs.Int("courts", 0, "override the week's court count")
	slots := fs.Int("slots", 0, "override the week's time slots per court")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *rf.snapshot == "" {
		fmt.Fprintln(os.Stderr, "Please provide a --snapshot location.")
		fs.Usage()
		os.Exit(1)
	}

	st, snap := loadSnapshot(ctx, *rf.snapshot, *rf.config)
	if *courts > 0 {
		snap.Courts = *courts
	}
	if *slots > 0 {
		snap.TimeSlots = *slots
	}
	run, err := snap.Schedule()
	if err != nil {
		log.Fatalf("Error scheduling week %v: %v", snap.WeekID, err)
	}
	finishRun(ctx, os.Stdout, st, snap, run, rf)
}

func handleAssign(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("assign", flag.ExitOnError)
	rf := addRunFlags(fs)
	seed := fs.Int64("seed", 0, "random seed (0 uses the clock)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *rf.snapshot == "" {
		fmt.Fprintln(os.Stderr, "Please provide a --snapshot location.")
		fs.Usage()
		os.Exit(1)
	}

	st, snap := loadSnapshot(ctx, *rf.snapshot, *rf.config)
	rng := scheduler.NewTimeRand()
	if *seed != 0 {
		rng = scheduler.NewRand(*seed)
	}
	run, err := snap.Assign(rng)
	if err != nil {
		log.Fatalf("Error assigning week %v: %v", snap.WeekID, err)
	}
	finishRun(ctx, os.Stdout, st, snap, run, rf)
}

func handleStats(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	uri := fs.String("snapshot", os.Getenv("COURTBOT_SNAPSHOT"),
		"league snapshot directory or s3://bucket/prefix")
	season := fs.String("season", "", "restrict to one season")
	player := fs.String("player", "", "only show one player")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *uri == "" {
		fmt.Fprintln(os.Stderr, "Please provide a --snapshot location.")
		fs.Usage()
		os.Exit(1)
	}

	_, snap := loadSnapshot(ctx, *uri, "")
	fmt.Print(statsOutput(snap, *season, *player))
}

func statsOutput(snap *snapshot.Snapshot, seasonID string, playerID string) string {
	out, ok := snap.StatsOutput(seasonID, playerID)
	if !ok {
		return fmt.Sprintf("No player %v on the roster\n", playerID)
	}
	return out
}

func handleFairness(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("fairness", flag.ExitOnError)
	uri := fs.String("snapshot", os.Getenv("COURTBOT_SNAPSHOT"),
		"league snapshot directory or s3://bucket/prefix")
	week := fs.String("week", "", "week to score (defaults to the snapshot week)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *uri == "" {
		fmt.Fprintln(os.Stderr, "Please provide a --snapshot location.")
		fs.Usage()
		os.Exit(1)
	}

	_, snap := loadSnapshot(ctx, *uri, "")
	weekID := *week
	if weekID == "" {
		weekID = snap.WeekID
	}
	fm, err := snap.WeekFairness(weekID)
	if err != nil {
		log.Fatalf("Error scoring week %v: %v", weekID, err)
	}
	fmt.Print(scheduler.BuildFairnessOutput(weekID, fm))
}
