/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/courtbot/internal"
	"github.com/mikeb26/courtbot/league"
	"github.com/mikeb26/courtbot/roster"
	"github.com/mikeb26/courtbot/snapshot"
)

// this program fetches team roster pages (through the S3 web cache) and
// writes the merged roster as the snapshot's players.json

type source struct {
	url  string
	team string
}

// parseSources accepts "url" or "team=url" arguments.
func parseSources(args []string) []source {
	var out []source
	for _, a := range args {
		if team, url, ok := strings.Cut(a, "="); ok && !strings.Contains(team, "/") {
			out = append(out, source{url: url, team: team})
		} else {
			out = append(out, source{url: a})
		}
	}
	return out
}

// fetchAll fetches every source concurrently and merges the rosters in
// argument order; later duplicates of a player id are dropped.
func fetchAll(ctx context.Context, client *http.Client,
	sources []source) ([]league.Player, error) {

	rosters := make([][]league.Player, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4) // avoid pegging the league site
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			players, err := roster.FetchRoster(gctx, client, src.url, src.team)
			if err != nil {
				return err
			}
			rosters[i] = players
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []league.Player
	seen := make(map[string]bool)
	for _, r := range rosters {
		for _, p := range r {
			if seen[p.ID] {
				log.Printf("rosterimport: dropping duplicate player %v", p.ID)
				continue
			}
			seen[p.ID] = true
			merged = append(merged, p)
		}
	}
	return merged, nil
}

func main() {
	ctx := context.Background()

	fs := flag.NewFlagSet("rosterimport", flag.ExitOnError)
	uri := fs.String("snapshot", os.Getenv("COURTBOT_SNAPSHOT"),
		"league snapshot directory or s3://bucket/prefix")
	bucket := fs.String("cachebucket", internal.LeagueBucket,
		"S3 bucket for the web cache")
	maxAge := fs.Duration("maxage", 12*time.Hour, "web cache TTL")
	dryRun := fs.Bool("dryrun", false, "print the roster instead of saving it")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}
	if fs.NArg() == 0 || (*uri == "" && !*dryRun) {
		fmt.Fprintln(os.Stderr, "usage: rosterimport --snapshot URI [team=]URL...")
		fs.Usage()
		os.Exit(1)
	}

	client := internal.NewCachedHttpClient(ctx, *bucket, *maxAge)
	players, err := fetchAll(ctx, client, parseSources(fs.Args()))
	if err != nil {
		log.Fatalf("Error fetching rosters: %v", err)
	}

	if *dryRun {
		for _, p := range players {
			fmt.Printf("%-24s %5.2f  %v\n", p.Name, p.Skill, p.TeamID)
		}
		return
	}

	st, err := snapshot.Open(ctx, *uri)
	if err != nil {
		log.Fatalf("Error opening snapshot %v: %v", *uri, err)
	}
	if err := snapshot.WriteJSON(ctx, st, snapshot.PlayersDoc, players); err != nil {
		log.Fatalf("Error saving roster: %v", err)
	}
	fmt.Printf("imported %d players into %v\n", len(players), st)
}
