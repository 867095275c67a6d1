/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseSources(t *testing.T) {
	got := parseSources([]string{
		"red=https://example.com/red",
		"https://example.com/roster?team=blue",
	})
	if len(got) != 2 {
		t.Fatalf("got %d sources; want 2", len(got))
	}
	if got[0].team != "red" || got[0].url != "https://example.com/red" {
		t.Errorf("source 0 = %+v", got[0])
	}
	if got[1].team != "" || got[1].url != "https://example.com/roster?team=blue" {
		t.Errorf("source 1 = %+v", got[1])
	}
}

func TestFetchAll(t *testing.T) {
	pages := map[string]string{
		"/red":  `<table><tr><th>Name</th><th>Skill</th></tr><tr><td>Ann</td><td>3.5</td></tr><tr><td>Bob</td><td>3.0</td></tr></table>`,
		"/blue": `<table><tr><th>Name</th><th>Skill</th></tr><tr><td>Cy</td><td>4.0</td></tr><tr><td>Ann</td><td>3.5</td></tr></table>`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	players, err := fetchAll(context.Background(), srv.Client(),
		parseSources([]string{"red=" + srv.URL + "/red", "blue=" + srv.URL + "/blue"}))
	if err != nil {
		t.Fatalf("fetchAll: %v", err)
	}
	if len(players) != 3 {
		t.Fatalf("got %d players; want 3 (duplicate dropped): %+v", len(players), players)
	}
	if players[0].TeamID != "red" || players[2].Name != "Cy" || players[2].TeamID != "blue" {
		t.Errorf("players = %+v", players)
	}

	if _, err := fetchAll(context.Background(), srv.Client(),
		parseSources([]string{srv.URL + "/missing"})); err == nil {
		t.Errorf("expected error for missing roster page")
	}
}
