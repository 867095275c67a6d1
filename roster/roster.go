/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mikeb26/courtbot/internal"
	"github.com/mikeb26/courtbot/league"
)

type column int

const (
	colName column = iota
	colSkill
	colTeam
	colShare
	colID
	numCols
)

// header cell text (lowercased) to column
var headerNames = map[string]column{
	"name":   colName,
	"player": colName,
	"skill":  colSkill,
	"rating": colSkill,
	"ntrp":   colSkill,
	"level":  colSkill,
	"team":   colTeam,
	"share":  colShare,
	"id":     colID,
	"member": colID,
}

// FetchRoster downloads and parses the roster page at url. defaultTeam is
// applied to players whose row has no team column.
func FetchRoster(ctx context.Context, client *http.Client, url string,
	defaultTeam string) ([]league.Player, error) {

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("roster.fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roster.fetch: status %d fetching %s",
			resp.StatusCode, url)
	}

	players, err := Parse(resp.Body, defaultTeam)
	if err != nil {
		return nil, fmt.Errorf("roster.fetch: %v: %w", url, err)
	}
	return players, nil
}

// Parse reads the first HTML table whose header row has a Name column.
func Parse(r io.Reader, defaultTeam string) ([]league.Player, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return ParseDocument(doc, defaultTeam)
}

func ParseDocument(doc *goquery.Document, defaultTeam string) ([]league.Player, error) {
	var players []league.Player
	found := false
	doc.Find("table").EachWithBreak(func(_ int, tbl *goquery.Selection) bool {
		cols, ok := parseHeader(tbl)
		if !ok {
			return true
		}
		found = true
		players = parseRows(tbl, cols, defaultTeam)
		return false
	})
	if !found {
		return nil, fmt.Errorf("no roster table with a Name column")
	}
	return players, nil
}

// parseHeader maps each known column to its cell index, -1 when absent.
func parseHeader(tbl *goquery.Selection) ([numCols]int, bool) {
	var cols [numCols]int
	for i := range cols {
		cols[i] = -1
	}
	tbl.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Find("th").Length() > 0
	}).First().Find("th").Each(func(i int, th *goquery.Selection) {
		key := strings.ToLower(strings.TrimSpace(th.Text()))
		if c, ok := headerNames[key]; ok && cols[c] < 0 {
			cols[c] = i
		}
	})
	return cols, cols[colName] >= 0
}

func cellText(cells *goquery.Selection, idx int) string {
	if idx < 0 || idx >= cells.Length() {
		return ""
	}
	return strings.Join(strings.Fields(cells.Eq(idx).Text()), " ")
}

func parseRows(tbl *goquery.Selection, cols [numCols]int,
	defaultTeam string) []league.Player {

	var players []league.Player
	seen := make(map[string]bool)
	tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		name := cellText(cells, cols[colName])
		if name == "" {
			return
		}

		p := league.Player{
			Name:   name,
			ID:     cellText(cells, cols[colID]),
			TeamID: cellText(cells, cols[colTeam]),
		}
		if p.ID == "" {
			p.ID = slug(name)
		}
		if p.TeamID == "" {
			p.TeamID = defaultTeam
		}
		if s := cellText(cells, cols[colSkill]); s != "" {
			skill, err := strconv.ParseFloat(s, 64)
			if err != nil {
				log.Printf("roster.parse: ignoring skill %q for %v: %v", s, name, err)
			}
			p.Skill = skill
		}
		if s := strings.TrimSuffix(cellText(cells, cols[colShare]), "%"); s != "" {
			if share, err := strconv.ParseFloat(s, 64); err == nil {
				p.Share = share
			}
		}

		if seen[p.ID] {
			log.Printf("roster.parse: skipping duplicate player %v", p.ID)
			return
		}
		seen[p.ID] = true
		players = append(players, p)
	})
	return players
}

// slug lowercases name and joins its alphanumeric runs with '-'.
func slug(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r)
			dash = false
		} else {
			dash = true
		}
	}
	return sb.String()
}
