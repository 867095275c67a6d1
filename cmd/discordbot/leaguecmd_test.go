/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/courtbot/league"
	"github.com/mikeb26/courtbot/snapshot"
)

func useTestLeague(t *testing.T) snapshot.Store {
	t.Helper()
	st := snapshot.DirStore(t.TempDir())
	snap := &snapshot.Snapshot{
		Week:   snapshot.Week{WeekID: "w2", SeasonID: "s1", Courts: 1, TimeSlots: 1},
		Layout: league.DoublesLayout(),
		Config: league.DefaultConfig(),
		History: league.History{Matches: []league.Match{
			{WeekID: "w1", SeasonID: "s1", Court: 1, TimeSlot: 1,
				TeamA: []string{"p0", "p1"}, TeamB: []string{"p2", "p3"}},
		}},
	}
	for i := 0; i < 5; i++ {
		snap.Players = append(snap.Players, league.Player{
			ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Player%d", i),
			Skill: 3 + 0.5*float64(i%2)})
	}

	orig := loadLeague
	loadLeague = func(ctx context.Context) (snapshot.Store, *snapshot.Snapshot, error) {
		return st, snap, nil
	}
	t.Cleanup(func() { loadLeague = orig })
	return st
}

func leagueInteraction(sub string,
	opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {

	return &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: string(LeagueCmd),
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{
					Name:    sub,
					Type:    discordgo.ApplicationCommandOptionSubCommand,
					Options: opts,
				},
			},
		},
	}
}

func TestLeagueScheduleCmdHandler(t *testing.T) {
	ctx := context.Background()
	st := useTestLeague(t)

	resp := dispatch(ctx, leagueInteraction("schedule"))
	if resp == nil || resp.Data == nil {
		t.Fatal("Expected non-nil response data")
	}
	if resp.Type != discordgo.InteractionResponseChannelMessageWithSource {
		t.Errorf("Expected response type %v, got %v",
			discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	}
	if !strings.Contains(resp.Data.Content, "Week w2 schedule (preview)") {
		t.Errorf("Expected preview title, got %q", resp.Data.Content)
	}
	if !strings.Contains(resp.Data.Content, "Sitting out:") {
		t.Errorf("Expected a sit-out line, got %q", resp.Data.Content)
	}
	if resp.Data.Flags != discordgo.MessageFlagsEphemeral {
		t.Errorf("Expected ephemeral response by default")
	}

	// once saved, the stored schedule is shown instead of a preview
	saved := snapshot.Scheduled{WeekID: "w2", Matches: []league.Match{
		{Court: 1, TimeSlot: 1, TeamA: []string{"p4", "p1"}, TeamB: []string{"p2", "p3"}},
	}, SitOuts: []string{"p0"}}
	if err := snapshot.SaveSchedule(ctx, st, saved); err != nil {
		t.Fatalf("SaveSchedule: %v", err)
	}
	resp = dispatch(ctx, leagueInteraction("schedule",
		&discordgo.ApplicationCommandInteractionDataOption{
			Name: "broadcast", Type: discordgo.ApplicationCommandOptionBoolean,
			Value: true}))
	if strings.Contains(resp.Data.Content, "preview") {
		t.Errorf("Expected saved schedule, got %q", resp.Data.Content)
	}
	if !strings.Contains(resp.Data.Content, "Player4") {
		t.Errorf("Expected saved matches, got %q", resp.Data.Content)
	}
	if resp.Data.Flags != 0 {
		t.Errorf("Expected broadcast response")
	}
}

func TestLeagueStatsCmdHandler(t *testing.T) {
	ctx := context.Background()
	useTestLeague(t)

	resp := dispatch(ctx, leagueInteraction("stats",
		&discordgo.ApplicationCommandInteractionDataOption{
			Name: "player", Type: discordgo.ApplicationCommandOptionString,
			Value: "p0"}))
	if !strings.Contains(resp.Data.Content, "Player0: 1 played") {
		t.Errorf("Expected Player0 stats, got %q", resp.Data.Content)
	}
	if strings.Contains(resp.Data.Content, "Player1:") {
		t.Errorf("Expected only Player0, got %q", resp.Data.Content)
	}

	resp = dispatch(ctx, leagueInteraction("stats",
		&discordgo.ApplicationCommandInteractionDataOption{
			Name: "player", Type: discordgo.ApplicationCommandOptionString,
			Value: "zz"}))
	if !strings.Contains(resp.Data.Content, "No player zz") {
		t.Errorf("Expected unknown player message, got %q", resp.Data.Content)
	}
}

func TestLeagueFairnessCmdHandler(t *testing.T) {
	ctx := context.Background()
	useTestLeague(t)

	resp := dispatch(ctx, leagueInteraction("fairness",
		&discordgo.ApplicationCommandInteractionDataOption{
			Name: "week", Type: discordgo.ApplicationCommandOptionString,
			Value: "w1"}))
	if !strings.Contains(resp.Data.Content, "Fairness for week w1") {
		t.Errorf("Expected fairness table, got %q", resp.Data.Content)
	}

	// the current week has not been played yet
	resp = dispatch(ctx, leagueInteraction("fairness"))
	if !strings.HasPrefix(resp.Data.Content, "Error fairness") {
		t.Errorf("Expected error for unplayed week, got %q", resp.Data.Content)
	}
}

func TestLeagueAssignAndHelp(t *testing.T) {
	ctx := context.Background()
	useTestLeague(t)

	resp := dispatch(ctx, leagueInteraction("assign"))
	if !strings.Contains(resp.Data.Content, "intra-team preview") {
		t.Errorf("Expected assign preview, got %q", resp.Data.Content)
	}

	resp = dispatch(ctx, leagueInteraction("bogus"))
	if resp.Data.Content != truncateContent(helpText) {
		t.Errorf("Expected help for unknown sub-command, got %q", resp.Data.Content)
	}
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()
	if resp := dispatch(ctx, &discordgo.Interaction{Type: discordgo.InteractionPing}); resp.Type != discordgo.InteractionResponsePong {
		t.Errorf("Expected pong, got %v", resp.Type)
	}

	inter := &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: "td"},
	}
	if resp := dispatch(ctx, inter); !strings.Contains(resp.Data.Content, "unknown command 'td'") {
		t.Errorf("Expected unknown command, got %q", resp.Data.Content)
	}

	if resp := dispatch(ctx, &discordgo.Interaction{Type: discordgo.InteractionModalSubmit}); resp != nil {
		t.Errorf("Expected nil for unhandled interaction type")
	}
}

func TestTruncateContent(t *testing.T) {
	long := strings.Repeat("x", 3000)
	got := truncateContent(long)
	if len([]rune(got)) != 1988+3 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncateContent produced %d runes", len([]rune(got)))
	}
	if truncateContent("short") != "short" {
		t.Errorf("short content should be unchanged")
	}
	if block := codeBlock(long); !strings.HasSuffix(block, "\n```") {
		t.Errorf("code block must stay closed after truncation")
	}
}
