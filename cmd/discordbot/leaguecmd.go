/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/courtbot/scheduler"
	"github.com/mikeb26/courtbot/snapshot"
)

type LeagueSubCommand string

const (
	LeagueHelpCmd     LeagueSubCommand = "help"
	LeagueScheduleCmd LeagueSubCommand = "schedule"
	LeagueAssignCmd   LeagueSubCommand = "assign"
	LeagueStatsCmd    LeagueSubCommand = "stats"
	LeagueFairnessCmd LeagueSubCommand = "fairness"
)

var leagueSubCmdHdlrs = map[LeagueSubCommand]CmdHandler{
	LeagueHelpCmd:     leagueHelpCmdHandler,
	LeagueScheduleCmd: leagueScheduleCmdHandler,
	LeagueAssignCmd:   leagueAssignCmdHandler,
	LeagueStatsCmd:    leagueStatsCmdHandler,
	LeagueFairnessCmd: leagueFairnessCmdHandler,
}

// loadLeague returns the league snapshot the bot serves; tests replace it.
var loadLeague = func(ctx context.Context) (snapshot.Store, *snapshot.Snapshot, error) {
	uri := os.Getenv("COURTBOT_SNAPSHOT")
	if uri == "" {
		return nil, nil, fmt.Errorf("COURTBOT_SNAPSHOT is not set")
	}
	st, err := snapshot.Open(ctx, uri)
	if err != nil {
		return nil, nil, err
	}
	snap, err := snapshot.Load(ctx, st)
	if err != nil {
		return nil, nil, err
	}
	return st, snap, nil
}

func leagueCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := leagueHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := leagueSubCmdHdlrs[LeagueSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

// subOptions returns the sub-command's string options and broadcast flag.
func subOptions(inter *discordgo.Interaction) (map[string]string, bool) {
	opts := make(map[string]string)
	broadcast := false
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return opts, broadcast
	}
	for _, opt := range data.Options[0].Options {
		if opt.Name == "broadcast" {
			broadcast = opt.BoolValue()
		} else if opt.Type == discordgo.ApplicationCommandOptionString {
			opts[opt.Name] = opt.StringValue()
		}
	}
	return opts, broadcast
}

func newResponse(broadcast bool) *discordgo.InteractionResponse {
	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{},
	}
	if !broadcast {
		resp.Data.Flags = discordgo.MessageFlagsEphemeral
	}
	return resp
}

func errorResponse(op string, err error) *discordgo.InteractionResponse {
	resp := newResponse(false)
	resp.Data.Content = fmt.Sprintf("Error %v: %v", op, err)
	log.Printf("discordbot.%v: %v", op, err)
	return resp
}

// codeBlock wraps preformatted tables so discord keeps the alignment.
func codeBlock(s string) string {
	return truncateContent("```\n" + s) + "\n```"
}

//go:embed help.md
var helpText string

func leagueHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse(false)
	resp.Data.Content = truncateContent(helpText)
	return resp
}

func leagueScheduleCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	_, broadcast := subOptions(inter)
	st, snap, err := loadLeague(ctx)
	if err != nil {
		return errorResponse("schedule", err)
	}

	title := fmt.Sprintf("Week %v schedule", snap.WeekID)
	var run snapshot.Scheduled
	err = snapshot.ReadJSON(ctx, st, snapshot.ScheduleDoc(snap.WeekID), &run)
	if errors.Is(err, snapshot.ErrNotFound) {
		run, err = snap.Schedule()
		title += " (preview)"
	}
	if err != nil {
		return errorResponse("schedule", err)
	}

	resp := newResponse(broadcast)
	resp.Data.Content = codeBlock(fmt.Sprintf("%v\n\n%v", title, snap.Output(run)))
	return resp
}

func leagueAssignCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	_, broadcast := subOptions(inter)
	_, snap, err := loadLeague(ctx)
	if err != nil {
		return errorResponse("assign", err)
	}
	run, err := snap.Assign(scheduler.NewTimeRand())
	if err != nil {
		return errorResponse("assign", err)
	}

	resp := newResponse(broadcast)
	resp.Data.Content = codeBlock(fmt.Sprintf("Week %v %v preview\n\n%v",
		snap.WeekID, run.Strategy, snap.Output(run)))
	return resp
}

func leagueStatsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	opts, broadcast := subOptions(inter)
	_, snap, err := loadLeague(ctx)
	if err != nil {
		return errorResponse("stats", err)
	}

	season, ok := opts["season"]
	if !ok {
		season = snap.SeasonID
	}
	out, ok := snap.StatsOutput(season, opts["player"])
	if !ok {
		resp := newResponse(false)
		resp.Data.Content = fmt.Sprintf("No player %v on the roster",
			opts["player"])
		return resp
	}

	resp := newResponse(broadcast)
	resp.Data.Content = codeBlock(out)
	return resp
}

func leagueFairnessCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	opts, broadcast := subOptions(inter)
	_, snap, err := loadLeague(ctx)
	if err != nil {
		return errorResponse("fairness", err)
	}
	week := opts["week"]
	if week == "" {
		week = snap.WeekID
	}
	fm, err := snap.WeekFairness(week)
	if err != nil {
		return errorResponse("fairness", err)
	}

	resp := newResponse(broadcast)
	resp.Data.Content = codeBlock(scheduler.BuildFairnessOutput(week, fm))
	return resp
}

func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
