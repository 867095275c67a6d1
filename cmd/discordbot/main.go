/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"
)

// secrets and ids come from the environment
const (
	envToken   = "COURTBOT_TOKEN"
	envPubKey  = "COURTBOT_PUBKEY"
	envAppID   = "COURTBOT_APPID"
	envCmdID   = "COURTBOT_CMDID"
	envCmdHash = "COURTBOT_CMDHASH"
	envAddr    = "COURTBOT_ADDR"
)

var botPubKey ed25519.PublicKey
var botAppId string

var client *discordgo.Session

type TopLevelCommand string

const (
	LeagueCmd TopLevelCommand = "league"
)

type CmdHandler func(ctx context.Context,
	i *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	LeagueCmd: leagueCmdHandler,
}

func interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, botPubKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, body)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := dispatch(r.Context(), &inter)
	if resp == nil {
		log.Printf("discordbot.int: unimplemented interation type %v: inter:%v",
			inter.Type, inter)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(rawResp); err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
	}
}

// dispatch returns nil for interaction types the bot does not handle.
func dispatch(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{}
	switch inter.Type {
	case discordgo.InteractionPing:
		resp.Type = discordgo.InteractionResponsePong
	case discordgo.InteractionApplicationCommand:
		name := inter.ApplicationCommandData().Name
		hdlr, ok := topLevelCmdHdlrs[TopLevelCommand(name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'", name),
				Flags:   discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(ctx, inter)
		}
	default:
		return nil
	}
	return resp
}

func initClient() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	pubKeyBytes, err := hex.DecodeString(os.Getenv(envPubKey))
	if err != nil || len(pubKeyBytes) != ed25519.PublicKeySize {
		log.Fatalf("discordbot.init: Failed to parse public key from %v: %v",
			envPubKey, err)
	}
	botPubKey = ed25519.PublicKey(pubKeyBytes)
	botAppId = os.Getenv(envAppID)

	client, err = discordgo.New("Bot " + os.Getenv(envToken))
	if err != nil {
		log.Fatalf("dicordbot.init: Failed to initialize discord client: %v", err)
	}
}

func cmdHash(cmd *discordgo.ApplicationCommand) string {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		log.Fatalf("discordbot.reg: failed to marshal cmd: %v", err)
	}
	hash := sha256.Sum256(cmdJson)
	return hex.EncodeToString(hash[:])
}

func broadcastOpt() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}
}

func leagueCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        string(LeagueCmd),
		Description: "Doubles league schedule and stats; try /league help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(LeagueHelpCmd),
				Description: "Show usage for league",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(LeagueScheduleCmd),
				Description: "Show this week's schedule",
				Options:     []*discordgo.ApplicationCommandOption{broadcastOpt()},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(LeagueAssignCmd),
				Description: "Preview an auto-assigned fill of this week's matches",
				Options:     []*discordgo.ApplicationCommandOption{broadcastOpt()},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(LeagueStatsCmd),
				Description: "Show partner, opponent, court and sit-out counts",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "player",
						Description: "Player id (default is everyone)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "season",
						Description: "Season id (default is the current season)",
						Required:    false,
					},
					broadcastOpt(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(LeagueFairnessCmd),
				Description: "Show fairness sub-scores for a played week",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "week",
						Description: "Week id (default is the current week)",
						Required:    false,
					},
					broadcastOpt(),
				},
			},
		},
	}
}

func registerSlashCommands() {
	cmdDef := leagueCommand()
	cmdID := os.Getenv(envCmdID)

	if cmdID == "" {
		cmd, err := client.ApplicationCommandCreate(botAppId, "", cmdDef)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v", cmdDef.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v)", cmd.Name, cmd.ID)
	} else if hash := cmdHash(cmdDef); hash != os.Getenv(envCmdHash) {
		cmd, err := client.ApplicationCommandEdit(botAppId, "", cmdID, cmdDef)
		if err != nil {
			log.Printf("discordbot.reg: failed to update %v: %v", cmdDef.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: updated %v(cmdID:%v); please set %v=%v",
			cmd.Name, cmd.ID, envCmdHash, hash)
	}
}

func main() {
	initClient()
	go registerSlashCommands()

	addr := os.Getenv(envAddr)
	if addr == "" {
		addr = ":8080"
	}
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v%v", hostname, addr)

	http.HandleFunc("/DiscordBot/Interaction", interactionHandler)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
