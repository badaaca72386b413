package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/pmurley/ulb-trade-engine/internal/models"
	"github.com/pmurley/ulb-trade-engine/internal/trade"
)

const (
	historyLimit = 5
	rumourLimit  = 5
)

// handleHistory shows a team's most recent trades graded against today's values
func (hm *HandlerManager) handleHistory(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `!history <team name>`")
		return
	}

	league := hm.negotiator.League()
	team, ok := hm.lookupTeam(s, m, league, strings.Join(args, " "))
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	trades, err := hm.history.ListByTeam(ctx, team.ID)
	if err != nil {
		hm.logger.Error("Failed to read trade history: ", err)
		s.ChannelMessageSend(m.ChannelID, "Failed to read trade history: "+err.Error())
		return
	}
	if len(trades) == 0 {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("%s has not made any trades.", team.ID))
		return
	}

	s.ChannelMessageSendEmbed(m.ChannelID, buildHistoryEmbed(league, hm.value, team.ID, trades))
}

// buildHistoryEmbed lists the newest trades first with the team's net value
func buildHistoryEmbed(league *trade.League, value trade.MarketValueFunc, teamID string, trades []*models.CompletedTrade) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s Trade History", teamID),
		Color: getTeamColor(teamID),
	}

	shown := 0
	net := 0.0
	for i := len(trades) - 1; i >= 0; i-- {
		t := trades[i]
		grade := trade.GradeTrade(*t, league, value)
		teamNet, partner := grade.TeamA, t.TeamB
		if t.TeamB == teamID {
			teamNet, partner = grade.TeamB, t.TeamA
		}
		net += teamNet

		if shown >= historyLimit {
			continue
		}
		shown++
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s with %s (%s)", t.Date.Format("Jan 2, 2006"), partner, t.Source),
			Value: fmt.Sprintf("%s\nNet value: %s", describeTrade(league, t), formatSignedValue(teamNet)),
		})
	}

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%d trade%s | Net value of all trades: %s", len(trades), pluralize(len(trades)), formatSignedValue(net)),
	}
	return embed
}

func describeTrade(league *trade.League, t *models.CompletedTrade) string {
	return fmt.Sprintf("%s get %s\n%s get %s",
		t.TeamA, describeAssets(league, t.PlayersToA, t.PicksToA),
		t.TeamB, describeAssets(league, t.PlayersToB, t.PicksToB))
}

func describeAssets(league *trade.League, players []string, picks []models.DraftPick) string {
	var parts []string
	for _, id := range players {
		if pl, ok := league.Players[id]; ok {
			parts = append(parts, pl.Name)
		} else {
			parts = append(parts, "unknown player")
		}
	}
	for _, pick := range picks {
		parts = append(parts, pick.String())
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}

func formatSignedValue(v float64) string {
	if v < 0 {
		return "-$" + formatNumberShort(int(-v))
	}
	return "+$" + formatNumberShort(int(v))
}

// handleRumours posts who is shopping for what
func (hm *HandlerManager) handleRumours(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !hm.negotiator.Options().TradeRequestsEnabled {
		s.ChannelMessageSend(m.ChannelID, "Trade rumours are turned off for this league.")
		return
	}

	rumours := hm.negotiator.Rumours(rumourLimit)
	if len(rumours) == 0 {
		s.ChannelMessageSend(m.ChannelID, "The trade market is quiet right now.")
		return
	}

	s.ChannelMessageSendEmbed(m.ChannelID, buildRumoursEmbed(rumours))
}

func buildRumoursEmbed(rumours []trade.Rumour) *discordgo.MessageEmbed {
	var lines []string
	for _, r := range rumours {
		lines = append(lines, fmt.Sprintf("• **%s** are looking for %s help. %s have depth to spare.", r.Team, positionName(r.Position), r.Partner))
	}
	return &discordgo.MessageEmbed{
		Title:       "🗞️ Trade Rumours",
		Color:       colorCountered,
		Description: strings.Join(lines, "\n"),
	}
}

var positionNames = map[string]string{
	"C":  "catching",
	"1B": "first base",
	"2B": "second base",
	"3B": "third base",
	"SS": "shortstop",
	"OF": "outfield",
	"SP": "starting pitching",
	"RP": "bullpen",
}

func positionName(pos string) string {
	if name, ok := positionNames[pos]; ok {
		return name
	}
	return pos
}
