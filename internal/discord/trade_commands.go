package discord

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/pmurley/ulb-trade-engine/internal/cache"
	"github.com/pmurley/ulb-trade-engine/internal/models"
	"github.com/pmurley/ulb-trade-engine/internal/negotiation"
	"github.com/pmurley/ulb-trade-engine/internal/trade"
)

const (
	colorAccepted  = 0x2ecc71
	colorCountered = 0xf1c40f
	colorRejected  = 0xe74c3c
	colorTrade     = 0xffa500

	commandTimeout = 15 * time.Second
)

var pickPattern = regexp.MustCompile(`(?i)^(\d{4})\s*(?:r|rd|round)\s*(\d{1,2})$`)

// handlePropose sends a trade offer from the caller's team to an AI-run team
func (hm *HandlerManager) handlePropose(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		helpMsg := "Usage: `!propose <team>: <your players/picks> for <their players/picks>`\n" +
			"Example: `!propose Seattle Weiners: Juan Soto, 2026 R2 for Bobby Witt Jr.`\n" +
			"With retention: `!propose Seattle Weiners: Soto (retain 25%) for Witt`\n" +
			"Own more than one team? Add `--as=<team>`"
		s.ChannelMessageSend(m.ChannelID, helpMsg)
		return
	}

	req, err := parseProposal(args)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, err.Error())
		return
	}

	league := hm.negotiator.League()
	proposer, err := resolveProposer(league, m.Author.Username, req.As)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, err.Error())
		return
	}

	receiver, suggestions, ok := resolveTeam(league, req.Receiver)
	if !ok {
		msg := fmt.Sprintf("No team found matching '%s'", req.Receiver)
		if len(suggestions) > 0 {
			msg += "\n\nDid you mean:\n"
			for _, team := range suggestions {
				msg += fmt.Sprintf("• %s\n", team)
			}
		}
		s.ChannelMessageSend(m.ChannelID, msg)
		return
	}
	if len(receiver.Owners) > 0 {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("%s is run by its owners, not the AI. Send them your offer directly.", receiver.ID))
		return
	}

	p, problems := buildProposal(league, proposer.ID, receiver.ID, req)
	if len(problems) > 0 {
		s.ChannelMessageSend(m.ChannelID, "**Could not build the offer:**\n• "+strings.Join(problems, "\n• "))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	out, err := hm.negotiator.Submit(ctx, p)
	if err != nil {
		hm.logger.Error("Failed to record trade ", p.ID, ": ", err)
		s.ChannelMessageSend(m.ChannelID, "The trade was accepted but could not be recorded, so nothing changed. Please try again.")
		return
	}

	if out.Result != nil && out.Result.Counter != nil {
		hm.cache.SetPendingCounter(m.Author.Username, out.Result.Counter)
	}

	s.ChannelMessageSendEmbed(m.ChannelID, buildOutcomeEmbed(hm.negotiator.League(), out))
	if out.Executed() {
		hm.announce(out.Trade)
	}
}

// handleAccept takes the caller's open counter-offer
func (hm *HandlerManager) handleAccept(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	counter, ok := hm.cache.TakePendingCounter(m.Author.Username)
	if !ok {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("You have no open counter-offer. Counters expire after %d minutes.", int(cache.CounterTTL.Minutes())))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	out, err := hm.negotiator.Accept(ctx, counter)
	if err != nil {
		hm.logger.Error("Failed to record counter ", counter.ID, ": ", err)
		s.ChannelMessageSend(m.ChannelID, "The counter could not be recorded, so nothing changed.")
		return
	}

	s.ChannelMessageSendEmbed(m.ChannelID, buildOutcomeEmbed(hm.negotiator.League(), out))
	if out.Executed() {
		hm.announce(out.Trade)
	}
}

// AssetSpec is one comma-separated entry on a side of a proposal: a player
// name with optional retention, or a draft pick.
type AssetSpec struct {
	Name             string
	RetentionPercent float64
	PickYear         int
	PickRound        int
}

// IsPick reports whether the entry names a draft pick.
func (a AssetSpec) IsPick() bool {
	return a.PickYear > 0
}

// ProposalRequest is a parsed !propose command before names are resolved.
type ProposalRequest struct {
	As        string // team hint for owners of several teams
	Receiver  string
	Offered   []AssetSpec
	Requested []AssetSpec
}

// parseProposal reads "[--as=<team>] <team>: <assets> for <assets>".
func parseProposal(args []string) (*ProposalRequest, error) {
	req := &ProposalRequest{}
	var words []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "--as=") {
			req.As = strings.TrimSpace(strings.TrimPrefix(arg, "--as="))
			continue
		}
		words = append(words, arg)
	}

	input := strings.Join(words, " ")
	colon := strings.Index(input, ":")
	if colon == -1 {
		return nil, errors.New("Invalid format. Use: `!propose <team>: <players> for <players>`")
	}
	req.Receiver = strings.TrimSpace(input[:colon])
	if req.Receiver == "" {
		return nil, errors.New("Please name the team you are trading with.")
	}

	deal := input[colon+1:]
	lower := strings.ToLower(deal)
	if strings.Count(lower, " for ") != 1 {
		return nil, errors.New("Invalid format. Use: `!propose <team>: <players> for <players>`")
	}
	split := strings.Index(lower, " for ")

	var err error
	if req.Offered, err = parseAssetList(deal[:split]); err != nil {
		return nil, err
	}
	if req.Requested, err = parseAssetList(deal[split+len(" for "):]); err != nil {
		return nil, err
	}
	return req, nil
}

// parseAssetList splits a comma-separated list of players and picks
func parseAssetList(input string) ([]AssetSpec, error) {
	var result []AssetSpec

	for _, entry := range strings.Split(input, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if match := pickPattern.FindStringSubmatch(entry); match != nil {
			year, _ := strconv.Atoi(match[1])
			round, _ := strconv.Atoi(match[2])
			if round < 1 {
				return nil, fmt.Errorf("invalid round in '%s'", entry)
			}
			result = append(result, AssetSpec{PickYear: year, PickRound: round})
			continue
		}

		lowerEntry := strings.ToLower(entry)
		if strings.HasPrefix(lowerEntry, "cash") {
			return nil, errors.New("Cash considerations can't be offered to an AI team; retain salary on a player instead.")
		}

		asset := AssetSpec{Name: entry}
		if retainIdx := strings.Index(lowerEntry, "(retain"); retainIdx != -1 {
			asset.Name = strings.TrimSpace(entry[:retainIdx])
			var percent float64
			n, _ := fmt.Sscanf(lowerEntry[retainIdx:], "(retain %f%%)", &percent)
			if n != 1 || percent <= 0 || percent > 100 {
				return nil, fmt.Errorf("invalid retention in '%s', use e.g. (retain 25%%)", entry)
			}
			asset.RetentionPercent = percent
		}
		if asset.Name == "" {
			return nil, fmt.Errorf("missing player name in '%s'", entry)
		}
		result = append(result, asset)
	}
	return result, nil
}

// resolveProposer finds the caller's team. Owners of several teams pick one
// with a name hint.
func resolveProposer(league *trade.League, user, hint string) (models.Team, error) {
	owned := models.TeamsForOwner(league.TeamList(), user)
	switch {
	case len(owned) == 0:
		return models.Team{}, errors.New("You don't own a team in this league.")
	case hint == "" && len(owned) == 1:
		return owned[0], nil
	case hint == "":
		names := make([]string, len(owned))
		for i, t := range owned {
			names[i] = t.ID
		}
		return models.Team{}, fmt.Errorf("You own %s. Add `--as=<team>` to choose one.", strings.Join(names, " and "))
	}

	hintLower := strings.ToLower(hint)
	for _, t := range owned {
		if strings.Contains(strings.ToLower(t.ID), hintLower) {
			return t, nil
		}
	}
	return models.Team{}, fmt.Errorf("You don't own a team matching '%s'.", hint)
}

// resolveTeam matches a team by exact name, then by a unique partial name.
func resolveTeam(league *trade.League, name string) (models.Team, []string, bool) {
	for _, t := range league.TeamList() {
		if strings.EqualFold(t.ID, strings.TrimSpace(name)) {
			return t, nil, true
		}
	}
	similar := findSimilarTeams(name, league.TeamIDs())
	if len(similar) == 1 {
		return league.Teams[similar[0]], nil, true
	}
	return models.Team{}, similar, false
}

// buildProposal looks up every asset on the two rosters. Problems are
// returned as messages for the caller instead of a proposal.
func buildProposal(league *trade.League, proposer, receiver string, req *ProposalRequest) (*trade.Proposal, []string) {
	p := &trade.Proposal{
		Proposer: proposer,
		Receiver: receiver,
		Status:   trade.StatusPending,
	}
	var problems []string

	proposerRoster := league.Roster(proposer)
	for _, asset := range req.Offered {
		if asset.IsPick() {
			pick, err := findHeldPick(league, proposer, asset)
			if err != nil {
				problems = append(problems, err.Error())
				continue
			}
			p.PicksOffered = append(p.PicksOffered, pick)
			continue
		}
		player, err := findRosterPlayer(proposerRoster, proposer, asset.Name)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		p.PlayersOffered = append(p.PlayersOffered, player.ID)
		if asset.RetentionPercent > 0 {
			tp := models.TradedPlayer{Player: player, RetentionPercent: asset.RetentionPercent}
			p.SalaryRetained += tp.GetRetainedSalary(league.Season)
		}
	}

	receiverRoster := league.Roster(receiver)
	for _, asset := range req.Requested {
		if asset.IsPick() {
			pick, err := findHeldPick(league, receiver, asset)
			if err != nil {
				problems = append(problems, err.Error())
				continue
			}
			p.PicksRequested = append(p.PicksRequested, pick)
			continue
		}
		if asset.RetentionPercent > 0 {
			problems = append(problems, fmt.Sprintf("%s: salary can only be retained on players you send", asset.Name))
			continue
		}
		player, err := findRosterPlayer(receiverRoster, receiver, asset.Name)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		p.PlayersRequested = append(p.PlayersRequested, player.ID)
	}

	if len(problems) > 0 {
		return nil, problems
	}
	return p, nil
}

// findRosterPlayer tries an exact name match on the roster first, then a
// partial one
func findRosterPlayer(roster models.PlayerList, teamID, name string) (models.Player, error) {
	exactMatches := roster.FindByExactName(name)
	if len(exactMatches) > 1 {
		return models.Player{}, fmt.Errorf("%s (found %d players with this name on %s)", name, len(exactMatches), teamID)
	}
	if len(exactMatches) == 1 {
		return exactMatches[0], nil
	}

	matches := roster.SearchByName(name)
	if len(matches) == 0 {
		return models.Player{}, fmt.Errorf("%s is not on %s", name, teamID)
	}
	return matches[0], nil
}

func findHeldPick(league *trade.League, teamID string, asset AssetSpec) (models.DraftPick, error) {
	team, ok := league.Teams[teamID]
	if ok {
		if pick, found := team.FindPick(asset.PickYear, asset.PickRound); found {
			return pick, nil
		}
	}
	return models.DraftPick{}, fmt.Errorf("%s does not hold a %d Round %d pick", teamID, asset.PickYear, asset.PickRound)
}

// buildOutcomeEmbed shows the receiving team's answer with the numbers behind it
func buildOutcomeEmbed(league *trade.League, out *negotiation.Outcome) *discordgo.MessageEmbed {
	p := out.Proposal
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Offer to %s", p.Receiver),
		Description: p.Summary(league),
		Color:       colorRejected,
	}

	if !out.Validation.Valid {
		embed.Title = "Offer Not Valid"
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Problems",
			Value: "• " + strings.Join(out.Validation.Errors, "\n• "),
		})
		return embed
	}

	switch {
	case out.Executed():
		embed.Title = fmt.Sprintf("%s Accept", p.Receiver)
		embed.Color = colorAccepted
	case out.Result != nil && out.Result.Counter != nil:
		embed.Title = fmt.Sprintf("%s Counter", p.Receiver)
		embed.Color = colorCountered
	default:
		embed.Title = fmt.Sprintf("%s Decline", p.Receiver)
	}

	if p.Message != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Response",
			Value: p.Message,
		})
	}

	if out.Result != nil {
		v := out.Result.Valuation
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{
				Name:   "Offered Value",
				Value:  "$" + formatNumberShort(int(v.AdjustedOffered)),
				Inline: true,
			},
			&discordgo.MessageEmbedField{
				Name:   "Requested Value",
				Value:  "$" + formatNumberShort(int(v.AdjustedRequested)),
				Inline: true,
			},
			&discordgo.MessageEmbedField{
				Name:   "Gap",
				Value:  fmt.Sprintf("%+.1f%%", v.Ratio*100),
				Inline: true,
			},
		)

		if c := out.Result.Counter; c != nil {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Counter-Offer",
				Value: fmt.Sprintf("%s\nType `!accept` within %d minutes to take it.", c.Summary(league), int(cache.CounterTTL.Minutes())),
			})
		}
	}

	if len(out.Missing) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Skipped",
			Value: fmt.Sprintf("%d player%s no longer in the player pool", len(out.Missing), pluralize(len(out.Missing))),
		})
	}

	embed.Footer = &discordgo.MessageEmbedFooter{Text: "Proposal " + p.ID}
	return embed
}

// BuildTradeEmbed renders a completed trade for the trades channel
func BuildTradeEmbed(league *trade.League, t *models.CompletedTrade) *discordgo.MessageEmbed {
	var description strings.Builder
	description.WriteString("\n")

	writeSide := func(team string, players []string, picks []models.DraftPick) {
		description.WriteString(fmt.Sprintf("**%s** receive:\n", team))
		if len(players) == 0 && len(picks) == 0 {
			description.WriteString("• nothing\n")
		}
		for _, id := range players {
			if pl, ok := league.Players[id]; ok {
				description.WriteString(fmt.Sprintf("• %s (%s - %s)\n", pl.Name, pl.Position, pl.MLBTeam))
			} else {
				description.WriteString(fmt.Sprintf("• unknown player %s\n", id))
			}
		}
		for _, pick := range picks {
			description.WriteString(fmt.Sprintf("• %s\n", pick.String()))
		}
	}

	writeSide(t.TeamA, t.PlayersToA, t.PicksToA)
	description.WriteString("\n**↓ ↑**\n\n")
	writeSide(t.TeamB, t.PlayersToB, t.PicksToB)

	embed := &discordgo.MessageEmbed{
		Title:       "🔄 Trade Executed",
		Description: description.String(),
		Color:       colorTrade,
		Timestamp:   t.Date.Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s • %d assets moved", t.Source, len(t.PlayersToA)+len(t.PlayersToB)+len(t.PicksToA)+len(t.PicksToB)),
		},
	}

	if t.RetainedByA.IsPositive() {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Salary Retained",
			Value:  fmt.Sprintf("%s keeps paying $%s", t.TeamA, formatNumber(int(t.RetainedByA.IntPart()))),
			Inline: true,
		})
	}
	if t.RetainedByB.IsPositive() {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Salary Retained",
			Value:  fmt.Sprintf("%s keeps paying $%s", t.TeamB, formatNumber(int(t.RetainedByB.IntPart()))),
			Inline: true,
		})
	}

	return embed
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
