package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/pmurley/ulb-trade-engine/internal/models"
)

const maxEmbedsPerMessage = 10

// handlePlayer looks up a player by name and displays their info
func (hm *HandlerManager) handlePlayer(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `!player <player name>`")
		return
	}

	// Join args to handle multi-word names
	playerName := strings.Join(args, " ")

	players, err := hm.ensurePlayersLoaded()
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, "Failed to load player data: "+err.Error())
		return
	}
	season := hm.negotiator.League().Season

	// Try exact match first
	exactMatches := players.FindByExactName(playerName)
	if len(exactMatches) > 0 {
		var embeds []*discordgo.MessageEmbed
		for i := range exactMatches {
			embeds = append(embeds, hm.buildPlayerEmbed(&exactMatches[i], season))
		}
		sendEmbeds(s, m.ChannelID, embeds)
		return
	}

	// No exact match, try partial search
	matches := players.SearchByName(playerName)
	if len(matches) == 0 {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("No player found matching '%s'", playerName))
		return
	}

	if len(matches) > 1 {
		s.ChannelMessageSend(m.ChannelID, formatPlayerMatches(playerName, matches))
		return
	}

	s.ChannelMessageSendEmbed(m.ChannelID, hm.buildPlayerEmbed(&matches[0], season))
}

// formatPlayerMatches lists an ambiguous search, best players first
func formatPlayerMatches(search string, matches models.PlayerList) string {
	matches.SortByPoints()

	msg := fmt.Sprintf("Multiple players found matching '%s':\n", search)
	for i, p := range matches {
		if i >= 10 {
			msg += fmt.Sprintf("... and %d more\n", len(matches)-10)
			break
		}
		msg += fmt.Sprintf("• %s (%s, %s)\n", p.Name, p.Position, p.MLBTeam)
	}
	return msg + "\nPlease be more specific."
}

// buildPlayerEmbed creates a rich embed for player information
func (hm *HandlerManager) buildPlayerEmbed(p *models.Player, season int) *discordgo.MessageEmbed {
	embed := buildPlayerEmbed(p, season)
	if hm.value != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Trade Value",
			Value:  "$" + formatNumberShort(int(hm.value(*p))),
			Inline: true,
		})
	}
	return embed
}

func buildPlayerEmbed(p *models.Player, season int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: p.Name,
		Color: getTeamColor(p.ULBTeam),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Position",
				Value:  p.Position,
				Inline: true,
			},
			{
				Name:   "MLB Team",
				Value:  p.MLBTeam,
				Inline: true,
			},
			{
				Name:   "Age",
				Value:  fmt.Sprintf("%d", p.Age),
				Inline: true,
			},
		},
	}

	ulbTeam := p.ULBTeam
	if ulbTeam == "" {
		ulbTeam = "Free Agent"
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "ULB Team",
		Value:  ulbTeam,
		Inline: true,
	})

	if p.Status != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Status",
			Value:  p.Status,
			Inline: true,
		})
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "Contract",
		Value:  buildContractInfo(p, season),
		Inline: false,
	})

	if p.ContractNote != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Contract Notes",
			Value:  p.ContractNote,
			Inline: false,
		})
	}

	return embed
}

// buildContractInfo formats the player's contract from the current season on
func buildContractInfo(p *models.Player, season int) string {
	if !p.HasContract() {
		return "No contract information"
	}

	var parts []string

	for year := season; year <= season+5; year++ {
		value, exists := p.Contract[year]
		if !exists || value == "" {
			continue
		}
		if p.IsFreeAgent(year) {
			parts = append(parts, fmt.Sprintf("%d: FREE AGENT", year))
			break // Don't show years after free agency
		} else if salary, ok := p.GetSalary(year); ok {
			parts = append(parts, fmt.Sprintf("%d: $%s", year, formatNumber(salary)))
		} else {
			parts = append(parts, fmt.Sprintf("%d: %s", year, value))
		}
	}

	if len(parts) == 0 {
		return "No contract information"
	}

	if years := p.YearsRemaining(season); years > 0 {
		parts = append(parts, fmt.Sprintf("AAV: $%s over %d year%s", formatNumberShort(p.AnnualValue(season)), years, pluralize(years)))
	}

	return strings.Join(parts, "\n")
}

// getTeamColor returns a color for the team
func getTeamColor(team string) int {
	if team == "" {
		return 0x95a5a6
	}
	return 0x3498db
}

// handlePlayers looks up multiple players by name and displays their info
func (hm *HandlerManager) handlePlayers(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `!players <player1>, <player2>, <player3>, ...`")
		return
	}

	playerNames := strings.Split(strings.Join(args, " "), ",")

	players, err := hm.ensurePlayersLoaded()
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, "Failed to load player data: "+err.Error())
		return
	}
	season := hm.negotiator.League().Season

	var embeds []*discordgo.MessageEmbed
	var notFound []string

	for _, name := range playerNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		exactMatches := players.FindByExactName(name)
		if len(exactMatches) > 0 {
			for i := range exactMatches {
				embeds = append(embeds, buildCompactPlayerEmbed(&exactMatches[i], season))
			}
			continue
		}

		matches := players.SearchByName(name)
		if len(matches) == 0 {
			notFound = append(notFound, name)
			continue
		}
		// Use first match for partial searches
		embeds = append(embeds, buildCompactPlayerEmbed(&matches[0], season))
	}

	if len(embeds) == 0 {
		s.ChannelMessageSend(m.ChannelID, "No players found.")
		return
	}
	sendEmbeds(s, m.ChannelID, embeds)

	if len(notFound) > 0 {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("\n**Not found:** %s", strings.Join(notFound, ", ")))
	}
}

// buildCompactPlayerEmbed creates a more compact embed for multiple player display
func buildCompactPlayerEmbed(p *models.Player, season int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: p.Name,
		Color: getTeamColor(p.ULBTeam),
	}

	teamInfo := p.ULBTeam
	if teamInfo == "" {
		teamInfo = "Free Agent"
	}
	desc := []string{
		fmt.Sprintf("**%s** | %s | Age %d", p.Position, p.MLBTeam, p.Age),
		fmt.Sprintf("**ULB:** %s", teamInfo),
	}

	var contractParts []string
	for year := season; year <= season+2; year++ {
		value, exists := p.Contract[year]
		if !exists || value == "" {
			continue
		}
		if p.IsFreeAgent(year) {
			contractParts = append(contractParts, fmt.Sprintf("%d: FA", year))
			break
		} else if salary, ok := p.GetSalary(year); ok {
			contractParts = append(contractParts, fmt.Sprintf("%d: $%s", year, formatNumberShort(salary)))
		}
	}
	if len(contractParts) > 0 {
		desc = append(desc, "**Contract:** "+strings.Join(contractParts, " | "))
	}

	embed.Description = strings.Join(desc, "\n")
	return embed
}

// sendEmbeds sends embeds in batches; Discord allows up to 10 per message
func sendEmbeds(s *discordgo.Session, channelID string, embeds []*discordgo.MessageEmbed) {
	for i := 0; i < len(embeds); i += maxEmbedsPerMessage {
		end := i + maxEmbedsPerMessage
		if end > len(embeds) {
			end = len(embeds)
		}
		s.ChannelMessageSendEmbeds(channelID, embeds[i:end])
	}
}

// formatNumber adds commas to large numbers
func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	result := ""
	for i, digit := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(digit)
	}
	return result
}

// formatNumberShort formats large numbers with K/M suffix
func formatNumberShort(n int) string {
	if n < 0 {
		return "-" + formatNumberShort(-n)
	}
	if n >= 1000000 {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	} else if n >= 1000 {
		return fmt.Sprintf("%.0fK", float64(n)/1000)
	}
	return fmt.Sprintf("%d", n)
}
