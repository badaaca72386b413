package discord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/pmurley/ulb-trade-engine/internal/models"
	"github.com/pmurley/ulb-trade-engine/internal/trade"
)

// TeamFilters represents filtering options for team roster
type TeamFilters struct {
	Status   string // "40-man" or "minors"
	Position string // Position to filter by
	MinAge   int    // Minimum age
	MaxAge   int    // Maximum age
}

// parseTeamArgs separates the team name from --status, --position and --age
// filters
func parseTeamArgs(args []string) (string, TeamFilters) {
	var teamNameParts []string
	filters := TeamFilters{}

	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			teamNameParts = append(teamNameParts, arg)
			continue
		}
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 {
			continue
		}
		switch parts[0] {
		case "--status":
			filters.Status = strings.ToLower(parts[1])
		case "--position", "--pos":
			filters.Position = models.NormalizePosition(strings.ToUpper(parts[1]))
		case "--age":
			// e.g. "20-25", "25+" or "25"
			if strings.Contains(parts[1], "-") {
				ageParts := strings.Split(parts[1], "-")
				if len(ageParts) == 2 {
					fmt.Sscanf(ageParts[0], "%d", &filters.MinAge)
					fmt.Sscanf(ageParts[1], "%d", &filters.MaxAge)
				}
			} else if strings.HasSuffix(parts[1], "+") {
				fmt.Sscanf(parts[1], "%d+", &filters.MinAge)
				filters.MaxAge = 99
			} else {
				var age int
				fmt.Sscanf(parts[1], "%d", &age)
				filters.MinAge = age
				filters.MaxAge = age
			}
		}
	}

	return strings.Join(teamNameParts, " "), filters
}

// lookupTeam resolves a team name for a command, replying with suggestions
// when it fails
func (hm *HandlerManager) lookupTeam(s *discordgo.Session, m *discordgo.MessageCreate, league *trade.League, name string) (models.Team, bool) {
	team, suggestions, ok := resolveTeam(league, name)
	if ok {
		return team, true
	}

	msg := fmt.Sprintf("No team found matching '%s'", name)
	if len(suggestions) > 0 {
		msg += "\n\nDid you mean:\n"
		for _, t := range suggestions {
			msg += fmt.Sprintf("• %s\n", t)
		}
	}
	s.ChannelMessageSend(m.ChannelID, msg)
	return models.Team{}, false
}

// handleTeam displays the roster for a specific team with optional filters
func (hm *HandlerManager) handleTeam(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `!team <team name> [--status=<40-man|minors>] [--position=<pos>] [--age=<min-max>]`")
		return
	}

	teamName, filters := parseTeamArgs(args)
	if teamName == "" {
		s.ChannelMessageSend(m.ChannelID, "Please specify a team name")
		return
	}

	if _, err := hm.ensurePlayersLoaded(); err != nil {
		s.ChannelMessageSend(m.ChannelID, "Failed to load player data: "+err.Error())
		return
	}
	league := hm.negotiator.League()

	team, ok := hm.lookupTeam(s, m, league, teamName)
	if !ok {
		return
	}

	filteredPlayers := applyTeamFilters(league.Roster(team.ID), filters)
	if len(filteredPlayers) == 0 {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("No players found for %s with the specified filters", team.ID))
		return
	}

	embed := buildTeamRosterEmbed(team.ID, filteredPlayers, filters, league.Season)
	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{
			Name:   "Needs",
			Value:  formatNeeds(trade.PositionalNeeds(league, team.ID)),
			Inline: false,
		},
		&discordgo.MessageEmbedField{
			Name:   "Personality",
			Value:  team.Personality.String(),
			Inline: false,
		},
	)
	s.ChannelMessageSendEmbed(m.ChannelID, embed)
}

// handleNeeds lists the positions where a team is below minimum depth
func (hm *HandlerManager) handleNeeds(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `!needs <team name>`")
		return
	}

	league := hm.negotiator.League()
	team, ok := hm.lookupTeam(s, m, league, strings.Join(args, " "))
	if !ok {
		return
	}

	depth := trade.DepthChart(league, team.ID)
	var lines []string
	for _, pos := range trade.Positions {
		marker := ""
		if depth[pos] < trade.MinimumDepth {
			marker = " ⚠️"
		}
		lines = append(lines, fmt.Sprintf("**%s**: %d%s", pos, depth[pos], marker))
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Depth", team.ID),
		Color:       getTeamColor(team.ID),
		Description: strings.Join(lines, "\n"),
		Fields: []*discordgo.MessageEmbedField{{
			Name:  "Needs",
			Value: formatNeeds(hm.negotiator.Needs(team.ID)),
		}},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("A team wants at least %d players at every position", trade.MinimumDepth),
		},
	}
	s.ChannelMessageSendEmbed(m.ChannelID, embed)
}

// handlePicks lists the draft picks a team holds with their trade value
func (hm *HandlerManager) handlePicks(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `!picks <team name>`")
		return
	}

	league := hm.negotiator.League()
	team, ok := hm.lookupTeam(s, m, league, strings.Join(args, " "))
	if !ok {
		return
	}

	s.ChannelMessageSendEmbed(m.ChannelID, buildPicksEmbed(team, league.Season))
}

func buildPicksEmbed(team models.Team, season int) *discordgo.MessageEmbed {
	picks := append([]models.DraftPick(nil), team.Picks...)
	sort.Slice(picks, func(i, j int) bool {
		if picks[i].Year != picks[j].Year {
			return picks[i].Year < picks[j].Year
		}
		if picks[i].Round != picks[j].Round {
			return picks[i].Round < picks[j].Round
		}
		return picks[i].OriginalTeam < picks[j].OriginalTeam
	})

	var lines []string
	total := 0.0
	for _, pick := range picks {
		value := trade.PickValue(pick, season)
		total += value
		lines = append(lines, fmt.Sprintf("%s - $%s", pick.String(), formatNumberShort(int(value))))
	}
	if len(lines) == 0 {
		lines = append(lines, "No picks")
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Draft Picks", team.ID),
		Color:       getTeamColor(team.ID),
		Description: strings.Join(lines, "\n"),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d pick%s | Total value: $%s", len(picks), pluralize(len(picks)), formatNumberShort(int(total))),
		},
	}
}

func formatNeeds(needs []string) string {
	if len(needs) == 0 {
		return "None - depth everywhere"
	}
	return strings.Join(needs, ", ")
}

// applyTeamFilters applies the specified filters to the player list
func applyTeamFilters(players models.PlayerList, filters TeamFilters) models.PlayerList {
	var filtered models.PlayerList

	for _, p := range players {
		if filters.Status != "" {
			statusLower := strings.ToLower(p.Status)
			if filters.Status == "40-man" && !strings.Contains(statusLower, "40") {
				continue
			}
			if filters.Status == "minors" && strings.Contains(statusLower, "40") {
				continue
			}
		}
		if filters.Position != "" && p.PrimaryPosition() != filters.Position {
			continue
		}
		if filters.MinAge > 0 && p.Age < filters.MinAge {
			continue
		}
		if filters.MaxAge > 0 && p.Age > filters.MaxAge {
			continue
		}
		filtered = append(filtered, p)
	}

	return filtered
}

// buildTeamRosterEmbed creates a rich embed for team roster
func buildTeamRosterEmbed(teamName string, players models.PlayerList, filters TeamFilters, season int) *discordgo.MessageEmbed {
	positionGroups := make(map[string][]models.Player)
	positionOrder := []string{"C", "1B", "2B", "3B", "SS", "OF", "DH", "SP", "RP"}
	known := make(map[string]bool, len(positionOrder))
	for _, pos := range positionOrder {
		known[pos] = true
	}

	var unknownPos []models.Player
	for _, player := range players {
		pos := player.PrimaryPosition()
		if !known[pos] {
			unknownPos = append(unknownPos, player)
			continue
		}
		positionGroups[pos] = append(positionGroups[pos], player)
	}

	// Sort players within each position by salary (descending)
	for pos := range positionGroups {
		group := positionGroups[pos]
		sort.Slice(group, func(i, j int) bool {
			salaryI, _ := group[i].GetSalary(season)
			salaryJ, _ := group[j].GetSalary(season)
			return salaryI > salaryJ
		})
	}

	totalPayroll := players.GetTeamPayroll(teamName, season)

	filterDesc := ""
	if filters.Status != "" || filters.Position != "" || filters.MinAge > 0 || filters.MaxAge > 0 {
		var filterParts []string
		if filters.Status != "" {
			filterParts = append(filterParts, fmt.Sprintf("Status: %s", filters.Status))
		}
		if filters.Position != "" {
			filterParts = append(filterParts, fmt.Sprintf("Position: %s", filters.Position))
		}
		if filters.MinAge > 0 || filters.MaxAge > 0 {
			if filters.MinAge == filters.MaxAge {
				filterParts = append(filterParts, fmt.Sprintf("Age: %d", filters.MinAge))
			} else if filters.MaxAge == 99 {
				filterParts = append(filterParts, fmt.Sprintf("Age: %d+", filters.MinAge))
			} else {
				filterParts = append(filterParts, fmt.Sprintf("Age: %d-%d", filters.MinAge, filters.MaxAge))
			}
		}
		filterDesc = "\n*Filters: " + strings.Join(filterParts, ", ") + "*"
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Roster", teamName),
		Color:       getTeamColor(teamName),
		Description: fmt.Sprintf("**%d Players | %d Payroll: $%s**%s", len(players), season, formatNumber(totalPayroll), filterDesc),
	}

	rosterLine := func(player models.Player) string {
		salary := "N/A"
		if sal, ok := player.GetSalary(season); ok {
			salary = "$" + formatNumberShort(sal)
		} else if player.IsFreeAgent(season) {
			salary = "FA"
		}
		return fmt.Sprintf("**%s** (%d, %s) - %s\n", player.Name, player.Age, player.MLBTeam, salary)
	}

	for _, pos := range positionOrder {
		group := positionGroups[pos]
		if len(group) == 0 {
			continue
		}
		fieldValue := ""
		for _, player := range group {
			fieldValue += rosterLine(player)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s (%d)", pos, len(group)),
			Value:  fieldValue,
			Inline: true,
		})
	}

	if len(unknownPos) > 0 {
		fieldValue := ""
		for _, player := range unknownPos {
			fieldValue += rosterLine(player)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("Unknown Position (%d)", len(unknownPos)),
			Value:  fieldValue,
			Inline: true,
		})
	}

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Average Salary: $%s | Roster Size: %d",
			formatNumber(totalPayroll/len(players)), len(players)),
	}

	return embed
}

// findSimilarTeams finds teams with similar names
func findSimilarTeams(search string, allTeams []string) []string {
	searchLower := strings.ToLower(strings.TrimSpace(search))
	if searchLower == "" {
		return nil
	}
	var matches []string

	for _, team := range allTeams {
		teamLower := strings.ToLower(team)
		if strings.Contains(teamLower, searchLower) || strings.Contains(searchLower, teamLower) {
			matches = append(matches, team)
		}
	}

	// Limit to 5 suggestions
	if len(matches) > 5 {
		matches = matches[:5]
	}

	return matches
}
