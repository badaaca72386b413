package models

import (
	"sort"
	"strings"
)

// PlayerList represents a slice of players with helper methods
type PlayerList []Player

// PlayerListFromMap flattens a catalogue into a list ordered by player ID.
func PlayerListFromMap(players map[string]Player) PlayerList {
	list := make(PlayerList, 0, len(players))
	for _, p := range players {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list
}

// ByID indexes the list by player ID. Later duplicates win.
func (pl PlayerList) ByID() map[string]Player {
	index := make(map[string]Player, len(pl))
	for _, p := range pl {
		index[p.ID] = p
	}
	return index
}

// FilterByTeam returns players belonging to a specific ULB team
func (pl PlayerList) FilterByTeam(teamName string) PlayerList {
	var filtered PlayerList
	teamLower := strings.ToLower(strings.TrimSpace(teamName))

	for _, p := range pl {
		if strings.ToLower(strings.TrimSpace(p.ULBTeam)) == teamLower {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// SearchByName returns players whose names contain the search string
func (pl PlayerList) SearchByName(search string) PlayerList {
	var matches PlayerList
	searchLower := strings.ToLower(search)

	for _, p := range pl {
		if strings.Contains(strings.ToLower(p.Name), searchLower) {
			matches = append(matches, p)
		}
	}
	return matches
}

// FindByExactName returns all players with an exact name match (case-insensitive)
func (pl PlayerList) FindByExactName(name string) []Player {
	nameLower := strings.ToLower(strings.TrimSpace(name))
	var matches []Player

	for _, p := range pl {
		if strings.ToLower(p.Name) == nameLower {
			matches = append(matches, p)
		}
	}
	return matches
}

// SortByPoints sorts players by prior season points (descending)
func (pl PlayerList) SortByPoints() {
	sort.SliceStable(pl, func(i, j int) bool {
		return pl[i].Points > pl[j].Points
	})
}

// GetTeamPayroll calculates total payroll for a team in a given year
func (pl PlayerList) GetTeamPayroll(teamName string, year int) int {
	teamPlayers := pl.FilterByTeam(teamName)
	total := 0

	for _, p := range teamPlayers {
		if salary, ok := p.GetSalary(year); ok {
			total += salary
		}
	}
	return total
}

// CountByPrimaryPosition tallies the list by each player's primary position.
func (pl PlayerList) CountByPrimaryPosition() map[string]int {
	counts := make(map[string]int)
	for _, p := range pl {
		if pos := p.PrimaryPosition(); pos != "" {
			counts[pos]++
		}
	}
	return counts
}
