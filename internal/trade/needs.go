package trade

// Positions are the roster slots the league tracks depth at.
var Positions = []string{"C", "1B", "2B", "3B", "SS", "OF", "SP", "RP"}

// MinimumDepth is the number of players a team wants at every position.
const MinimumDepth = 3

// DepthChart counts a team's players by primary position.
func DepthChart(league *League, teamID string) map[string]int {
	return league.Roster(teamID).CountByPrimaryPosition()
}

// PositionalNeeds lists the positions where a team carries fewer than
// MinimumDepth players, in Positions order.
func PositionalNeeds(league *League, teamID string) []string {
	depth := DepthChart(league, teamID)
	var needs []string
	for _, pos := range Positions {
		if depth[pos] < MinimumDepth {
			needs = append(needs, pos)
		}
	}
	return needs
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
