package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// StatusMinors marks a development player on a team's minor league roster.
const StatusMinors = "Minors"

// defaultContractStartYear is used when the header row carries no year labels.
const defaultContractStartYear = 2025

// Player represents a player in the Master Player Pool
type Player struct {
	ID string // Stable ID derived from name and MLB team

	// Basic Information
	ULBTeam  string  // Column B - The fantasy team that owns this player
	Sort     string  // Column C - Sort category
	Name     string  // Column D - Player name
	Agency   string  // Column E - Agency status
	Position string  // Column F - Player position(s), primary first
	MLBTeam  string  // Column G - MLB team
	Age      int     // Column H - Age
	Points   float64 // Column I - Prior season points
	Status   string  // Column L - Player status (40-Man, Minors)

	// Contract Information - one column per season (Columns M-AA)
	Contract     map[int]string // Year -> Salary/Status
	ContractNote string         // Column AB - Contract notes
}

// PlayerID derives the catalogue key for a player. Name and MLB team are the
// only columns that identify a row in the sheet.
func PlayerID(name, mlbTeam string) string {
	data := strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToUpper(strings.TrimSpace(mlbTeam))
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])[:16]
}

// ParsePlayerRow parses a CSV row into a Player struct
func ParsePlayerRow(row []string, headerRow []string) (*Player, error) {
	if len(row) < 28 { // Minimum expected columns through AB
		return nil, nil // Skip incomplete rows
	}

	// Skip empty rows or rows without player names
	if strings.TrimSpace(row[3]) == "" { // Column D is player name
		return nil, nil
	}

	p := &Player{
		ULBTeam:  strings.TrimSpace(row[1]),
		Sort:     strings.TrimSpace(row[2]),
		Name:     strings.TrimSpace(row[3]),
		Agency:   strings.TrimSpace(row[4]),
		Position: strings.TrimSpace(row[5]),
		MLBTeam:  strings.TrimSpace(row[6]),
		Status:   strings.TrimSpace(row[11]),
		Contract: make(map[int]string),
	}
	p.ID = PlayerID(p.Name, p.MLBTeam)

	if age, err := strconv.Atoi(strings.TrimSpace(row[7])); err == nil {
		p.Age = age
	}

	if pts, err := strconv.ParseFloat(strings.TrimSpace(row[8]), 64); err == nil {
		p.Points = pts
	}

	// Columns M(12) through AA(26) hold one season each
	for i := 12; i <= 26; i++ {
		value := strings.TrimSpace(row[i])
		if value != "" {
			p.Contract[contractYear(headerRow, i)] = value
		}
	}

	p.ContractNote = strings.TrimSpace(row[27]) // Column AB

	return p, nil
}

// contractYear reads the season label for a contract column, falling back to
// the column offset when the header is missing or not numeric.
func contractYear(headerRow []string, col int) int {
	if col < len(headerRow) {
		if year, err := strconv.Atoi(strings.TrimSpace(headerRow[col])); err == nil {
			return year
		}
	}
	return defaultContractStartYear + (col - 12)
}

// GetSalary returns the salary for a given year, parsing the dollar amount
func (p *Player) GetSalary(year int) (int, bool) {
	contractValue, exists := p.Contract[year]
	if !exists {
		return 0, false
	}

	// Check if it's a salary (starts with $)
	if !strings.HasPrefix(contractValue, "$") {
		return 0, false
	}

	// Remove $ and commas, then parse
	salaryStr := strings.TrimPrefix(contractValue, "$")
	salaryStr = strings.ReplaceAll(salaryStr, ",", "")

	salary, err := strconv.Atoi(salaryStr)
	if err != nil {
		return 0, false
	}

	return salary, true
}

// IsFreeAgent checks if the player is a free agent in a given year
func (p *Player) IsFreeAgent(year int) bool {
	contractValue, exists := p.Contract[year]
	return exists && strings.Contains(contractValue, "FREE AGENT")
}

// HasContract checks if the player has any contract information
func (p *Player) HasContract() bool {
	for _, v := range p.Contract {
		if v != "" {
			return true
		}
	}
	return false
}

// YearsRemaining counts the consecutive salaried seasons starting at season.
func (p *Player) YearsRemaining(season int) int {
	years := 0
	for year := season; ; year++ {
		if _, ok := p.GetSalary(year); !ok {
			return years
		}
		years++
	}
}

// AnnualValue is the average salary over the remaining salaried seasons.
func (p *Player) AnnualValue(season int) int {
	years := p.YearsRemaining(season)
	if years == 0 {
		return 0
	}
	total := 0
	for year := season; year < season+years; year++ {
		salary, _ := p.GetSalary(year)
		total += salary
	}
	return total / years
}

// PrimaryPosition returns the first listed position, with the three outfield
// spots folded into OF.
func (p *Player) PrimaryPosition() string {
	first := strings.TrimSpace(strings.Split(p.Position, ",")[0])
	return NormalizePosition(first)
}

// IsDevelopment reports whether the player sits on the minor league roster.
func (p *Player) IsDevelopment() bool {
	return strings.EqualFold(p.Status, StatusMinors)
}

// NormalizePosition upper-cases a position and folds LF/CF/RF into OF.
func NormalizePosition(pos string) string {
	pos = strings.ToUpper(strings.TrimSpace(pos))
	switch pos {
	case "LF", "CF", "RF":
		return "OF"
	}
	return pos
}

// FlatContract builds a contract paying salary for each of years seasons
// beginning at start.
func FlatContract(start, years, salary int) map[int]string {
	contract := make(map[int]string, years+1)
	for i := 0; i < years; i++ {
		contract[start+i] = fmt.Sprintf("$%d", salary)
	}
	contract[start+years] = "FREE AGENT"
	return contract
}
