package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pmurley/ulb-trade-engine/internal/models"
	"github.com/pmurley/ulb-trade-engine/internal/trade"
)

const (
	defaultDraftYears  = 3
	defaultDraftRounds = 3
	leagueDateLayout   = "2006-01-02"
)

// LeagueFile is the YAML description of the teams in the league: owners,
// AI personalities and the draft picks each team holds.
type LeagueFile struct {
	Season      int           `yaml:"season"`
	Date        string        `yaml:"date"`
	DraftYears  int           `yaml:"draft_years"`
	DraftRounds int           `yaml:"draft_rounds"`
	Teams       []models.Team `yaml:"teams"`
}

// LoadLeague reads and checks a league file. Teams that list no picks are
// given their own selections for the configured drafts.
func LoadLeague(path string) (*LeagueFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read league file: %w", err)
	}
	return ParseLeague(data)
}

// ParseLeague decodes league YAML.
func ParseLeague(data []byte) (*LeagueFile, error) {
	var lf LeagueFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse league file: %w", err)
	}
	if lf.Season == 0 {
		return nil, fmt.Errorf("league file has no season")
	}
	if lf.DraftYears <= 0 {
		lf.DraftYears = defaultDraftYears
	}
	if lf.DraftRounds <= 0 {
		lf.DraftRounds = defaultDraftRounds
	}
	if _, err := lf.ParsedDate(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(lf.Teams))
	for i := range lf.Teams {
		t := &lf.Teams[i]
		if t.ID == "" {
			return nil, fmt.Errorf("team %d has no name", i+1)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("team %q is listed twice", t.ID)
		}
		seen[t.ID] = true
		if len(t.Picks) == 0 {
			t.Picks = models.DefaultPicks(t.ID, lf.Season+1, lf.DraftYears, lf.DraftRounds)
		}
	}
	return &lf, nil
}

// ParsedDate is the in-game date, defaulting to opening day of the season.
func (lf *LeagueFile) ParsedDate() (time.Time, error) {
	if lf.Date == "" {
		return time.Date(lf.Season, time.April, 1, 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(leagueDateLayout, lf.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid league date %q: %w", lf.Date, err)
	}
	return d, nil
}

// League assembles the live league from the file's teams and a player pool.
func (lf *LeagueFile) League(players []models.Player) (*trade.League, error) {
	date, err := lf.ParsedDate()
	if err != nil {
		return nil, err
	}
	return trade.NewLeague(lf.Season, date, players, lf.Teams), nil
}
