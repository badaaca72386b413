package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pmurley/ulb-trade-engine/internal/models"
	"github.com/pmurley/ulb-trade-engine/internal/trade"
)

// ProposalFile is a proposal written by hand, with players named rather than
// referenced by ID.
type ProposalFile struct {
	Proposer  string      `yaml:"proposer"`
	Receiver  string      `yaml:"receiver"`
	Offered   AssetBundle `yaml:"offered"`
	Requested AssetBundle `yaml:"requested"`
}

// AssetBundle is one side of a proposal file.
type AssetBundle struct {
	Players []PlayerRef `yaml:"players"`
	Picks   []PickRef   `yaml:"picks"`
}

type PlayerRef struct {
	Name   string  `yaml:"name"`
	Retain float64 `yaml:"retain"` // percent of salary kept, offered players only
}

type PickRef struct {
	Year  int `yaml:"year"`
	Round int `yaml:"round"`
}

// UnmarshalYAML accepts a bare player name as well as the mapping form.
func (r *PlayerRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		r.Name = node.Value
		return nil
	}
	type plain PlayerRef
	return node.Decode((*plain)(r))
}

func loadProposalFile(path string) (*ProposalFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read proposal file: %w", err)
	}
	return parseProposalFile(data)
}

func parseProposalFile(data []byte) (*ProposalFile, error) {
	var pf ProposalFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse proposal file: %w", err)
	}
	if pf.Proposer == "" || pf.Receiver == "" {
		return nil, fmt.Errorf("proposal file needs both a proposer and a receiver")
	}
	return &pf, nil
}

// Resolve turns names into league IDs. Every player or pick that cannot be
// found is reported; no proposal is returned unless all of them resolve.
func (pf *ProposalFile) Resolve(league *trade.League) (*trade.Proposal, []string) {
	p := &trade.Proposal{
		Proposer: pf.Proposer,
		Receiver: pf.Receiver,
		Status:   trade.StatusPending,
	}
	var problems []string

	for _, team := range []string{pf.Proposer, pf.Receiver} {
		if _, ok := league.Teams[team]; !ok {
			problems = append(problems, fmt.Sprintf("unknown team %q", team))
		}
	}
	if len(problems) > 0 {
		return nil, problems
	}

	offered := league.Roster(pf.Proposer)
	for _, ref := range pf.Offered.Players {
		player, err := findPlayer(offered, pf.Proposer, ref.Name)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		if ref.Retain < 0 || ref.Retain > 100 {
			problems = append(problems, fmt.Sprintf("%s: retention must be between 0 and 100", ref.Name))
			continue
		}
		p.PlayersOffered = append(p.PlayersOffered, player.ID)
		if ref.Retain > 0 {
			tp := models.TradedPlayer{Player: player, RetentionPercent: ref.Retain}
			p.SalaryRetained += tp.GetRetainedSalary(league.Season)
		}
	}

	requested := league.Roster(pf.Receiver)
	for _, ref := range pf.Requested.Players {
		if ref.Retain != 0 {
			problems = append(problems, fmt.Sprintf("%s: salary can only be retained on offered players", ref.Name))
			continue
		}
		player, err := findPlayer(requested, pf.Receiver, ref.Name)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		p.PlayersRequested = append(p.PlayersRequested, player.ID)
	}

	var err error
	if p.PicksOffered, err = findPicks(league, pf.Proposer, pf.Offered.Picks); err != nil {
		problems = append(problems, err.Error())
	}
	if p.PicksRequested, err = findPicks(league, pf.Receiver, pf.Requested.Picks); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return nil, problems
	}
	return p, nil
}

func findPlayer(roster models.PlayerList, teamID, name string) (models.Player, error) {
	exact := roster.FindByExactName(name)
	switch {
	case len(exact) == 1:
		return exact[0], nil
	case len(exact) > 1:
		return models.Player{}, fmt.Errorf("%s is ambiguous on %s", name, teamID)
	}
	if matches := roster.SearchByName(name); len(matches) == 1 {
		return matches[0], nil
	}
	return models.Player{}, fmt.Errorf("%s is not on %s", name, teamID)
}

func findPicks(league *trade.League, teamID string, refs []PickRef) ([]models.DraftPick, error) {
	team := league.Teams[teamID]
	var picks []models.DraftPick
	for _, ref := range refs {
		pick, ok := team.FindPick(ref.Year, ref.Round)
		if !ok {
			return nil, fmt.Errorf("%s does not hold a %d Round %d pick", teamID, ref.Year, ref.Round)
		}
		picks = append(picks, pick)
	}
	return picks, nil
}
