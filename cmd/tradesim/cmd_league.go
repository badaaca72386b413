package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pmurley/ulb-trade-engine/internal/trade"
)

var needsCmd = &cobra.Command{
	Use:   "needs [team...]",
	Short: "Show depth charts and positional needs",
	Long: `Print each team's depth by primary position and the positions it is
short at. With no arguments every team in the league is shown.`,
	RunE: runNeeds,
}

var picksCmd = &cobra.Command{
	Use:   "picks <team>",
	Short: "List the draft picks a team holds and what they are worth",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPicks,
}

var rumoursCmd = &cobra.Command{
	Use:     "rumours",
	Aliases: []string{"rumors"},
	Short:   "Draw trade rumours from the league",
	RunE:    runRumours,
}

var rumourLimit int

func init() {
	rootCmd.AddCommand(needsCmd)
	rootCmd.AddCommand(picksCmd)
	rootCmd.AddCommand(rumoursCmd)

	rumoursCmd.Flags().IntVar(&rumourLimit, "limit", 3, "Maximum number of rumours")
}

func runNeeds(cmd *cobra.Command, args []string) error {
	league, err := loadLeague()
	if err != nil {
		return err
	}

	teams := league.TeamIDs()
	if len(args) > 0 {
		name := strings.Join(args, " ")
		if _, ok := league.Teams[name]; !ok {
			return fmt.Errorf("unknown team %q", name)
		}
		teams = []string{name}
	}

	out := cmd.OutOrStdout()
	for _, id := range teams {
		depth := trade.DepthChart(league, id)
		positions := make([]string, 0, len(depth))
		for pos := range depth {
			positions = append(positions, pos)
		}
		sort.Strings(positions)

		var parts []string
		for _, pos := range positions {
			parts = append(parts, fmt.Sprintf("%s %d", pos, depth[pos]))
		}
		needs := trade.PositionalNeeds(league, id)
		if len(needs) == 0 {
			needs = []string{"none"}
		}
		fmt.Fprintf(out, "%s\n  depth: %s\n  needs: %s\n", id, strings.Join(parts, ", "), strings.Join(needs, ", "))
	}
	return nil
}

func runPicks(cmd *cobra.Command, args []string) error {
	league, err := loadLeague()
	if err != nil {
		return err
	}
	name := strings.Join(args, " ")
	team, ok := league.Teams[name]
	if !ok {
		return fmt.Errorf("unknown team %q", name)
	}

	picks := append(team.Picks[:0:0], team.Picks...)
	sort.Slice(picks, func(i, j int) bool {
		if picks[i].Year != picks[j].Year {
			return picks[i].Year < picks[j].Year
		}
		return picks[i].Round < picks[j].Round
	})

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	total := 0.0
	for _, pick := range picks {
		v := trade.PickValue(pick, league.Season)
		total += v
		fmt.Fprintf(w, "%s\t%s\n", pick, formatDollars(v))
	}
	fmt.Fprintf(w, "Total (%d picks)\t%s\n", len(picks), formatDollars(total))
	return w.Flush()
}

func runRumours(cmd *cobra.Command, args []string) error {
	if !tradeRequests {
		return fmt.Errorf("trade requests are disabled")
	}
	league, err := loadLeague()
	if err != nil {
		return err
	}

	rumours := trade.Rumours(league, trade.Options{
		SalaryDumpTradesEnabled: salaryDumps,
		TradeRequestsEnabled:    tradeRequests,
	}, trade.NewSeededRandom(seedFlag), rumourLimit)
	if len(rumours) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No rumours right now.")
		return nil
	}
	for _, r := range rumours {
		fmt.Fprintf(cmd.OutOrStdout(), "%s are looking for %s help and have been talking to %s\n", r.Team, r.Position, r.Partner)
	}
	return nil
}
