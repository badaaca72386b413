package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmurley/ulb-trade-engine/internal/config"
	"github.com/pmurley/ulb-trade-engine/internal/sheets"
	"github.com/pmurley/ulb-trade-engine/internal/trade"
	"github.com/pmurley/ulb-trade-engine/pkg/logger"
)

var (
	leaguePath    string
	playersPath   string
	seasonFlag    int
	seedFlag      uint64
	pointRate     float64
	salaryDumps   bool
	tradeRequests bool
	logLevel      string
)

// rootCmd is the base command for the offline trade simulator
var rootCmd = &cobra.Command{
	Use:   "tradesim",
	Short: "Offline ULB trade negotiation simulator",
	Long: `tradesim runs the trade engine against a league file and a player pool
export without a Discord connection. Use it to check how an AI team would
answer a proposal, replay negotiations with a fixed seed, or inspect
positional needs and picks.

Examples:
  tradesim evaluate --league league.yaml --players pool.csv --proposal offer.yaml
  tradesim negotiate --proposal offer.yaml --seed 42 --rounds 6
  tradesim needs "Seattle Weiners"
  tradesim rumours --limit 5`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&leaguePath, "league", "league.yaml", "League file with teams, owners and picks")
	flags.StringVar(&playersPath, "players", "players.csv", "Player pool CSV export")
	flags.IntVar(&seasonFlag, "season", 0, "Override the league file's season")
	flags.Uint64Var(&seedFlag, "seed", uint64(time.Now().UnixNano()), "Random seed for jitter and rumours")
	flags.Float64Var(&pointRate, "point-rate", 25000, "Dollars of market value per projected point")
	flags.BoolVar(&salaryDumps, "salary-dumps", true, "Let AI teams take on salary dumps")
	flags.BoolVar(&tradeRequests, "trade-requests", true, "Let AI teams shop for their positional needs")
	flags.StringVar(&logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadLeague reads the league file and player pool named by the global flags
func loadLeague() (*trade.League, error) {
	leagueFile, err := config.LoadLeague(leaguePath)
	if err != nil {
		return nil, err
	}
	if seasonFlag != 0 {
		leagueFile.Season = seasonFlag
	}

	players, err := sheets.LoadPlayersFile(playersPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	return leagueFile.League(players)
}

func newEvaluator() *trade.Evaluator {
	return trade.NewEvaluator(trade.PointsMarketValue(pointRate), trade.Options{
		SalaryDumpTradesEnabled: salaryDumps,
		TradeRequestsEnabled:    tradeRequests,
	})
}

func newLogger() *logger.Logger {
	return logger.NewWithWriter(os.Stderr, logLevel)
}
